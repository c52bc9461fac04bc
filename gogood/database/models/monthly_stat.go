package models

import "github.com/uptrace/bun"

// MonthlyStat accumulates one user's attended volunteering for one calendar
// month. Unique on (user_id, year, month); all writes are additive upserts.
type MonthlyStat struct {
	bun.BaseModel `bun:"table:monthly_stats,alias:ms"`

	ID     int64 `bun:"id,pk,autoincrement"`
	UserID int64 `bun:"user_id,notnull"`
	Year   int   `bun:"year,notnull"`
	Month  int   `bun:"month,notnull"`

	TotalMinutes           int64 `bun:"total_minutes,notnull,default:0"`
	TotalVolunteeringCount int64 `bun:"total_volunteering_count,notnull,default:0"`

	// Set once on first insert, never overwritten by later increments
	CityID int64 `bun:"city_id"`
}
