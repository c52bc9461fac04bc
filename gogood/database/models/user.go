package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64  `bun:"id,pk,autoincrement"`
	Username  string `bun:"username,notnull,unique"`
	FirstName string `bun:"first_name"`
	LastName  string `bun:"last_name"`
	CityID    int64  `bun:"city_id,notnull"`

	// Engagement state
	GoGs             int64 `bun:"go_gs,notnull,default:0"`
	Level            int   `bun:"level,notnull,default:1"`
	Exp              int64 `bun:"exp,notnull,default:0"`
	ShowLevelUpModal bool  `bun:"show_level_up_modal,notnull,default:false"`

	// Infraction timestamps inside the rolling window, oldest first
	BadPoints    []time.Time `bun:"bad_points,type:jsonb"`
	BlockedUntil *time.Time  `bun:"blocked_until"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
