package models

import "github.com/uptrace/bun"

const (
	RankingByMinutes = "minutes"
	RankingByCount   = "count"
)

const (
	PrizeKindCoins       = "gog"
	PrizeKindSpecialCode = "code"
)

// Prize is one placed prize slot. Value carries the coin amount for the
// coins kind; CodeRef names the redeem code granted for the special kind.
type Prize struct {
	Place   int    `json:"place"`
	Kind    string `json:"kind"`
	Value   int64  `json:"value"`
	CodeRef string `json:"code_ref,omitempty"`
}

// MonthlyPrize is one city's prize table for one month and ranking type,
// holding exactly ten placed prize definitions. Configured externally;
// read-only here.
type MonthlyPrize struct {
	bun.BaseModel `bun:"table:monthly_prizes,alias:mp"`

	ID          int64  `bun:"id,pk,autoincrement"`
	CityID      int64  `bun:"city_id,notnull"`
	Year        int    `bun:"year,notnull"`
	Month       int    `bun:"month,notnull"`
	RankingType string `bun:"ranking_type,notnull"`

	Prizes []Prize `bun:"prizes,type:jsonb"`
}
