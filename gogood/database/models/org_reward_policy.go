package models

import "github.com/uptrace/bun"

// OrgRewardPolicy caps the coin payout of any single volunteering run by an
// organization within a city. A missing policy means no payout at all.
type OrgRewardPolicy struct {
	bun.BaseModel `bun:"table:org_reward_policies,alias:orp"`

	ID             int64 `bun:"id,pk,autoincrement"`
	CityID         int64 `bun:"city_id,notnull"`
	OrganizationID int64 `bun:"organization_id,notnull"`

	MaxRewardPerVolunteering int64 `bun:"max_reward_per_volunteering,notnull,default:0"`
}
