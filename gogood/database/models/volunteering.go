package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	RegistrationPending   = "pending"
	RegistrationApproved  = "approved"
	RegistrationCancelled = "cancelled"
)

const (
	RewardTypePercent = "percent"
	RewardTypeModel   = "model"
)

// Registration is one entry of a volunteering's registered-volunteers list.
// OutcomeProcessed marks that the attendance outcome for this registration was
// already credited or penalized, so a re-delivered close event is a no-op.
type Registration struct {
	UserID           int64  `json:"user_id"`
	Status           string `json:"status"`
	Attended         bool   `json:"attended"`
	OutcomeProcessed bool   `json:"outcome_processed"`
}

type Volunteering struct {
	bun.BaseModel `bun:"table:volunteerings,alias:v"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Title       string `bun:"title,notnull"`
	Description string `bun:"description"`

	Date            time.Time `bun:"date,notnull"`
	DurationMinutes int       `bun:"duration_minutes,notnull"`

	Address string `bun:"address,notnull"`
	CityID  int64  `bun:"city_id,notnull"`

	OrganizationID int64 `bun:"organization_id,notnull"`
	CreatedByID    int64 `bun:"created_by_id,notnull"`

	Tags []string `bun:"tags,type:jsonb"`

	RewardType string `bun:"reward_type,notnull,default:'percent'"`
	// Percent of the org cap when RewardType is "percent"
	Reward int `bun:"reward,notnull,default:0"`

	IsRecurring bool `bun:"is_recurring,notnull,default:false"`
	// Weekday 0 (Sunday) through 6; nil on materialized occurrences
	RecurringDay *int `bun:"recurring_day"`

	MaxParticipants int `bun:"max_participants"`
	MinLevel        int `bun:"min_level"`

	RegisteredVolunteers []Registration `bun:"registered_volunteers,type:jsonb"`

	NotesForVolunteers string `bun:"notes_for_volunteers"`
	Cancelled          bool   `bun:"cancelled,notnull,default:false"`
	IsClosed           bool   `bun:"is_closed,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
