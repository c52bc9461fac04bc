package migration

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Legacy Mongoose document shapes, as stored by the original backend.

type legacyUser struct {
	ID               primitive.ObjectID `bson:"_id"`
	Username         string             `bson:"username"`
	FirstName        string             `bson:"firstName"`
	LastName         string             `bson:"lastName"`
	City             primitive.ObjectID `bson:"city"`
	GoGs             int64              `bson:"GoGs"`
	Level            int                `bson:"level"`
	Exp              int64              `bson:"exp"`
	BadPoints        []time.Time        `bson:"badPoints"`
	BlockedUntil     *time.Time         `bson:"blockedUntil"`
	ShowLevelUpModal bool               `bson:"showLevelUpModal"`
	CreatedAt        time.Time          `bson:"createdAt"`
}

type legacyRegistration struct {
	UserID   primitive.ObjectID `bson:"userId"`
	Status   string             `bson:"status"`
	Attended bool               `bson:"attended"`
}

type legacyVolunteering struct {
	ID                   primitive.ObjectID   `bson:"_id"`
	Title                string               `bson:"title"`
	Description          string               `bson:"description"`
	Date                 time.Time            `bson:"date"`
	DurationMinutes      int                  `bson:"durationMinutes"`
	Address              string               `bson:"address"`
	City                 primitive.ObjectID   `bson:"city"`
	OrganizationID       primitive.ObjectID   `bson:"organizationId"`
	CreatedBy            primitive.ObjectID   `bson:"createdBy"`
	Tags                 []string             `bson:"tags"`
	RewardType           string               `bson:"rewardType"`
	Reward               int                  `bson:"reward"`
	IsRecurring          bool                 `bson:"isRecurring"`
	RecurringDay         *int                 `bson:"recurringDay"`
	MaxParticipants      int                  `bson:"maxParticipants"`
	MinLevel             int                  `bson:"minlevel"`
	RegisteredVolunteers []legacyRegistration `bson:"registeredVolunteers"`
	NotesForVolunteers   string               `bson:"notesForVolunteers"`
	Cancelled            bool                 `bson:"cancelled"`
	IsClosed             bool                 `bson:"isClosed"`
	CreatedAt            time.Time            `bson:"createdAt"`
}

type legacyMonthlyStat struct {
	UserID                 primitive.ObjectID `bson:"userId"`
	Year                   int                `bson:"year"`
	Month                  int                `bson:"month"`
	TotalMinutes           int64              `bson:"totalMinutes"`
	TotalVolunteeringCount int64              `bson:"totalVolunteeringCount"`
	City                   primitive.ObjectID `bson:"city"`
}

type legacyRedeemCode struct {
	Code      string             `bson:"code"`
	User      primitive.ObjectID `bson:"user"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type legacyCityOrganization struct {
	City                     primitive.ObjectID `bson:"city"`
	Organization             primitive.ObjectID `bson:"organization"`
	MaxRewardPerVolunteering int64              `bson:"maxRewardPerVolunteering"`
}

type TableStats struct {
	Read     int
	Inserted int
	Skipped  int
}

type MigrationStats struct {
	Tables    map[string]*TableStats
	StartTime time.Time
}
