package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationInfo    = "info"
)

// Notification is an append-only user-facing message; the engine never reads
// or updates these.
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID      int64  `bun:"id,pk,autoincrement"`
	UserID  int64  `bun:"user_id,notnull"`
	Title   string `bun:"title,notnull"`
	Message string `bun:"message,notnull"`
	Kind    string `bun:"kind,notnull"`
	Source  string `bun:"source"`
	Read    bool   `bun:"read,notnull,default:false"`

	ExpiresAt *time.Time `bun:"expires_at"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp"`
}
