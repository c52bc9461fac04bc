package repositories

import (
	"context"
	"time"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/uptrace/bun"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
}

type notificationRepository struct {
	db *bun.DB
}

func NewNotificationRepository(db *bun.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	n.CreatedAt = time.Now()
	_, err := r.db.NewInsert().Model(n).Exec(ctx)
	return err
}
