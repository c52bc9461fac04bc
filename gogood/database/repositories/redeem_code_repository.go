package repositories

import (
	"context"
	"time"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/uptrace/bun"
)

type RedeemCodeRepository interface {
	Create(ctx context.Context, code *models.RedeemCode) error
	CountPendingOlderThan(ctx context.Context, threshold time.Time) (int, error)
	ExpirePendingOlderThan(ctx context.Context, threshold time.Time) (int64, error)
}

type redeemCodeRepository struct {
	db *bun.DB
}

func NewRedeemCodeRepository(db *bun.DB) RedeemCodeRepository {
	return &redeemCodeRepository{db: db}
}

func (r *redeemCodeRepository) Create(ctx context.Context, code *models.RedeemCode) error {
	code.CreatedAt = time.Now()
	code.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(code).Exec(ctx)
	return err
}

func (r *redeemCodeRepository) CountPendingOlderThan(ctx context.Context, threshold time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*models.RedeemCode)(nil)).
		Where("status = ?", models.RedeemStatusPending).
		Where("created_at < ?", threshold).
		Count(ctx)
}

// ExpirePendingOlderThan is status-gated, so re-running with the same or a
// later threshold only ever touches rows still pending.
func (r *redeemCodeRepository) ExpirePendingOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*models.RedeemCode)(nil)).
		Set("status = ?", models.RedeemStatusExpired).
		Set("updated_at = ?", time.Now()).
		Where("status = ?", models.RedeemStatusPending).
		Where("created_at < ?", threshold).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
