package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/uptrace/bun"
)

type VolunteeringRepository interface {
	Create(ctx context.Context, v *models.Volunteering) error
	GetByID(ctx context.Context, id int64) (*models.Volunteering, error)
	Update(ctx context.Context, v *models.Volunteering) error
	GetRecurringByWeekday(ctx context.Context, weekday int) ([]*models.Volunteering, error)
	ExistsSimilar(ctx context.Context, title, address string, from, to time.Time) (bool, error)
	GetClosedWithUnsettledOutcomes(ctx context.Context) ([]*models.Volunteering, error)
}

type volunteeringRepository struct {
	db *bun.DB
}

func NewVolunteeringRepository(db *bun.DB) VolunteeringRepository {
	return &volunteeringRepository{db: db}
}

func (r *volunteeringRepository) Create(ctx context.Context, v *models.Volunteering) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	_, err := r.db.NewInsert().Model(v).Exec(ctx)
	return err
}

func (r *volunteeringRepository) GetByID(ctx context.Context, id int64) (*models.Volunteering, error) {
	v := new(models.Volunteering)
	err := r.db.NewSelect().
		Model(v).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *volunteeringRepository) Update(ctx context.Context, v *models.Volunteering) error {
	_, err := r.db.NewUpdate().
		Model(v).
		WherePK().
		Exec(ctx)
	return err
}

func (r *volunteeringRepository) GetRecurringByWeekday(ctx context.Context, weekday int) ([]*models.Volunteering, error) {
	var vs []*models.Volunteering
	err := r.db.NewSelect().
		Model(&vs).
		Where("is_recurring = true").
		Where("recurring_day = ?", weekday).
		Where("cancelled = false").
		Scan(ctx)
	return vs, err
}

// GetClosedWithUnsettledOutcomes finds closed volunteerings that still carry
// an approved registration whose attendance outcome was never settled.
func (r *volunteeringRepository) GetClosedWithUnsettledOutcomes(ctx context.Context) ([]*models.Volunteering, error) {
	var vs []*models.Volunteering
	err := r.db.NewSelect().
		Model(&vs).
		Where("is_closed = true").
		Where("cancelled = false").
		Where(`EXISTS (
			SELECT 1 FROM jsonb_array_elements(v.registered_volunteers) AS reg
			WHERE reg->>'status' = 'approved'
			AND COALESCE((reg->>'outcome_processed')::boolean, false) = false
		)`).
		Scan(ctx)
	return vs, err
}

// ExistsSimilar reports whether any occurrence with the same title and address
// already sits inside the [from, to) window. Used as the duplicate guard for
// recurring materialization.
func (r *volunteeringRepository) ExistsSimilar(ctx context.Context, title, address string, from, to time.Time) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.Volunteering)(nil)).
		Where("title = ?", title).
		Where("address = ?", address).
		Where("date >= ?", from).
		Where("date < ?", to).
		Exists(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	return exists, nil
}
