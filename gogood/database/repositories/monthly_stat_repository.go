package repositories

import (
	"context"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/uptrace/bun"
)

type MonthlyStatRepository interface {
	IncrementForUser(ctx context.Context, userID int64, year, month int, cityID int64, minutes int64) error
	GetTopByCity(ctx context.Context, cityID int64, year, month int, rankingType string, limit int) ([]*models.MonthlyStat, error)
}

type monthlyStatRepository struct {
	db *bun.DB
}

func NewMonthlyStatRepository(db *bun.DB) MonthlyStatRepository {
	return &monthlyStatRepository{db: db}
}

// IncrementForUser upserts the user's stat row for the month. Increments are
// additive on conflict; city_id is written only when the row is first created.
func (r *monthlyStatRepository) IncrementForUser(ctx context.Context, userID int64, year, month int, cityID int64, minutes int64) error {
	stat := &models.MonthlyStat{
		UserID:                 userID,
		Year:                   year,
		Month:                  month,
		TotalMinutes:           minutes,
		TotalVolunteeringCount: 1,
		CityID:                 cityID,
	}
	_, err := r.db.NewInsert().
		Model(stat).
		On("CONFLICT (user_id, year, month) DO UPDATE").
		Set("total_minutes = ms.total_minutes + EXCLUDED.total_minutes").
		Set("total_volunteering_count = ms.total_volunteering_count + EXCLUDED.total_volunteering_count").
		Exec(ctx)
	return err
}

func (r *monthlyStatRepository) GetTopByCity(ctx context.Context, cityID int64, year, month int, rankingType string, limit int) ([]*models.MonthlyStat, error) {
	order := "total_minutes DESC"
	if rankingType == models.RankingByCount {
		order = "total_volunteering_count DESC"
	}

	var stats []*models.MonthlyStat
	err := r.db.NewSelect().
		Model(&stats).
		Where("city_id = ?", cityID).
		Where("year = ?", year).
		Where("month = ?", month).
		OrderExpr(order).
		Limit(limit).
		Scan(ctx)
	return stats, err
}
