package repositories

import (
	"context"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/uptrace/bun"
)

type MonthlyPrizeRepository interface {
	GetByMonth(ctx context.Context, year, month int, rankingType string) ([]*models.MonthlyPrize, error)
}

type monthlyPrizeRepository struct {
	db *bun.DB
}

func NewMonthlyPrizeRepository(db *bun.DB) MonthlyPrizeRepository {
	return &monthlyPrizeRepository{db: db}
}

func (r *monthlyPrizeRepository) GetByMonth(ctx context.Context, year, month int, rankingType string) ([]*models.MonthlyPrize, error) {
	var prizes []*models.MonthlyPrize
	err := r.db.NewSelect().
		Model(&prizes).
		Where("year = ?", year).
		Where("month = ?", month).
		Where("ranking_type = ?", rankingType).
		Scan(ctx)
	return prizes, err
}
