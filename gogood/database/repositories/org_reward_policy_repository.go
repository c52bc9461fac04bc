package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/uptrace/bun"
)

type OrgRewardPolicyRepository interface {
	// GetByCityAndOrg returns (nil, nil) when no policy exists; a missing
	// policy is a valid zero-payout configuration, not an error.
	GetByCityAndOrg(ctx context.Context, cityID, organizationID int64) (*models.OrgRewardPolicy, error)
}

type orgRewardPolicyRepository struct {
	db *bun.DB
}

func NewOrgRewardPolicyRepository(db *bun.DB) OrgRewardPolicyRepository {
	return &orgRewardPolicyRepository{db: db}
}

func (r *orgRewardPolicyRepository) GetByCityAndOrg(ctx context.Context, cityID, organizationID int64) (*models.OrgRewardPolicy, error) {
	policy := new(models.OrgRewardPolicy)
	err := r.db.NewSelect().
		Model(policy).
		Where("city_id = ?", cityID).
		Where("organization_id = ?", organizationID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return policy, nil
}
