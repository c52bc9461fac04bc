package engagement

import "github.com/gogood-app/gogood-backend/gogood/database/models"

// RewardCoins computes the coin payout for an attended volunteering:
// floor(reward-percent/100 * org cap). A missing or zero cap pays nothing.
// The "model" reward type is a recognized configuration that currently always
// pays 0; the predicted-reward backend is not wired yet.
func RewardCoins(v *models.Volunteering, policy *models.OrgRewardPolicy) int64 {
	if v.RewardType == models.RewardTypeModel {
		return 0
	}
	if policy == nil || policy.MaxRewardPerVolunteering <= 0 {
		return 0
	}

	percent := int64(v.Reward)
	if percent < 0 {
		percent = 0
	}
	return percent * policy.MaxRewardPerVolunteering / 100
}
