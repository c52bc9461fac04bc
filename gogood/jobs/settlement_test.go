package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/gogood-app/gogood-backend/gogood/engagement"
	"github.com/gogood-app/gogood-backend/gogood/progression"
	"github.com/stretchr/testify/require"
)

func settlementFixture(users *fakeUserRepo, volunteerings *fakeVolunteeringRepo) (*SettlementJob, *fakeNotificationRepo) {
	notifications := &fakeNotificationRepo{}
	processor := engagement.NewProcessor(
		users, volunteerings, &fakeStatRepo{}, notifications, &fakePolicyRepo{},
		progression.NewCalculator(progression.NewDefaultConfig()),
		engagement.LinearExpConverter{ExpPerHour: 10},
		engagement.NewDefaultConfig(),
	)
	return NewSettlementJob(volunteerings, processor), notifications
}

func TestSettlementJobSettlesOutstandingOutcomes(t *testing.T) {
	users := newFakeUserRepo(
		&models.User{ID: 1, CityID: 3, Level: 1},
		&models.User{ID: 2, CityID: 3, Level: 1},
	)

	v := &models.Volunteering{
		ID:              10,
		Title:           "Park restoration",
		Date:            time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		CityID:          3,
		OrganizationID:  9,
		RewardType:      models.RewardTypePercent,
		IsClosed:        true,
		RegisteredVolunteers: []models.Registration{
			{UserID: 1, Status: models.RegistrationApproved, Attended: true},
			{UserID: 2, Status: models.RegistrationApproved, Attended: false},
			{UserID: 3, Status: models.RegistrationPending},
		},
	}
	volunteerings := newFakeVolunteeringRepo()
	volunteerings.byID[v.ID] = v
	volunteerings.unsettled = []*models.Volunteering{v}

	job, notifications := settlementFixture(users, volunteerings)
	settled, err := job.Run(context.Background())
	require.NoError(t, err)

	// One attended, one missed; the pending registration carries no outcome.
	require.Equal(t, int64(2), settled)
	require.True(t, v.RegisteredVolunteers[0].OutcomeProcessed)
	require.True(t, v.RegisteredVolunteers[1].OutcomeProcessed)
	require.False(t, v.RegisteredVolunteers[2].OutcomeProcessed)
	require.Len(t, notifications.sent, 2)
}

func TestSettlementJobSkipsSettledRegistrations(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: 1, CityID: 3, Level: 1})

	v := &models.Volunteering{
		ID:              10,
		Title:           "Park restoration",
		Date:            time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		CityID:          3,
		IsClosed:        true,
		RegisteredVolunteers: []models.Registration{
			{UserID: 1, Status: models.RegistrationApproved, Attended: true, OutcomeProcessed: true},
		},
	}
	volunteerings := newFakeVolunteeringRepo()
	volunteerings.byID[v.ID] = v
	volunteerings.unsettled = []*models.Volunteering{v}

	job, notifications := settlementFixture(users, volunteerings)
	settled, err := job.Run(context.Background())
	require.NoError(t, err)

	require.Zero(t, settled)
	require.Empty(t, notifications.sent)
}

func TestSettlementJobNothingToSettle(t *testing.T) {
	job, notifications := settlementFixture(newFakeUserRepo(), newFakeVolunteeringRepo())
	settled, err := job.Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, settled)
	require.Empty(t, notifications.sent)
}
