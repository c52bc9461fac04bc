package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/stretchr/testify/require"
)

func recurringTemplate(id int64, weekday int) *models.Volunteering {
	day := weekday
	return &models.Volunteering{
		ID:                 id,
		Title:              "Weekly soup kitchen",
		Description:        "Serve dinner at the shelter",
		Date:               time.Date(2025, time.March, 5, 18, 30, 0, 0, time.UTC),
		DurationMinutes:    180,
		Address:            "Shelter Lane 4",
		CityID:             3,
		OrganizationID:     9,
		CreatedByID:        12,
		Tags:               []string{"food", "weekly"},
		RewardType:         models.RewardTypePercent,
		Reward:             40,
		IsRecurring:        true,
		RecurringDay:       &day,
		MaxParticipants:    8,
		MinLevel:           2,
		NotesForVolunteers: "Wear closed shoes",
		RegisteredVolunteers: []models.Registration{
			{UserID: 5, Status: models.RegistrationApproved},
		},
	}
}

func TestRecurringJobMaterializesOccurrence(t *testing.T) {
	now := time.Date(2025, time.June, 16, 3, 0, 0, 0, time.UTC)
	target := now.AddDate(0, 0, 7)

	repo := newFakeVolunteeringRepo()
	tmpl := recurringTemplate(1, int(target.Weekday()))
	repo.templates = []*models.Volunteering{tmpl}

	job := NewRecurringJob(repo, 7)
	created, err := job.Run(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, int64(1), created)
	require.Len(t, repo.created, 1)

	clone := repo.created[0]
	require.Equal(t, tmpl.Title, clone.Title)
	require.Equal(t, tmpl.Address, clone.Address)
	require.Equal(t, tmpl.DurationMinutes, clone.DurationMinutes)
	require.Equal(t, tmpl.Reward, clone.Reward)

	// The occurrence keeps the template's time of day on the target date.
	require.Equal(t, target.Year(), clone.Date.Year())
	require.Equal(t, target.Month(), clone.Date.Month())
	require.Equal(t, target.Day(), clone.Date.Day())
	require.Equal(t, 18, clone.Date.Hour())
	require.Equal(t, 30, clone.Date.Minute())

	// A materialized occurrence is a plain volunteering with a fresh roster.
	require.False(t, clone.IsRecurring)
	require.Nil(t, clone.RecurringDay)
	require.Empty(t, clone.RegisteredVolunteers)
	require.False(t, clone.IsClosed)
	require.False(t, clone.Cancelled)
}

func TestRecurringJobSkipsExistingOccurrence(t *testing.T) {
	now := time.Date(2025, time.June, 16, 3, 0, 0, 0, time.UTC)
	target := now.AddDate(0, 0, 7)

	repo := newFakeVolunteeringRepo()
	repo.templates = []*models.Volunteering{recurringTemplate(1, int(target.Weekday()))}
	repo.existing = true

	job := NewRecurringJob(repo, 7)
	created, err := job.Run(context.Background(), now)
	require.NoError(t, err)
	require.Zero(t, created)
	require.Empty(t, repo.created)
}

func TestRecurringJobIgnoresOtherWeekdays(t *testing.T) {
	now := time.Date(2025, time.June, 16, 3, 0, 0, 0, time.UTC)
	target := now.AddDate(0, 0, 7)
	otherDay := (int(target.Weekday()) + 1) % 7

	repo := newFakeVolunteeringRepo()
	repo.templates = []*models.Volunteering{recurringTemplate(1, otherDay)}

	job := NewRecurringJob(repo, 7)
	created, err := job.Run(context.Background(), now)
	require.NoError(t, err)
	require.Zero(t, created)
}

func TestRecurringJobTemplateQueryFailureAborts(t *testing.T) {
	repo := newFakeVolunteeringRepo()
	repo.templatesErr = context.DeadlineExceeded

	job := NewRecurringJob(repo, 7)
	_, err := job.Run(context.Background(), time.Now())
	require.Error(t, err)
}

func TestRecurringJobPerTemplateFailureDoesNotAbort(t *testing.T) {
	now := time.Date(2025, time.June, 16, 3, 0, 0, 0, time.UTC)
	target := now.AddDate(0, 0, 7)

	repo := newFakeVolunteeringRepo()
	repo.templates = []*models.Volunteering{
		recurringTemplate(1, int(target.Weekday())),
		recurringTemplate(2, int(target.Weekday())),
	}
	repo.existsErr = context.DeadlineExceeded

	job := NewRecurringJob(repo, 7)
	created, err := job.Run(context.Background(), now)
	require.NoError(t, err)
	require.Zero(t, created)
}
