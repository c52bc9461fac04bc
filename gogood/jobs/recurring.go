package jobs

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/gogood-app/gogood-backend/gogood/database/repositories"
	"golang.org/x/sync/semaphore"
)

const (
	// Tolerance around the candidate occurrence when checking for an existing
	// clone; absorbs overlapping sweep runs and re-triggered jobs.
	duplicateWindow = time.Hour

	maxConcurrentTemplates = 4
)

// RecurringJob materializes next week's concrete occurrence for every
// recurring volunteering template whose weekday matches the target date.
type RecurringJob struct {
	volunteerings repositories.VolunteeringRepository
	aheadDays     int
}

func NewRecurringJob(volunteerings repositories.VolunteeringRepository, aheadDays int) *RecurringJob {
	return &RecurringJob{volunteerings: volunteerings, aheadDays: aheadDays}
}

// Run creates occurrences for the date aheadDays from now and returns how
// many were inserted. Per-template failures are logged and never abort the
// batch; only the template query itself is a job failure.
func (j *RecurringJob) Run(ctx context.Context, now time.Time) (int64, error) {
	target := now.AddDate(0, 0, j.aheadDays)
	weekday := int(target.Weekday())

	templates, err := j.volunteerings.GetRecurringByWeekday(ctx, weekday)
	if err != nil {
		return 0, err
	}

	slog.Info("Materializing recurring volunteering",
		slog.String("type", "job"),
		slog.String("job", "recurring-materializer"),
		slog.Time("target", target),
		slog.Int("weekday", weekday),
		slog.Int("templates", len(templates)))

	var created int64
	sem := semaphore.NewWeighted(maxConcurrentTemplates)
	var wg sync.WaitGroup

	for _, tmpl := range templates {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(tmpl *models.Volunteering) {
			defer sem.Release(1)
			defer wg.Done()
			if j.materialize(ctx, tmpl, target) {
				atomic.AddInt64(&created, 1)
			}
		}(tmpl)
	}
	wg.Wait()

	slog.Info("Recurring materialization finished",
		slog.String("type", "job"),
		slog.String("job", "recurring-materializer"),
		slog.Int64("created", created))
	return atomic.LoadInt64(&created), nil
}

func (j *RecurringJob) materialize(ctx context.Context, tmpl *models.Volunteering, target time.Time) bool {
	// Same time of day as the template's original date, on the target date.
	candidate := time.Date(
		target.Year(), target.Month(), target.Day(),
		tmpl.Date.Hour(), tmpl.Date.Minute(), tmpl.Date.Second(), 0,
		tmpl.Date.Location(),
	)

	exists, err := j.volunteerings.ExistsSimilar(ctx, tmpl.Title, tmpl.Address,
		candidate.Add(-duplicateWindow), candidate.Add(duplicateWindow))
	if err != nil {
		slog.Error("Duplicate check failed for recurring template",
			slog.String("type", "job"),
			slog.String("job", "recurring-materializer"),
			slog.Int64("template_id", tmpl.ID),
			slog.String("error", err.Error()))
		return false
	}
	if exists {
		slog.Info("Occurrence already exists, skipping template",
			slog.String("type", "job"),
			slog.String("job", "recurring-materializer"),
			slog.Int64("template_id", tmpl.ID),
			slog.Time("candidate", candidate))
		return false
	}

	clone := &models.Volunteering{
		Title:                tmpl.Title,
		Description:          tmpl.Description,
		Date:                 candidate,
		DurationMinutes:      tmpl.DurationMinutes,
		Address:              tmpl.Address,
		CityID:               tmpl.CityID,
		OrganizationID:       tmpl.OrganizationID,
		CreatedByID:          tmpl.CreatedByID,
		Tags:                 tmpl.Tags,
		RewardType:           tmpl.RewardType,
		Reward:               tmpl.Reward,
		IsRecurring:          false,
		RecurringDay:         nil,
		MaxParticipants:      tmpl.MaxParticipants,
		MinLevel:             tmpl.MinLevel,
		RegisteredVolunteers: []models.Registration{},
		NotesForVolunteers:   tmpl.NotesForVolunteers,
		Cancelled:            false,
		IsClosed:             false,
		CreatedAt:            time.Now(),
	}

	if err := j.volunteerings.Create(ctx, clone); err != nil {
		slog.Error("Failed to create recurring occurrence",
			slog.String("type", "job"),
			slog.String("job", "recurring-materializer"),
			slog.Int64("template_id", tmpl.ID),
			slog.String("error", err.Error()))
		return false
	}
	return true
}
