package jobs

import (
	"context"
	"log/slog"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/gogood-app/gogood-backend/gogood/database/repositories"
	"github.com/gogood-app/gogood-backend/gogood/engagement"
)

// SettlementJob is the safety net behind the synchronous attendance-outcome
// path: it settles approved registrations of closed volunteerings whose
// outcome was never applied, for example because the closing request died
// mid-flight. The processor's idempotency marker makes overlap with the
// synchronous path harmless.
type SettlementJob struct {
	volunteerings repositories.VolunteeringRepository
	processor     *engagement.Processor
}

func NewSettlementJob(volunteerings repositories.VolunteeringRepository, processor *engagement.Processor) *SettlementJob {
	return &SettlementJob{volunteerings: volunteerings, processor: processor}
}

// Run settles all outstanding outcomes and returns how many registrations
// were processed. Per-registration failures are logged and skipped.
func (j *SettlementJob) Run(ctx context.Context) (int64, error) {
	pending, err := j.volunteerings.GetClosedWithUnsettledOutcomes(ctx)
	if err != nil {
		return 0, err
	}

	var settled int64
	for _, v := range pending {
		for _, reg := range v.RegisteredVolunteers {
			if reg.Status != models.RegistrationApproved || reg.OutcomeProcessed {
				continue
			}
			outcome, err := j.processor.ProcessRegistration(ctx, v.ID, reg.UserID, "")
			if err != nil {
				slog.Error("Failed to settle registration outcome",
					slog.String("type", "job"),
					slog.String("job", "outcome-settlement"),
					slog.Int64("volunteering_id", v.ID),
					slog.Int64("user_id", reg.UserID),
					slog.String("error", err.Error()))
				continue
			}
			if outcome.Processed {
				settled++
			}
		}
	}

	if settled > 0 {
		slog.Info("Outstanding attendance outcomes settled",
			slog.String("type", "job"),
			slog.String("job", "outcome-settlement"),
			slog.Int64("settled", settled))
	}
	return settled, nil
}
