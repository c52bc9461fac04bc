package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogood-app/gogood-backend/gogood/database/repositories"
)

// ExpiryJob transitions redeem codes that sat pending past their shelf life
// to expired. Stateless and convergent: the update is status-gated, so a
// second run with the same or a later threshold finds nothing to do.
type ExpiryJob struct {
	codes repositories.RedeemCodeRepository
	ttl   time.Duration
}

func NewExpiryJob(codes repositories.RedeemCodeRepository, ttl time.Duration) *ExpiryJob {
	return &ExpiryJob{codes: codes, ttl: ttl}
}

// Run expires all pending codes created before the threshold and returns how
// many were transitioned. Zero candidates is a valid outcome and issues no
// update at all.
func (j *ExpiryJob) Run(ctx context.Context, threshold time.Time) (int64, error) {
	slog.Info("Checking for redeem codes to expire",
		slog.String("type", "job"),
		slog.String("job", "redeem-code-expiry"),
		slog.Time("threshold", threshold))

	count, err := j.codes.CountPendingOlderThan(ctx, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to count expiry candidates: %w", err)
	}

	if count == 0 {
		slog.Info("No redeem codes to expire",
			slog.String("type", "job"),
			slog.String("job", "redeem-code-expiry"))
		return 0, nil
	}

	expired, err := j.codes.ExpirePendingOlderThan(ctx, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to expire redeem codes: %w", err)
	}

	slog.Info("Redeem codes marked as expired",
		slog.String("type", "job"),
		slog.String("job", "redeem-code-expiry"),
		slog.Int64("expired", expired))
	return expired, nil
}

// RunDefault runs with the standard threshold of now minus the configured TTL.
func (j *ExpiryJob) RunDefault(ctx context.Context, now time.Time) (int64, error) {
	return j.Run(ctx, now.Add(-j.ttl))
}
