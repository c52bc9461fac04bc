package engagement

import (
	"time"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
)

// PruneInfractions drops infraction timestamps that fell out of the rolling
// window, preserving order.
func PruneInfractions(points []time.Time, now time.Time, window time.Duration) []time.Time {
	kept := make([]time.Time, 0, len(points))
	for _, p := range points {
		if now.Sub(p) <= window {
			kept = append(kept, p)
		}
	}
	return kept
}

// IsBlocked reports whether a user may not register for new volunteering.
// A user is blocked while BlockedUntil lies in the future, or while the
// windowed infraction count still reaches the threshold. The second check is
// a deliberate recomputation covering a block that was never persisted or has
// lapsed while infractions remain in the window.
func (p *Processor) IsBlocked(user *models.User, now time.Time) bool {
	if user.BlockedUntil != nil && user.BlockedUntil.After(now) {
		return true
	}
	return len(PruneInfractions(user.BadPoints, now, p.config.InfractionWindow)) >= p.config.InfractionThreshold
}
