package engagement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/gogood-app/gogood-backend/gogood/database/repositories"
	"github.com/gogood-app/gogood-backend/gogood/progression"
	lru "github.com/hashicorp/golang-lru"
)

const policyCacheSize = 512

// Processor applies the terminal attendance outcome of a registration to the
// user: reward (coins, exp, level) for attendance, infraction tracking and
// blocking for a no-show.
type Processor struct {
	users         repositories.UserRepository
	volunteerings repositories.VolunteeringRepository
	stats         repositories.MonthlyStatRepository
	notifications repositories.NotificationRepository
	policies      repositories.OrgRewardPolicyRepository

	calc      *progression.Calculator
	converter ExpConverter
	config    *Config

	policyCache *lru.Cache
	now         func() time.Time
}

type ApprovedResult struct {
	NewLevel int
	Coins    int64
	AddedExp int64
}

type MissedResult struct {
	BadPoints    int
	BlockedUntil *time.Time
}

// Outcome reports what ProcessRegistration did. Processed is false when the
// registration carried no outcome (not approved) or was already settled.
type Outcome struct {
	Processed bool
	Approved  *ApprovedResult
	Missed    *MissedResult
}

func NewProcessor(
	users repositories.UserRepository,
	volunteerings repositories.VolunteeringRepository,
	stats repositories.MonthlyStatRepository,
	notifications repositories.NotificationRepository,
	policies repositories.OrgRewardPolicyRepository,
	calc *progression.Calculator,
	converter ExpConverter,
	config *Config,
) *Processor {
	cache, _ := lru.New(policyCacheSize)
	return &Processor{
		users:         users,
		volunteerings: volunteerings,
		stats:         stats,
		notifications: notifications,
		policies:      policies,
		calc:          calc,
		converter:     converter,
		config:        config,
		policyCache:   cache,
		now:           time.Now,
	}
}

// SetClock overrides the time source; tests only.
func (p *Processor) SetClock(now func() time.Time) {
	p.now = now
}

// ProcessRegistration settles the attendance outcome of one registration
// exactly once. Registrations that never reached approved status carry no
// outcome; a registration whose outcome was already settled is skipped, which
// makes a re-delivered close event harmless.
func (p *Processor) ProcessRegistration(ctx context.Context, volunteeringID, userID int64, organizationName string) (*Outcome, error) {
	v, err := p.volunteerings.GetByID(ctx, volunteeringID)
	if err != nil {
		return nil, fmt.Errorf("failed to load volunteering %d: %w", volunteeringID, err)
	}

	idx := -1
	for i, reg := range v.RegisteredVolunteers {
		if reg.UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("user %d is not registered for volunteering %d", userID, volunteeringID)
	}

	reg := v.RegisteredVolunteers[idx]
	if reg.Status != models.RegistrationApproved {
		return &Outcome{}, nil
	}
	if reg.OutcomeProcessed {
		slog.Info("Registration outcome already settled, skipping",
			slog.Int64("volunteering_id", volunteeringID),
			slog.Int64("user_id", userID))
		return &Outcome{}, nil
	}

	user, err := p.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	outcome := &Outcome{Processed: true}
	if reg.Attended {
		res, err := p.HandleApprovedVolunteer(ctx, user, v, organizationName)
		if err != nil {
			return nil, err
		}
		outcome.Approved = res
	} else {
		res, err := p.HandleMissedVolunteer(ctx, user, v, organizationName)
		if err != nil {
			return nil, err
		}
		outcome.Missed = res
	}

	v.RegisteredVolunteers[idx].OutcomeProcessed = true
	if err := p.volunteerings.Update(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to mark registration as settled: %w", err)
	}

	return outcome, nil
}

// HandleApprovedVolunteer credits coins and experience for an attended
// volunteering, recomputes the level from the reconstructed lifetime exp,
// folds the attendance into the user's monthly stat and notifies the user.
func (p *Processor) HandleApprovedVolunteer(ctx context.Context, user *models.User, v *models.Volunteering, organizationName string) (*ApprovedResult, error) {
	addedExp := p.converter.ExpForDuration(v.DurationMinutes)

	policy, err := p.orgPolicy(ctx, v.CityID, v.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reward policy: %w", err)
	}
	coins := RewardCoins(v, policy)

	if coins > 0 {
		if err := p.users.AddCoins(ctx, user.ID, coins); err != nil {
			return nil, fmt.Errorf("failed to credit coins: %w", err)
		}
		user.GoGs += coins
	}

	total := p.calc.TotalFor(user.Level, user.Exp) + addedExp
	result := p.calc.FromTotal(total)

	oldLevel := user.Level
	user.Level = result.Level
	user.Exp = result.ExpInLevel
	if result.Level > oldLevel {
		user.ShowLevelUpModal = true
	}

	if err := p.users.UpdateProgression(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist progression: %w", err)
	}

	year, month := v.Date.Year(), int(v.Date.Month())
	if err := p.stats.IncrementForUser(ctx, user.ID, year, month, user.CityID, int64(v.DurationMinutes)); err != nil {
		return nil, fmt.Errorf("failed to upsert monthly stat: %w", err)
	}

	if err := p.notifications.Create(ctx, &models.Notification{
		UserID:  user.ID,
		Title:   fmt.Sprintf("Volunteering %q completed!", v.Title),
		Message: fmt.Sprintf("Well done! You earned %d GoGs and %d exp.", coins, addedExp),
		Kind:    models.NotificationSuccess,
		Source:  organizationName,
	}); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return &ApprovedResult{NewLevel: result.Level, Coins: coins, AddedExp: addedExp}, nil
}

// HandleMissedVolunteer records a no-show: prunes infractions outside the
// rolling window, appends the new one and applies a block once the threshold
// is reached. A block still in force is not re-extended by further misses.
func (p *Processor) HandleMissedVolunteer(ctx context.Context, user *models.User, v *models.Volunteering, organizationName string) (*MissedResult, error) {
	now := p.now()

	user.BadPoints = PruneInfractions(user.BadPoints, now, p.config.InfractionWindow)
	user.BadPoints = append(user.BadPoints, now)

	if len(user.BadPoints) >= p.config.InfractionThreshold {
		if user.BlockedUntil == nil || !user.BlockedUntil.After(now) {
			until := now.Add(p.config.BlockDuration)
			user.BlockedUntil = &until
		}
	}

	if err := p.users.UpdateInfractions(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist infractions: %w", err)
	}

	if err := p.notifications.Create(ctx, &models.Notification{
		UserID: user.ID,
		Title:  fmt.Sprintf("You missed the volunteering %q", v.Title),
		Message: fmt.Sprintf(
			"You did not attend, so no points were earned. You now have %d bad points out of %d allowed. Reaching %d bad points within %d days temporarily blocks registration for new volunteering.",
			len(user.BadPoints),
			p.config.InfractionThreshold,
			p.config.InfractionThreshold,
			int(p.config.InfractionWindow.Hours()/24),
		),
		Kind:   models.NotificationWarning,
		Source: organizationName,
	}); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return &MissedResult{BadPoints: len(user.BadPoints), BlockedUntil: user.BlockedUntil}, nil
}

// orgPolicy looks up the city+organization reward cap through a small LRU;
// policies are read-mostly and fetched once per attendance outcome.
func (p *Processor) orgPolicy(ctx context.Context, cityID, organizationID int64) (*models.OrgRewardPolicy, error) {
	key := fmt.Sprintf("%d:%d", cityID, organizationID)
	if cached, ok := p.policyCache.Get(key); ok {
		policy, _ := cached.(*models.OrgRewardPolicy)
		return policy, nil
	}

	policy, err := p.policies.GetByCityAndOrg(ctx, cityID, organizationID)
	if err != nil {
		return nil, err
	}
	p.policyCache.Add(key, policy)
	return policy, nil
}
