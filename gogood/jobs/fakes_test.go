package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
)

// In-memory repository fakes shared by the job tests.

type fakeCodeRepo struct {
	pending   int
	countErr  error
	expireErr error

	expireCalls int
}

func (r *fakeCodeRepo) Create(context.Context, *models.RedeemCode) error { return nil }

func (r *fakeCodeRepo) CountPendingOlderThan(context.Context, time.Time) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.pending, nil
}

func (r *fakeCodeRepo) ExpirePendingOlderThan(context.Context, time.Time) (int64, error) {
	r.expireCalls++
	if r.expireErr != nil {
		return 0, r.expireErr
	}
	expired := int64(r.pending)
	r.pending = 0
	return expired, nil
}

type fakeVolunteeringRepo struct {
	mu sync.Mutex

	byID      map[int64]*models.Volunteering
	templates []*models.Volunteering
	unsettled []*models.Volunteering

	created []*models.Volunteering
	updates int

	existing     bool
	existsErr    error
	createErr    error
	templatesErr error
}

func newFakeVolunteeringRepo() *fakeVolunteeringRepo {
	return &fakeVolunteeringRepo{byID: make(map[int64]*models.Volunteering)}
}

func (r *fakeVolunteeringRepo) Create(_ context.Context, v *models.Volunteering) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, v)
	return nil
}

func (r *fakeVolunteeringRepo) GetByID(_ context.Context, id int64) (*models.Volunteering, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, errors.New("volunteering not found")
	}
	return v, nil
}

func (r *fakeVolunteeringRepo) Update(_ context.Context, v *models.Volunteering) error {
	r.updates++
	r.byID[v.ID] = v
	return nil
}

func (r *fakeVolunteeringRepo) GetRecurringByWeekday(_ context.Context, weekday int) ([]*models.Volunteering, error) {
	if r.templatesErr != nil {
		return nil, r.templatesErr
	}
	var out []*models.Volunteering
	for _, t := range r.templates {
		if t.RecurringDay != nil && *t.RecurringDay == weekday {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeVolunteeringRepo) ExistsSimilar(context.Context, string, string, time.Time, time.Time) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	return r.existing, nil
}

func (r *fakeVolunteeringRepo) GetClosedWithUnsettledOutcomes(context.Context) ([]*models.Volunteering, error) {
	return r.unsettled, nil
}

type fakePrizeRepo struct {
	tables map[string][]*models.MonthlyPrize
	err    error
}

func (r *fakePrizeRepo) GetByMonth(_ context.Context, year, month int, rankingType string) ([]*models.MonthlyPrize, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.MonthlyPrize
	for _, t := range r.tables[rankingType] {
		if t.Year == year && t.Month == month {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeStatRepo struct {
	mu sync.Mutex

	leaderboards map[string][]*models.MonthlyStat
	err          error

	queries []string
}

func (r *fakeStatRepo) IncrementForUser(context.Context, int64, int, int, int64, int64) error {
	return nil
}

func (r *fakeStatRepo) GetTopByCity(_ context.Context, _ int64, _, _ int, rankingType string, _ int) ([]*models.MonthlyStat, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	r.queries = append(r.queries, rankingType)
	r.mu.Unlock()
	return r.leaderboards[rankingType], nil
}

type fakeUserRepo struct {
	mu sync.Mutex

	users map[int64]*models.User

	coinCredits map[int64]int64
	addCoinsErr error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{
		users:       make(map[int64]*models.User),
		coinCredits: make(map[int64]int64),
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (r *fakeUserRepo) Update(context.Context, *models.User) error            { return nil }
func (r *fakeUserRepo) UpdateProgression(context.Context, *models.User) error { return nil }
func (r *fakeUserRepo) UpdateInfractions(context.Context, *models.User) error { return nil }

func (r *fakeUserRepo) AddCoins(_ context.Context, id int64, amount int64) error {
	if r.addCoinsErr != nil {
		return r.addCoinsErr
	}
	r.mu.Lock()
	r.coinCredits[id] += amount
	r.mu.Unlock()
	return nil
}

type fakeNotificationRepo struct {
	mu   sync.Mutex
	sent []*models.Notification
	err  error
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	r.sent = append(r.sent, n)
	r.mu.Unlock()
	return nil
}

type fakePolicyRepo struct {
	policy *models.OrgRewardPolicy
}

func (r *fakePolicyRepo) GetByCityAndOrg(context.Context, int64, int64) (*models.OrgRewardPolicy, error) {
	return r.policy, nil
}
