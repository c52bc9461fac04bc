package jobs

import (
	"context"
	"time"

	"github.com/gogood-app/gogood-backend/gogood/logger"
)

const jobTimeout = 30 * time.Minute

// Scheduler fires the daily jobs (redeem-code expiry, recurring
// materialization) at the configured hour and the prize distribution at that
// hour on the first of each month. Jobs never coordinate with each other;
// overlap safety comes from their idempotency, not from locks.
type Scheduler struct {
	expiry     *ExpiryJob
	recurring  *RecurringJob
	prizes     *PrizeJob
	settlement *SettlementJob

	dailyHour int
	shutdown  chan struct{}
}

func NewScheduler(expiry *ExpiryJob, recurring *RecurringJob, prizes *PrizeJob, settlement *SettlementJob, dailyHour int) *Scheduler {
	return &Scheduler{
		expiry:     expiry,
		recurring:  recurring,
		prizes:     prizes,
		settlement: settlement,
		dailyHour:  dailyHour,
		shutdown:   make(chan struct{}),
	}
}

// Start launches the timer loops.
func (s *Scheduler) Start() {
	go s.loop(nextDaily, s.runDaily)
	go s.loop(nextMonthly, s.runMonthly)
}

func (s *Scheduler) loop(next func(time.Time, int) time.Time, run func()) {
	for {
		timer := time.NewTimer(time.Until(next(time.Now(), s.dailyHour)))
		select {
		case <-timer.C:
			run()
		case <-s.shutdown:
			timer.Stop()
			return
		}
	}
}

func (s *Scheduler) runDaily() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	now := time.Now()

	start := time.Now()
	_, err := s.expiry.RunDefault(ctx, now)
	logger.LogJob("redeem-code-expiry", time.Since(start), err)

	start = time.Now()
	_, err = s.recurring.Run(ctx, now)
	logger.LogJob("recurring-materializer", time.Since(start), err)

	start = time.Now()
	_, err = s.settlement.Run(ctx)
	logger.LogJob("outcome-settlement", time.Since(start), err)
}

func (s *Scheduler) runMonthly() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	err := s.prizes.Run(ctx, time.Now())
	logger.LogJob("monthly-prizes", time.Since(start), err)
}

// RunOnce fires every job immediately, outside the timer cadence.
func (s *Scheduler) RunOnce() {
	s.runDaily()
	s.runMonthly()
}

// nextDaily returns the next occurrence of the configured hour.
func nextDaily(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// nextMonthly returns the configured hour on the next first of the month.
func nextMonthly(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), 1, hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 1, 0)
	}
	return next
}

// Shutdown stops both timer loops.
func (s *Scheduler) Shutdown() {
	close(s.shutdown)
	logger.LogSystem("Job scheduler shutdown completed")
}
