package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/gogood-app/gogood-backend/gogood/database/repositories"
	"golang.org/x/sync/errgroup"
)

const leaderboardSize = 10

// PrizeJob distributes the configured monthly prizes for the previous
// calendar month: per city and ranking type, the top ten of the monthly
// leaderboard are matched against the ten prize slots of that city's table.
type PrizeJob struct {
	prizes        repositories.MonthlyPrizeRepository
	stats         repositories.MonthlyStatRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
}

func NewPrizeJob(
	prizes repositories.MonthlyPrizeRepository,
	stats repositories.MonthlyStatRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
) *PrizeJob {
	return &PrizeJob{prizes: prizes, stats: stats, users: users, notifications: notifications}
}

// Run distributes prizes for the month preceding now. Data sparsity (fewer
// ranked users than prize slots) is logged and skipped; a failing leaderboard
// or prize-table query aborts the run so the scheduler sees a failed job.
func (j *PrizeJob) Run(ctx context.Context, now time.Time) error {
	year, month := previousMonth(now)

	slog.Info("Starting monthly prize distribution",
		slog.String("type", "job"),
		slog.String("job", "monthly-prizes"),
		slog.Int("year", year),
		slog.Int("month", month))

	g, ctx := errgroup.WithContext(ctx)
	for _, rankingType := range []string{models.RankingByMinutes, models.RankingByCount} {
		rankingType := rankingType
		g.Go(func() error {
			return j.distribute(ctx, year, month, rankingType)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("Monthly prize distribution finished",
		slog.String("type", "job"),
		slog.String("job", "monthly-prizes"))
	return nil
}

// previousMonth computes the target (year, month), rolling January back to
// December of the previous year.
func previousMonth(now time.Time) (int, int) {
	if now.Month() == time.January {
		return now.Year() - 1, int(time.December)
	}
	return now.Year(), int(now.Month()) - 1
}

func (j *PrizeJob) distribute(ctx context.Context, year, month int, rankingType string) error {
	tables, err := j.prizes.GetByMonth(ctx, year, month, rankingType)
	if err != nil {
		return fmt.Errorf("failed to load prize tables for %d-%02d/%s: %w", year, month, rankingType, err)
	}

	for _, table := range tables {
		slog.Info("Distributing city prizes",
			slog.String("type", "job"),
			slog.String("job", "monthly-prizes"),
			slog.Int64("city_id", table.CityID),
			slog.String("ranking_type", rankingType),
			slog.Int("slots", len(table.Prizes)))

		leaderboard, err := j.stats.GetTopByCity(ctx, table.CityID, year, month, rankingType, leaderboardSize)
		if err != nil {
			// The working-set query failing is systemic, not data sparsity.
			return fmt.Errorf("failed to load leaderboard for city %d: %w", table.CityID, err)
		}

		for _, prize := range table.Prizes {
			j.awardSlot(ctx, leaderboard, prize, rankingType)
		}
	}
	return nil
}

func (j *PrizeJob) awardSlot(ctx context.Context, leaderboard []*models.MonthlyStat, prize models.Prize, rankingType string) {
	rank := prize.Place - 1
	if rank < 0 || rank >= len(leaderboard) {
		slog.Info("No participant at prize rank, skipping slot",
			slog.String("type", "job"),
			slog.String("job", "monthly-prizes"),
			slog.Int("place", prize.Place))
		return
	}
	stat := leaderboard[rank]

	user, err := j.users.GetByID(ctx, stat.UserID)
	if err != nil {
		slog.Error("Failed to resolve prize winner, skipping slot",
			slog.String("type", "job"),
			slog.String("job", "monthly-prizes"),
			slog.Int64("user_id", stat.UserID),
			slog.Int("place", prize.Place),
			slog.String("error", err.Error()))
		return
	}

	if prize.Kind == models.PrizeKindCoins {
		if err := j.users.AddCoins(ctx, user.ID, prize.Value); err != nil {
			slog.Error("Failed to credit prize coins",
				slog.String("type", "job"),
				slog.String("job", "monthly-prizes"),
				slog.Int64("user_id", user.ID),
				slog.Int64("coins", prize.Value),
				slog.String("error", err.Error()))
		} else {
			slog.Info("Prize coins credited",
				slog.String("type", "job"),
				slog.String("job", "monthly-prizes"),
				slog.Int64("user_id", user.ID),
				slog.Int("place", prize.Place),
				slog.Int64("coins", prize.Value))
		}
	}

	// The notification goes out regardless of whether the credit succeeded.
	ranking := "volunteering time"
	if rankingType == models.RankingByCount {
		ranking = "number of volunteerings"
	}
	won := "a special prize"
	if prize.Kind == models.PrizeKindCoins {
		won = fmt.Sprintf("%d GoGs", prize.Value)
	}
	if err := j.notifications.Create(ctx, &models.Notification{
		UserID:  user.ID,
		Title:   "You won a monthly prize!",
		Message: fmt.Sprintf("You ranked place %d by %s and won %s!", prize.Place, ranking, won),
		Kind:    models.NotificationSuccess,
		Source:  "Monthly leaderboard",
	}); err != nil {
		slog.Warn("Failed to send prize notification",
			slog.String("type", "job"),
			slog.String("job", "monthly-prizes"),
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
	}
}
