package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogood-app/gogood-backend/gogood"
	"github.com/gogood-app/gogood-backend/gogood/database"
	"github.com/gogood-app/gogood-backend/gogood/database/repositories"
	"github.com/gogood-app/gogood-backend/gogood/engagement"
	"github.com/gogood-app/gogood-backend/gogood/jobs"
	"github.com/gogood-app/gogood-backend/gogood/logger"
	"github.com/gogood-app/gogood-backend/gogood/progression"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting GoGood engagement worker",
		slog.String("version", version),
		slog.String("commit", commit))

	runNow := flag.Bool("run-jobs-now", false, "Run all scheduled jobs once at startup")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := gogood.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	dbStartTime := time.Now()
	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()))
		os.Exit(-1)
	}
	slog.Info("Database ready",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	bunDB := db.BunDB()
	userRepo := repositories.NewUserRepository(bunDB)
	volunteeringRepo := repositories.NewVolunteeringRepository(bunDB)
	statRepo := repositories.NewMonthlyStatRepository(bunDB)
	prizeRepo := repositories.NewMonthlyPrizeRepository(bunDB)
	codeRepo := repositories.NewRedeemCodeRepository(bunDB)
	notificationRepo := repositories.NewNotificationRepository(bunDB)
	policyRepo := repositories.NewOrgRewardPolicyRepository(bunDB)

	calc := progression.NewCalculator(progression.NewDefaultConfig())
	processor := engagement.NewProcessor(
		userRepo,
		volunteeringRepo,
		statRepo,
		notificationRepo,
		policyRepo,
		calc,
		engagement.LinearExpConverter{ExpPerHour: int64(cfg.Engine.ExpPerHour)},
		&engagement.Config{
			InfractionThreshold: cfg.Engine.InfractionThreshold,
			InfractionWindow:    time.Duration(cfg.Engine.InfractionWindowDays) * 24 * time.Hour,
			BlockDuration:       time.Duration(cfg.Engine.BlockDurationDays) * 24 * time.Hour,
		},
	)

	scheduler := jobs.NewScheduler(
		jobs.NewExpiryJob(codeRepo, time.Duration(cfg.Jobs.RedeemCodeTTLDays)*24*time.Hour),
		jobs.NewRecurringJob(volunteeringRepo, cfg.Jobs.MaterializeAheadDays),
		jobs.NewPrizeJob(prizeRepo, statRepo, userRepo, notificationRepo),
		jobs.NewSettlementJob(volunteeringRepo, processor),
		cfg.Jobs.DailyHour,
	)
	scheduler.Start()
	defer scheduler.Shutdown()

	if *runNow {
		slog.Info("Running all scheduled jobs immediately")
		scheduler.RunOnce()
	}

	logger.LogSystem("Worker is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down worker...")
}
