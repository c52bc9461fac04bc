package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gogood-app/gogood-backend/gogood"
	"github.com/gogood-app/gogood-backend/gogood/database"
	"github.com/gogood-app/gogood-backend/gogood/logger"
	"github.com/gogood-app/gogood-backend/gogood/migration"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// One-shot import of the legacy Mongoose deployment into Postgres.
func main() {
	slog.SetDefault(slog.New(logger.NewHandler()))

	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := gogood.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		slog.Error("Failed to connect to Postgres", slog.Any("error", err))
		os.Exit(-1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.Any("error", err))
		os.Exit(-1)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		slog.Error("Failed to connect to legacy Mongo", slog.Any("error", err))
		os.Exit(-1)
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	migrator := migration.NewMigrator(db.BunDB(), client.Database(cfg.Mongo.Database))
	if err := migrator.MigrateAll(ctx); err != nil {
		slog.Error("Migration failed", slog.Any("error", err))
		os.Exit(-1)
	}

	slog.Info("Migration completed successfully")
}
