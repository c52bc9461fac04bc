package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	// Retry the initial reachability check; cold starts of the database
	// container routinely lose the first dial.
	var conn net.Conn
	var err error

	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
	for i := 0; i < defaultMaxRetries; i++ {
		conn, err = net.DialTimeout("tcp", addr, defaultConnTimeout)
		if err == nil {
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}
	defer conn.Close()

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &DB{pool: pool, bunDB: newBunDB(pool)}, nil
}

func buildConnString(cfg DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func newBunDB(pool *pgxpool.Pool) *bun.DB {
	sslMode := os.Getenv("PG_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pool.Config().ConnConfig.User,
		pool.Config().ConnConfig.Password,
		pool.Config().ConnConfig.Host,
		pool.Config().ConnConfig.Port,
		pool.Config().ConnConfig.Database,
		sslMode,
	)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) GetPool() *pgxpool.Pool {
	return db.pool
}

// InitializeSchema creates all required database tables and indexes
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Volunteering)(nil),
		(*models.MonthlyStat)(nil),
		(*models.MonthlyPrize)(nil),
		(*models.RedeemCode)(nil),
		(*models.Notification)(nil),
		(*models.OrgRewardPolicy)(nil),
	}

	for _, model := range tables {
		_, err := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		// One stat row per user per month; the additive upsert depends on this.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_monthly_stats_user_month ON monthly_stats(user_id, year, month);",
		"CREATE INDEX IF NOT EXISTS idx_monthly_stats_city_minutes ON monthly_stats(city_id, year, month, total_minutes DESC);",
		"CREATE INDEX IF NOT EXISTS idx_monthly_stats_city_count ON monthly_stats(city_id, year, month, total_volunteering_count DESC);",
		"CREATE INDEX IF NOT EXISTS idx_monthly_prizes_month_type ON monthly_prizes(year, month, ranking_type);",
		"CREATE INDEX IF NOT EXISTS idx_redeem_codes_pending ON redeem_codes(created_at) WHERE status = 'pending';",
		"CREATE INDEX IF NOT EXISTS idx_volunteerings_recurring ON volunteerings(recurring_day) WHERE is_recurring = true;",
		"CREATE INDEX IF NOT EXISTS idx_volunteerings_title_address ON volunteerings(title, address, date);",
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_org_policies_city_org ON org_reward_policies(city_id, organization_id);",
	}

	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// ExecWithLog runs raw SQL through the pool and logs failures
func (db *DB) ExecWithLog(ctx context.Context, query string, args ...interface{}) (interface{}, error) {
	start := time.Now()
	tag, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		slog.Error("Raw exec failed",
			slog.String("type", "db"),
			slog.String("query", query),
			slog.Duration("took", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, err
	}
	return tag, nil
}

func (db *DB) Close() {
	if db.bunDB != nil {
		_ = db.bunDB.Close()
	}
	if db.pool != nil {
		db.pool.Close()
	}
}
