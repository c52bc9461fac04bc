package gogood

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns a config with the production engine defaults; TOML
// decoding overlays whatever the file sets.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			InfractionThreshold:  3,
			InfractionWindowDays: 180,
			BlockDurationDays:    14,
			ExpPerHour:           10,
		},
		Jobs: JobsConfig{
			DailyHour:            3,
			RedeemCodeTTLDays:    30,
			MaterializeAheadDays: 7,
		},
	}
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	DB     DBConfig     `toml:"db"`
	Engine EngineConfig `toml:"engine"`
	Jobs   JobsConfig   `toml:"jobs"`
	Mongo  MongoConfig  `toml:"mongo"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type EngineConfig struct {
	InfractionThreshold  int `toml:"infraction_threshold"`
	InfractionWindowDays int `toml:"infraction_window_days"`
	BlockDurationDays    int `toml:"block_duration_days"`
	ExpPerHour           int `toml:"exp_per_hour"`
}

type JobsConfig struct {
	DailyHour            int `toml:"daily_hour"`
	RedeemCodeTTLDays    int `toml:"redeem_code_ttl_days"`
	MaterializeAheadDays int `toml:"materialize_ahead_days"`
}

// MongoConfig points at the legacy Mongoose deployment, used only by the
// one-shot importer under cmd/migrate.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}
