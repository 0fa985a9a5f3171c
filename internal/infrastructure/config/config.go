package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AuthConfig holds the token-signing secrets and expiry durations. Both
// secrets are required; the process refuses to start without them.
type AuthConfig struct {
	AccessSecret  string        `env:"AUTH_ACCESS_SECRET,  required"`
	AccessTTL     time.Duration `env:"AUTH_ACCESS_TTL,     default=15m"`
	RefreshSecret string        `env:"AUTH_REFRESH_SECRET, required"`
	RefreshTTL    time.Duration `env:"AUTH_REFRESH_TTL,    default=720h"`

	LoginMaxFailures int `env:"AUTH_LOGIN_MAX_FAILURES, default=5"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=agency_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required values fail fast.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
