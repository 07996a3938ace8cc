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

	JWT   JWTConfig
	Login LoginConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// JWTConfig is the process-wide signing configuration. The secret has no
// default on purpose: it must come from the environment and is never logged.
type JWTConfig struct {
	Secret     string `env:"JWT_SECRET, required"`
	Algorithm  string `env:"JWT_ALGORITHM, default=HS256"`
	TTLMinutes int    `env:"TOKEN_TTL_MINUTES, default=1440"`
}

// TTL returns the token lifetime as a duration.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// LoginConfig tunes the failed-login throttle.
type LoginConfig struct {
	MaxAttempts   int `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	WindowMinutes int `env:"LOGIN_WINDOW_MINUTES, default=15"`
}

// Window returns the throttle window as a duration.
func (c LoginConfig) Window() time.Duration {
	return time.Duration(c.WindowMinutes) * time.Minute
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=commerce"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
