package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	GRPCPort string `envconfig:"PORT" default:"50051"`
	WebPort  string `envconfig:"WEB_PORT" default:"8080"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"15m"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`

	Storage Storage
}

// Storage selects where the session record lives.
type Storage struct {
	Driver        string `envconfig:"STORAGE_DRIVER" default:"file"`
	Dir           string `envconfig:"STORAGE_DIR" default:".servigest"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"servigest.db"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive")
	}
	switch cfg.Storage.Driver {
	case "memory", "file", "redis", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("config: unsupported STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Driver == "postgres" && cfg.Storage.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is required for the postgres driver")
	}
	return &cfg, nil
}

func (c *Config) Development() bool {
	return c.AppEnv == "development"
}
