package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv        string `env:"APP_ENV" default:"development"`
	Port          string `env:"PORT" default:"8080"`
	DataSourceURL string `env:"DATA_SOURCE_URL"`
	LogLevel      string `env:"LOG_LEVEL" default:"info"`
	LogFormat     string `env:"LOG_FORMAT" default:"text"`

	// RefreshInterval drives the background refetch ticker; zero disables it.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" default:"5m"`
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT" default:"15s"`

	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" default:"10"`
	MaxPageSize     int `env:"MAX_PAGE_SIZE" default:"100"`

	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND" default:"20"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" default:"40"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DataSourceURL == "" {
		return fmt.Errorf("DATA_SOURCE_URL is required")
	}
	u, err := url.Parse(cfg.DataSourceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("DATA_SOURCE_URL must be an absolute URL, got %q", cfg.DataSourceURL)
	}

	if cfg.DefaultPageSize < 1 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be positive, got %d", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		return fmt.Errorf("MAX_PAGE_SIZE must be >= DEFAULT_PAGE_SIZE, got %d < %d", cfg.MaxPageSize, cfg.DefaultPageSize)
	}

	if cfg.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", cfg.FetchTimeout)
	}
	if cfg.RefreshInterval < 0 {
		return fmt.Errorf("REFRESH_INTERVAL must not be negative, got %s", cfg.RefreshInterval)
	}

	if cfg.RateLimitPerSecond <= 0 || cfg.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit settings must be positive")
	}

	return nil
}
