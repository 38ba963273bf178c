// Package config loads SDK configuration from the environment.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// API holds connection settings for the SnapLink backend.
type API struct {
	BaseURL     string        `envconfig:"BASE_URL" default:"https://api.snaplink.vn"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	PageSize    int           `envconfig:"PAGE_SIZE" default:"10"`
}

// Limits controls caching of the withdrawal policy values.
type Limits struct {
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"10m"`
}

// Token locates the persisted bearer token on disk.
type Token struct {
	Path string `envconfig:"PATH" default:"~/.snaplink/token"`
}

// Log holds logging settings for the CLI.
type Log struct {
	Level string `envconfig:"LEVEL" default:"info"`
}

// Config is the root configuration for the SDK and CLI.
type Config struct {
	API    API    `envconfig:"API"`
	Limits Limits `envconfig:"LIMITS"`
	Token  Token  `envconfig:"TOKEN"`
	Log    Log    `envconfig:"LOG"`
}

// Load reads configuration from a .env file (when present) and the
// process environment, applying defaults for anything unset.
func Load(logger *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment variables")
	} else {
		logger.Info("environment variables loaded from .env file")
	}
	var cfg Config
	if err := envconfig.Process("SNAPLINK", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
