// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first when present, which keeps development setups short.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (storage, API client) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends for the persisted browser state.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// # Configuration Schema

// Config holds all runtime configuration for the KryptoTracker web frontend.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Remote KryptoTracker API
	APIBaseURL        string        `env:"API_BASE_URL,required"`
	APITimeout        time.Duration `env:"API_TIMEOUT"          envDefault:"45s"`
	APIRateLimitRPS   float64       `env:"API_RATE_LIMIT_RPS"   envDefault:"10"`
	APIRateLimitBurst int           `env:"API_RATE_LIMIT_BURST" envDefault:"20"`

	// Browser sessions
	SessionSecret       string        `env:"SESSION_SECRET,required"`
	SessionCookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	SessionIdleTTL      time.Duration `env:"SESSION_IDLE_TTL"      envDefault:"30m"`
	NotificationTTL     time.Duration `env:"NOTIFICATION_TTL"      envDefault:"2500ms"`

	// VerifyToken re-checks the token against the backend on protected pages.
	VerifyToken bool `env:"VERIFY_TOKEN" envDefault:"false"`

	// Persisted browser state (the ACCESS_TOKEN record)
	StorageBackend string        `env:"STORAGE_BACKEND" envDefault:"memory"`
	StorageTTL     time.Duration `env:"STORAGE_TTL"     envDefault:"24h"`

	// Response cache for backend GET calls
	CacheBackend string `env:"CACHE_BACKEND" envDefault:"memory"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath overrides the embedded SQL migrations with a directory.
	MigrationPath string `env:"MIGRATION_PATH"`

	// SQLitePath is the database file used by the sqlite storage backend.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/kryptotracker-web.db"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is not an error: production uses real variables.
	_ = godotenv.Load()

	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks cross-field requirements that struct tags cannot express.
func (c *Config) validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendSQLite:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required for storage backend %q", c.StorageBackend)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for storage backend %q", c.StorageBackend)
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	switch c.CacheBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required for cache backend %q", c.CacheBackend)
		}
	default:
		return fmt.Errorf("config: unknown CACHE_BACKEND %q", c.CacheBackend)
	}

	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("config: SESSION_SECRET must be at least 32 bytes")
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// UsesRedis reports whether any component needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.StorageBackend == BackendRedis || c.CacheBackend == BackendRedis
}

// AllowedOrigins returns the comma-separated EXTRA_ORIGINS as a slice.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
