// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (Redis, directory, post client) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Bitacora API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Key-Value Session Store (Redis). This is the durable namespace holding
	// the session pair and, by default, the mock user directory.
	RedisURL string `env:"REDIS_URL,required"`

	// Relational Database (PostgreSQL). Optional: when set, the mock user
	// directory is served from Postgres instead of the key-value store.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// SessionSecret signs minted session tokens.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// SimulatedLatency toggles the artificial delays of the simulated auth
	// backend (login ~1000ms, register ~1500ms, profile ~800ms). Disabled
	// in tests, enabled by default to mirror real network behavior.
	SimulatedLatency bool `env:"SIMULATED_LATENCY" envDefault:"true"`

	// Post feed upstream (public read-only demo API).
	PostsBaseURL string `env:"POSTS_BASE_URL" envDefault:"https://jsonplaceholder.typicode.com"`

	// PostsFaultRate is the probability of an injected synthetic failure per
	// outbound post request. The exercise mandates 0.2.
	PostsFaultRate float64 `env:"POSTS_FAULT_RATE" envDefault:"0.2"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.PostsFaultRate < 0 || cfg.PostsFaultRate > 1 {
		return nil, fmt.Errorf("config: POSTS_FAULT_RATE must be within [0, 1], got %f", cfg.PostsFaultRate)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasDatabase reports whether the optional Postgres directory backend is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
