// Package config loads service configuration from the environment and the
// optional scoring policy file.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Fetch     FetchConfig
	Audit     AuditConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// FetchConfig holds remote page retrieval configuration.
type FetchConfig struct {
	TimeoutSeconds int `envconfig:"FETCH_TIMEOUT" default:"30"`
	MaxRetries     int `envconfig:"FETCH_RETRIES" default:"3"`
}

// AuditConfig holds engine and report store configuration.
type AuditConfig struct {
	// PolicyFile optionally points at a YAML or TOML scoring policy.
	PolicyFile string `envconfig:"POLICY_FILE" default:""`
	// MaxReports bounds the in-memory report store.
	MaxReports int `envconfig:"MAX_REPORTS" default:"256"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 30,
			MaxRetries:     3,
		},
		Audit: AuditConfig{
			MaxReports: 256,
		},
	}
}
