// Package config loads non-secret defaults from an optional YAML file with
// environment-variable overrides (spec §4.7), mirroring the reference
// codebase's file-then-env precedence. The broker's three credentials are
// environment-only and never read from the file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the orchestrator's non-secret configuration.
type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Quote struct {
		BaseURL           string        `yaml:"base_url"`
		Timeout           time.Duration `yaml:"timeout"`
		RequestsPerSecond int           `yaml:"requests_per_second"`
		MaxRetries        uint64        `yaml:"max_retries"`
	} `yaml:"quote"`
	DefaultHorizon int    `yaml:"default_horizon"`
	WatchCron      string `yaml:"watch_cron"`
}

// Credentials are the broker adapter's three opaque secrets. They are never
// read from the config file (spec §4.7) so they can't be accidentally
// committed to a checked-in config.
type Credentials struct {
	TigerID    string
	PrivateKey string
	Account    string
}

// Load reads config from a YAML file (if it exists), applies environment
// variable overrides, and fills in built-in defaults. path may be empty, in
// which case only env vars and defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if v := os.Getenv("COACH_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("COACH_QUOTE_BASE_URL"); v != "" {
		cfg.Quote.BaseURL = v
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "coach.db"
	}
	if cfg.Quote.BaseURL == "" {
		cfg.Quote.BaseURL = "https://quote.example.com"
	}
	if cfg.Quote.Timeout == 0 {
		cfg.Quote.Timeout = 30 * time.Second
	}
	if cfg.Quote.RequestsPerSecond == 0 {
		cfg.Quote.RequestsPerSecond = 3
	}
	if cfg.Quote.MaxRetries == 0 {
		cfg.Quote.MaxRetries = 2
	}
	if cfg.DefaultHorizon == 0 {
		cfg.DefaultHorizon = 30
	}
	if cfg.WatchCron == "" {
		cfg.WatchCron = "0 5 16 * * 1-5" // shortly after the US close, weekdays
	}

	return cfg, nil
}

// LoadCredentials reads the broker adapter's three credentials from the
// environment. All three are required for the live source; callers using
// only the mock source may ignore a returned error.
func LoadCredentials() (*Credentials, error) {
	c := &Credentials{
		TigerID:    os.Getenv("TIGER_ID"),
		PrivateKey: os.Getenv("PRIVATE_KEY_PK1"),
		Account:    os.Getenv("ACCOUNT"),
	}
	if c.TigerID == "" || c.PrivateKey == "" || c.Account == "" {
		return c, fmt.Errorf("missing broker credentials: TIGER_ID, PRIVATE_KEY_PK1, and ACCOUNT must all be set")
	}
	return c, nil
}
