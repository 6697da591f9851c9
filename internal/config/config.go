// Package config loads server configuration from a TOML file with
// environment-variable overrides. A .env file, when present, is loaded
// first so local development doesn't need exported variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port      int    `toml:"port"`
	AuthToken string `toml:"auth_token"`
}

type DatabaseConfig struct {
	// Path is the SQLite database file. Empty selects the in-memory
	// stores, which don't survive a restart.
	Path string `toml:"path"`
}

type HabiticaConfig struct {
	BaseURL string `toml:"base_url"`
	UserID  string `toml:"user_id"`
	APIKey  string `toml:"api_key"`
}

type SyncConfig struct {
	// Interval between background provider syncs, in Go duration syntax
	// ("30m", "1h"). Empty or zero disables the background worker.
	Interval string `toml:"interval"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Habitica HabiticaConfig `toml:"habitica"`
	Sync     SyncConfig     `toml:"sync"`
}

// SyncInterval parses the configured interval; empty means disabled.
func (c *Config) SyncInterval() (time.Duration, error) {
	if c.Sync.Interval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Sync.Interval)
	if err != nil {
		return 0, fmt.Errorf("parsing sync interval %q: %w", c.Sync.Interval, err)
	}
	return d, nil
}

// Load reads the config file at path (optional) and applies environment
// overrides on top.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{Port: 8080},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %q: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			cfg.Server.Port = v
		}
	}
	if t := os.Getenv("AUTH_TOKEN"); t != "" {
		cfg.Server.AuthToken = t
	}
	if d := os.Getenv("DATABASE_PATH"); d != "" {
		cfg.Database.Path = d
	}
	if u := os.Getenv("HABITICA_USER_ID"); u != "" {
		cfg.Habitica.UserID = u
	}
	if k := os.Getenv("HABITICA_API_KEY"); k != "" {
		cfg.Habitica.APIKey = k
	}
	if b := os.Getenv("HABITICA_BASE_URL"); b != "" {
		cfg.Habitica.BaseURL = b
	}
	if s := os.Getenv("SYNC_INTERVAL"); s != "" {
		cfg.Sync.Interval = s
	}
}
