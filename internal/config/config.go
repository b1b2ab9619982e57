// Package config loads repolens configuration from an optional TOML file
// and environment variables. Environment variables always win over file
// values, and the GitHub token is only ever read from the environment so
// it cannot end up in a config file by accident.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Defaults applied when neither file nor environment specify a value.
const (
	DefaultMaxResults  = 30
	DefaultConcurrency = 4
	DefaultCacheTTL    = 24 * time.Hour
	DefaultListenAddr  = ":8080"
)

// Config holds the runtime configuration for both CLI and server.
type Config struct {
	Token       string   `toml:"-"`            // GITHUB_TOKEN only, never from file
	CacheDir    string   `toml:"cache_dir"`    // "" selects ~/.cache/repolens
	CacheTTL    duration `toml:"cache_ttl"`    // response cache time-to-live
	RedisAddr   string   `toml:"redis_addr"`   // optional Redis cache backend
	MaxResults  int      `toml:"max_results"`  // default search result cap
	Concurrency int      `toml:"concurrency"`  // enrichment worker bound
	ListenAddr  string   `toml:"listen_addr"`  // HTTP API bind address
	NoCache     bool     `toml:"-"`            // runtime flag, not persisted
}

// duration wraps time.Duration for TOML decoding of strings like "24h".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Load assembles the configuration: built-in defaults, then the TOML file
// at path (or the default location when path is empty; a missing file is
// fine), then environment overrides. A .env file in the working directory
// is honored before the environment is read.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{
		CacheTTL:    duration{DefaultCacheTTL},
		MaxResults:  DefaultMaxResults,
		Concurrency: DefaultConcurrency,
		ListenAddr:  DefaultListenAddr,
	}

	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, err
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// TTL returns the configured cache time-to-live.
func (c *Config) TTL() time.Duration { return c.CacheTTL.Duration }

func applyEnv(cfg *Config) {
	cfg.Token = os.Getenv("GITHUB_TOKEN")
	if v := os.Getenv("REPOLENS_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("REPOLENS_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REPOLENS_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("REPOLENS_CACHE_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = duration{ttl}
		}
	}
	if v := os.Getenv("REPOLENS_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxResults = n
		}
	}
	if v := os.Getenv("REPOLENS_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Concurrency = n
		}
	}
}

// defaultConfigPath returns the XDG config location for repolens, or ""
// when the home directory cannot be determined.
func defaultConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "repolens", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "repolens", "config.toml")
}
