// Package config loads backend configuration from the environment with an
// optional TOML file layered underneath (FILEDECK_CONFIG or
// ~/.config/filedeck.toml). Environment variables win over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/filedeck/filedeck/internal/shared/paths"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Exec      ExecConfig      `toml:"exec"`
	Store     StoreConfig     `toml:"store"`
	Logging   LogConfig       `toml:"logging"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" toml:"port"`
	Host string `envconfig:"HOST" toml:"host"`
}

// ExecConfig holds async operation manager configuration.
//
// Defaults come from Default(), not envconfig tags, so file-provided values
// survive an unset environment.
type ExecConfig struct {
	Workers        int           `envconfig:"EXEC_WORKERS" toml:"workers"`
	QueueSize      int           `envconfig:"EXEC_QUEUE_SIZE" toml:"queue_size"`
	DefaultTimeout time.Duration `envconfig:"EXEC_DEFAULT_TIMEOUT" toml:"default_timeout"`
	EvictionGrace  time.Duration `envconfig:"EXEC_EVICTION_GRACE" toml:"eviction_grace"`
}

// StoreConfig holds bookmark store configuration.
type StoreConfig struct {
	Path string `envconfig:"STORE_PATH" toml:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" toml:"development"`
}

// RateLimitConfig holds HTTP rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" toml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" toml:"enabled"`
}

// Load loads configuration: file values first, then environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	if path := configFilePath(); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = defaultStorePath()
	} else {
		cfg.Store.Path = paths.ExpandHome(cfg.Store.Path)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
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
			Port: "8090",
			Host: "0.0.0.0",
		},
		Exec: ExecConfig{
			Workers:        4,
			QueueSize:      64,
			DefaultTimeout: 30 * time.Second,
			EvictionGrace:  5 * time.Minute,
		},
		Store: StoreConfig{
			Path: defaultStorePath(),
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
	}
}

func (c *Config) validate() error {
	if c.Exec.Workers <= 0 {
		return fmt.Errorf("exec workers must be positive, got %d", c.Exec.Workers)
	}
	if c.Exec.QueueSize <= 0 {
		return fmt.Errorf("exec queue size must be positive, got %d", c.Exec.QueueSize)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func configFilePath() string {
	if path := os.Getenv("FILEDECK_CONFIG"); path != "" {
		return paths.ExpandHome(path)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "filedeck.toml")
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "filedeck_entries.json"
	}
	return filepath.Join(dir, "filedeck_entries.json")
}
