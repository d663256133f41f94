package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/vk/chainforge/internal/model"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths []string // .hcl / .yaml files or directories

	LogFormat       string
	LogLevel        string
	HealthcheckPort int // 0 disables the HTTP server

	Watch         bool
	WatchDebounce time.Duration

	ExclusionPolicy string // warn, ignore or fail
	OutputFormat    string // text or json
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ConfigPaths) == 0 {
		return nil, errors.New("at least one config path is required")
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "text"
	}
	if cfg.OutputFormat != "text" && cfg.OutputFormat != "json" {
		return nil, fmt.Errorf("invalid output format %q: must be 'text' or 'json'", cfg.OutputFormat)
	}

	if _, err := model.ParseExclusionPolicy(cfg.ExclusionPolicy); err != nil {
		return nil, err
	}

	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = 500 * time.Millisecond
	}

	return &cfg, nil
}

// exclusionPolicy returns the parsed policy. NewConfig has already validated it.
func (c *Config) exclusionPolicy() model.ExclusionPolicy {
	p, _ := model.ParseExclusionPolicy(c.ExclusionPolicy)
	return p
}
