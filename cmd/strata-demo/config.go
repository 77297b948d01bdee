package main

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"
)

// Config is the demo configuration read from STRATA_* environment
// variables. Command-line flags override it.
type Config struct {
	Debug           bool   `envconfig:"DEBUG" default:"false"`
	CheckElevations bool   `envconfig:"CHECK_ELEVATIONS" default:"false"`
	Width           int    `envconfig:"WIDTH" default:"640"`
	Height          int    `envconfig:"HEIGHT" default:"480"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("strata", &cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks the canvas size and returns the parsed log level.
func (c *Config) validate() (slog.Level, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return slog.LevelInfo, fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	}
	return c.Level()
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
