package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.False(t, cfg.CheckElevations)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STRATA_DEBUG", "true")
	t.Setenv("STRATA_CHECK_ELEVATIONS", "true")
	t.Setenv("STRATA_WIDTH", "320")
	t.Setenv("STRATA_HEIGHT", "200")
	t.Setenv("STRATA_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.True(t, cfg.CheckElevations)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Run("size", func(t *testing.T) {
		t.Setenv("STRATA_WIDTH", "0")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
	t.Run("level", func(t *testing.T) {
		t.Setenv("STRATA_LOG_LEVEL", "loud")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
	t.Run("parse", func(t *testing.T) {
		t.Setenv("STRATA_HEIGHT", "tall")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestValidateReturnsLevel(t *testing.T) {
	cfg := &Config{Width: 10, Height: 10, LogLevel: "warn"}
	level, err := cfg.validate()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	// A level overridden after loading is still checked.
	cfg.LogLevel = "loud"
	_, err = cfg.validate()
	assert.ErrorContains(t, err, `invalid log level "loud"`)

	cfg = &Config{Width: 0, Height: 10, LogLevel: "info"}
	_, err = cfg.validate()
	assert.ErrorContains(t, err, "invalid canvas size")
}
