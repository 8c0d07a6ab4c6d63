package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/intel-watch/internal/core/errors"
)

const (
	testEnvLogDir = "LOG_DIR"
	testLogDir    = "/tmp/chatlogs"
)

func TestLoad_WithoutLogDir(t *testing.T) {
	t.Setenv(testEnvLogDir, "")
	os.Unsetenv(testEnvLogDir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, errors.Is(cfg.RequireLogDir(), errors.ErrInvalidInput))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(testEnvLogDir, testLogDir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testLogDir, cfg.LogDir)
	require.NoError(t, cfg.RequireLogDir())
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 24*time.Hour, cfg.FileRetention)
	assert.Equal(t, 2, cfg.ClearLookbackDepth)
	assert.Equal(t, 20*time.Minute, cfg.MessageTTL)
	assert.Equal(t, 10*time.Second, cfg.KOSDebounce)
	assert.Equal(t, []string{"Local", "Lokal", "Локальный"}, cfg.LocalRooms)
	assert.Zero(t, cfg.HealthPort)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(testEnvLogDir, testLogDir)
	t.Setenv("INTEL_ROOMS", "delve.imperium,querious.imperium")
	t.Setenv("CLEAR_LOOKBACK_DEPTH", "4")
	t.Setenv("KOS_ENABLED", "false")
	t.Setenv("HEALTH_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"delve.imperium", "querious.imperium"}, cfg.IntelRooms)
	assert.Equal(t, 4, cfg.ClearLookbackDepth)
	assert.False(t, cfg.KOSEnabled)
	assert.Equal(t, 9090, cfg.HealthPort)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			LogDir:             testLogDir,
			PollInterval:       time.Second,
			FileRetention:      time.Hour,
			ClearLookbackDepth: 2,
			MessageTTL:         time.Minute,
			KOSEnabled:         true,
			KOSRPS:             1,
			KOSTimeout:         time.Second,
			KOSQueueSize:       1,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "valid", mutate: func(*Config) {}, ok: true},
		{name: "tight poll", mutate: func(c *Config) { c.PollInterval = time.Millisecond }},
		{name: "negative depth", mutate: func(c *Config) { c.ClearLookbackDepth = -1 }},
		{name: "zero depth", mutate: func(c *Config) { c.ClearLookbackDepth = 0 }},
		{name: "depth of one", mutate: func(c *Config) { c.ClearLookbackDepth = 1 }, ok: true},
		{name: "zero ttl", mutate: func(c *Config) { c.MessageTTL = 0 }},
		{name: "bad port", mutate: func(c *Config) { c.HealthPort = 70000 }},
		{name: "zero kos rps", mutate: func(c *Config) { c.KOSRPS = 0 }},
		{name: "kos disabled ignores kos fields", mutate: func(c *Config) {
			c.KOSEnabled = false
			c.KOSRPS = 0
		}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}

			assert.True(t, errors.Is(err, errors.ErrInvalidInput))
		})
	}
}
