// Package config loads the process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/lueurxax/intel-watch/internal/core/errors"
)

const (
	minPollInterval = 50 * time.Millisecond
	maxHealthPort   = 65535
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"local"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Chat logs
	LogDir        string        `env:"LOG_DIR"`
	IntelRooms    []string      `env:"INTEL_ROOMS" envSeparator:","`
	LocalRooms    []string      `env:"LOCAL_ROOMS" envSeparator:"," envDefault:"Local,Lokal,Локальный"`
	RegionFile    string        `env:"REGION_FILE"`
	PollInterval  time.Duration `env:"POLL_INTERVAL" envDefault:"500ms"`
	FileRetention time.Duration `env:"FILE_RETENTION" envDefault:"24h"`

	// Intel state
	ClearLookbackDepth int           `env:"CLEAR_LOOKBACK_DEPTH" envDefault:"2"`
	MessageTTL         time.Duration `env:"MESSAGE_TTL" envDefault:"20m"`

	// Cache
	CachePath string `env:"CACHE_PATH" envDefault:"./intel-watch.db"`

	// KOS checks
	KOSEnabled     bool          `env:"KOS_ENABLED" envDefault:"true"`
	KOSRosterURL   string        `env:"KOS_ROSTER_URL" envDefault:"http://kos.cva-eve.org/api/"`
	KOSIdentityURL string        `env:"KOS_IDENTITY_URL" envDefault:"https://esi.evetech.net/latest"`
	KOSRPS         float64       `env:"KOS_RPS" envDefault:"2"`
	KOSTimeout     time.Duration `env:"KOS_TIMEOUT" envDefault:"20s"`
	KOSDebounce    time.Duration `env:"KOS_DEBOUNCE" envDefault:"10s"`
	KOSQueueSize   int           `env:"KOS_QUEUE_SIZE" envDefault:"16"`

	// HealthPort 0 disables the health server.
	HealthPort int `env:"HEALTH_PORT" envDefault:"0"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RequireLogDir reports an error when no chat-log directory is configured.
// Only the watch mode needs one.
func (c *Config) RequireLogDir() error {
	if c.LogDir == "" {
		return fmt.Errorf("LOG_DIR is required: %w", errors.ErrInvalidInput)
	}

	return nil
}

// Validate rejects values the watcher cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.PollInterval < minPollInterval:
		return fmt.Errorf("POLL_INTERVAL %s below %s: %w", c.PollInterval, minPollInterval, errors.ErrInvalidInput)
	case c.FileRetention <= 0:
		return fmt.Errorf("FILE_RETENTION must be positive: %w", errors.ErrInvalidInput)
	case c.ClearLookbackDepth < 1:
		return fmt.Errorf("CLEAR_LOOKBACK_DEPTH must be at least 1: %w", errors.ErrInvalidInput)
	case c.MessageTTL <= 0:
		return fmt.Errorf("MESSAGE_TTL must be positive: %w", errors.ErrInvalidInput)
	case c.HealthPort < 0 || c.HealthPort > maxHealthPort:
		return fmt.Errorf("HEALTH_PORT %d out of range: %w", c.HealthPort, errors.ErrInvalidInput)
	}

	if c.KOSEnabled {
		switch {
		case c.KOSRPS <= 0:
			return fmt.Errorf("KOS_RPS must be positive: %w", errors.ErrInvalidInput)
		case c.KOSTimeout <= 0:
			return fmt.Errorf("KOS_TIMEOUT must be positive: %w", errors.ErrInvalidInput)
		case c.KOSQueueSize <= 0:
			return fmt.Errorf("KOS_QUEUE_SIZE must be positive: %w", errors.ErrInvalidInput)
		}
	}

	return nil
}
