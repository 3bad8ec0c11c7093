package session

import (
	"os"
	"time"
)

// Config defines all runtime configuration for the session subsystem.
//
// It controls the session TTL, the reaper cadence, and the per-call store
// timeout. Everything is environment-driven so deployments can tune behavior
// without code changes.
type Config struct {
	// TTL is the fixed lifetime of a session. Sessions never renew;
	// expires_at is written once at creation.
	TTL time.Duration

	// ReapInterval is how often the reaper purges expired rows.
	ReapInterval time.Duration

	// StoreTimeout bounds every store call so a backend outage surfaces as a
	// fast internal error instead of a hung request.
	StoreTimeout time.Duration
}

// DefaultConfig returns the defaults the service ships with.
func DefaultConfig() Config {
	return Config{
		TTL:          24 * time.Hour,
		ReapInterval: time.Hour,
		StoreTimeout: 5 * time.Second,
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Optional (durations must be valid Go duration strings):
//   - AUTHD_SESSION_TTL
//   - AUTHD_REAP_INTERVAL
//   - AUTHD_STORE_TIMEOUT
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("AUTHD_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.TTL = d
	}

	if v := os.Getenv("AUTHD_REAP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.ReapInterval = d
	}

	if v := os.Getenv("AUTHD_STORE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.StoreTimeout = d
	}

	return cfg, nil
}
