// Package authapi is the HTTP transport for authd's auth service.
//
// It maps requests to core operations and cookies to opaque tokens; all
// lifecycle decisions live in cmd/internal/auth/session.
package authapi

import (
	"os"
	"strconv"
	"strings"
)

// Config controls transport behavior and cookie security defaults.
type Config struct {
	// CookieName is the session cookie. The default matches what existing
	// clients already send.
	CookieName   string
	CookiePath   string
	CookieDomain string

	// CookieSecure must be on in production; it is a config switch so local
	// development over plain HTTP keeps working.
	CookieSecure bool

	MaxBodyBytes int64
}

// LoadConfigFromEnv loads transport config from environment variables with
// safe defaults.
func LoadConfigFromEnv() Config {
	cfg := Config{
		CookieName:   envString("AUTHD_COOKIE_NAME", "sessionId"),
		CookiePath:   envString("AUTHD_COOKIE_PATH", "/"),
		CookieDomain: envString("AUTHD_COOKIE_DOMAIN", ""),
		CookieSecure: envBool("AUTHD_COOKIE_SECURE", false),
		MaxBodyBytes: envInt64("AUTHD_MAX_BODY_BYTES", 1<<20), // 1 MiB
	}

	if cfg.CookieName == "" {
		cfg.CookieName = "sessionId"
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = "/"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	return cfg
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
