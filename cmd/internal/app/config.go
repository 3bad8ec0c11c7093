package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogPretty bool

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// DBMigrate applies the embedded schema migrations at startup.
	// Intended for dev/test; production schema is owned by deployment tooling.
	DBMigrate bool

	// If true:
	// - /readyz returns 503 unless the DB is configured and reachable.
	ReadinessRequireDB bool

	// CORS for the browser frontend that consumes the cookie-based API.
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	CORSMaxAgeSeconds    int
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:  EnvString("AUTHD_HTTP_ADDR", "0.0.0.0:3001"),
		LogLevel:  EnvString("AUTHD_LOG_LEVEL", "info"),
		LogPretty: EnvBool("AUTHD_LOG_PRETTY", false),

		ReadHeaderTimeout: EnvDuration("AUTHD_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("AUTHD_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("AUTHD_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("AUTHD_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("AUTHD_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("AUTHD_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("AUTHD_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("AUTHD_DB_MIN_CONNS", 0),
		DBMigrate:   EnvBool("AUTHD_DB_MIGRATE", false),

		ReadinessRequireDB: EnvBool("AUTHD_READINESS_REQUIRE_DB", false),

		CORSAllowedOrigins:   EnvStringSlice("AUTHD_CORS_ORIGINS", []string{"http://localhost:3000"}),
		CORSAllowCredentials: EnvBool("AUTHD_CORS_ALLOW_CREDENTIALS", true),
		CORSMaxAgeSeconds:    EnvInt("AUTHD_CORS_MAX_AGE_SECONDS", 600),
	}
}
