// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Table    TableConfig
	Session  SessionConfig
	Cache    CacheConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Locale   LocaleConfig
	Accounts AccountsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. When empty the lists are
	// served from the embedded fixtures.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 20)
	MaxConns int `env:"DB_MAX_CONNS" default:"20"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// Enabled reports whether a database is configured.
func (c *DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// TableConfig holds limits applied to every list.
type TableConfig struct {
	// MaxItemsPerPage caps the per_page a request may ask for (default: 100)
	MaxItemsPerPage int `env:"TABLE_MAX_ITEMS_PER_PAGE" default:"100"`

	// ActionTimeout is the maximum duration of one row action (default: 30s)
	ActionTimeout time.Duration `env:"TABLE_ACTION_TIMEOUT" default:"30s"`

	// MaxConcurrentActions caps row actions running at once (default: 8)
	MaxConcurrentActions int `env:"TABLE_MAX_CONCURRENT_ACTIONS" default:"8"`

	// ActionQueueWait is how long an action waits for a free slot (default: 5s)
	ActionQueueWait time.Duration `env:"TABLE_ACTION_QUEUE_WAIT" default:"5s"`

	// AuditLog records every row action in the backend (default: true)
	AuditLog bool `env:"TABLE_AUDIT_LOG" default:"true"`
}

// SessionConfig holds settings for the per-browser table state.
type SessionConfig struct {
	// CookieName is the name of the session cookie (default: storefront_session)
	CookieName string `env:"SESSION_COOKIE_NAME" default:"storefront_session"`

	// MaxSessions is the number of sessions kept in memory (default: 10000)
	MaxSessions int `env:"SESSION_MAX" default:"10000"`

	// TTL is how long an idle session keeps its table state (default: 12h)
	TTL time.Duration `env:"SESSION_TTL" default:"12h"`

	// Secure marks the cookie Secure; enable behind HTTPS (default: false)
	Secure bool `env:"SESSION_SECURE" default:"false"`
}

// CacheConfig holds settings for the document cache in front of Postgres.
type CacheConfig struct {
	// Enabled controls whether list reads are cached (default: true)
	Enabled bool `env:"CACHE_ENABLED" default:"true"`

	// Size is the number of document kinds kept (default: 64)
	Size int `env:"CACHE_SIZE" default:"64"`

	// TTL is how long cached documents are served (default: 30s)
	TTL time.Duration `env:"CACHE_TTL" default:"30s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// ActionLimit is requests per minute for row actions (default: 30)
	ActionLimit int `env:"RATE_LIMIT_ACTIONS" default:"30"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey protects the mutating API routes (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// LocaleConfig holds localization settings.
type LocaleConfig struct {
	// Default is the locale used when the request names none: en or ar (default: en)
	Default string `env:"LOCALE_DEFAULT" default:"en"`
}

// AccountsConfig names the accounts whose records the seller and customer
// portals show.
type AccountsConfig struct {
	// Seller is the seller account of the seller portal (default: S-100)
	Seller string `env:"SELLER_ACCOUNT" default:"S-100"`

	// Customer is the customer account of the customer portal (default: C-1001)
	Customer string `env:"CUSTOMER_ACCOUNT" default:"C-1001"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
