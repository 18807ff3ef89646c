// Package config loads application settings from environment variables,
// applies defaults and validates everything at startup so misconfiguration
// fails fast.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Analysis AnalysisConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port also honours PORT, which most hosting platforms set.
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"5000"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"2m"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the chi Timeout middleware budget per request.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"90s"`
}

// UploadConfig bounds request bodies.
type UploadConfig struct {
	// MaxFileSize caps every request body, in bytes (default: 16 MiB).
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"16777216"`

	// MaxMemory is the part of a multipart form kept in memory before
	// spilling to temporary files (default: 8 MiB).
	MaxMemory int64 `env:"UPLOAD_MAX_MEMORY" default:"8388608"`
}

// AnalysisConfig controls the analysis semaphore and export defaults.
type AnalysisConfig struct {
	MaxConcurrent int           `env:"ANALYZE_MAX_CONCURRENT" default:"4"`
	MaxWaitTime   time.Duration `env:"ANALYZE_MAX_WAIT_TIME" default:"10s"`
	Timeout       time.Duration `env:"ANALYZE_TIMEOUT" default:"2m"`

	// DefaultSchema is used by /api/export when no schema is named.
	DefaultSchema string `env:"EXPORT_DEFAULT_SCHEMA" default:"vendas"`
}

// RateLimitConfig holds per-client rate limiting settings.
type RateLimitConfig struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the sustained rate per client IP.
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// Burst is how many requests a client may make at once.
	Burst int `env:"RATE_LIMIT_BURST" default:"20"`

	// VisitorTTL is how long an idle client's limiter is remembered.
	VisitorTTL time.Duration `env:"RATE_LIMIT_VISITOR_TTL" default:"3m"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// X-Forwarded-For / X-Real-IP headers are believed.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// CORSOrigins lists the origins allowed to call the API from a browser.
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" default:"info"`
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the listen address in host:port form.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
