// Package config provides centralized configuration for the checker.
// It loads settings from environment variables with sensible defaults
// and validates everything on startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Check   CheckConfig
	Rate    RateLimitConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// CheckConfig holds validation run settings.
type CheckConfig struct {
	// MaxFileBytes is the upload size ceiling, checked before decode (default: 5MB)
	MaxFileBytes int64 `env:"CHECK_MAX_FILE_BYTES" default:"5242880"`

	// MaxPhysicalLines is the physical line ceiling (default: 50000)
	MaxPhysicalLines int `env:"CHECK_MAX_PHYSICAL_LINES" default:"50000"`

	// Encoding is the IANA label of the export file encoding (default: Shift_JIS)
	Encoding string `env:"CHECK_ENCODING" default:"Shift_JIS"`

	// MaxConcurrent is the number of parallel validation slots (default: 4)
	MaxConcurrent int `env:"CHECK_MAX_CONCURRENT" default:"4"`

	// MaxWait is how long a request waits for a slot (default: 10s)
	MaxWait time.Duration `env:"CHECK_MAX_WAIT" default:"10s"`

	// RunTTL is how long a finished run stays downloadable (default: 30m)
	RunTTL time.Duration `env:"CHECK_RUN_TTL" default:"30m"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the per-IP limit (default: 60)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"60"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
