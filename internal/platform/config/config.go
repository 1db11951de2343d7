// Package config provides configuration loading and validation for the service.
// Configuration is layered: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Client    ClientConfig    `koanf:"client"`
	Shops     ShopsConfig     `koanf:"shops"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// MaxClientAttempts is the largest accepted client.retry.max_attempts.
const MaxClientAttempts = 1

// ClientConfig holds settings for the outbound client to the drinks API.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff. The
// drinks API is called at most once per fetch, so MaxAttempts is capped at
// MaxClientAttempts.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig caps outbound request rate. Zero RequestsPerSecond
// disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// ShopsConfig holds the shop listing behavior.
type ShopsConfig struct {
	// Path is the backend endpoint serving shop listings.
	Path string `koanf:"path"`
	// RefetchOnFilterChange re-runs the fetch when a mounted fetcher's
	// filter changes. When false a mount fetches exactly once.
	RefetchOnFilterChange bool `koanf:"refetch_on_filter_change"`
	// ErrorPolicy is "inline" or "blank".
	ErrorPolicy string `koanf:"error_policy"`
	// RenderWait bounds how long a page request waits for the fetch to
	// settle before rendering the loading placeholder.
	RenderWait time.Duration `koanf:"render_wait"`
	// ViewTTL is how long an idle view stays mounted. A view is touched by
	// every request naming it and when its fetch settles.
	ViewTTL time.Duration `koanf:"view_ttl"`
	// MaxViews caps the number of mounted views; the least recently used
	// is unmounted to make room.
	MaxViews int `koanf:"max_views"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
