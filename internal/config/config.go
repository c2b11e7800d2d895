// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr" validate:"required"`
	// MetricsEnabled exposes Prometheus metrics at /metrics.
	MetricsEnabled bool `koanf:"metrics_enabled"`
	// MetricsNamespace and MetricsSubsystem prefix every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace" validate:"required,metric_name"`
	MetricsSubsystem string `koanf:"metrics_subsystem" validate:"omitempty,metric_name"`
	// DocsEnabled serves the OpenAPI document and the ReDoc page.
	DocsEnabled bool `koanf:"docs_enabled"`
	// CORSAllowedOrigins enables CORS for the listed origins. Empty disables CORS.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"dive,required"`
	// ReadTimeoutMS and WriteTimeoutMS bound a single request on the HTTP server.
	ReadTimeoutMS  int `koanf:"read_timeout_ms" validate:"gte=0"`
	WriteTimeoutMS int `koanf:"write_timeout_ms" validate:"gte=0"`
	// ShutdownTimeoutMS bounds graceful shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms" validate:"gt=0"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":3000",
		MetricsEnabled:    true,
		MetricsNamespace:  "hello",
		MetricsSubsystem:  "api",
		DocsEnabled:       true,
		ReadTimeoutMS:     10_000,
		WriteTimeoutMS:    10_000,
		ShutdownTimeoutMS: 30_000,
	}
}

// ReadTimeout returns ReadTimeoutMS as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMS) * time.Millisecond
}

// WriteTimeout returns WriteTimeoutMS as a duration.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutMS) * time.Millisecond
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}
