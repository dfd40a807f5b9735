package config

import (
	"strings"
	"time"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// This function is called after loading configuration from file and environment
// variables to fill in any missing values with sensible defaults.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
//   - Provider-specific defaults are handled by provider factories
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyServerDefaults(&cfg.Server)
	applyCORSDefaults(&cfg.CORS)
	applyAuthDefaults(cfg)
	applyOpenAPIDefaults(&cfg.OpenAPI)
	applyRateLimitDefaults(&cfg.RateLimit)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyServerDefaults sets listener defaults.
func applyServerDefaults(cfg *ServerConfig) {
	if cfg.Address == "" {
		cfg.Address = ":8080"
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	// BodyLimit 0 keeps the server default (1 MiB)
}

// applyCORSDefaults sets CORS defaults.
func applyCORSDefaults(cfg *CORSConfig) {
	if !cfg.Enabled {
		return
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if len(cfg.AllowedMethods) == 0 {
		cfg.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	}
}

// applyAuthDefaults sets authentication defaults.
func applyAuthDefaults(cfg *Config) {
	if cfg.Auth.Type == "" {
		cfg.Auth.Type = "none"
	}
}

// applyOpenAPIDefaults sets OpenAPI defaults.
func applyOpenAPIDefaults(cfg *OpenAPIConfig) {
	if !cfg.Enabled {
		return
	}

	if cfg.Title == "" {
		cfg.Title = "REST API"
	}
	if cfg.Version == "" {
		cfg.Version = "0.1.0"
	}
}

// applyRateLimitDefaults sets throttling defaults.
func applyRateLimitDefaults(cfg *RateLimitConfig) {
	// RequestsPerSecond 0 disables throttling
	if cfg.Burst == 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
