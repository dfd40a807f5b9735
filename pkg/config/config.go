package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hlvx/hlvx-http-rest/pkg/auth"
)

// Config represents the complete REST server configuration.
//
// This structure captures all configurable aspects of the server including:
//   - Logging configuration
//   - Listener settings (address, timeouts, body limit)
//   - CORS settings
//   - Authentication provider selection and configuration (type-specific)
//   - OpenAPI document generation
//   - Metrics exposition
//   - Request rate limiting
//
// Configuration sources (in order of precedence):
//  1. Environment variables (HLVX_*)
//  2. Configuration file (YAML or TOML)
//  3. Default values (lowest priority)
//
// Provider Configuration Pattern:
// The auth section contains a type selector plus type-specific sections
// (e.g. auth.token, auth.jwt) and only the section matching the selected
// type is used.
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Server contains listener settings
	Server ServerConfig `mapstructure:"server"`

	// CORS configures cross-origin request handling
	CORS CORSConfig `mapstructure:"cors"`

	// Auth selects and configures the authentication provider
	Auth auth.Config `mapstructure:"auth"`

	// OpenAPI configures document generation and serving
	OpenAPI OpenAPIConfig `mapstructure:"openapi"`

	// Metrics configures Prometheus exposition
	Metrics MetricsConfig `mapstructure:"metrics"`

	// RateLimit configures per-client request throttling
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required"`
}

// ServerConfig contains listener settings.
type ServerConfig struct {
	// Address is the listen address, e.g. ":8080"
	Address string `mapstructure:"address" validate:"required"`

	// BodyLimit caps request body size in bytes (0 uses the default 1 MiB,
	// negative removes the cap)
	BodyLimit int64 `mapstructure:"body_limit"`

	// ReadTimeout bounds reading the request including the body
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout bounds writing the response
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0"`
}

// CORSConfig configures cross-origin request handling.
type CORSConfig struct {
	// Enabled turns CORS handling on
	Enabled bool `mapstructure:"enabled"`

	// AllowedOrigins lists permitted origins ("*" allows any)
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// AllowedMethods lists permitted HTTP methods
	AllowedMethods []string `mapstructure:"allowed_methods"`

	// AllowedHeaders lists permitted request headers
	AllowedHeaders []string `mapstructure:"allowed_headers"`

	// AllowCredentials permits credentials on cross-origin requests
	AllowCredentials bool `mapstructure:"allow_credentials"`

	// MaxAge is how long (in seconds) preflight results may be cached
	MaxAge int `mapstructure:"max_age" validate:"gte=0"`
}

// OpenAPIConfig configures OpenAPI document generation.
type OpenAPIConfig struct {
	// Enabled turns document generation and serving on
	Enabled bool `mapstructure:"enabled"`

	// Title of the API (required when enabled)
	Title string `mapstructure:"title"`

	// Version of the API (required when enabled)
	Version string `mapstructure:"version"`

	// Description of the API
	Description string `mapstructure:"description"`

	// ContactName, ContactURL and ContactEmail fill the contact block
	ContactName  string `mapstructure:"contact_name"`
	ContactURL   string `mapstructure:"contact_url"`
	ContactEmail string `mapstructure:"contact_email" validate:"omitempty,email"`

	// LicenseName and LicenseURL fill the license block
	LicenseName string `mapstructure:"license_name"`
	LicenseURL  string `mapstructure:"license_url"`
}

// MetricsConfig configures Prometheus exposition.
type MetricsConfig struct {
	// Enabled turns request metrics and the /metrics endpoint on
	Enabled bool `mapstructure:"enabled"`
}

// RateLimitConfig configures per-client request throttling.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained per-client budget (0 disables)
	RequestsPerSecond uint `mapstructure:"requests_per_second"`

	// Burst is the bucket capacity (0 defaults to the sustained rate)
	Burst uint `mapstructure:"burst"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (HLVX_*)
//  2. Configuration file
//  3. Default values
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: Configuration loading or validation error
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the HLVX_ prefix and underscores
	// Example: HLVX_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("HLVX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found is acceptable - use defaults
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to current
// directory (.) if home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "hlvx")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "hlvx")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}
