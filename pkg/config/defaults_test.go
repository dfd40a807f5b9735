package config

import (
	"testing"
	"time"
)

func TestApplyDefaults_Empty(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Logging.Level = %q, want INFO", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want text", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Logging.Output = %q, want stdout", cfg.Logging.Output)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q, want :8080", cfg.Server.Address)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 30s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 30s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Auth.Type != "none" {
		t.Errorf("Auth.Type = %q, want none", cfg.Auth.Type)
	}
	if cfg.Server.BodyLimit != 0 {
		t.Errorf("Server.BodyLimit = %d, want 0", cfg.Server.BodyLimit)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "debug"
	cfg.Server.Address = ":9090"
	cfg.Server.ReadTimeout = 5 * time.Second
	cfg.Auth.Type = "token"

	ApplyDefaults(cfg)

	// Level is normalized to uppercase
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Logging.Level = %q, want DEBUG", cfg.Logging.Level)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("Server.Address = %q, want :9090", cfg.Server.Address)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Auth.Type != "token" {
		t.Errorf("Auth.Type = %q, want token", cfg.Auth.Type)
	}
}

func TestApplyDefaults_CORS(t *testing.T) {
	// Disabled CORS gets no list defaults
	cfg := &Config{}
	ApplyDefaults(cfg)
	if len(cfg.CORS.AllowedOrigins) != 0 {
		t.Errorf("disabled CORS should not get origins, got %v", cfg.CORS.AllowedOrigins)
	}

	// Enabled CORS defaults to any origin and all methods
	cfg = &Config{}
	cfg.CORS.Enabled = true
	ApplyDefaults(cfg)

	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("CORS.AllowedOrigins = %v, want [*]", cfg.CORS.AllowedOrigins)
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		t.Error("CORS.AllowedMethods should get a default method list")
	}
}

func TestApplyDefaults_OpenAPI(t *testing.T) {
	cfg := &Config{}
	cfg.OpenAPI.Enabled = true
	ApplyDefaults(cfg)

	if cfg.OpenAPI.Title != "REST API" {
		t.Errorf("OpenAPI.Title = %q, want 'REST API'", cfg.OpenAPI.Title)
	}
	if cfg.OpenAPI.Version != "0.1.0" {
		t.Errorf("OpenAPI.Version = %q, want 0.1.0", cfg.OpenAPI.Version)
	}
}

func TestApplyDefaults_RateLimitBurst(t *testing.T) {
	cfg := &Config{}
	cfg.RateLimit.RequestsPerSecond = 100
	ApplyDefaults(cfg)

	if cfg.RateLimit.Burst != 100 {
		t.Errorf("RateLimit.Burst = %d, want 100 (defaulted to rate)", cfg.RateLimit.Burst)
	}

	cfg = &Config{}
	cfg.RateLimit.RequestsPerSecond = 100
	cfg.RateLimit.Burst = 250
	ApplyDefaults(cfg)

	if cfg.RateLimit.Burst != 250 {
		t.Errorf("RateLimit.Burst = %d, want 250 (explicit)", cfg.RateLimit.Burst)
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if cfg == nil {
		t.Fatal("GetDefaultConfig returned nil")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}
