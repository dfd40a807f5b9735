package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeConfigFile writes a YAML config file in a temp dir and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	// Point the search path at an empty directory so no file is found
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q, want :8080", cfg.Server.Address)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Logging.Level = %q, want INFO", cfg.Logging.Level)
	}
	if cfg.Auth.Type != "none" {
		t.Errorf("Auth.Type = %q, want none", cfg.Auth.Type)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: debug
  format: json

server:
  address: ":9999"
  read_timeout: 10s
  body_limit: 2097152

cors:
  enabled: true
  allowed_origins:
    - "https://app.example.com"

auth:
  type: token
  token:
    tokens:
      - token: secret-1
        subject: alice

ratelimit:
  requests_per_second: 50
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Logging.Level = %q, want DEBUG (normalized)", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
	if cfg.Server.Address != ":9999" {
		t.Errorf("Server.Address = %q, want :9999", cfg.Server.Address)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 10s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.BodyLimit != 2097152 {
		t.Errorf("Server.BodyLimit = %d, want 2097152", cfg.Server.BodyLimit)
	}
	if !cfg.CORS.Enabled {
		t.Error("CORS.Enabled = false, want true")
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("CORS.AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	// Methods not listed in the file pick up the default list
	if len(cfg.CORS.AllowedMethods) == 0 {
		t.Error("CORS.AllowedMethods should default when omitted")
	}
	if cfg.Auth.Type != "token" {
		t.Errorf("Auth.Type = %q, want token", cfg.Auth.Type)
	}
	if cfg.Auth.Token == nil {
		t.Error("Auth.Token section should be populated")
	}
	if cfg.RateLimit.Burst != 50 {
		t.Errorf("RateLimit.Burst = %d, want 50 (defaulted to rate)", cfg.RateLimit.Burst)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: info

server:
  address: ":9999"
`)

	t.Setenv("HLVX_SERVER_ADDRESS", ":7777")
	t.Setenv("HLVX_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Address != ":7777" {
		t.Errorf("Server.Address = %q, want :7777 (env wins over file)", cfg.Server.Address)
	}
	if cfg.Logging.Level != "WARN" {
		t.Errorf("Logging.Level = %q, want WARN", cfg.Logging.Level)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfigFile(t, "logging: [not: a: mapping")

	if _, err := Load(path); err == nil {
		t.Error("malformed YAML should fail to load")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: TRACE
`)

	if _, err := Load(path); err == nil {
		t.Error("invalid log level should fail validation")
	}
}

func TestGetDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	want := filepath.Join("/tmp/xdg", "hlvx", "config.yaml")
	if got := GetDefaultConfigPath(); got != want {
		t.Errorf("GetDefaultConfigPath() = %q, want %q", got, want)
	}
}
