package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/hlvx/hlvx-http-rest/internal/logger"
	"github.com/hlvx/hlvx-http-rest/pkg/auth"
	"github.com/hlvx/hlvx-http-rest/pkg/metrics"
	"github.com/hlvx/hlvx-http-rest/pkg/openapi"
	"github.com/hlvx/hlvx-http-rest/pkg/rest"
)

// BuildServer creates a fully configured rest.Server from the provided
// configuration and services.
//
// This function orchestrates the complete initialization process:
//  1. Configures the process logger from cfg.Logging
//  2. Initializes the metrics registry when metrics are enabled
//  3. Creates the authentication provider from cfg.Auth
//  4. Assembles the server options (CORS, OpenAPI, rate limit, timeouts)
//
// The resulting server is configured but not started; call Serve() on it.
//
// Example:
//
//	cfg, _ := config.Load("config.yaml")
//	server, err := config.BuildServer(cfg, userService, postService)
//	if err != nil {
//	    log.Fatalf("Failed to build server: %v", err)
//	}
func BuildServer(cfg *Config, services ...rest.Service) (*rest.Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is nil")
	}

	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	provider, err := auth.NewProvider(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth provider: %w", err)
	}

	opts := []rest.Option{
		rest.WithAddress(cfg.Server.Address),
		rest.WithServices(services...),
		rest.WithValidator(validator.New()),
		rest.WithBodyLimit(cfg.Server.BodyLimit),
		rest.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
	}

	if provider != nil {
		opts = append(opts, rest.WithAuthProvider(provider))
	}

	if cfg.CORS.Enabled {
		opts = append(opts, rest.WithCORS(rest.CORSConfig{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   cfg.CORS.AllowedHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		}))
	}

	if cfg.OpenAPI.Enabled {
		opts = append(opts, rest.WithOpenAPI(openapi.Info{
			Title:        cfg.OpenAPI.Title,
			Version:      cfg.OpenAPI.Version,
			Description:  cfg.OpenAPI.Description,
			ContactName:  cfg.OpenAPI.ContactName,
			ContactURL:   cfg.OpenAPI.ContactURL,
			ContactEmail: cfg.OpenAPI.ContactEmail,
			LicenseName:  cfg.OpenAPI.LicenseName,
			LicenseURL:   cfg.OpenAPI.LicenseURL,
		}))
	}

	if cfg.Metrics.Enabled {
		opts = append(opts, rest.WithMetrics())
	}

	if cfg.RateLimit.RequestsPerSecond > 0 {
		opts = append(opts, rest.WithRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	server, err := rest.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	logger.Debug("Server configured (address=%s, auth=%s, cors=%v, openapi=%v, metrics=%v)",
		cfg.Server.Address, cfg.Auth.Type, cfg.CORS.Enabled, cfg.OpenAPI.Enabled, cfg.Metrics.Enabled)

	return server, nil
}
