package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
//
// This function uses go-playground/validator for declarative validation
// via struct tags, with additional custom validation for complex rules
// that cannot be expressed in tags.
//
// Note: Log level normalization is handled in ApplyDefaults, not here.
// Validation accepts both uppercase and lowercase log levels.
//
// Returns an error describing validation failures.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	if err := validateCustomRules(cfg); err != nil {
		return err
	}

	return nil
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	if cfg.OpenAPI.Enabled {
		if cfg.OpenAPI.Title == "" {
			return fmt.Errorf("openapi: title is required when openapi is enabled")
		}
		if cfg.OpenAPI.Version == "" {
			return fmt.Errorf("openapi: version is required when openapi is enabled")
		}
	}

	if cfg.RateLimit.RequestsPerSecond > 0 && cfg.RateLimit.Burst < cfg.RateLimit.RequestsPerSecond {
		return fmt.Errorf("ratelimit: burst must be at least requests_per_second")
	}

	switch cfg.Auth.Type {
	case "", "none":
	case "token":
		if len(cfg.Auth.Token) == 0 {
			return fmt.Errorf("auth: token section is required for token auth")
		}
	case "jwt":
		if len(cfg.Auth.JWT) == 0 {
			return fmt.Errorf("auth: jwt section is required for jwt auth")
		}
	default:
		return fmt.Errorf("auth: unknown provider type %q", cfg.Auth.Type)
	}

	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		// Return the first validation error with context
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
	}
	return err
}
