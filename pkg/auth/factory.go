package auth

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config selects an authentication provider and carries its type-specific
// configuration. Only the section matching Type is used.
type Config struct {
	// Type selects the provider implementation.
	// Valid values: none, token, jwt
	Type string `mapstructure:"type" validate:"omitempty,oneof=none token jwt"`

	// Token contains token-provider configuration.
	// Only used when Type = "token"
	Token map[string]any `mapstructure:"token"`

	// JWT contains jwt-provider configuration.
	// Only used when Type = "jwt"
	JWT map[string]any `mapstructure:"jwt"`
}

// NewProvider creates an authentication provider from configuration.
//
// The Type field determines which provider implementation is created, then
// the type-specific section is decoded and passed to the provider's
// constructor.
//
// Supported types:
//   - "none" (or empty): no authentication, returns nil
//   - "token": static bearer token table
//   - "jwt": HMAC-signed JWT validation
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "token":
		return newTokenProvider(cfg.Token)
	case "jwt":
		return newJWTProvider(cfg.JWT)
	default:
		return nil, fmt.Errorf("unknown auth provider type: %q", cfg.Type)
	}
}

// newTokenProvider decodes token-provider options and builds the provider.
func newTokenProvider(options map[string]any) (Provider, error) {
	type tokenEntry struct {
		Token   string   `mapstructure:"token"`
		Subject string   `mapstructure:"subject"`
		Name    string   `mapstructure:"name"`
		Roles   []string `mapstructure:"roles"`
	}
	type tokenProviderConfig struct {
		Tokens []tokenEntry `mapstructure:"tokens"`
	}

	var providerCfg tokenProviderConfig
	if err := mapstructure.Decode(options, &providerCfg); err != nil {
		return nil, fmt.Errorf("failed to decode token auth config: %w", err)
	}
	if len(providerCfg.Tokens) == 0 {
		return nil, fmt.Errorf("token auth: at least one token is required")
	}

	tokens := make(map[string]*User, len(providerCfg.Tokens))
	for i, entry := range providerCfg.Tokens {
		if entry.Token == "" {
			return nil, fmt.Errorf("token auth: tokens[%d]: token is required", i)
		}
		if entry.Subject == "" {
			return nil, fmt.Errorf("token auth: tokens[%d]: subject is required", i)
		}
		tokens[entry.Token] = &User{
			Subject: entry.Subject,
			Name:    entry.Name,
			Roles:   entry.Roles,
		}
	}

	return NewTokenProvider(tokens), nil
}

// newJWTProvider decodes jwt-provider options and builds the provider.
func newJWTProvider(options map[string]any) (Provider, error) {
	type jwtProviderConfig struct {
		Secret   string `mapstructure:"secret"`
		Issuer   string `mapstructure:"issuer"`
		Audience string `mapstructure:"audience"`
	}

	var providerCfg jwtProviderConfig
	if err := mapstructure.Decode(options, &providerCfg); err != nil {
		return nil, fmt.Errorf("failed to decode jwt auth config: %w", err)
	}
	if providerCfg.Secret == "" {
		return nil, fmt.Errorf("jwt auth: secret is required")
	}

	return NewJWTProvider(JWTOptions{
		Secret:   []byte(providerCfg.Secret),
		Issuer:   providerCfg.Issuer,
		Audience: providerCfg.Audience,
	})
}
