package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hlvx/hlvx-http-rest/pkg/httperr"
)

// bearerToken extracts the Bearer token from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", httperr.Unauthorized("missing Authorization header")
	}

	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", httperr.Unauthorized("Authorization header is not a Bearer token")
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", httperr.Unauthorized("empty Bearer token")
	}
	return token, nil
}

// TokenProvider authenticates requests against a static bearer token table.
//
// Each token maps to a user. Lookup failures are reported as HTTP 401.
type TokenProvider struct {
	tokens map[string]*User
}

// NewTokenProvider creates a TokenProvider from a token -> user table.
// The map is used as-is; callers must not mutate it afterwards.
func NewTokenProvider(tokens map[string]*User) *TokenProvider {
	if tokens == nil {
		tokens = make(map[string]*User)
	}
	return &TokenProvider{tokens: tokens}
}

// Authenticate implements Provider.
func (p *TokenProvider) Authenticate(r *http.Request) (*User, error) {
	token, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	user, ok := p.tokens[token]
	if !ok {
		return nil, httperr.Unauthorized("invalid token")
	}
	return user, nil
}

// JWTProvider authenticates requests carrying an HMAC-signed JWT.
//
// The token's subject becomes the user's Subject; a "name" claim becomes the
// display name and a "roles" claim (array of strings) becomes the role list.
// Remaining claims are exposed through User.Claims.
type JWTProvider struct {
	secret   []byte
	issuer   string
	audience string
	parser   *jwt.Parser
}

// JWTOptions configures a JWTProvider.
type JWTOptions struct {
	// Secret is the HMAC signing key (required).
	Secret []byte

	// Issuer, when set, is required to match the token's "iss" claim.
	Issuer string

	// Audience, when set, is required to match the token's "aud" claim.
	Audience string
}

// NewJWTProvider creates a JWTProvider.
func NewJWTProvider(opts JWTOptions) (*JWTProvider, error) {
	if len(opts.Secret) == 0 {
		return nil, fmt.Errorf("jwt auth: secret is required")
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}

	return &JWTProvider{
		secret:   opts.Secret,
		issuer:   opts.Issuer,
		audience: opts.Audience,
		parser:   jwt.NewParser(parserOpts...),
	}, nil
}

// Authenticate implements Provider.
func (p *JWTProvider) Authenticate(r *http.Request) (*User, error) {
	raw, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	_, err = p.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	})
	if err != nil {
		return nil, httperr.Unauthorized("invalid token")
	}

	user := &User{Claims: map[string]any(claims)}
	if sub, err := claims.GetSubject(); err == nil {
		user.Subject = sub
	}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}
	if roles, ok := claims["roles"].([]any); ok {
		for _, role := range roles {
			if s, ok := role.(string); ok {
				user.Roles = append(user.Roles, s)
			}
		}
	}

	return user, nil
}
