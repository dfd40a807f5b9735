// Package auth defines the authentication hook run before request dispatch.
//
// A Provider inspects the incoming request and either produces the
// authenticated user, which the server attaches to the request context, or
// fails the request. A *httperr.Error failure is returned to the client
// verbatim; any other failure is rendered as HTTP 500.
package auth

import (
	"context"
	"net/http"
)

// User is the authenticated principal attached to the request context.
type User struct {
	// Subject is the stable identifier of the principal (user ID, token ID).
	Subject string

	// Name is the display name, when the provider knows one.
	Name string

	// Roles lists the principal's roles, when the provider knows them.
	Roles []string

	// Claims carries any additional provider-specific attributes.
	Claims map[string]any
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Provider authenticates incoming requests.
//
// Implementations must be safe for concurrent use: Authenticate is called
// once per request from the server's middleware chain.
type Provider interface {
	// Authenticate inspects the request and returns the authenticated user.
	//
	// Returning a *httperr.Error fails the request with that error's status
	// code and message. Returning any other error fails the request with
	// HTTP 500 Internal Server Error.
	Authenticate(r *http.Request) (*User, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(r *http.Request) (*User, error)

func (f ProviderFunc) Authenticate(r *http.Request) (*User, error) {
	return f(r)
}

// contextKey is a private type to avoid context key collisions.
type contextKey struct{}

var userKey contextKey

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext extracts the authenticated user from ctx.
//
// Returns nil and false when no authentication ran (no provider configured)
// or authentication did not attach a user.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}
