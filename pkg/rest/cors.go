package rest

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSConfig is the cross-origin configuration applied to the router.
//
// A nil CORSConfig on the server disables CORS handling entirely; a zero
// value allows all origins with the library defaults.
type CORSConfig struct {
	// AllowedOrigins lists permitted origins; "*" (the default when empty)
	// allows any origin.
	AllowedOrigins []string

	// AllowedMethods lists permitted methods; empty uses the defaults
	// (GET, POST, HEAD).
	AllowedMethods []string

	// AllowedHeaders lists permitted request headers.
	AllowedHeaders []string

	// AllowCredentials permits cookies and Authorization headers on
	// cross-origin requests.
	AllowCredentials bool

	// MaxAge is how long (in seconds) preflight results may be cached.
	MaxAge int
}

// middleware translates the config into an rs/cors handler.
func (c *CORSConfig) middleware() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   c.AllowedOrigins,
		AllowedMethods:   c.AllowedMethods,
		AllowedHeaders:   c.AllowedHeaders,
		AllowCredentials: c.AllowCredentials,
		MaxAge:           c.MaxAge,
	}).Handler
}
