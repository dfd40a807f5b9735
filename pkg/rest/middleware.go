package rest

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hlvx/hlvx-http-rest/internal/logger"
	"github.com/hlvx/hlvx-http-rest/internal/ratelimiter"
	"github.com/hlvx/hlvx-http-rest/pkg/auth"
	"github.com/hlvx/hlvx-http-rest/pkg/httperr"
	"github.com/hlvx/hlvx-http-rest/pkg/metrics"
)

// Provider injects a named value into the request context before dispatch.
//
// Providers run in registration order. A *httperr.Error failure is returned
// to the client verbatim; any other failure is rendered as HTTP 500.
type Provider interface {
	// Name is the key handlers use to look the value up via Context.Provided.
	Name() string

	// Provide produces the value for one request.
	Provide(r *http.Request) (any, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc struct {
	ProviderName string
	Fn           func(r *http.Request) (any, error)
}

func (p ProviderFunc) Name() string { return p.ProviderName }

func (p ProviderFunc) Provide(r *http.Request) (any, error) { return p.Fn(r) }

// statusWriter captures the response status and size for logging and metrics.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Flush forwards to the underlying writer so streaming handlers keep working.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack forwards to the underlying writer when the connection supports it.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hj.Hijack()
	}
	return nil, nil, fmt.Errorf("response writer does not support hijacking")
}

// requestLogger logs one line per completed request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		logger.Info("%s %s -> %d (%d bytes, %v)",
			r.Method, r.URL.Path, sw.status, sw.bytes, time.Since(start))
	})
}

// recoverer turns handler panics into the 500 envelope.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("Panic while serving %s %s: %v", r.Method, r.URL.Path, rec)
				httperr.Write(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// rateLimit rejects requests over the per-client budget with a 429 envelope.
func rateLimit(limiter *ratelimiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				httperr.Write(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey derives the throttling key for a request.
// RealIP middleware has already folded X-Forwarded-For into RemoteAddr.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// bodyLimit caps the readable request body size.
func bodyLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// runProviders injects each provider's value into the request context.
func runProviders(providers []Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			for _, p := range providers {
				value, err := p.Provide(r)
				if err != nil {
					status := httperr.WriteError(w, err)
					if status == http.StatusInternalServerError {
						logger.Error("Provider %s failed: %v", p.Name(), err)
					}
					return
				}
				ctx = withProvided(ctx, p.Name(), value)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate runs the auth provider and attaches the user to the context.
//
// A *httperr.Error from the provider is returned to the client as-is, any
// other failure becomes an internal error.
func authenticate(provider auth.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := provider.Authenticate(r)
			if err != nil {
				status := httperr.WriteError(w, err)
				if status == http.StatusInternalServerError {
					logger.Error("Authentication failed: %v", err)
				}
				return
			}

			if user != nil {
				r = r.WithContext(auth.WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// recordMetrics observes completed requests against the route pattern.
func recordMetrics(m metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.RequestStarted()
			defer m.RequestFinished()

			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)

			if sw.status == 0 {
				sw.status = http.StatusOK
			}
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.RecordRequest(route, r.Method, sw.status, time.Since(start))
		})
	}
}
