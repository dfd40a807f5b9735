// Package rest assembles and runs a REST HTTP server.
//
// The Server is a builder/facade wiring together the chi router, route
// registration from declared services, an OpenAPI document generated from
// the registered routes, an authentication hook, CORS handling and the
// fixed JSON error envelope. The hard work of routing and request dispatch
// is delegated to the router; this package collects configuration and
// composes the pieces.
//
// Example usage:
//
//	server, err := rest.NewServer(
//	    rest.WithAddress(":8080"),
//	    rest.WithServices(users, posts),
//	    rest.WithOpenAPI(openapi.Info{Title: "My API", Version: "1.0.0"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := server.Serve(ctx); err != nil && err != context.Canceled {
//	    log.Fatal(err)
//	}
package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/hlvx/hlvx-http-rest/internal/logger"
	"github.com/hlvx/hlvx-http-rest/internal/ratelimiter"
	"github.com/hlvx/hlvx-http-rest/pkg/auth"
	"github.com/hlvx/hlvx-http-rest/pkg/httperr"
	"github.com/hlvx/hlvx-http-rest/pkg/metrics"
	metricsprom "github.com/hlvx/hlvx-http-rest/pkg/metrics/prometheus"
	"github.com/hlvx/hlvx-http-rest/pkg/openapi"
)

const (
	// defaultAddr is the listen address when none is configured.
	defaultAddr = ":8080"

	// defaultBodyLimit caps request bodies at 1 MiB unless overridden.
	defaultBodyLimit = 1 << 20

	// defaultShutdownTimeout bounds graceful shutdown.
	defaultShutdownTimeout = 30 * time.Second
)

// Server collects services, providers and configuration, builds the router
// once, and manages the HTTP listener lifecycle.
//
// Lifecycle:
//  1. Creation: NewServer() with options
//  2. Startup: Serve() builds the router, starts the listener and blocks
//  3. Shutdown: context cancellation or Stop() triggers graceful shutdown
//
// Thread safety:
// Server is safe for concurrent use after construction. Serve() must only
// be called once per instance.
type Server struct {
	addr            string
	services        []Service
	providers       []Provider
	authProvider    auth.Provider
	validate        *validator.Validate
	cors            *CORSConfig
	openAPIInfo     *openapi.Info
	bodyLimit       int64
	rateLimitRPS    uint
	rateLimitBurst  uint
	metricsEnabled  bool
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration

	// buildOnce ensures the router is assembled exactly once
	buildOnce sync.Once
	router    http.Handler
	buildErr  error

	mu         sync.Mutex
	httpServer *http.Server
	served     bool
}

// NewServer creates a Server from the given options.
func NewServer(opts ...Option) (*Server, error) {
	s := &Server{
		addr:            defaultAddr,
		bodyLimit:       defaultBodyLimit,
		shutdownTimeout: defaultShutdownTimeout,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("invalid server option: %w", err)
		}
	}

	return s, nil
}

// Services returns the registered services.
func (s *Server) Services() []Service {
	return s.services
}

// Providers returns the registered context providers.
func (s *Server) Providers() []Provider {
	return s.providers
}

// AuthProvider returns the configured authentication provider, or nil.
func (s *Server) AuthProvider() auth.Provider {
	return s.authProvider
}

// CORS returns the configured CORS settings, or nil when CORS is disabled.
func (s *Server) CORS() *CORSConfig {
	return s.cors
}

// Router builds (once) and returns the assembled router.
//
// The router can be mounted into a larger handler tree or driven directly
// by httptest; Serve() uses the same instance.
func (s *Server) Router() (http.Handler, error) {
	s.buildOnce.Do(func() {
		s.router, s.buildErr = s.build()
	})
	return s.router, s.buildErr
}

// build assembles the middleware chain and registers all routes.
// Called exactly once through Router().
func (s *Server) build() (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)

	if s.metricsEnabled {
		r.Use(recordMetrics(metricsprom.NewHTTPMetrics()))
	}

	r.Use(recoverer)

	if s.cors != nil {
		r.Use(s.cors.middleware())
	}

	if s.rateLimitRPS > 0 {
		r.Use(rateLimit(ratelimiter.New(s.rateLimitRPS, s.rateLimitBurst)))
	}

	if s.bodyLimit >= 0 {
		limit := s.bodyLimit
		if limit == 0 {
			limit = defaultBodyLimit
		}
		r.Use(bodyLimit(limit))
	}

	if len(s.providers) > 0 {
		r.Use(runProviders(s.providers))
	}

	if s.authProvider != nil {
		r.Use(authenticate(s.authProvider))
	}

	// Router misses are rendered as envelopes too.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httperr.Write(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httperr.Write(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	var ops []openapi.Operation
	registered := make(map[string]bool)

	for _, svc := range s.services {
		for _, route := range svc.Routes() {
			if err := validateRoute(route); err != nil {
				return nil, fmt.Errorf("invalid route: %w", err)
			}

			key := route.Method + " " + route.Path
			if registered[key] {
				return nil, fmt.Errorf("route %s registered twice", key)
			}
			registered[key] = true

			r.Method(route.Method, route.Path, s.wrap(route.Handler))
			logger.Debug("Registered route %s %s", route.Method, route.Path)

			ops = append(ops, openapi.Operation{
				Method:         route.Method,
				Path:           route.Path,
				Summary:        route.Summary,
				Description:    route.Description,
				Tags:           route.Tags,
				Deprecated:     route.Deprecated,
				Request:        route.Request,
				Response:       route.Response,
				ResponseStatus: route.ResponseStatus,
			})
		}
	}

	if s.openAPIInfo != nil {
		doc, err := openapi.Build(*s.openAPIInfo, ops)
		if err != nil {
			return nil, fmt.Errorf("failed to build OpenAPI document: %w", err)
		}
		specHandler, err := openapi.SpecHandler(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to build OpenAPI document: %w", err)
		}
		r.Get(openapi.SpecPath, specHandler)
		r.Get(openapi.DocsPath, openapi.DocsHandler(s.openAPIInfo.Title, openapi.SpecPath))
	}

	if s.metricsEnabled {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	return r, nil
}

// wrap adapts a HandlerFunc to http.Handler, applying the error envelope
// translations on failure.
func (s *Server) wrap(h HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := &Context{Request: r, Writer: w, validate: s.validate}

		if err := h(c); err != nil {
			status := httperr.WriteError(w, err)
			if status == http.StatusInternalServerError {
				logger.Error("Handler error on %s %s: %v", r.Method, r.URL.Path, err)
			}
		}
	})
}

// Serve builds the router, starts the HTTP listener and blocks until the
// context is cancelled or the listener fails.
//
// Shutdown behavior:
// On context cancellation the listener stops accepting connections and
// in-flight requests are allowed to finish within the shutdown timeout.
//
// Returns:
//   - the context's error when shutdown was triggered by cancellation
//   - the listener error if the server failed to start or serve
//
// Serve must be called at most once per Server instance.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Router()
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.served {
		s.mu.Unlock()
		return fmt.Errorf("Serve() has already been called on this server instance")
	}
	s.served = true

	srv := &http.Server{
		Addr:         s.addr,
		Handler:      handler,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}
	s.httpServer = srv
	s.mu.Unlock()

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to start listener: %w", err)
	}

	logger.Info("Starting REST HTTP server on %s", listener.Addr())

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received (reason: %v)", ctx.Err())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during shutdown: %v", err)
		}
		<-errChan

		logger.Info("REST HTTP server stopped gracefully")
		return ctx.Err()

	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			// Stop() was called directly.
			logger.Info("REST HTTP server stopped")
			return nil
		}
		return fmt.Errorf("http server error: %w", err)
	}
}

// Stop initiates graceful shutdown of the listener.
//
// Safe to call multiple times and before Serve(), in which case it is a
// no-op. The context bounds how long in-flight requests may take to finish.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
