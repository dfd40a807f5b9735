package rest

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hlvx/hlvx-http-rest/pkg/auth"
	"github.com/hlvx/hlvx-http-rest/pkg/openapi"
)

// Option is a function that configures a Server instance.
type Option func(*Server) error

// WithAddress sets the listen address, e.g. ":8080" or "127.0.0.1:8080".
func WithAddress(addr string) Option {
	return func(s *Server) error {
		if addr == "" {
			return fmt.Errorf("address cannot be empty")
		}
		s.addr = addr
		return nil
	}
}

// WithServices registers services whose routes are mounted on the router.
func WithServices(services ...Service) Option {
	return func(s *Server) error {
		for i, svc := range services {
			if svc == nil {
				return fmt.Errorf("service %d is nil", i)
			}
		}
		s.services = append(s.services, services...)
		return nil
	}
}

// WithProviders registers context providers run before dispatch; each
// provider's value is injected into the request context under its name.
func WithProviders(providers ...Provider) Option {
	return func(s *Server) error {
		for i, p := range providers {
			if p == nil {
				return fmt.Errorf("provider %d is nil", i)
			}
			if p.Name() == "" {
				return fmt.Errorf("provider %d has an empty name", i)
			}
		}
		s.providers = append(s.providers, providers...)
		return nil
	}
}

// WithAuthProvider sets the authentication hook run before dispatch.
func WithAuthProvider(provider auth.Provider) Option {
	return func(s *Server) error {
		s.authProvider = provider
		return nil
	}
}

// WithValidator sets the validator used by Context.Bind for request bodies.
func WithValidator(v *validator.Validate) Option {
	return func(s *Server) error {
		s.validate = v
		return nil
	}
}

// WithCORS enables CORS handling with the given configuration.
func WithCORS(cfg CORSConfig) Option {
	return func(s *Server) error {
		s.cors = &cfg
		return nil
	}
}

// WithOpenAPI enables OpenAPI document generation and serving.
// The document is built from the registered services' route metadata and
// served at /openapi.json, with a documentation page at /docs.
func WithOpenAPI(info openapi.Info) Option {
	return func(s *Server) error {
		if info.Title == "" {
			return fmt.Errorf("openapi title cannot be empty")
		}
		if info.Version == "" {
			return fmt.Errorf("openapi version cannot be empty")
		}
		s.openAPIInfo = &info
		return nil
	}
}

// WithBodyLimit caps request body size in bytes. Zero keeps the default
// (1 MiB); negative removes the cap.
func WithBodyLimit(limit int64) Option {
	return func(s *Server) error {
		s.bodyLimit = limit
		return nil
	}
}

// WithRateLimit throttles requests per client IP using a token bucket.
// Zero requestsPerSecond disables throttling.
func WithRateLimit(requestsPerSecond, burst uint) Option {
	return func(s *Server) error {
		s.rateLimitRPS = requestsPerSecond
		s.rateLimitBurst = burst
		return nil
	}
}

// WithMetrics enables Prometheus request metrics and mounts the exposition
// endpoint at /metrics. metrics.InitRegistry must be called beforehand for
// observations to be collected.
func WithMetrics() Option {
	return func(s *Server) error {
		s.metricsEnabled = true
		return nil
	}
}

// WithTimeouts sets the listener's read and write timeouts and the graceful
// shutdown timeout. Zero values keep the defaults.
func WithTimeouts(read, write, shutdown time.Duration) Option {
	return func(s *Server) error {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
		if shutdown > 0 {
			s.shutdownTimeout = shutdown
		}
		return nil
	}
}
