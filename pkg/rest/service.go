package rest

import (
	"fmt"
	"net/http"
	"strings"
)

// HandlerFunc is the signature of a route handler.
//
// A handler writes its response through the Context helpers and returns nil,
// or returns an error to fail the request. A *httperr.Error selects the
// response status; any other error is rendered as HTTP 500.
type HandlerFunc func(c *Context) error

// Route describes one HTTP route exposed by a service.
//
// The metadata fields (Summary, Description, Tags, Request, Response) feed
// the generated OpenAPI document; they have no effect on dispatch.
type Route struct {
	// Method is the HTTP method (GET, POST, ...).
	Method string

	// Path is the route pattern in chi syntax, e.g. "/users/{id}".
	Path string

	// Handler handles requests matching the route.
	Handler HandlerFunc

	// Summary is a one-line description for the OpenAPI document.
	Summary string

	// Description is a longer description for the OpenAPI document.
	Description string

	// Tags group the operation in the OpenAPI document.
	Tags []string

	// Deprecated marks the operation as deprecated in the OpenAPI document.
	Deprecated bool

	// Request is a sample request body value for schema inference.
	Request any

	// Response is a sample success response body value for schema inference.
	Response any

	// ResponseStatus is the success status code documented; 0 means 200.
	ResponseStatus int
}

// Service exposes a set of routes to register on the server.
type Service interface {
	Routes() []Route
}

// ServiceFunc adapts a function to the Service interface.
type ServiceFunc func() []Route

// Routes implements Service.
func (f ServiceFunc) Routes() []Route { return f() }

// validateRoute checks a route before registration.
func validateRoute(r Route) error {
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodHead, http.MethodOptions:
	default:
		return fmt.Errorf("unsupported method %q", r.Method)
	}

	if !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("path %q must start with /", r.Path)
	}
	if r.Handler == nil {
		return fmt.Errorf("%s %s: handler is nil", r.Method, r.Path)
	}

	return nil
}
