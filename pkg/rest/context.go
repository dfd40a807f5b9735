package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hlvx/hlvx-http-rest/pkg/auth"
	"github.com/hlvx/hlvx-http-rest/pkg/httperr"
)

// Context carries a single request through a handler.
//
// It wraps the request and response writer and provides body decoding with
// validation, parameter access and JSON response writing.
type Context struct {
	// Request is the incoming HTTP request.
	Request *http.Request

	// Writer is the response writer for the request.
	Writer http.ResponseWriter

	validate *validator.Validate
}

// Context returns the request context.
func (c *Context) Context() context.Context {
	return c.Request.Context()
}

// Param returns the value of the named path parameter, e.g. "id" for a
// route registered as "/users/{id}". Empty when the parameter is absent.
func (c *Context) Param(name string) string {
	return chi.URLParam(c.Request, name)
}

// Query returns the first value of the named query parameter.
func (c *Context) Query(name string) string {
	return c.Request.URL.Query().Get(name)
}

// User returns the authenticated user attached by the auth provider.
// ok is false when no provider is configured or none attached a user.
func (c *Context) User() (*auth.User, bool) {
	return auth.UserFromContext(c.Request.Context())
}

// Provided returns the value injected by the named context provider.
func (c *Context) Provided(name string) (any, bool) {
	return providedValue(c.Request.Context(), name)
}

// Bind decodes the JSON request body into v and validates it.
//
// Unknown fields and malformed JSON fail with HTTP 400. When the server has
// a validator configured, struct tags on v are enforced and violations fail
// with HTTP 400 naming the offending field. A body exceeding the configured
// body limit fails with HTTP 413.
func (c *Context) Bind(v any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return httperr.New(http.StatusRequestEntityTooLarge, "request body too large")
		}
		return httperr.BadRequest(fmt.Sprintf("invalid request body: %v", err))
	}

	if c.validate != nil {
		if err := c.validate.Struct(v); err != nil {
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
				e := validationErrs[0]
				return httperr.BadRequest(fmt.Sprintf(
					"validation failed on field %s (%s)", e.Field(), e.Tag()))
			}
			return httperr.BadRequest("validation failed")
		}
	}

	return nil
}

// JSON writes v as a JSON response with the given status code.
func (c *Context) JSON(status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Writer.WriteHeader(status)
	_, err = c.Writer.Write(body)
	return err
}

// NoContent writes an empty response with the given status code.
func (c *Context) NoContent(status int) error {
	c.Writer.WriteHeader(status)
	return nil
}

// providerKey is a private context key type for provider-injected values.
type providerKey string

// withProvided returns a copy of ctx carrying a provider value under name.
func withProvided(ctx context.Context, name string, value any) context.Context {
	return context.WithValue(ctx, providerKey(name), value)
}

// providedValue extracts a provider value from ctx.
func providedValue(ctx context.Context, name string) (any, bool) {
	v := ctx.Value(providerKey(name))
	return v, v != nil
}
