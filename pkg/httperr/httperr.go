// Package httperr defines the typed HTTP error and the JSON error envelope
// used by every failure path of the REST server.
//
// All errors leaving the server are rendered as:
//
//	{"code": <status>, "message": <text>}
//
// with Content-Type application/json; charset=utf-8. A *httperr.Error keeps
// its carried status code and message; any other error is rendered as
// HTTP 500 "Internal Server Error" and the cause is logged by the caller.
package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ContentType is the Content-Type header value set on every envelope.
const ContentType = "application/json; charset=utf-8"

// Error is an error carrying an HTTP status code.
//
// Handlers and auth providers return *Error to select the response status;
// any other error type is translated to a generic 500 at the boundary.
type Error struct {
	// Code is the HTTP status code of the response.
	Code int `json:"code"`

	// Message is the human-readable error message included in the envelope.
	Message string `json:"message"`
}

// New creates an Error with the given status code and message.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.Code, e.Message)
}

// Common constructors for the frequently used status codes.

func BadRequest(message string) *Error { return New(http.StatusBadRequest, message) }

func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }

func Forbidden(message string) *Error { return New(http.StatusForbidden, message) }

func NotFound(message string) *Error { return New(http.StatusNotFound, message) }

func MethodNotAllowed(message string) *Error { return New(http.StatusMethodNotAllowed, message) }

func Conflict(message string) *Error { return New(http.StatusConflict, message) }

func TooManyRequests(message string) *Error { return New(http.StatusTooManyRequests, message) }

func Internal(message string) *Error { return New(http.StatusInternalServerError, message) }

// FromError extracts a *Error from err.
//
// Returns the typed error (unwrapping if needed) and true, or nil and false
// when err carries no HTTP status.
func FromError(err error) (*Error, bool) {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// Write emits the JSON envelope with the given code and message.
//
// The status line mirrors the original server's behavior: the response
// status is the envelope code, and the body is the serialized envelope.
func Write(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(code)

	// Error envelopes always marshal; ignore the impossible failure.
	body, _ := json.Marshal(&Error{Code: code, Message: message})
	_, _ = w.Write(body)
}

// WriteError renders err as an envelope applying the two fixed translations:
//   - *Error: its carried code and message
//   - anything else: 500 "Internal Server Error"
//
// Returns the status code written so callers can log or record it.
func WriteError(w http.ResponseWriter, err error) int {
	if httpErr, ok := FromError(err); ok {
		Write(w, httpErr.Code, httpErr.Message)
		return httpErr.Code
	}

	Write(w, http.StatusInternalServerError, "Internal Server Error")
	return http.StatusInternalServerError
}
