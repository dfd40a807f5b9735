package metrics

import "time"

// HTTPMetrics records request-level metrics for the REST server.
//
// Implementations must be safe for concurrent use. The route label is the
// registered route pattern (e.g. "/users/{id}"), not the raw request path,
// to keep cardinality bounded.
type HTTPMetrics interface {
	// RecordRequest records a completed request with its route pattern,
	// method, response status and duration.
	RecordRequest(route, method string, status int, duration time.Duration)

	// RequestStarted increments the in-flight request gauge.
	RequestStarted()

	// RequestFinished decrements the in-flight request gauge.
	RequestFinished()
}

// noopHTTPMetrics is a no-op implementation used when metrics are disabled.
type noopHTTPMetrics struct{}

// NewNoopHTTPMetrics returns an HTTPMetrics implementation that discards
// all observations.
func NewNoopHTTPMetrics() HTTPMetrics {
	return noopHTTPMetrics{}
}

func (noopHTTPMetrics) RecordRequest(route, method string, status int, duration time.Duration) {}

func (noopHTTPMetrics) RequestStarted() {}

func (noopHTTPMetrics) RequestFinished() {}
