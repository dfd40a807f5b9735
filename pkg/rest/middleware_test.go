package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlvx/hlvx-http-rest/pkg/metrics"
)

func TestServer_Metrics(t *testing.T) {
	metrics.InitRegistry()

	router := newTestRouter(t, WithMetrics())

	// Drive a request through the full middleware chain so it is observed
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/u42", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// The exposition endpoint reports the observation labeled by route pattern
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "hlvx_http_requests_total")
	assert.Contains(t, body, `route="/users/{id}"`)
	assert.Contains(t, body, `method="GET"`)
	assert.Contains(t, body, `status="200"`)
	assert.Contains(t, body, "hlvx_http_request_duration_milliseconds")
	assert.Contains(t, body, "hlvx_http_requests_in_flight")
}

func TestStatusWriter_FlushPassthrough(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}

	var w http.ResponseWriter = sw
	f, ok := w.(http.Flusher)
	require.True(t, ok)

	f.Flush()
	assert.True(t, rec.Flushed)
}

func TestStatusWriter_HijackUnsupported(t *testing.T) {
	// httptest recorders cannot be hijacked; the wrapper must report that
	// instead of panicking
	sw := &statusWriter{ResponseWriter: httptest.NewRecorder()}

	var w http.ResponseWriter = sw
	hj, ok := w.(http.Hijacker)
	require.True(t, ok)

	_, _, err := hj.Hijack()
	require.Error(t, err)
}
