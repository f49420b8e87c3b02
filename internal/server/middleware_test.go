package server

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/henryli127-lang/volca/internal/metrics"
)

func TestMetricsMiddleware_CountsWrittenStatusForStructuredErrors(t *testing.T) {
	srv, _ := newTestServer()

	badRequests := metrics.HTTPRequestsTotal.WithLabelValues("/api/profiles/:id", "400")
	okRequests := metrics.HTTPRequestsTotal.WithLabelValues("/api/profiles/:id", "200")
	badBefore := testutil.ToFloat64(badRequests)
	okBefore := testutil.ToFloat64(okRequests)

	rec := doRequest(t, srv, http.MethodGet, "/api/profiles/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, badBefore+1, testutil.ToFloat64(badRequests))
	assert.Equal(t, okBefore, testutil.ToFloat64(okRequests))
}

func TestMetricsMiddleware_CountsSuccessStatus(t *testing.T) {
	srv, _ := newTestServer()

	counter := metrics.HTTPRequestsTotal.WithLabelValues("/health/live", "200")
	before := testutil.ToFloat64(counter)

	rec := doRequest(t, srv, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
