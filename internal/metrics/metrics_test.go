package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCounsel(t *testing.T) {
	before := testutil.ToFloat64(counselCallsTotal.WithLabelValues("chat", "error"))

	ObserveCounsel("chat", errors.New("boom"))
	ObserveCounsel("chat", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(counselCallsTotal.WithLabelValues("chat", "error")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(counselCallsTotal.WithLabelValues("chat", "ok")), 1.0)
}

func TestObserveExport(t *testing.T) {
	before := testutil.ToFloat64(resumeExportsTotal.WithLabelValues("pdf", "ok"))
	ObserveExport("pdf", 2, nil)
	assert.Equal(t, before+1, testutil.ToFloat64(resumeExportsTotal.WithLabelValues("pdf", "ok")))
}

func TestMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := Middleware(mux)

	before := testutil.ToFloat64(requestTotal.WithLabelValues("GET", "GET /things/{id}", "418"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	after := testutil.ToFloat64(requestTotal.WithLabelValues("GET", "GET /things/{id}", "418"))
	assert.Equal(t, before+1, after)

	// Exposition includes the HTTP collectors once registered
	rec = httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "career_guide_http_requests_total")
}
