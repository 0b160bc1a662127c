package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/user", "403"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/user", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/user", "403"))

	assert.Equal(t, before+1, after)
}

func TestMiddleware_UnmatchedPathsShareLabel(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/random-1", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/random-2", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404"))

	assert.Equal(t, before+2, after)
}

func TestRecordAuth(t *testing.T) {
	before := testutil.ToFloat64(authEventsTotal.WithLabelValues(OpLogin, OutcomeRejected))
	RecordAuth(OpLogin, OutcomeRejected)
	assert.Equal(t, before+1, testutil.ToFloat64(authEventsTotal.WithLabelValues(OpLogin, OutcomeRejected)))
}
