package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/rgreinho/request-yo-racks-api/pkg/errors"
)

func TestMiddlewareRecordsPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/places", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("POST /api/v1/place", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	h := Middleware(mux)

	tests := []struct {
		method, target, pattern, status string
	}{
		{http.MethodGet, "/api/v1/places?location=1,2", "GET /api/v1/places", "200"},
		{http.MethodPost, "/api/v1/place", "POST /api/v1/place", "400"},
		{http.MethodGet, "/nope", "unknown", "404"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tt.method, tt.pattern, tt.status))

			req := httptest.NewRequest(tt.method, tt.target, http.NoBody)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tt.method, tt.pattern, tt.status))
			assert.Equal(t, before+1, after)
		})
	}

	assert.NotZero(t, testutil.CollectAndCount(httpRequestDuration))
}

func TestStatusWriterKeepsFirstStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	w.WriteHeader(http.StatusAccepted)
	w.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusAccepted, w.status)
}

func TestLookupObserver(t *testing.T) {
	before := testutil.ToFloat64(LookupsTotal.WithLabelValues("yelp", "ok"))
	beforeErr := testutil.ToFloat64(LookupsTotal.WithLabelValues("yelp", "rate_limited"))

	var obs LookupObserver
	obs.ObserveLookup("yelp", 20*time.Millisecond, nil)
	obs.ObserveLookup("yelp", 5*time.Millisecond, pkgerrors.NewAPIError("yelp", http.StatusTooManyRequests, "slow down"))

	assert.Equal(t, before+1, testutil.ToFloat64(LookupsTotal.WithLabelValues("yelp", "ok")))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(LookupsTotal.WithLabelValues("yelp", "rate_limited")))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{pkgerrors.NewNotFoundError("place", "x"), "not_found"},
		{pkgerrors.NewTimeoutError("lookup", "20s", "deadline"), "timeout"},
		{pkgerrors.NewAPIError("google", http.StatusForbidden, "denied"), "unauthorized"},
		{pkgerrors.NotImplemented("yelp", "nearby search"), "not_implemented"},
		{fmt.Errorf("boom"), "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err))
	}
}

func TestHandler(t *testing.T) {
	Register()
	Register()
	CacheHit(true)
	CacheHit(false)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "ryr_nearby_cache_total"))
}
