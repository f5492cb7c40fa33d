// Package metrics exposes Prometheus collectors for place lookups, the
// nearby-search cache and the HTTP API.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	pkgerrors "github.com/rgreinho/request-yo-racks-api/pkg/errors"
)

const namespace = "ryr"

// Lookup metrics.
var (
	LookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_lookups_total",
			Help:      "Total number of provider lookups",
		},
		[]string{"provider", "status"},
	)

	LookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_lookup_duration_seconds",
			Help:      "Provider lookup duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"provider"},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nearby_cache_total",
			Help:      "Nearby search cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registerOnce sync.Once

// Register registers every collector of this package with the default
// registry. It is safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			LookupsTotal,
			LookupDuration,
			CacheTotal,
			httpRequestDuration,
			httpRequestsTotal,
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// LookupObserver records provider lookups.
type LookupObserver struct{}

// ObserveLookup records one lookup outcome.
func (LookupObserver) ObserveLookup(provider string, duration time.Duration, err error) {
	LookupDuration.WithLabelValues(provider).Observe(duration.Seconds())
	LookupsTotal.WithLabelValues(provider, Status(err)).Inc()
}

// Status classifies an error into a low cardinality label value.
func Status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case pkgerrors.IsNotFound(err):
		return "not_found"
	case pkgerrors.IsTimeout(err):
		return "timeout"
	case pkgerrors.IsRateLimited(err):
		return "rate_limited"
	case pkgerrors.IsAPIKeyError(err):
		return "unauthorized"
	case pkgerrors.IsNotImplemented(err):
		return "not_implemented"
	default:
		return "error"
	}
}

// CacheHit records a cache lookup result.
func CacheHit(hit bool) {
	if hit {
		CacheTotal.WithLabelValues("hit").Inc()
		return
	}
	CacheTotal.WithLabelValues("miss").Inc()
}
