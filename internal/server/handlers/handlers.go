// Package handlers provides the HTTP handlers of the place API.
package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rgreinho/request-yo-racks-api/internal/server/cache"
	"github.com/rgreinho/request-yo-racks-api/pkg/places"
	"github.com/rgreinho/request-yo-racks-api/pkg/reconcile"
)

// Collector merges a place from every configured provider.
type Collector interface {
	CollectResult(ctx context.Context, q reconcile.Query) (*reconcile.Result, error)
	Providers() []string
}

// NearbyFunc searches places around a "lat,lng" location.
type NearbyFunc func(ctx context.Context, location string, opts ...places.SearchOption) (places.Payload, error)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	collector Collector
	nearby    NearbyFunc
	cache     *cache.Cache
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance. nearby may be nil when no provider
// offers nearby search.
func New(collector Collector, nearby NearbyFunc, c *cache.Cache, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		collector: collector,
		nearby:    nearby,
		cache:     c,
		logger:    logger,
		startTime: time.Now(),
	}
}
