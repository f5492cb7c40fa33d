// Package registry maps provider names to collector constructors.
// It is separate from the collector packages to avoid circular dependencies.
package registry

import (
	"net/http"
	"sort"
	"strings"

	"github.com/rgreinho/request-yo-racks-api/internal/collectors/google"
	"github.com/rgreinho/request-yo-racks-api/internal/collectors/yelp"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/places"
)

// Config carries the transport settings handed to a new collector.
type Config struct {
	// BaseURL overrides the provider API root. Empty keeps the default.
	BaseURL string

	// HTTPClient overrides the HTTP client. Nil keeps the default.
	HTTPClient *http.Client
}

// registry maps provider names to their collector creation functions.
var registry = map[string]func(Config) places.Collector{
	google.ProviderName: func(cfg Config) places.Collector {
		return google.New(google.WithBaseURL(cfg.BaseURL), google.WithHTTPClient(cfg.HTTPClient))
	},
	yelp.ProviderName: func(cfg Config) places.Collector {
		return yelp.New(yelp.WithBaseURL(cfg.BaseURL), yelp.WithHTTPClient(cfg.HTTPClient))
	},
}

// Get creates a NEW collector for the named provider. Names are
// case-insensitive.
func Get(name string, cfg Config) (places.Collector, error) {
	newCollector, ok := registry[normalize(name)]
	if !ok {
		return nil, errors.NewUnsupportedProviderError(name, List())
	}
	return newCollector(cfg), nil
}

// Has checks if a provider name has a collector implementation.
func Has(name string) bool {
	_, ok := registry[normalize(name)]
	return ok
}

// List returns the supported provider names in sorted order.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
