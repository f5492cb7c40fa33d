package places

import "context"

// Collector is a provider adapter. It authenticates against one directory,
// runs searches and detail fetches, and converts the raw payloads into the
// common Record shape.
//
// Search and detail calls return the raw payload; RetrieveSearchSummary and
// ToBusinessInfo interpret a payload passed back in. A nil payload stands
// for "no call made yet" and yields a nil result.
type Collector interface {
	// Provider returns the lower-case provider name.
	Provider() string

	// Authenticate establishes the session. Calling it again replaces it.
	Authenticate(ctx context.Context, creds Credentials) error

	// SearchPlaces runs a free-text search around address, optionally
	// narrowed by terms (a category or business name).
	SearchPlaces(ctx context.Context, address, terms string, opts ...SearchOption) (Payload, error)

	// SearchPlacesNearby searches around a "lat,lng" location.
	SearchPlacesNearby(ctx context.Context, location string, opts ...SearchOption) (Payload, error)

	// GetPlaceDetails fetches the full record for a provider place ID.
	GetPlaceDetails(ctx context.Context, placeID string) (Payload, error)

	// RetrieveSearchSummary extracts the result at index, or nil.
	RetrieveSearchSummary(results Payload, index int) *SearchSummary

	// ToBusinessInfo converts a details payload, or returns nil. The record
	// carries the collector's current weight.
	ToBusinessInfo(details Payload) *Record

	Weight() int
	SetWeight(weight int)
}

// Credentials are the authentication parameters of a collector. When both
// are set, OAuth2 is preferred over the API key.
type Credentials struct {
	APIKey string
	OAuth2 *OAuth2
}

// OAuth2 is a client credentials pair.
type OAuth2 struct {
	ClientID     string
	ClientSecret string
}

// IsEmpty reports whether no credential is set.
func (c Credentials) IsEmpty() bool {
	return c.APIKey == "" && (c.OAuth2 == nil || c.OAuth2.ClientID == "")
}

// SearchOptions holds the provider-agnostic search settings.
type SearchOptions struct {
	// Limit caps the number of results. Zero lets the provider decide.
	Limit int

	// Radius is the nearby search radius in meters.
	Radius uint

	// Extra are passed to the provider untouched.
	Extra map[string]string
}

// SearchOption configures a search.
type SearchOption func(*SearchOptions)

// WithLimit caps the number of results.
func WithLimit(n int) SearchOption {
	return func(o *SearchOptions) {
		o.Limit = n
	}
}

// WithRadius sets the nearby search radius in meters.
func WithRadius(meters uint) SearchOption {
	return func(o *SearchOptions) {
		o.Radius = meters
	}
}

// WithOption passes a provider-specific parameter through.
func WithOption(key, value string) SearchOption {
	return func(o *SearchOptions) {
		if o.Extra == nil {
			o.Extra = make(map[string]string)
		}
		o.Extra[key] = value
	}
}

// ApplySearchOptions folds opts into a SearchOptions value.
func ApplySearchOptions(opts ...SearchOption) SearchOptions {
	var o SearchOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
