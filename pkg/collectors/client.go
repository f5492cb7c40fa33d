// Package collectors provides the CollectorClient facade: it picks a
// collector by provider name, carries the provider's trust weight and offers
// a uniform search, details and lookup surface.
package collectors

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rgreinho/request-yo-racks-api/internal/collectors/registry"
	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/logging"
	"github.com/rgreinho/request-yo-racks-api/pkg/places"
)

// Client is a facade over one provider collector.
//
// It remembers the last search and details payloads so that
// RetrieveSearchSummary and ToBusinessInfo can be called without arguments.
// A Client is meant to be used by one goroutine at a time.
type Client struct {
	provider    string
	credentials places.Credentials
	weight      int
	transport   registry.Config
	logger      *zerolog.Logger

	collector   places.Collector
	lastSearch  places.Payload
	lastDetails places.Payload
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the provider API key.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.credentials.APIKey = key
	}
}

// WithOAuth2 sets an OAuth2 client credentials pair.
func WithOAuth2(clientID, clientSecret string) Option {
	return func(c *Client) {
		if clientID == "" {
			return
		}
		c.credentials.OAuth2 = &places.OAuth2{ClientID: clientID, ClientSecret: clientSecret}
	}
}

// WithCredentials sets all credentials at once.
func WithCredentials(creds places.Credentials) Option {
	return func(c *Client) {
		c.credentials = creds
	}
}

// WithWeight sets the trust weight stamped on records. Lower is more trusted.
func WithWeight(weight int) Option {
	return func(c *Client) {
		c.weight = weight
	}
}

// WithBaseURL overrides the provider API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.transport.BaseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client used by the collector.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.transport.HTTPClient = hc
	}
}

// WithLogger sets the logger. The default logger is used otherwise.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the named provider. Nothing is resolved
// until Authenticate is called.
func NewClient(provider string, opts ...Option) *Client {
	c := &Client{provider: provider}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Default()
	}
	return c
}

// Provider returns the provider name the client was created with.
func (c *Client) Provider() string {
	return c.provider
}

// Weight returns the configured weight.
func (c *Client) Weight() int {
	return c.weight
}

// Authenticated reports whether Authenticate succeeded.
func (c *Client) Authenticated() bool {
	return c.collector != nil
}

// Authenticate resolves the provider to a collector, authenticates it and
// hands it the configured weight.
func (c *Client) Authenticate(ctx context.Context) error {
	collector, err := registry.Get(c.provider, c.transport)
	if err != nil {
		return err
	}
	if err := collector.Authenticate(ctx, c.credentials); err != nil {
		return err
	}
	collector.SetWeight(c.weight)

	c.collector = collector
	c.lastSearch = nil
	c.lastDetails = nil
	return nil
}

func (c *Client) active(operation string) (places.Collector, error) {
	if c.collector == nil {
		return nil, fmt.Errorf("%s on %s: %w", operation, c.provider, errors.ErrNotAuthenticated)
	}
	return c.collector, nil
}

// SearchPlaces delegates to the active collector and keeps the payload.
func (c *Client) SearchPlaces(ctx context.Context, address, terms string, opts ...places.SearchOption) (places.Payload, error) {
	collector, err := c.active("search places")
	if err != nil {
		return nil, err
	}
	payload, err := collector.SearchPlaces(ctx, address, terms, opts...)
	if err != nil {
		return nil, err
	}
	c.lastSearch = payload
	return payload, nil
}

// SearchPlacesNearby delegates to the active collector and keeps the payload.
func (c *Client) SearchPlacesNearby(ctx context.Context, location string, opts ...places.SearchOption) (places.Payload, error) {
	collector, err := c.active("search places nearby")
	if err != nil {
		return nil, err
	}
	payload, err := collector.SearchPlacesNearby(ctx, location, opts...)
	if err != nil {
		return nil, err
	}
	c.lastSearch = payload
	return payload, nil
}

// GetPlaceDetails delegates to the active collector and keeps the payload.
func (c *Client) GetPlaceDetails(ctx context.Context, placeID string) (places.Payload, error) {
	collector, err := c.active("get place details")
	if err != nil {
		return nil, err
	}
	payload, err := collector.GetPlaceDetails(ctx, placeID)
	if err != nil {
		return nil, err
	}
	c.lastDetails = payload
	return payload, nil
}

// RetrieveSearchSummary extracts the result at index of the last search.
// It returns nil when nothing was searched or the index is out of range.
func (c *Client) RetrieveSearchSummary(index int) (*places.SearchSummary, error) {
	collector, err := c.active("retrieve search summary")
	if err != nil {
		return nil, err
	}
	return collector.RetrieveSearchSummary(c.lastSearch, index), nil
}

// ToBusinessInfo converts the last details payload, or returns nil.
func (c *Client) ToBusinessInfo() (*places.Record, error) {
	collector, err := c.active("to business info")
	if err != nil {
		return nil, err
	}
	return collector.ToBusinessInfo(c.lastDetails), nil
}

// Summaries extracts every result of the last search.
func (c *Client) Summaries() ([]places.SearchSummary, error) {
	collector, err := c.active("retrieve search summaries")
	if err != nil {
		return nil, err
	}
	var out []places.SearchSummary
	for i := 0; ; i++ {
		s := collector.RetrieveSearchSummary(c.lastSearch, i)
		if s == nil {
			return out, nil
		}
		out = append(out, *s)
	}
}

// LookupPlace resolves a place to a Record. With a placeID the details are
// fetched directly; otherwise name and address are both required and the
// first search hit is used.
func (c *Client) LookupPlace(ctx context.Context, placeID, name, address string) (places.Record, error) {
	start := time.Now()
	logger := c.logger.With().
		Str(logging.FieldProvider, c.provider).
		Str(logging.FieldOperation, "lookup_place").
		Logger()

	if _, err := c.active("lookup place"); err != nil {
		return places.Record{}, err
	}

	if placeID == "" {
		if name == "" || address == "" {
			return places.Record{}, errors.NewValidationError("place_id", nil, "a place ID or both a name and an address are required")
		}

		if _, err := c.SearchPlaces(ctx, address, name, places.WithLimit(constants.LookupSearchLimit)); err != nil {
			return places.Record{}, err
		}
		summary, _ := c.RetrieveSearchSummary(0)
		if summary == nil {
			return places.Record{}, errors.NewNotFoundError("place", name+", "+address)
		}
		placeID = summary.ID
		logger.Debug().Str(logging.FieldPlaceID, placeID).Str(logging.FieldName, summary.Name).Msg("Resolved place from search")
	}

	if _, err := c.GetPlaceDetails(ctx, placeID); err != nil {
		return places.Record{}, err
	}
	record, _ := c.ToBusinessInfo()
	if record == nil {
		return places.Record{}, errors.NewNotFoundError("place", placeID)
	}

	logger.Debug().
		Str(logging.FieldPlaceID, placeID).
		Int(logging.FieldWeight, record.Weight).
		Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()).
		Msg("Looked up place")
	return *record, nil
}
