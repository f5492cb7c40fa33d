// Package yelp implements the REST-based Yelp Fusion collector.
package yelp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/rgreinho/request-yo-racks-api/internal/transport"
	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/logging"
	"github.com/rgreinho/request-yo-racks-api/pkg/places"
)

// ProviderName is the registry name of this collector.
const ProviderName = constants.ProviderYelp

// DefaultBaseURL is the Yelp API root.
const DefaultBaseURL = "https://api.yelp.com/"

const (
	searchRoute  = "v3/businesses/search"
	detailsRoute = "v3/businesses/"
	tokenRoute   = "oauth2/token"
)

// Yelp response structures. Only the fields mapped into a Record are kept.
type business struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	Categories  []category  `json:"categories"`
	Coordinates coordinates `json:"coordinates"`
	Location    location    `json:"location"`
}

type category struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

type coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type location struct {
	DisplayAddress []string `json:"display_address"`
}

// Collector implements places.Collector for Yelp.
type Collector struct {
	baseURL    string
	httpClient *http.Client
	transport  *transport.Client
	weight     int
}

// Option configures a Collector.
type Option func(*Collector)

// WithBaseURL points the collector at another API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Collector) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client used for API and token requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Collector) {
		c.httpClient = hc
	}
}

// New creates an unauthenticated Yelp collector.
func New(opts ...Option) *Collector {
	c := &Collector{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the provider name.
func (c *Collector) Provider() string {
	return ProviderName
}

// Weight returns the weight stamped on produced records.
func (c *Collector) Weight() int {
	return c.weight
}

// SetWeight sets the weight stamped on produced records.
func (c *Collector) SetWeight(weight int) {
	c.weight = weight
}

// Authenticate prepares the authorization header. An API key is sent as a
// bearer token; an OAuth2 client credentials pair is exchanged for a token
// first.
func (c *Collector) Authenticate(ctx context.Context, creds places.Credentials) error {
	var auth transport.Authenticator

	switch {
	case creds.OAuth2 != nil && creds.OAuth2.ClientID != "":
		src, err := c.exchangeToken(ctx, creds.OAuth2)
		if err != nil {
			return err
		}
		auth = transport.TokenSourceAuth{Source: src}
	case creds.APIKey != "":
		auth = transport.BearerAuth{Token: creds.APIKey}
	default:
		return errors.NewConfigError(ProviderName, "an API key or OAuth2 client credentials are required", errors.ErrAPIKeyRequired)
	}

	opts := []transport.Option{transport.WithHeader("cache-control", "no-cache")}
	if c.httpClient != nil {
		opts = append(opts, transport.WithHTTPClient(c.httpClient))
	}
	c.transport = transport.New(ProviderName, c.baseURL, auth, opts...)

	logging.FromContext(ctx).Debug().
		Str(logging.FieldProvider, ProviderName).
		Str("method", auth.Method()).
		Msg("Authenticated collector")
	return nil
}

// exchangeToken runs the client credentials flow and returns a caching token
// source. The first token is fetched eagerly so bad credentials fail here.
func (c *Collector) exchangeToken(ctx context.Context, creds *places.OAuth2) (oauth2.TokenSource, error) {
	cfg := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     strings.TrimRight(c.baseURL, "/") + "/" + tokenRoute,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	tokenCtx := context.WithoutCancel(ctx)
	if c.httpClient != nil {
		tokenCtx = context.WithValue(tokenCtx, oauth2.HTTPClient, c.httpClient)
	}

	src := cfg.TokenSource(tokenCtx)
	if _, err := src.Token(); err != nil {
		return nil, errors.NewAuthenticationError(ProviderName, "oauth2", "client credentials exchange failed", err)
	}
	return src, nil
}

// SearchPlaces searches businesses around address. Only the part of terms
// before the first " - " is sent, so branch names like
// "Epoch Coffee - North Loop" still match.
func (c *Collector) SearchPlaces(ctx context.Context, address, terms string, opts ...places.SearchOption) (places.Payload, error) {
	if c.transport == nil {
		return nil, fmt.Errorf("%s search: %w", ProviderName, errors.ErrNotAuthenticated)
	}
	if address == "" {
		return nil, errors.NewValidationError("address", address, "is required")
	}

	o := places.ApplySearchOptions(opts...)

	query := url.Values{}
	query.Set("location", address)
	if term := SanitizeTerms(terms); term != "" {
		query.Set("term", term)
	}
	if o.Limit > 0 {
		query.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Radius > 0 {
		query.Set("radius", strconv.FormatUint(uint64(o.Radius), 10))
	}
	for k, v := range o.Extra {
		query.Set(k, v)
	}

	var payload places.Payload
	if err := c.transport.GetJSON(ctx, searchRoute, query, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// SearchPlacesNearby is not offered by this collector.
func (c *Collector) SearchPlacesNearby(_ context.Context, _ string, _ ...places.SearchOption) (places.Payload, error) {
	return nil, errors.NotImplemented(ProviderName, "nearby search")
}

// GetPlaceDetails fetches a business by its Yelp ID.
func (c *Collector) GetPlaceDetails(ctx context.Context, placeID string) (places.Payload, error) {
	if c.transport == nil {
		return nil, fmt.Errorf("%s details: %w", ProviderName, errors.ErrNotAuthenticated)
	}
	if placeID == "" {
		return nil, errors.NewValidationError("place_id", placeID, "is required")
	}

	var payload places.Payload
	if err := c.transport.GetJSON(ctx, detailsRoute+url.PathEscape(placeID), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// RetrieveSearchSummary returns the business at index of a search payload.
func (c *Collector) RetrieveSearchSummary(results places.Payload, index int) *places.SearchSummary {
	item := results.Item("businesses", index)
	if item == nil {
		return nil
	}

	var b business
	if err := item.Decode(&b); err != nil {
		return nil
	}
	return &places.SearchSummary{
		ID:      b.ID,
		Name:    b.Name,
		Address: strings.Join(b.Location.DisplayAddress, " "),
	}
}

// ToBusinessInfo converts a business payload into a Record.
func (c *Collector) ToBusinessInfo(details places.Payload) *places.Record {
	if len(details) == 0 {
		return nil
	}

	var b business
	if err := details.Decode(&b); err != nil {
		return nil
	}
	return c.convertToRecord(b)
}

func (c *Collector) convertToRecord(b business) *places.Record {
	titles := make([]string, 0, len(b.Categories))
	for _, cat := range b.Categories {
		titles = append(titles, cat.Title)
	}

	return &places.Record{
		Name:      b.Name,
		Address:   strings.Join(b.Location.DisplayAddress, " "),
		Phone:     b.Phone,
		Latitude:  b.Coordinates.Latitude,
		Longitude: b.Coordinates.Longitude,
		Category:  strings.Join(titles, ", "),
		Weight:    c.weight,
	}
}

// SanitizeTerms keeps the part of a search term before the first " - ".
func SanitizeTerms(terms string) string {
	before, _, _ := strings.Cut(terms, " - ")
	return strings.TrimSpace(before)
}
