// Package google implements the Google Places collector on top of the
// official Google Maps Go client.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/logging"
	"github.com/rgreinho/request-yo-racks-api/pkg/places"
)

// ProviderName is the registry name of this collector.
const ProviderName = constants.ProviderGoogle

// placesAPI is the subset of *maps.Client used by the collector.
type placesAPI interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
}

// placeResult holds the fields of a Places result mapped into a Record.
type placeResult struct {
	PlaceID              string `json:"place_id"`
	Name                 string `json:"name"`
	Vicinity             string `json:"vicinity"`
	FormattedAddress     string `json:"formatted_address"`
	FormattedPhoneNumber string `json:"formatted_phone_number"`
	Website              string `json:"website"`
	Geometry             struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// Collector implements places.Collector for Google Places.
type Collector struct {
	baseURL    string
	httpClient *http.Client
	newAPI     func(opts ...maps.ClientOption) (placesAPI, error)
	api        placesAPI
	weight     int
}

// Option configures a Collector.
type Option func(*Collector)

// WithBaseURL points the client library at another API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Collector) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used by the client library.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Collector) {
		c.httpClient = hc
	}
}

// New creates an unauthenticated Google collector.
func New(opts ...Option) *Collector {
	c := &Collector{
		newAPI: func(opts ...maps.ClientOption) (placesAPI, error) {
			return maps.NewClient(opts...)
		},
	}
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

// Authenticate builds the Google Maps client. Only API keys are supported.
func (c *Collector) Authenticate(ctx context.Context, creds places.Credentials) error {
	if creds.APIKey == "" {
		return errors.NewConfigError(ProviderName, "an API key is required", errors.ErrAPIKeyRequired)
	}

	opts := []maps.ClientOption{maps.WithAPIKey(creds.APIKey)}
	if c.baseURL != "" {
		opts = append(opts, maps.WithBaseURL(c.baseURL))
	}
	if c.httpClient != nil {
		// maps.WithHTTPClient replaces the client's Transport in place.
		hc := *c.httpClient
		opts = append(opts, maps.WithHTTPClient(&hc))
	}

	api, err := c.newAPI(opts...)
	if err != nil {
		return errors.NewConfigError(ProviderName, "cannot create the maps client", err)
	}
	c.api = api

	logging.FromContext(ctx).Debug().
		Str(logging.FieldProvider, ProviderName).
		Msg("Authenticated collector")
	return nil
}

// SearchPlaces runs a text search for "<address> <terms>". Results are
// trimmed to the limit option when it is set.
func (c *Collector) SearchPlaces(ctx context.Context, address, terms string, opts ...places.SearchOption) (places.Payload, error) {
	if c.api == nil {
		return nil, fmt.Errorf("%s search: %w", ProviderName, errors.ErrNotAuthenticated)
	}

	query := strings.TrimSpace(address + " " + terms)
	if query == "" {
		return nil, errors.NewValidationError("address", address, "is required")
	}

	o := places.ApplySearchOptions(opts...)
	req := &maps.TextSearchRequest{
		Query:    query,
		Radius:   o.Radius,
		Language: o.Extra["language"],
		Region:   o.Extra["region"],
	}

	resp, err := c.api.TextSearch(ctx, req)
	if err != nil {
		if isZeroResults(err) {
			return searchPayload(maps.PlacesSearchResponse{}, o.Limit)
		}
		return nil, wrapError("text search", err)
	}
	return searchPayload(resp, o.Limit)
}

// SearchPlacesNearby searches around a "lat,lng" location. The radius
// defaults to 250 meters.
func (c *Collector) SearchPlacesNearby(ctx context.Context, location string, opts ...places.SearchOption) (places.Payload, error) {
	if c.api == nil {
		return nil, fmt.Errorf("%s nearby search: %w", ProviderName, errors.ErrNotAuthenticated)
	}

	latlng, err := maps.ParseLatLng(location)
	if err != nil {
		return nil, errors.NewValidationError("location", location, "must be formatted as lat,lng")
	}

	o := places.ApplySearchOptions(opts...)
	radius := o.Radius
	if radius == 0 {
		radius = constants.DefaultNearbyRadius
	}

	req := &maps.NearbySearchRequest{
		Location: &latlng,
		Radius:   radius,
		Keyword:  o.Extra["keyword"],
		Language: o.Extra["language"],
		Name:     o.Extra["name"],
		Type:     maps.PlaceType(o.Extra["type"]),
	}

	resp, err := c.api.NearbySearch(ctx, req)
	if err != nil {
		if isZeroResults(err) {
			return searchPayload(maps.PlacesSearchResponse{}, o.Limit)
		}
		return nil, wrapError("nearby search", err)
	}
	return searchPayload(resp, o.Limit)
}

// GetPlaceDetails fetches a place by its Google place ID.
func (c *Collector) GetPlaceDetails(ctx context.Context, placeID string) (places.Payload, error) {
	if c.api == nil {
		return nil, fmt.Errorf("%s details: %w", ProviderName, errors.ErrNotAuthenticated)
	}
	if placeID == "" {
		return nil, errors.NewValidationError("place_id", placeID, "is required")
	}

	result, err := c.api.PlaceDetails(ctx, &maps.PlaceDetailsRequest{PlaceID: placeID})
	if err != nil {
		if isStatus(err, "NOT_FOUND") || isZeroResults(err) {
			return nil, errors.NewNotFoundError("place", placeID)
		}
		return nil, wrapError("place details", err)
	}
	return toPayload(map[string]any{"result": result})
}

// RetrieveSearchSummary returns the result at index of a search payload.
func (c *Collector) RetrieveSearchSummary(results places.Payload, index int) *places.SearchSummary {
	item := results.Item("results", index)
	if item == nil {
		return nil
	}

	var r placeResult
	if err := item.Decode(&r); err != nil {
		return nil
	}

	address := r.Vicinity
	if address == "" {
		address = r.FormattedAddress
	}
	return &places.SearchSummary{
		ID:      r.PlaceID,
		Name:    r.Name,
		Address: address,
	}
}

// ToBusinessInfo converts a details payload into a Record. The payload must
// carry its data under "result".
func (c *Collector) ToBusinessInfo(details places.Payload) *places.Record {
	result := details.Object("result")
	if len(result) == 0 {
		return nil
	}

	var r placeResult
	if err := result.Decode(&r); err != nil {
		return nil
	}
	return &places.Record{
		Name:      r.Name,
		Address:   r.FormattedAddress,
		Phone:     r.FormattedPhoneNumber,
		Website:   r.Website,
		Latitude:  r.Geometry.Location.Lat,
		Longitude: r.Geometry.Location.Lng,
		Weight:    c.weight,
	}
}

// searchPayload shapes a typed search response like the web service answer.
func searchPayload(resp maps.PlacesSearchResponse, limit int) (places.Payload, error) {
	results := resp.Results
	if results == nil {
		results = []maps.PlacesSearchResult{}
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	body := map[string]any{
		"results":           results,
		"html_attributions": resp.HTMLAttributions,
	}
	if resp.NextPageToken != "" {
		body["next_page_token"] = resp.NextPageToken
	}
	return toPayload(body)
}

// toPayload re-encodes library types into a generic JSON tree.
func toPayload(v any) (places.Payload, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WrapParse("json", ProviderName, err)
	}
	var p places.Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.WrapParse("json", ProviderName, err)
	}
	return p, nil
}
