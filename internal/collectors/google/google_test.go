package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"github.com/rgreinho/request-yo-racks-api/internal/collectors/testhelper"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/places"
)

// fakeAPI answers from testdata fixtures and records the last requests.
type fakeAPI struct {
	search  maps.PlacesSearchResponse
	details maps.PlaceDetailsResult
	err     error

	textReq    *maps.TextSearchRequest
	nearbyReq  *maps.NearbySearchRequest
	detailsReq *maps.PlaceDetailsRequest
}

func (f *fakeAPI) TextSearch(_ context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error) {
	f.textReq = r
	return f.search, f.err
}

func (f *fakeAPI) NearbySearch(_ context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error) {
	f.nearbyReq = r
	return f.search, f.err
}

func (f *fakeAPI) PlaceDetails(_ context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error) {
	f.detailsReq = r
	return f.details, f.err
}

func loadSearch(t *testing.T, file string) maps.PlacesSearchResponse {
	t.Helper()
	var body struct {
		Results []maps.PlacesSearchResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(testhelper.LoadTestdata(t, file), &body))
	return maps.PlacesSearchResponse{Results: body.Results}
}

func loadDetails(t *testing.T, file string) maps.PlaceDetailsResult {
	t.Helper()
	var body struct {
		Result maps.PlaceDetailsResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(testhelper.LoadTestdata(t, file), &body))
	return body.Result
}

func newTestCollector(t *testing.T, api *fakeAPI) *Collector {
	t.Helper()
	c := New()
	c.newAPI = func(...maps.ClientOption) (placesAPI, error) { return api, nil }
	require.NoError(t, c.Authenticate(context.Background(), places.Credentials{APIKey: "AIzaasdf"}))
	return c
}

func TestSearchPlaces(t *testing.T) {
	api := &fakeAPI{search: loadSearch(t, "search.json")}
	c := newTestCollector(t, api)

	payload, err := c.SearchPlaces(context.Background(), "Pyrmont Bay Wharf", "Rhythmboat Cruises", places.WithLimit(1))
	require.NoError(t, err)
	assert.Equal(t, "Pyrmont Bay Wharf Rhythmboat Cruises", api.textReq.Query)
	assert.Len(t, payload.List("results"), 1)

	summary := c.RetrieveSearchSummary(payload, 0)
	assert.Equal(t, &places.SearchSummary{
		ID:      "ChIJyWEHuEmuEmsRm9hTkapTCrk",
		Name:    "Rhythmboat Cruises",
		Address: "Pyrmont Bay Wharf Darling Dr, Sydney",
	}, summary)

	t.Run("no limit keeps every result", func(t *testing.T) {
		payload, err := c.SearchPlaces(context.Background(), "Sydney", "", places.WithOption("language", "en"))
		require.NoError(t, err)
		assert.Len(t, payload.List("results"), 4)
		assert.Equal(t, "Sydney", api.textReq.Query)
		assert.Equal(t, "en", api.textReq.Language)
		assert.Equal(t, "Australian Cruise Group", c.RetrieveSearchSummary(payload, 3).Name)
	})

	t.Run("empty query", func(t *testing.T) {
		_, err := c.SearchPlaces(context.Background(), "", "")
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestSearchPlacesNearby(t *testing.T) {
	api := &fakeAPI{search: loadSearch(t, "nearby.json")}
	c := newTestCollector(t, api)

	payload, err := c.SearchPlacesNearby(context.Background(), "-33.8670522,151.1957362")
	require.NoError(t, err)
	assert.Equal(t, uint(250), api.nearbyReq.Radius)
	assert.Equal(t, maps.LatLng{Lat: -33.8670522, Lng: 151.1957362}, *api.nearbyReq.Location)
	assert.Equal(t, "ChIJi6C1MxquEmsR9-c-3O48ykI", c.RetrieveSearchSummary(payload, 0).ID)

	_, err = c.SearchPlacesNearby(context.Background(), "-33.8670522,151.1957362", places.WithRadius(1000), places.WithOption("keyword", "cruise"))
	require.NoError(t, err)
	assert.Equal(t, uint(1000), api.nearbyReq.Radius)
	assert.Equal(t, "cruise", api.nearbyReq.Keyword)

	_, err = c.SearchPlacesNearby(context.Background(), "somewhere")
	assert.True(t, errors.IsValidationError(err))
}

func TestZeroResults(t *testing.T) {
	api := &fakeAPI{err: fmt.Errorf("maps: ZERO_RESULTS - ")}
	c := newTestCollector(t, api)

	payload, err := c.SearchPlaces(context.Background(), "nowhere", "")
	require.NoError(t, err)
	assert.True(t, payload.Has("results"))
	assert.Nil(t, c.RetrieveSearchSummary(payload, 0))

	_, err = c.GetPlaceDetails(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestGetPlaceDetails(t *testing.T) {
	api := &fakeAPI{details: loadDetails(t, "details.json")}
	c := newTestCollector(t, api)

	payload, err := c.GetPlaceDetails(context.Background(), "ChIJN1t_tDeuEmsRUsoyG83frY4")
	require.NoError(t, err)
	assert.Equal(t, "ChIJN1t_tDeuEmsRUsoyG83frY4", api.detailsReq.PlaceID)
	require.True(t, payload.Has("result"))

	record := c.ToBusinessInfo(payload)
	require.NotNil(t, record)
	assert.Equal(t, places.Record{
		Name:      "Google",
		Address:   "5, 48 Pirrama Rd, Pyrmont NSW 2009, Australia",
		Latitude:  -33.866651,
		Longitude: 151.195827,
		Phone:     "(02) 9374 4000",
		Website:   "https://www.google.com.au/about/careers/locations/sydney/",
		Weight:    0,
	}, *record)

	_, err = c.GetPlaceDetails(context.Background(), "")
	assert.True(t, errors.IsValidationError(err))
}

func TestUpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"denied", fmt.Errorf("maps: REQUEST_DENIED - The provided API key is invalid."), errors.ErrAPIKeyInvalid},
		{"quota", fmt.Errorf("maps: OVER_QUERY_LIMIT - "), errors.ErrRateLimited},
		{"unknown", fmt.Errorf("maps: UNKNOWN_ERROR - "), errors.ErrProviderUnavailable},
		{"deadline", fmt.Errorf("request: %w", context.DeadlineExceeded), errors.ErrTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCollector(t, &fakeAPI{err: tt.err})
			_, err := c.SearchPlaces(context.Background(), "Sydney", "")
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("unclassified", func(t *testing.T) {
		c := newTestCollector(t, &fakeAPI{err: fmt.Errorf("connection reset")})
		_, err := c.GetPlaceDetails(context.Background(), "x")
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, ProviderName, apiErr.Provider)
		assert.Zero(t, apiErr.StatusCode)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		err := New().Authenticate(context.Background(), places.Credentials{
			OAuth2: &places.OAuth2{ClientID: "id", ClientSecret: "secret"},
		})
		assert.True(t, errors.IsConfigError(err))
		assert.ErrorIs(t, err, errors.ErrAPIKeyRequired)
	})

	t.Run("real client", func(t *testing.T) {
		c := New(WithBaseURL("http://127.0.0.1:1"))
		require.NoError(t, c.Authenticate(context.Background(), places.Credentials{APIKey: "AIzaasdf"}))
		assert.NotNil(t, c.api)
	})

	t.Run("shared http client is not modified", func(t *testing.T) {
		hc := &http.Client{Timeout: time.Second}
		c := New(WithBaseURL("http://127.0.0.1:1"), WithHTTPClient(hc))
		require.NoError(t, c.Authenticate(context.Background(), places.Credentials{APIKey: "AIzaasdf"}))
		assert.Nil(t, hc.Transport)
	})

	t.Run("client construction failure", func(t *testing.T) {
		c := New()
		c.newAPI = func(...maps.ClientOption) (placesAPI, error) { return nil, fmt.Errorf("boom") }
		err := c.Authenticate(context.Background(), places.Credentials{APIKey: "AIzaasdf"})
		assert.True(t, errors.IsConfigError(err))
	})
}

func TestNotAuthenticated(t *testing.T) {
	c := New()
	ctx := context.Background()

	_, err := c.SearchPlaces(ctx, "Sydney", "")
	assert.True(t, errors.IsNotAuthenticated(err))
	_, err = c.SearchPlacesNearby(ctx, "1,2")
	assert.True(t, errors.IsNotAuthenticated(err))
	_, err = c.GetPlaceDetails(ctx, "x")
	assert.True(t, errors.IsNotAuthenticated(err))
}

func TestStateGating(t *testing.T) {
	c := New()

	assert.Nil(t, c.RetrieveSearchSummary(nil, 0))
	assert.Nil(t, c.RetrieveSearchSummary(places.Payload{"fake_key": "fake_value"}, 0))
	assert.Nil(t, c.ToBusinessInfo(nil))
	assert.Nil(t, c.ToBusinessInfo(places.Payload{"fake_key": "fake_value"}))
	assert.Nil(t, c.ToBusinessInfo(places.Payload{"result": map[string]any{}}))

	c.SetWeight(3)
	record := c.ToBusinessInfo(testhelper.LoadPayload(t, "details.json"))
	require.NotNil(t, record)
	assert.Equal(t, 3, record.Weight)
	assert.Equal(t, "-33.866651,151.195827", record.Geolocation())
}

func TestRetrieveSearchSummaryFallsBackToFormattedAddress(t *testing.T) {
	payload := places.Payload{"results": []any{
		map[string]any{"place_id": "p", "name": "n", "formatted_address": "1 Main St"},
	}}
	assert.Equal(t, "1 Main St", New().RetrieveSearchSummary(payload, 0).Address)
}
