package yelp

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgreinho/request-yo-racks-api/internal/collectors/testhelper"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/places"
)

func authenticated(t *testing.T, baseURL string) *Collector {
	t.Helper()
	c := New(WithBaseURL(baseURL))
	require.NoError(t, c.Authenticate(context.Background(), places.Credentials{APIKey: "test-key"}))
	return c
}

func TestSearchPlaces(t *testing.T) {
	var got *http.Request
	srv := testhelper.NewServer(t, func(r *http.Request) { got = r },
		testhelper.Route{Path: "/v3/businesses/search", File: "search.json"},
	)
	c := authenticated(t, srv.URL)

	payload, err := c.SearchPlaces(context.Background(), "375 Valencia St, San Francisco", "Four Barrel Coffee - Mission",
		places.WithLimit(1), places.WithOption("sort_by", "distance"))
	require.NoError(t, err)
	assert.True(t, payload.Has("businesses"))

	assert.Equal(t, "Bearer test-key", got.Header.Get("Authorization"))
	assert.Equal(t, "no-cache", got.Header.Get("Cache-Control"))
	assert.Equal(t, url.Values{
		"location": {"375 Valencia St, San Francisco"},
		"term":     {"Four Barrel Coffee"},
		"limit":    {"1"},
		"sort_by":  {"distance"},
	}, got.URL.Query())
}

func TestSearchPlacesWithoutTerms(t *testing.T) {
	var got *http.Request
	srv := testhelper.NewServer(t, func(r *http.Request) { got = r },
		testhelper.Route{Path: "/v3/businesses/search", File: "search.json"},
	)
	c := authenticated(t, srv.URL)

	_, err := c.SearchPlaces(context.Background(), "Austin, TX", "")
	require.NoError(t, err)
	assert.Equal(t, url.Values{"location": {"Austin, TX"}}, got.URL.Query())

	_, err = c.SearchPlaces(context.Background(), "", "coffee")
	assert.True(t, errors.IsValidationError(err))
}

func TestGetPlaceDetails(t *testing.T) {
	srv := testhelper.NewServer(t, nil,
		testhelper.Route{Path: "/v3/businesses/gary-danko-san-francisco", File: "details.json"},
	)
	c := authenticated(t, srv.URL)

	payload, err := c.GetPlaceDetails(context.Background(), "gary-danko-san-francisco")
	require.NoError(t, err)

	record := c.ToBusinessInfo(payload)
	require.NotNil(t, record)
	assert.Equal(t, places.Record{
		Name:      "Gary Danko",
		Address:   "800 N Point St San Francisco, CA 94109",
		Latitude:  37.80587,
		Longitude: -122.42058,
		Category:  "American (New)",
		Phone:     "+14152520800",
		Weight:    0,
	}, *record)

	t.Run("unknown business", func(t *testing.T) {
		_, err := c.GetPlaceDetails(context.Background(), "nope")
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, ProviderName, apiErr.Provider)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := c.GetPlaceDetails(context.Background(), "")
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestUpstreamError(t *testing.T) {
	srv := testhelper.NewServer(t, nil,
		testhelper.Route{Path: "/v3/businesses/search", Status: http.StatusInternalServerError},
	)
	c := authenticated(t, srv.URL)

	_, err := c.SearchPlaces(context.Background(), "Austin, TX", "coffee")
	assert.True(t, errors.IsProviderUnavailable(err))
}

func TestSearchPlacesNearby(t *testing.T) {
	c := New()
	_, err := c.SearchPlacesNearby(context.Background(), "123.456,789.012")
	assert.True(t, errors.IsNotImplemented(err))
}

func TestNotAuthenticated(t *testing.T) {
	c := New()

	_, err := c.SearchPlaces(context.Background(), "Austin, TX", "coffee")
	assert.True(t, errors.IsNotAuthenticated(err))

	_, err = c.GetPlaceDetails(context.Background(), "x")
	assert.True(t, errors.IsNotAuthenticated(err))
}

func TestAuthenticate(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		err := New().Authenticate(context.Background(), places.Credentials{})
		assert.True(t, errors.IsConfigError(err))
		assert.ErrorIs(t, err, errors.ErrAPIKeyRequired)
	})

	t.Run("oauth2 is preferred over the api key", func(t *testing.T) {
		var form url.Values
		var searchAuth string
		srv := testhelper.NewServer(t, func(r *http.Request) {
			switch r.URL.Path {
			case "/oauth2/token":
				_ = r.ParseForm()
				form = r.PostForm
			case "/v3/businesses/search":
				searchAuth = r.Header.Get("Authorization")
			}
		},
			testhelper.Route{Path: "/oauth2/token", File: "token.json"},
			testhelper.Route{Path: "/v3/businesses/search", File: "search.json"},
		)

		c := New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
		err := c.Authenticate(context.Background(), places.Credentials{
			APIKey: "ignored",
			OAuth2: &places.OAuth2{ClientID: "client", ClientSecret: "secret"},
		})
		require.NoError(t, err)
		assert.Equal(t, "client_credentials", form.Get("grant_type"))
		assert.Equal(t, "client", form.Get("client_id"))
		assert.Equal(t, "secret", form.Get("client_secret"))

		_, err = c.SearchPlaces(context.Background(), "Austin, TX", "")
		require.NoError(t, err)
		assert.Equal(t, "Bearer oauth-access-token", searchAuth)
	})

	t.Run("failed token exchange", func(t *testing.T) {
		srv := testhelper.NewServer(t, nil,
			testhelper.Route{Path: "/oauth2/token", Status: http.StatusUnauthorized},
		)
		c := New(WithBaseURL(srv.URL))
		err := c.Authenticate(context.Background(), places.Credentials{
			OAuth2: &places.OAuth2{ClientID: "client", ClientSecret: "bad"},
		})
		var authErr *errors.AuthenticationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "oauth2", authErr.Method)
	})

	t.Run("idempotent", func(t *testing.T) {
		c := New()
		creds := places.Credentials{APIKey: "k"}
		require.NoError(t, c.Authenticate(context.Background(), creds))
		require.NoError(t, c.Authenticate(context.Background(), creds))
	})
}

func TestRetrieveSearchSummary(t *testing.T) {
	c := New()

	t.Run("no search yet", func(t *testing.T) {
		assert.Nil(t, c.RetrieveSearchSummary(nil, 0))
	})

	t.Run("missing businesses key", func(t *testing.T) {
		assert.Nil(t, c.RetrieveSearchSummary(places.Payload{"fake_key": "fake_value"}, 0))
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Nil(t, c.RetrieveSearchSummary(places.Payload{"businesses": []any{}}, 0))
	})

	t.Run("first result", func(t *testing.T) {
		got := c.RetrieveSearchSummary(testhelper.LoadPayload(t, "search.json"), 0)
		assert.Equal(t, &places.SearchSummary{
			ID:      "four-barrel-coffee-san-francisco",
			Name:    "Four Barrel Coffee",
			Address: "",
		}, got)
	})

	t.Run("explicit index", func(t *testing.T) {
		payload := testhelper.LoadPayload(t, "search_epoch.json")
		got := c.RetrieveSearchSummary(payload, 1)
		assert.Equal(t, &places.SearchSummary{
			ID:      "epoch-coffee-austin-2",
			Name:    "Epoch Coffee",
			Address: "2700 S Lamar Blvd Austin, TX 78704",
		}, got)
		assert.Nil(t, c.RetrieveSearchSummary(payload, 2))
		assert.Nil(t, c.RetrieveSearchSummary(payload, -1))
	})
}

func TestToBusinessInfo(t *testing.T) {
	c := New()

	assert.Nil(t, c.ToBusinessInfo(nil))
	assert.Nil(t, c.ToBusinessInfo(places.Payload{}))

	c.SetWeight(10)
	record := c.ToBusinessInfo(testhelper.LoadPayload(t, "details_epoch.json"))
	require.NotNil(t, record)
	assert.Equal(t, "Coffee & Tea, Cafes", record.Category)
	assert.Equal(t, "221 W N Loop Blvd Austin, TX 78751", record.Address)
	assert.Equal(t, "30.318725,-97.724243", record.Geolocation())
	assert.Equal(t, 10, record.Weight)
	assert.Equal(t, 10, c.Weight())
}

func TestSanitizeTerms(t *testing.T) {
	tests := map[string]string{
		"":                          "",
		"coffee":                    "coffee",
		"Epoch Coffee - North Loop": "Epoch Coffee",
		"A - B - C":                 "A",
		"Anderson-Mill":             "Anderson-Mill",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeTerms(in), in)
	}
}
