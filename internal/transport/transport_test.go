package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	pkgerrors "github.com/rgreinho/request-yo-racks-api/pkg/errors"
)

func TestAuthenticators(t *testing.T) {
	newReq := func() *http.Request {
		req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/v3/x?a=1", nil)
		return req
	}

	t.Run("none", func(t *testing.T) {
		req := newReq()
		require.NoError(t, NoAuth{}.Apply(req))
		assert.Empty(t, req.Header)
	})

	t.Run("bearer", func(t *testing.T) {
		req := newReq()
		require.NoError(t, BearerAuth{Token: "secret"}.Apply(req))
		assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
	})

	t.Run("header", func(t *testing.T) {
		req := newReq()
		require.NoError(t, HeaderAuth{Header: "x-api-key", Value: "secret"}.Apply(req))
		assert.Equal(t, "secret", req.Header.Get("x-api-key"))
		assert.Empty(t, req.Header.Get("Authorization"))
	})

	t.Run("query", func(t *testing.T) {
		req := newReq()
		require.NoError(t, QueryAuth{Param: "key", Value: "secret"}.Apply(req))
		assert.Equal(t, "secret", req.URL.Query().Get("key"))
		assert.Equal(t, "1", req.URL.Query().Get("a"))
	})

	t.Run("token source", func(t *testing.T) {
		req := newReq()
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok", TokenType: "Bearer"})
		require.NoError(t, TokenSourceAuth{Source: src}.Apply(req))
		assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
		assert.Equal(t, "oauth2", TokenSourceAuth{}.Method())
	})
}

type failingSource struct{}

func (failingSource) Token() (*oauth2.Token, error) { return nil, errors.New("invalid_client") }

func TestClientGetJSON(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		switch r.URL.Path {
		case "/v3/ok":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"Gary Danko"}`))
		case "/v3/broken":
			_, _ = w.Write([]byte(`{"name":`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":"BUSINESS_NOT_FOUND"}}`))
		}
	}))
	defer srv.Close()

	client := New("yelp", srv.URL, BearerAuth{Token: "k"}, WithHeader("cache-control", "no-cache"))
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var out map[string]any
		require.NoError(t, client.GetJSON(ctx, "v3/ok", url.Values{"term": {"coffee"}}, &out))
		assert.Equal(t, "Gary Danko", out["name"])
		assert.Equal(t, "Bearer k", gotReq.Header.Get("Authorization"))
		assert.Equal(t, "no-cache", gotReq.Header.Get("cache-control"))
		assert.Equal(t, "application/json", gotReq.Header.Get("Accept"))
		assert.Equal(t, "coffee", gotReq.URL.Query().Get("term"))
	})

	t.Run("status error", func(t *testing.T) {
		var out map[string]any
		err := client.GetJSON(ctx, "/v3/missing", nil, &out)
		var apiErr *pkgerrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "yelp", apiErr.Provider)
		assert.Equal(t, "/v3/missing", apiErr.Endpoint)
		assert.Contains(t, apiErr.Message, "BUSINESS_NOT_FOUND")
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("malformed body", func(t *testing.T) {
		var out map[string]any
		err := client.GetJSON(ctx, "v3/broken", nil, &out)
		var parseErr *pkgerrors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "json", parseErr.Format)
	})

	t.Run("credential failure", func(t *testing.T) {
		bad := New("yelp", srv.URL, TokenSourceAuth{Source: failingSource{}})
		_, err := bad.Get(ctx, "v3/ok", nil)
		var authErr *pkgerrors.AuthenticationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "oauth2", authErr.Method)
	})

	t.Run("unreachable", func(t *testing.T) {
		dead := New("yelp", "http://127.0.0.1:1", nil)
		_, err := dead.Get(ctx, "v3/ok", nil)
		var apiErr *pkgerrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Zero(t, apiErr.StatusCode)
	})
}

func TestNewNormalizesBaseURL(t *testing.T) {
	assert.Equal(t, "https://api.yelp.com/", New("yelp", "https://api.yelp.com", nil).BaseURL())
	assert.Equal(t, "https://api.yelp.com/", New("yelp", "https://api.yelp.com///", nil).BaseURL())
}
