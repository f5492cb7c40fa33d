// Package transport is the HTTP layer shared by REST-based collectors. It
// applies authentication, sets common headers, and turns provider answers
// into decoded payloads or typed errors.
package transport

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client performs authenticated requests against one provider API.
type Client struct {
	http     *http.Client
	auth     Authenticator
	baseURL  string
	provider string
	headers  http.Header
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// New creates a client for provider rooted at baseURL.
func New(provider, baseURL string, auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = NoAuth{}
	}
	c := &Client{
		http:     &http.Client{Timeout: DefaultHTTPTimeout},
		auth:     auth,
		baseURL:  strings.TrimRight(baseURL, "/") + "/",
		provider: provider,
		headers:  make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the root URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs an HTTP request with authentication and common headers applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := c.auth.Apply(req); err != nil {
		return nil, &errors.AuthenticationError{
			Provider: c.provider,
			Method:   c.auth.Method(),
			Message:  "failed to apply credentials",
			Err:      err,
		}
	}

	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)

	logger := logging.FromContext(req.Context())
	event := logger.Debug().
		Str(logging.FieldProvider, c.provider).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int64(logging.FieldDurationMS, time.Since(start).Milliseconds())
	if err != nil {
		event.Err(err).Msg("Provider request failed")
		return nil, errors.WrapAPI(c.provider, 0, err)
	}
	event.Int(logging.FieldStatus, resp.StatusCode).Msg("Provider request")

	return resp, nil
}

// Get performs a GET request on path (relative to the base URL).
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	endpoint := c.baseURL + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.WrapValidation("url", err)
	}
	return c.Do(req)
}

// GetJSON performs a GET request and decodes the JSON answer into target.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, target any) error {
	resp, err := c.Get(ctx, path, query)
	if err != nil {
		return err
	}
	return DecodeResponse(ctx, resp, c.provider, target)
}
