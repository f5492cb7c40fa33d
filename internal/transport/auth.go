package transport

import (
	"net/http"

	"golang.org/x/oauth2"
)

// Authenticator applies credentials to outgoing requests.
type Authenticator interface {
	Apply(req *http.Request) error
	Method() string
}

// NoAuth sends requests without credentials.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (NoAuth) Apply(*http.Request) error { return nil }

// Method implements the Authenticator interface for NoAuth.
func (NoAuth) Method() string { return "none" }

// BearerAuth sends a static token in the Authorization header.
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a BearerAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+a.Token)
	return nil
}

// Method implements the Authenticator interface for BearerAuth.
func (BearerAuth) Method() string { return "api_key" }

// HeaderAuth sends the key in a custom header.
type HeaderAuth struct {
	Header string
	Value  string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a HeaderAuth) Apply(req *http.Request) error {
	req.Header.Set(a.Header, a.Value)
	return nil
}

// Method implements the Authenticator interface for HeaderAuth.
func (HeaderAuth) Method() string { return "api_key" }

// QueryAuth sends the key as a query parameter.
type QueryAuth struct {
	Param string
	Value string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a QueryAuth) Apply(req *http.Request) error {
	if req.URL == nil {
		return nil
	}
	query := req.URL.Query()
	query.Set(a.Param, a.Value)
	req.URL.RawQuery = query.Encode()
	return nil
}

// Method implements the Authenticator interface for QueryAuth.
func (QueryAuth) Method() string { return "api_key" }

// TokenSourceAuth sends a bearer token obtained from an OAuth2 token source.
// The source is expected to cache and refresh tokens itself.
type TokenSourceAuth struct {
	Source oauth2.TokenSource
}

// Apply implements the Authenticator interface for TokenSourceAuth.
func (a TokenSourceAuth) Apply(req *http.Request) error {
	token, err := a.Source.Token()
	if err != nil {
		return err
	}
	token.SetAuthHeader(req)
	return nil
}

// Method implements the Authenticator interface for TokenSourceAuth.
func (TokenSourceAuth) Method() string { return "oauth2" }
