package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rgreinho/request-yo-racks-api/internal/server/response"
)

// AuthConfig protects the place endpoints with a shared API key. Provider
// lookups spend the operator's provider quota, so exposed deployments can
// require the key.
type AuthConfig struct {
	APIKey      string
	HeaderName  string
	PublicPaths []string
}

// Auth rejects requests without the configured key. An empty APIKey
// disables the check.
func Auth(config AuthConfig, logger *zerolog.Logger) func(http.Handler) http.Handler {
	if config.HeaderName == "" {
		config.HeaderName = "X-API-Key"
	}

	return func(next http.Handler) http.Handler {
		if config.APIKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path, config.PublicPaths) {
				next.ServeHTTP(w, r)
				return
			}

			key := extractAPIKey(r, config.HeaderName)
			if subtle.ConstantTimeCompare([]byte(key), []byte(config.APIKey)) != 1 {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Bool("key_provided", key != "").
					Msg("Authentication failed")
				response.Unauthorized(w, "Invalid or missing API key", "Provide a valid API key in the "+config.HeaderName+" header")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string, publicPaths []string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}

// extractAPIKey reads the custom header first, then a bearer token.
func extractAPIKey(r *http.Request, header string) string {
	if key := r.Header.Get(header); key != "" {
		return key
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return token
	}
	return auth
}
