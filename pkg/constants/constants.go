// Package constants provides shared constants used throughout the place
// collector: timeouts, provider defaults and server settings.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to provider APIs
	DefaultHTTPTimeout = 30 * time.Second

	// ProviderLookupTimeout bounds a single provider lookup inside a collection
	ProviderLookupTimeout = 20 * time.Second

	// CollectTimeout bounds a whole fan-out collection
	CollectTimeout = 1 * time.Minute

	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the HTTP server write timeout
	ServerWriteTimeout = 70 * time.Second

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 2 * time.Minute

	// ShutdownTimeout is the graceful shutdown deadline
	ShutdownTimeout = 15 * time.Second

	// DefaultCacheTTL is how long nearby search responses are cached
	DefaultCacheTTL = 5 * time.Minute

	// CacheCleanupInterval is how often expired cache entries are purged
	CacheCleanupInterval = 10 * time.Minute
)

// Provider names recognized by the collector registry.
const (
	ProviderGoogle = "google"
	ProviderYelp   = "yelp"
)

// Provider defaults. Lower weight means a more trusted source.
const (
	// DefaultGoogleWeight is the weight given to Google records
	DefaultGoogleWeight = 0

	// DefaultYelpWeight is the weight given to Yelp records
	DefaultYelpWeight = 10

	// DefaultNearbyRadius is the nearby search radius in meters
	DefaultNearbyRadius = 250

	// LookupSearchLimit is the result limit used when resolving name+address
	LookupSearchLimit = 1
)

// Server defaults
const (
	// DefaultPort is the HTTP API port
	DefaultPort = 8000

	// DefaultHost is the HTTP API bind address
	DefaultHost = "0.0.0.0"

	// DefaultPathPrefix is the API route prefix
	DefaultPathPrefix = "/api/v1"

	// MaxRequestBodyBytes caps POST bodies
	MaxRequestBodyBytes = 1 << 20
)

// EnvPrefix is the environment variable prefix read by the configuration layer.
const EnvPrefix = "RYR"

// FilePermissions is the permission for created files such as log files (rw-r--r--)
const FilePermissions = 0o644
