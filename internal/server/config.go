package server

import (
	"fmt"
	"time"

	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	Host string
	Port int

	PathPrefix string

	CORSEnabled bool
	CORSOrigins []string

	// APIKey protects the place endpoints when set.
	APIKey     string
	AuthHeader string

	// RateLimit is the number of place requests per minute per client,
	// zero disables it.
	RateLimit int
	CacheTTL  time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	MetricsEnabled bool
}

// DefaultConfig returns a Config with the service defaults.
func DefaultConfig() Config {
	return Config{
		Host:            constants.DefaultHost,
		Port:            constants.DefaultPort,
		PathPrefix:      constants.DefaultPathPrefix,
		AuthHeader:      "X-API-Key",
		CacheTTL:        constants.DefaultCacheTTL,
		ReadTimeout:     constants.ServerReadTimeout,
		WriteTimeout:    constants.ServerWriteTimeout,
		IdleTimeout:     constants.ServerIdleTimeout,
		ShutdownTimeout: constants.ShutdownTimeout,
		MetricsEnabled:  true,
	}
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
