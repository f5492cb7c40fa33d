// Package serve provides the HTTP server command for the ryr CLI.
package serve

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rgreinho/request-yo-racks-api/internal/cmd/application"
	"github.com/rgreinho/request-yo-racks-api/internal/metrics"
	"github.com/rgreinho/request-yo-racks-api/internal/server"
	"github.com/rgreinho/request-yo-racks-api/internal/server/handlers"
	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
	"github.com/rgreinho/request-yo-racks-api/pkg/places"
	"github.com/rgreinho/request-yo-racks-api/pkg/reconcile"
)

// NewCommand creates the serve command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Start the place collection API server",
		Long: `Start an HTTP server exposing place collection.

Endpoints:
  GET  /health                 liveness
  GET  {prefix}/ready          provider readiness
  POST {prefix}/place          collect and merge a place
  GET  {prefix}/places         nearby places (cached)
  GET  /metrics                Prometheus metrics

Flags override the server section of the configuration file and the
RYR_SERVER_* environment variables.`,
		Example: `  # Start on the default port 8000
  ryr serve

  # Require an API key and limit each client to 30 place requests a minute
  ryr serve --api-key s3cret --rate-limit 30

  # Enable CORS for specific origins
  ryr serve --cors-origins "https://example.com,https://app.example.com"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, app)
		},
	}

	// Server configuration flags
	cmd.Flags().Int("port", constants.DefaultPort, "Server port")
	cmd.Flags().String("host", constants.DefaultHost, "Bind address")
	cmd.Flags().String("prefix", constants.DefaultPathPrefix, "API path prefix")

	// CORS flags
	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")

	// Authentication flags
	cmd.Flags().String("api-key", "", "Require this API key on place endpoints")

	// Performance flags
	cmd.Flags().Int("rate-limit", 0, "Place requests per minute per client (0 to disable)")
	cmd.Flags().Duration("cache-ttl", constants.DefaultCacheTTL, "Nearby search cache TTL")

	// Features flags
	cmd.Flags().Bool("metrics", true, "Enable metrics endpoint")

	return cmd
}

// runServer starts the API server and blocks until the command context is
// cancelled.
func runServer(cmd *cobra.Command, app application.Application) error {
	cfg := parseConfig(cmd, app.ServerConfig())
	logger := app.Logger()

	collector := newCollector(app, logger)

	logger.Info().
		Str("addr", cfg.Addr()).
		Str("prefix", cfg.PathPrefix).
		Strs("providers", collector.Providers()).
		Bool("cors", cfg.CORSEnabled).
		Bool("auth", cfg.APIKey != "").
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting API server")

	srv := server.New(collector, nearbyFunc(app), cfg, logger)
	return srv.Run(cmd.Context())
}

// newCollector returns the configured orchestrator. Without credentials the
// server still starts and reports itself as not ready.
func newCollector(app application.Application, logger *zerolog.Logger) *reconcile.Orchestrator {
	orchestrator, err := app.Orchestrator(reconcile.WithObserver(metrics.LookupObserver{}))
	if err != nil {
		logger.Warn().Err(err).Msg("No provider configured, place collection is disabled")
		return reconcile.New(nil, reconcile.WithLogger(logger))
	}
	return orchestrator
}

// nearbyFunc runs nearby searches with a fresh Google client per call since
// a client keeps the payload of its last search.
func nearbyFunc(app application.Application) handlers.NearbyFunc {
	return func(ctx context.Context, location string, opts ...places.SearchOption) (places.Payload, error) {
		client, err := app.Client(constants.ProviderGoogle)
		if err != nil {
			return nil, err
		}
		if err := client.Authenticate(ctx); err != nil {
			return nil, err
		}
		return client.SearchPlacesNearby(ctx, location, opts...)
	}
}

// parseConfig applies the flags that were set on top of the configured
// server settings.
func parseConfig(cmd *cobra.Command, cfg server.Config) server.Config {
	flags := cmd.Flags()

	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("prefix") {
		cfg.PathPrefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("cors") {
		cfg.CORSEnabled, _ = flags.GetBool("cors")
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
		cfg.CORSEnabled = len(cfg.CORSOrigins) > 0 || cfg.CORSEnabled
	}
	if flags.Changed("api-key") {
		cfg.APIKey, _ = flags.GetString("api-key")
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit, _ = flags.GetInt("rate-limit")
	}
	if flags.Changed("cache-ttl") {
		var ttl time.Duration
		ttl, _ = flags.GetDuration("cache-ttl")
		if ttl > 0 {
			cfg.CacheTTL = ttl
		}
	}
	if flags.Changed("metrics") {
		cfg.MetricsEnabled, _ = flags.GetBool("metrics")
	}

	return cfg
}
