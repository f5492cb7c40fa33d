package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rgreinho/request-yo-racks-api/internal/server/cache"
	"github.com/rgreinho/request-yo-racks-api/internal/server/handlers"
	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	collector handlers.Collector
	nearby    handlers.NearbyFunc
	cache     *cache.Cache
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
}

// New creates a server. nearby may be nil when nearby search is not
// available.
func New(collector handlers.Collector, nearby handlers.NearbyFunc, cfg Config, logger *zerolog.Logger) *Server {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.DefaultCacheTTL
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = constants.ShutdownTimeout
	}

	return &Server{
		collector: collector,
		nearby:    nearby,
		cache:     cache.New(cfg.CacheTTL, constants.CacheCleanupInterval),
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
}

// Handler returns the http.Handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", ln.Addr().String()).
			Str("prefix", s.config.PathPrefix).
			Strs("providers", s.collector.Providers()).
			Msg("Server starting")

		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		s.logger.Info().Dur("uptime", time.Since(s.startTime)).Msg("Server stopped gracefully")
		return nil
	}
}
