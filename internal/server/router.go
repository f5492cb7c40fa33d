package server

import (
	"net/http"
	"time"

	"github.com/rgreinho/request-yo-racks-api/internal/metrics"
	"github.com/rgreinho/request-yo-racks-api/internal/server/handlers"
	"github.com/rgreinho/request-yo-racks-api/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.collector, s.nearby, s.cache, s.logger)
	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	mux.Handle("POST "+prefix+"/place", s.limit(http.HandlerFunc(h.HandleCollectPlace)))
	mux.Handle("GET "+prefix+"/places", s.limit(http.HandlerFunc(h.HandleNearby)))

	if s.config.MetricsEnabled {
		metrics.Register()
		mux.Handle("GET /metrics", metrics.Handler())
	}
}

// limit applies the rate limiter to provider backed endpoints.
func (s *Server) limit(next http.Handler) http.Handler {
	if s.config.RateLimit <= 0 {
		return next
	}
	rl := middleware.NewRateLimiter(s.config.RateLimit, time.Minute, s.logger)
	return middleware.RateLimit(rl)(next)
}

// applyMiddleware wraps handler with the middleware chain. Metrics sit
// closest to the mux so the matched route pattern is visible.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.RequestID,
		middleware.Logger(s.logger),
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
			corsConfig.AllowAll = false
		}
		chain = append(chain, middleware.CORS(corsConfig))
	}

	chain = append(chain, middleware.Auth(middleware.AuthConfig{
		APIKey:      cfg.APIKey,
		HeaderName:  cfg.AuthHeader,
		PublicPaths: []string{"/health", "/metrics", cfg.PathPrefix + "/health", cfg.PathPrefix + "/ready"},
	}, s.logger))

	if cfg.MetricsEnabled {
		chain = append(chain, metrics.Middleware)
	}

	return middleware.Chain(chain...)(handler)
}
