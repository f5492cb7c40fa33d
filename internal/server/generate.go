// Package server provides the HTTP API of the place collector.
//
// The layering follows CLI → Server → Router → Handlers:
//
//   - Server: lifecycle, graceful shutdown
//   - Config: listen address, timeouts, CORS, API key, rate limit, cache TTL
//   - Router: route registration and middleware chain
//   - Handlers: health, place collection and nearby search
//
// Usage:
//
//	srv := server.New(orchestrator, nearby, server.DefaultConfig(), logger)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
