// Package application provides the application interface for ryr commands.
//
// Commands accept this interface rather than the concrete App so they can be
// tested with Mock:
//
//	mock := &application.Mock{
//	    ClientFunc: func(provider string) (*collectors.Client, error) {
//	        return collectors.NewClient(provider, collectors.WithAPIKey("k"), collectors.WithBaseURL(srv.URL)), nil
//	    },
//	}
//	cmd := search.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/rgreinho/request-yo-racks-api/internal/server"
	"github.com/rgreinho/request-yo-racks-api/internal/validation"
	"github.com/rgreinho/request-yo-racks-api/pkg/collectors"
	"github.com/rgreinho/request-yo-racks-api/pkg/reconcile"
)

// Application provides what commands need from the running CLI.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Orchestrator returns a collector over every configured provider.
	Orchestrator(opts ...reconcile.Option) (*reconcile.Orchestrator, error)

	// Client returns an unauthenticated facade for one provider, set up with
	// the configured credentials and weight.
	Client(provider string) (*collectors.Client, error)

	// ProviderReport returns the credential status of every known provider.
	ProviderReport() *validation.ProviderValidationReport

	// ServerConfig returns the HTTP API settings from configuration.
	ServerConfig() server.Config

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the --format value, possibly empty.
	OutputFormat() string

	// Version information
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
