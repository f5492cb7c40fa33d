// Package app provides the application context and dependency management
// for the ryr CLI: configuration, logging and the provider set shared by
// every command.
package app

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rgreinho/request-yo-racks-api/internal/cmd/application"
	"github.com/rgreinho/request-yo-racks-api/internal/server"
	"github.com/rgreinho/request-yo-racks-api/internal/validation"
	"github.com/rgreinho/request-yo-racks-api/pkg/collectors"
	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/logging"
	"github.com/rgreinho/request-yo-racks-api/pkg/places"
	"github.com/rgreinho/request-yo-racks-api/pkg/reconcile"
)

// App represents the ryr application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	mu     sync.RWMutex
	config *Config
	logger *zerolog.Logger

	// Global flags, bound by the root command
	flags GlobalFlags
}

// GlobalFlags are the persistent flags of the root command.
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	NoColor    bool
	Format     string
	LogLevel   string
}

// Ensure App implements Application at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.logger
}

// OutputFormat returns the requested output format, possibly empty.
func (a *App) OutputFormat() string {
	return a.Config().Format
}

// ServerConfig returns the HTTP API settings.
func (a *App) ServerConfig() server.Config {
	return a.Config().ServerSettings()
}

// Orchestrator returns an orchestrator over every provider that has
// credentials configured.
func (a *App) Orchestrator(opts ...reconcile.Option) (*reconcile.Orchestrator, error) {
	providers := a.ProviderConfigs()
	if len(providers) == 0 {
		return nil, errors.NewConfigError("collector", "no provider has credentials configured", errors.ErrAPIKeyRequired)
	}

	cfg := a.Config()
	base := []reconcile.Option{
		reconcile.WithLogger(a.Logger()),
		reconcile.WithTimeout(cfg.Collector.Timeout),
	}
	return reconcile.New(providers, append(base, opts...)...), nil
}

// Client returns a facade for provider configured from the collector
// section. The client is not authenticated yet.
func (a *App) Client(provider string) (*collectors.Client, error) {
	for _, p := range a.providerSettings() {
		if p.Name == strings.ToLower(provider) {
			creds := places.Credentials{APIKey: p.APIKey, OAuth2: p.OAuth2}
			return collectors.NewClient(p.Name,
				collectors.WithCredentials(creds),
				collectors.WithWeight(p.Weight),
				collectors.WithBaseURL(p.BaseURL),
				collectors.WithLogger(a.Logger()),
			), nil
		}
	}
	return nil, errors.NewUnsupportedProviderError(provider, []string{constants.ProviderGoogle, constants.ProviderYelp})
}

// ProviderReport returns the credential status of every known provider.
func (a *App) ProviderReport() *validation.ProviderValidationReport {
	return validation.ValidateProviderAccess(a.providerSettings(), a.Config().Collector.Providers)
}

// ProviderConfigs returns the enabled providers that have credentials.
// Providers without credentials are skipped.
func (a *App) ProviderConfigs() []reconcile.ProviderConfig {
	cfg := a.Config()
	settings := a.providerSettings()

	var out []reconcile.ProviderConfig
	for _, name := range cfg.Collector.Providers {
		name = strings.ToLower(strings.TrimSpace(name))
		for _, p := range settings {
			if p.Name != name {
				continue
			}
			creds := places.Credentials{APIKey: p.APIKey, OAuth2: p.OAuth2}
			if creds.IsEmpty() {
				a.Logger().Debug().Str(logging.FieldProvider, name).Msg("Skipping provider without credentials")
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// providerSettings lists every known provider with its configuration.
func (a *App) providerSettings() []reconcile.ProviderConfig {
	c := a.Config().Collector

	yelp := reconcile.ProviderConfig{
		Name:    constants.ProviderYelp,
		APIKey:  c.YelpAPIKey,
		Weight:  c.YelpWeight,
		BaseURL: c.YelpBaseURL,
	}
	if c.YelpClientID != "" {
		yelp.OAuth2 = &places.OAuth2{ClientID: c.YelpClientID, ClientSecret: c.YelpClientSecret}
	}

	return []reconcile.ProviderConfig{
		{
			Name:    constants.ProviderGoogle,
			APIKey:  c.GooglePlacesAPIKey,
			Weight:  c.GoogleWeight,
			BaseURL: c.GoogleBaseURL,
		},
		yelp,
	}
}

// reload re-reads configuration with the global flags applied and rebuilds
// the logger.
func (a *App) reload() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.flags.ConfigFile != "" {
		config, err := LoadConfig(a.flags.ConfigFile)
		if err != nil {
			return err
		}
		a.config = config
	}
	a.config.UpdateFromFlags(a.flags)

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
