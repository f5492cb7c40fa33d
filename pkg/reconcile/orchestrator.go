// Package reconcile collects a place from several providers concurrently and
// merges the provider records into one.
package reconcile

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rgreinho/request-yo-racks-api/pkg/collectors"
	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/logging"
	"github.com/rgreinho/request-yo-racks-api/pkg/places"
)

// ProviderConfig describes one provider taking part in a collection.
type ProviderConfig struct {
	Name    string
	APIKey  string
	OAuth2  *places.OAuth2
	Weight  int
	BaseURL string
}

// Query identifies the place to collect. PlaceIDs holds provider specific
// identifiers keyed by provider name; providers without one are queried by
// name and address.
type Query struct {
	PlaceIDs map[string]string
	Name     string
	Address  string
}

// PlaceID returns the identifier given for provider, if any.
func (q Query) PlaceID(provider string) string {
	if id, ok := q.PlaceIDs[provider]; ok {
		return id
	}
	for name, id := range q.PlaceIDs {
		if strings.EqualFold(name, provider) {
			return id
		}
	}
	return ""
}

// LookupFunc resolves a query against a single provider.
type LookupFunc func(ctx context.Context, provider ProviderConfig, q Query) (places.Record, error)

// Observer is notified once per provider lookup.
type Observer interface {
	ObserveLookup(provider string, duration time.Duration, err error)
}

// Result is the outcome of a successful collection.
type Result struct {
	Record        places.Record  `json:"record" yaml:"record"`
	Contributions []Contribution `json:"contributions" yaml:"contributions"`
	Provenance    Provenance     `json:"provenance" yaml:"provenance"`
	Duration      time.Duration  `json:"duration" yaml:"duration"`
}

// Orchestrator fans a query out to every configured provider and merges the
// answers.
type Orchestrator struct {
	providers  []ProviderConfig
	timeout    time.Duration
	logger     *zerolog.Logger
	observer   Observer
	lookup     LookupFunc
	httpClient *http.Client
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTimeout bounds each provider lookup. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithObserver registers a lookup observer.
func WithObserver(observer Observer) Option {
	return func(o *Orchestrator) {
		o.observer = observer
	}
}

// WithLookupFunc replaces the per-provider lookup.
func WithLookupFunc(fn LookupFunc) Option {
	return func(o *Orchestrator) {
		o.lookup = fn
	}
}

// WithHTTPClient sets the HTTP client handed to every collector.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *Orchestrator) {
		o.httpClient = hc
	}
}

// New creates an orchestrator for providers.
func New(providers []ProviderConfig, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		providers: providers,
		timeout:   constants.ProviderLookupTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.Default()
	}
	if o.lookup == nil {
		o.lookup = o.lookupPlace
	}
	return o
}

// Providers returns the configured provider names.
func (o *Orchestrator) Providers() []string {
	names := make([]string, 0, len(o.providers))
	for _, p := range o.providers {
		names = append(names, p.Name)
	}
	return names
}

// Collect looks the place up with every provider and returns the merged
// record. If any provider fails the whole collection fails.
func (o *Orchestrator) Collect(ctx context.Context, q Query) (places.Record, error) {
	res, err := o.CollectResult(ctx, q)
	if err != nil {
		return places.Record{}, err
	}
	return res.Record, nil
}

// providerResult holds the answer of one provider task.
type providerResult struct {
	provider string
	record   places.Record
	err      error
}

// CollectResult is Collect with the per-provider records and field
// provenance.
func (o *Orchestrator) CollectResult(ctx context.Context, q Query) (*Result, error) {
	if len(o.providers) == 0 {
		return nil, errors.NewValidationError("providers", nil, "at least one provider must be configured")
	}
	if err := o.validate(q); err != nil {
		return nil, err
	}

	start := time.Now()
	logger := o.logger.With().Str(logging.FieldOperation, "collect").Logger()
	logger.Debug().
		Int("provider_count", len(o.providers)).
		Str(logging.FieldName, q.Name).
		Str(logging.FieldAddress, q.Address).
		Msg("Collecting place")

	var wg sync.WaitGroup
	resultChan := make(chan providerResult, len(o.providers))

	for _, provider := range o.providers {
		wg.Add(1)
		go func(p ProviderConfig) {
			defer wg.Done()
			resultChan <- o.run(ctx, p, q)
		}(provider)
	}

	wg.Wait()
	close(resultChan)

	var (
		failed        []*errors.ProviderError
		contributions []Contribution
	)
	for result := range resultChan {
		if result.err != nil {
			failed = append(failed, errors.NewProviderError(result.provider, result.err))
			continue
		}
		contributions = append(contributions, Contribution{Provider: result.provider, Record: result.record})
	}

	if len(failed) > 0 {
		err := errors.NewCollectionError(failed...)
		logger.Warn().Err(err).Strs("failed", err.Providers()).Msg("Collection failed")
		return nil, err
	}

	sortContributions(contributions)
	record, provenance := CombineContributions(contributions)

	res := &Result{
		Record:        record,
		Contributions: contributions,
		Provenance:    provenance,
		Duration:      time.Since(start),
	}
	logger.Info().
		Int("provider_count", len(contributions)).
		Int64(logging.FieldDurationMS, res.Duration.Milliseconds()).
		Msg("Collected place")
	return res, nil
}

// validate checks that every provider can be queried: it needs either its
// own place ID or both a name and an address.
func (o *Orchestrator) validate(q Query) error {
	if q.Name != "" && q.Address != "" {
		return nil
	}
	for _, p := range o.providers {
		if q.PlaceID(p.Name) == "" {
			return errors.NewValidationError("place_id", nil,
				fmt.Sprintf("provider %s needs a place ID or both a name and an address", p.Name))
		}
	}
	return nil
}

// run performs one provider task.
func (o *Orchestrator) run(ctx context.Context, p ProviderConfig, q Query) providerResult {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	start := time.Now()
	record, err := o.lookup(ctx, p, q)
	if err == nil {
		record.Weight = p.Weight
	}
	if o.observer != nil {
		o.observer.ObserveLookup(p.Name, time.Since(start), err)
	}

	o.logger.Debug().
		Str(logging.FieldProvider, p.Name).
		Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()).
		Err(err).
		Msg("Provider lookup finished")
	return providerResult{provider: p.Name, record: record, err: err}
}

// lookupPlace is the default LookupFunc: a fresh authenticated client per
// task.
func (o *Orchestrator) lookupPlace(ctx context.Context, p ProviderConfig, q Query) (places.Record, error) {
	creds := places.Credentials{APIKey: p.APIKey, OAuth2: p.OAuth2}
	client := collectors.NewClient(p.Name,
		collectors.WithCredentials(creds),
		collectors.WithWeight(p.Weight),
		collectors.WithBaseURL(p.BaseURL),
		collectors.WithHTTPClient(o.httpClient),
		collectors.WithLogger(o.logger),
	)

	ctx = logging.WithProvider(ctx, p.Name)
	if err := client.Authenticate(ctx); err != nil {
		return places.Record{}, err
	}
	return client.LookupPlace(ctx, q.PlaceID(p.Name), q.Name, q.Address)
}
