package application

import (
	"github.com/rs/zerolog"

	"github.com/rgreinho/request-yo-racks-api/internal/server"
	"github.com/rgreinho/request-yo-racks-api/internal/validation"
	"github.com/rgreinho/request-yo-racks-api/pkg/collectors"
	"github.com/rgreinho/request-yo-racks-api/pkg/reconcile"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	OrchestratorFunc func(opts ...reconcile.Option) (*reconcile.Orchestrator, error)
	ClientFunc       func(provider string) (*collectors.Client, error)
	ReportFunc       func() *validation.ProviderValidationReport
	ServerConfigFunc func() server.Config
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
}

// Orchestrator returns an orchestrator using the mock function or one
// without providers.
func (m *Mock) Orchestrator(opts ...reconcile.Option) (*reconcile.Orchestrator, error) {
	if m.OrchestratorFunc != nil {
		return m.OrchestratorFunc(opts...)
	}
	return reconcile.New(nil, opts...), nil
}

// Client returns a client using the mock function or an unconfigured one.
func (m *Mock) Client(provider string) (*collectors.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(provider)
	}
	return collectors.NewClient(provider), nil
}

// ProviderReport returns the mock report or an empty one.
func (m *Mock) ProviderReport() *validation.ProviderValidationReport {
	if m.ReportFunc != nil {
		return m.ReportFunc()
	}
	return validation.ValidateProviderAccess(nil, nil)
}

// ServerConfig returns the mock configuration or server defaults.
func (m *Mock) ServerConfig() server.Config {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
