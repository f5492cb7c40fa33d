// Package errors provides the error taxonomy shared by collectors, the
// reconciliation engine and the outer surfaces (CLI, HTTP API).
// Every error type supports errors.Is against one of the sentinels below so
// callers can branch on the class of failure without type switches.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Sentinel errors.
var (
	// ErrNotFound indicates that a provider had no matching place.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that a credential is required but not provided.
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrAPIKeyInvalid indicates that the provider rejected the credential.
	ErrAPIKeyInvalid = errors.New("API key invalid")

	// ErrUnsupportedProvider indicates an unknown provider name.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrNotAuthenticated indicates an operation invoked before Authenticate.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotImplemented indicates a capability the provider does not offer.
	ErrNotImplemented = errors.New("not implemented")

	// ErrProviderUnavailable indicates that a provider is temporarily unavailable.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited indicates that the API rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = errors.New("operation timed out")
)

// NotFoundError represents a lookup that produced no place.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents an invalid invocation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents a non-success answer from a provider API.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Provider, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == 401 || e.StatusCode == 403:
		return target == ErrAPIKeyInvalid
	case e.StatusCode == 404:
		return target == ErrNotFound
	case e.StatusCode == 429:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrProviderUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(provider string, statusCode int, message string) *APIError {
	return &APIError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConfigError represents a configuration error such as a missing credential.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// UnsupportedProviderError is returned when a provider name has no collector.
type UnsupportedProviderError struct {
	Provider  string
	Supported []string
}

// Error implements the error interface
func (e *UnsupportedProviderError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("unsupported provider %q", e.Provider)
	}
	return fmt.Sprintf("unsupported provider %q (supported: %s)", e.Provider, strings.Join(e.Supported, ", "))
}

// Is implements errors.Is support
func (e *UnsupportedProviderError) Is(target error) bool {
	return target == ErrUnsupportedProvider
}

// NewUnsupportedProviderError creates a new UnsupportedProviderError
func NewUnsupportedProviderError(provider string, supported []string) *UnsupportedProviderError {
	return &UnsupportedProviderError{Provider: provider, Supported: supported}
}

// ProviderError ties a failure to the provider lookup that produced it.
type ProviderError struct {
	Provider string
	Err      error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new ProviderError
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// CollectionError reports a fan-out collection where one or more provider
// lookups failed. The collection as a whole is considered failed.
type CollectionError struct {
	Failed []*ProviderError
}

// Error implements the error interface
func (e *CollectionError) Error() string {
	names := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		names = append(names, f.Provider)
	}
	return fmt.Sprintf("collection failed for providers [%s]: %v", strings.Join(names, ", "), e.Unwrap())
}

// Unwrap implements errors.Unwrap
func (e *CollectionError) Unwrap() error {
	errs := make([]error, 0, len(e.Failed))
	for _, f := range e.Failed {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// Providers returns the names of the failed providers.
func (e *CollectionError) Providers() []string {
	names := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		names = append(names, f.Provider)
	}
	return names
}

// NewCollectionError creates a new CollectionError
func NewCollectionError(failed ...*ProviderError) *CollectionError {
	return &CollectionError{Failed: failed}
}

// ParseError represents a malformed provider payload or serialized record.
type ParseError struct {
	Format  string // "json", "yaml", "latlng"
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s parse error in %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, source, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// AuthenticationError represents a failed authentication handshake.
type AuthenticationError struct {
	Provider string
	Method   string // "api_key", "oauth2"
	Message  string
	Err      error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("authentication error for %s (%s): %s", e.Provider, e.Method, e.Message)
	}
	return fmt.Sprintf("authentication error (%s): %s", e.Method, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAPIKeyRequired || target == ErrAPIKeyInvalid
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(provider, method, message string, err error) *AuthenticationError {
	return &AuthenticationError{
		Provider: provider,
		Method:   method,
		Message:  message,
		Err:      err,
	}
}

// TimeoutError represents a provider lookup that exceeded its deadline.
type TimeoutError struct {
	Operation string
	Duration  string
	Message   string
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	if e.Duration != "" {
		return fmt.Sprintf("operation %s timed out after %s: %s", e.Operation, e.Duration, e.Message)
	}
	return fmt.Sprintf("operation %s timed out: %s", e.Operation, e.Message)
}

// Is implements errors.Is support
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(operation, duration, message string) *TimeoutError {
	return &TimeoutError{
		Operation: operation,
		Duration:  duration,
		Message:   message,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// IsAPIKeyError checks if an error is related to API keys
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired) || errors.Is(err, ErrAPIKeyInvalid)
}

// IsNotImplemented checks if an error is an unsupported capability error
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// IsNotAuthenticated checks if an error comes from a call made before Authenticate
func IsNotAuthenticated(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}

// IsUnsupportedProvider checks if an error names an unknown provider
func IsUnsupportedProvider(err error) bool {
	return errors.Is(err, ErrUnsupportedProvider)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsProviderUnavailable checks if an error indicates provider unavailability
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, err.Error(), err)
}

// WrapAPI wraps an error as an APIError
func WrapAPI(provider string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}

// NotImplemented returns ErrNotImplemented annotated with the provider and
// capability that is missing.
func NotImplemented(provider, capability string) error {
	return fmt.Errorf("%s for provider %s: %w", capability, provider, ErrNotImplemented)
}
