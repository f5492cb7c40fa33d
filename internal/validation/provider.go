// Package validation reports which providers the collector can use with the
// current configuration.
package validation

import (
	"slices"
	"strings"

	"github.com/rgreinho/request-yo-racks-api/internal/auth"
	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
	"github.com/rgreinho/request-yo-racks-api/pkg/reconcile"
)

// ProviderValidationReport contains the results of validating provider access.
type ProviderValidationReport struct {
	Configured []auth.Status `json:"configured" yaml:"configured"` // Providers ready to use
	Missing    []auth.Status `json:"missing" yaml:"missing"`       // Enabled providers without credentials
	Invalid    []auth.Status `json:"invalid" yaml:"invalid"`       // Malformed or incomplete credentials
	Disabled   []auth.Status `json:"disabled" yaml:"disabled"`     // Providers left out of collector.providers
}

// ValidateProviderAccess checks every known provider for usable credentials.
// enabled lists the provider names taking part in collections.
func ValidateProviderAccess(providers []reconcile.ProviderConfig, enabled []string) *ProviderValidationReport {
	report := &ProviderValidationReport{
		Configured: []auth.Status{},
		Missing:    []auth.Status{},
		Invalid:    []auth.Status{},
		Disabled:   []auth.Status{},
	}

	checker := auth.NewChecker(constants.EnvPrefix)
	for _, provider := range providers {
		on := slices.ContainsFunc(enabled, func(name string) bool {
			return strings.EqualFold(strings.TrimSpace(name), provider.Name)
		})

		status := checker.CheckProvider(provider, on)
		switch status.State {
		case auth.StateConfigured:
			report.Configured = append(report.Configured, *status)
		case auth.StateMissing:
			report.Missing = append(report.Missing, *status)
		case auth.StateInvalid:
			report.Invalid = append(report.Invalid, *status)
		case auth.StateDisabled:
			report.Disabled = append(report.Disabled, *status)
		}
	}

	return report
}

// Ready reports whether at least one provider can be used.
func (r *ProviderValidationReport) Ready() bool {
	return len(r.Configured) > 0
}

// All returns every status, configured providers first.
func (r *ProviderValidationReport) All() []auth.Status {
	return slices.Concat(r.Configured, r.Invalid, r.Missing, r.Disabled)
}
