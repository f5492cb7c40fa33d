package auth

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
	"github.com/rgreinho/request-yo-racks-api/pkg/reconcile"
)

// googleKeyPattern matches Google API keys.
var googleKeyPattern = regexp.MustCompile(`^AIza[0-9A-Za-z_-]+$`)

// CheckProvider checks the credential status of provider.
// Performs local checks only - no network calls are made.
func (c *Checker) CheckProvider(provider reconcile.ProviderConfig, enabled bool) *Status {
	status := &Status{
		Provider: provider.Name,
		Weight:   provider.Weight,
		EnvVar:   c.envVar(provider.Name),
	}

	if !enabled {
		status.State = StateDisabled
		status.Summary = "Not listed in collector.providers"
		return status
	}

	// OAuth2 client credentials take precedence over the API key
	if provider.OAuth2 != nil && provider.OAuth2.ClientID != "" {
		status.Method = MethodOAuth2
		if provider.OAuth2.ClientSecret == "" {
			status.State = StateInvalid
			status.Summary = "OAuth2 client ID set without a client secret"
			return status
		}
		status.State = StateConfigured
		status.Summary = "OAuth2 client credentials configured"
		return status
	}

	if provider.APIKey == "" {
		status.State = StateMissing
		status.Summary = fmt.Sprintf("Set %s environment variable", status.EnvVar)
		return status
	}

	status.Method = MethodAPIKey
	if provider.Name == constants.ProviderGoogle && !googleKeyPattern.MatchString(provider.APIKey) {
		status.State = StateInvalid
		status.Summary = "API key does not look like a Google API key"
		return status
	}

	status.State = StateConfigured
	status.Summary = "API key configured"
	return status
}

// envVar returns the environment variable holding the provider API key.
func (c *Checker) envVar(provider string) string {
	key := "COLLECTOR_" + strings.ToUpper(provider) + "_API_KEY"
	if provider == constants.ProviderGoogle {
		key = "COLLECTOR_GOOGLE_PLACES_API_KEY"
	}
	if c.EnvPrefix != "" {
		key = c.EnvPrefix + "_" + key
	}
	return key
}
