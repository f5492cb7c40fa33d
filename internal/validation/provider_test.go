package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rgreinho/request-yo-racks-api/pkg/reconcile"
)

func TestValidateProviderAccess(t *testing.T) {
	providers := []reconcile.ProviderConfig{
		{Name: "google", APIKey: "AIzaSyA-example_key"},
		{Name: "yelp"},
	}

	report := ValidateProviderAccess(providers, []string{" Google ", "yelp"})
	assert.True(t, report.Ready())
	assert.Len(t, report.Configured, 1)
	assert.Len(t, report.Missing, 1)
	assert.Empty(t, report.Invalid)
	assert.Empty(t, report.Disabled)

	report = ValidateProviderAccess(providers, []string{"yelp"})
	assert.False(t, report.Ready())
	assert.Len(t, report.Disabled, 1)
	assert.Equal(t, "google", report.Disabled[0].Provider)

	names := []string{}
	for _, s := range ValidateProviderAccess(providers, []string{"google", "yelp"}).All() {
		names = append(names, s.Provider)
	}
	assert.Equal(t, []string{"google", "yelp"}, names)
}
