package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
)

func TestGet(t *testing.T) {
	for _, name := range []string{"google", "Google", "YELP", " yelp "} {
		t.Run(name, func(t *testing.T) {
			c, err := Get(name, Config{})
			require.NoError(t, err)
			assert.True(t, Has(name))
			assert.Equal(t, normalize(name), c.Provider())
		})
	}

	t.Run("fresh instances", func(t *testing.T) {
		a, _ := Get("yelp", Config{})
		b, _ := Get("yelp", Config{})
		a.SetWeight(5)
		assert.NotSame(t, a, b)
		assert.Zero(t, b.Weight())
	})
}

func TestGetUnsupported(t *testing.T) {
	_, err := Get("foursquare", Config{})
	assert.True(t, errors.IsUnsupportedProvider(err))
	assert.Contains(t, err.Error(), "google, yelp")
	assert.False(t, Has("foursquare"))
}

func TestList(t *testing.T) {
	assert.Equal(t, []string{"google", "yelp"}, List())
}
