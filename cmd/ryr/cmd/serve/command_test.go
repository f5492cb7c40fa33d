package serve

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgreinho/request-yo-racks-api/internal/cmd/application"
	"github.com/rgreinho/request-yo-racks-api/internal/server"
	"github.com/rgreinho/request-yo-racks-api/pkg/collectors"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/reconcile"
)

func TestParseConfig(t *testing.T) {
	base := server.DefaultConfig()
	base.APIKey = "from-config"
	base.RateLimit = 10

	cmd := NewCommand(&application.Mock{})
	require.NoError(t, cmd.ParseFlags([]string{
		"--port", "9000",
		"--prefix", "/api/v2",
		"--cors-origins", "https://example.com,https://app.example.com",
		"--cache-ttl", "30s",
		"--metrics=false",
	}))

	cfg := parseConfig(cmd, base)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, base.Host, cfg.Host, "unset flags keep configured values")
	assert.Equal(t, "/api/v2", cfg.PathPrefix)
	assert.True(t, cfg.CORSEnabled)
	assert.Equal(t, []string{"https://example.com", "https://app.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, "from-config", cfg.APIKey)
	assert.Equal(t, 10, cfg.RateLimit)
}

func TestNewCollectorWithoutProviders(t *testing.T) {
	app := &application.Mock{
		OrchestratorFunc: func(...reconcile.Option) (*reconcile.Orchestrator, error) {
			return nil, errors.NewConfigError("collector", "no provider", errors.ErrAPIKeyRequired)
		},
	}

	collector := newCollector(app, app.Logger())
	require.NotNil(t, collector)
	assert.Empty(t, collector.Providers())
}

func TestNearbyFuncMissingCredential(t *testing.T) {
	app := &application.Mock{
		ClientFunc: func(provider string) (*collectors.Client, error) {
			return collectors.NewClient(provider), nil
		},
	}

	_, err := nearbyFunc(app)(context.Background(), "30.318744,-97.724181")
	assert.True(t, errors.IsAPIKeyError(err))
}

func TestServeStopsOnCancel(t *testing.T) {
	app := &application.Mock{}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := NewCommand(app)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--host", "127.0.0.1", "--port", "0"})

	done := make(chan error, 1)
	go func() {
		done <- cmd.ExecuteContext(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
