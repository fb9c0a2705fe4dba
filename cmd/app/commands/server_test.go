package commands

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/allisson/cardvault/internal/app"
	"github.com/allisson/cardvault/internal/config"
	"github.com/allisson/cardvault/internal/http"
)

type blockingOutbox struct{}

func (blockingOutbox) Start(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingOutbox) ProcessEvents(ctx context.Context) error { return nil }

func TestResolveServerComponents(t *testing.T) {
	t.Run("error-nothing-started", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		cfg := &config.Config{
			LogLevel:       "error",
			DBDriver:       "sqlite",
			MetricsEnabled: true,
		}
		container := app.NewContainer(cfg)
		defer func() { _ = container.Shutdown(context.Background()) }()

		components, err := resolveServerComponents(context.Background(), container)
		assert.Nil(t, components)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize HTTP server")
	})
}

func TestRunServerComponents(t *testing.T) {
	t.Run("error-api-failure-stops-everything", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		components := &serverComponents{
			api:     http.NewServer(nil, "127.0.0.1", 0, logger),
			metrics: http.NewMetricsServer("127.0.0.1", 0, logger, nil),
			outbox:  blockingOutbox{},
		}

		done := make(chan error, 1)
		go func() { done <- runServerComponents(context.Background(), logger, components) }()

		select {
		case err := <-done:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "router not configured")
		case <-time.After(5 * time.Second):
			t.Fatal("server components did not stop")
		}
	})
}
