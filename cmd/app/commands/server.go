package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/cardvault/internal/app"
	"github.com/allisson/cardvault/internal/card/worker"
	"github.com/allisson/cardvault/internal/config"
	"github.com/allisson/cardvault/internal/http"
	outboxUseCase "github.com/allisson/cardvault/internal/outbox/usecase"
)

const shutdownTimeout = 30 * time.Second

// RunServer starts the API server, the metrics server, the outbox relay and,
// when scheduled, the card expiry sweeper. It blocks until SIGINT/SIGTERM or
// until one of them fails, then stops the rest.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))
	defer closeContainer(container, logger)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, err := resolveServerComponents(ctx, container)
	if err != nil {
		return err
	}

	return runServerComponents(ctx, logger, components)
}

// serverComponents holds everything RunServer starts. All of it is resolved
// before the first goroutine is launched.
type serverComponents struct {
	api     *http.Server
	metrics *http.MetricsServer
	outbox  outboxUseCase.UseCase
	sweeper *worker.ExpirySweeper
}

func resolveServerComponents(ctx context.Context, container *app.Container) (*serverComponents, error) {
	server, err := container.HTTPServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize HTTP server: %w", err)
	}
	outbox, err := container.OutboxUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize outbox relay: %w", err)
	}
	sweeper, err := container.ExpirySweeper()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize card expiry sweeper: %w", err)
	}

	components := &serverComponents{api: server, outbox: outbox, sweeper: sweeper}
	if container.Config().MetricsEnabled {
		components.metrics, err = container.MetricsServer()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize metrics server: %w", err)
		}
	}
	return components, nil
}

func runServerComponents(ctx context.Context, logger *slog.Logger, components *serverComponents) error {
	type shutdowner interface {
		Shutdown(ctx context.Context) error
	}
	servers := []shutdowner{components.api}
	if components.metrics != nil {
		servers = append(servers, components.metrics)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := components.api.Start(gctx); err != nil {
			return fmt.Errorf("api server error: %w", err)
		}
		return nil
	})

	if components.metrics != nil {
		g.Go(func() error {
			if err := components.metrics.Start(gctx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := components.outbox.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("outbox relay error: %w", err)
		}
		return nil
	})

	if components.sweeper != nil {
		g.Go(func() error {
			return components.sweeper.Start(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		var shutdownErrors []error
		for _, s := range servers {
			if err := s.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, err)
			}
		}
		return errors.Join(shutdownErrors...)
	})

	return g.Wait()
}
