package app

import (
	"context"
	"fmt"

	"github.com/allisson/cardvault/internal/http"
)

// HTTPServer returns the API server with every route registered. ctx bounds
// the rate limiter cleanup goroutines.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	return c.httpServer.get(func() (*http.Server, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for http server: %w", err)
		}
		authUseCase, err := c.AuthUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get auth use case for http server: %w", err)
		}
		authHandler, err := c.AuthHandler()
		if err != nil {
			return nil, fmt.Errorf("failed to get auth handler for http server: %w", err)
		}
		cardHandler, err := c.CardHandler()
		if err != nil {
			return nil, fmt.Errorf("failed to get card handler for http server: %w", err)
		}
		userHandler, err := c.UserHandler()
		if err != nil {
			return nil, fmt.Errorf("failed to get user handler for http server: %w", err)
		}
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}

		server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
		server.SetupRouter(ctx, c.config, authUseCase, authHandler, cardHandler, userHandler, provider)
		return server, nil
	})
}
