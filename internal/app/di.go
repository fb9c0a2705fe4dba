// Package app assembles the application components. Every component is built
// on first access and cached, so commands only pay for what they use.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"

	authHTTP "github.com/allisson/cardvault/internal/auth/http"
	authService "github.com/allisson/cardvault/internal/auth/service"
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
	cardHTTP "github.com/allisson/cardvault/internal/card/http"
	cardService "github.com/allisson/cardvault/internal/card/service"
	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
	"github.com/allisson/cardvault/internal/card/worker"
	"github.com/allisson/cardvault/internal/config"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	"github.com/allisson/cardvault/internal/database"
	"github.com/allisson/cardvault/internal/http"
	"github.com/allisson/cardvault/internal/metrics"
	outboxUseCase "github.com/allisson/cardvault/internal/outbox/usecase"
	userHTTP "github.com/allisson/cardvault/internal/user/http"
	userUseCase "github.com/allisson/cardvault/internal/user/usecase"
)

// lazy caches the result of the first init call, including its error.
type lazy[T any] struct {
	once  sync.Once
	value T
	err   error
}

func (l *lazy[T]) get(init func() (T, error)) (T, error) {
	l.once.Do(func() {
		l.value, l.err = init()
	})
	return l.value, l.err
}

// Container holds all application dependencies.
type Container struct {
	config *config.Config

	logger     lazy[*slog.Logger]
	db         lazy[*sql.DB]
	txManager  lazy[database.TxManager]
	redis      lazy[*redis.Client]
	provider   lazy[*metrics.Provider]
	business   lazy[metrics.BusinessMetrics]
	kmsService lazy[cryptoService.KMSService]
	keyLoader  lazy[cryptoService.KeyLoader]

	passwordService lazy[authService.PasswordService]
	tokenService    lazy[authService.TokenService]
	authUseCase     lazy[authUseCase.AuthUseCase]
	authHandler     lazy[*authHTTP.AuthHandler]

	userRepo    lazy[userUseCase.UserRepository]
	userUseCase lazy[userUseCase.UseCase]
	userHandler lazy[*userHTTP.UserHandler]

	numberCipher    lazy[cardService.NumberCipher]
	cardRepo        lazy[cardUseCase.CardRepository]
	cardUseCase     lazy[cardUseCase.CardUseCase]
	transferUseCase lazy[cardUseCase.TransferUseCase]
	cardHandler     lazy[*cardHTTP.CardHandler]
	expirySweeper   lazy[*worker.ExpirySweeper]

	outboxRepo     lazy[outboxUseCase.OutboxEventRepository]
	eventProcessor lazy[outboxUseCase.EventProcessor]
	outboxUseCase  lazy[outboxUseCase.UseCase]

	httpServer    lazy[*http.Server]
	metricsServer lazy[*http.MetricsServer]

	mu     sync.Mutex
	closed bool
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{config: cfg}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON logger at the configured level.
func (c *Container) Logger() *slog.Logger {
	logger, _ := c.logger.get(func() (*slog.Logger, error) {
		return newLogger(c.config.LogLevel), nil
	})
	return logger
}

// DB returns the connection pool, connecting on first access.
func (c *Container) DB() (*sql.DB, error) {
	return c.db.get(func() (*sql.DB, error) {
		db, err := database.Connect(database.Config{
			Driver:             c.config.DBDriver,
			ConnectionString:   c.config.DBConnectionString,
			MaxOpenConnections: c.config.DBMaxOpenConnections,
			MaxIdleConnections: c.config.DBMaxIdleConnections,
			ConnMaxLifetime:    c.config.DBConnMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return db, nil
	})
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	return c.txManager.get(func() (database.TxManager, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
		}
		return database.NewTxManager(db), nil
	})
}

// Shutdown stops the servers and closes the connections that were opened.
// Calling it more than once is a no-op.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error

	if server := c.httpServer.value; server != nil {
		if err := server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}
	if server := c.metricsServer.value; server != nil {
		if err := server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}
	if provider := c.provider.value; provider != nil {
		if err := provider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}
	if client := c.redis.value; client != nil {
		if err := client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if db := c.db.value; db != nil {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(errs...)
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// selectRepository picks the implementation for the configured driver.
func selectRepository[T any](driver string, postgres, mysql func() T) (T, error) {
	switch driver {
	case database.DriverPostgres:
		return postgres(), nil
	case database.DriverMySQL:
		return mysql(), nil
	default:
		var zero T
		return zero, fmt.Errorf("unsupported database driver: %s", driver)
	}
}
