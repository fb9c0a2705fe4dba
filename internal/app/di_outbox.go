package app

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	outboxRepository "github.com/allisson/cardvault/internal/outbox/repository"
	outboxUseCase "github.com/allisson/cardvault/internal/outbox/usecase"
)

// OutboxRepository returns the outbox event repository for the configured driver.
func (c *Container) OutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	return c.outboxRepo.get(func() (outboxUseCase.OutboxEventRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
		}
		return selectRepository[outboxUseCase.OutboxEventRepository](c.config.DBDriver,
			func() outboxUseCase.OutboxEventRepository {
				return outboxRepository.NewPostgreSQLOutboxEventRepository(db)
			},
			func() outboxUseCase.OutboxEventRepository {
				return outboxRepository.NewMySQLOutboxEventRepository(db)
			},
		)
	})
}

// RedisClient returns the client for REDIS_URL.
func (c *Container) RedisClient() (*redis.Client, error) {
	return c.redis.get(func() (*redis.Client, error) {
		opts, err := redis.ParseURL(c.config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		return redis.NewClient(opts), nil
	})
}

// EventProcessor publishes to the Redis stream when REDIS_URL is set and logs
// events otherwise.
func (c *Container) EventProcessor() (outboxUseCase.EventProcessor, error) {
	return c.eventProcessor.get(func() (outboxUseCase.EventProcessor, error) {
		if c.config.RedisURL == "" {
			return outboxUseCase.NewLogEventProcessor(c.Logger()), nil
		}
		client, err := c.RedisClient()
		if err != nil {
			return nil, err
		}
		return outboxUseCase.NewRedisEventPublisher(client, c.config.RedisStream, c.Logger()), nil
	})
}

// OutboxUseCase returns the outbox relay.
func (c *Container) OutboxUseCase() (outboxUseCase.UseCase, error) {
	return c.outboxUseCase.get(func() (outboxUseCase.UseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
		}
		outboxRepo, err := c.OutboxRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
		}
		processor, err := c.EventProcessor()
		if err != nil {
			return nil, fmt.Errorf("failed to get event processor for outbox use case: %w", err)
		}

		return outboxUseCase.NewOutboxUseCase(
			outboxUseCase.Config{
				Interval:   c.config.OutboxInterval,
				BatchSize:  c.config.OutboxBatchSize,
				MaxRetries: c.config.OutboxMaxRetries,
			},
			txManager,
			outboxRepo,
			processor,
			c.Logger(),
		), nil
	})
}
