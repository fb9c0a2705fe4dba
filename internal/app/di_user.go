package app

import (
	"fmt"

	userHTTP "github.com/allisson/cardvault/internal/user/http"
	userRepository "github.com/allisson/cardvault/internal/user/repository"
	userUseCase "github.com/allisson/cardvault/internal/user/usecase"
)

// UserRepository returns the user repository for the configured driver.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	return c.userRepo.get(func() (userUseCase.UserRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for user repository: %w", err)
		}
		return selectRepository[userUseCase.UserRepository](c.config.DBDriver,
			func() userUseCase.UserRepository { return userRepository.NewPostgreSQLUserRepository(db) },
			func() userUseCase.UserRepository { return userRepository.NewMySQLUserRepository(db) },
		)
	})
}

// UserUseCase returns the user management use case.
func (c *Container) UserUseCase() (userUseCase.UseCase, error) {
	return c.userUseCase.get(func() (userUseCase.UseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
		}
		userRepo, err := c.UserRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
		}
		outboxRepo, err := c.OutboxRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get outbox repository for user use case: %w", err)
		}
		passwordService, err := c.PasswordService()
		if err != nil {
			return nil, fmt.Errorf("failed to get password service for user use case: %w", err)
		}

		useCase := userUseCase.NewUserUseCase(txManager, userRepo, outboxRepo, passwordService)

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
		}
		return userUseCase.NewUserUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// UserHandler returns the administrative user handler.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	return c.userHandler.get(func() (*userHTTP.UserHandler, error) {
		useCase, err := c.UserUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get user use case for user handler: %w", err)
		}
		return userHTTP.NewUserHandler(useCase, c.Logger()), nil
	})
}
