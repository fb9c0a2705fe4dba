package app

import (
	"fmt"

	cardHTTP "github.com/allisson/cardvault/internal/card/http"
	cardRepository "github.com/allisson/cardvault/internal/card/repository"
	cardService "github.com/allisson/cardvault/internal/card/service"
	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
	"github.com/allisson/cardvault/internal/card/worker"
)

// CardRepository returns the card repository for the configured driver.
func (c *Container) CardRepository() (cardUseCase.CardRepository, error) {
	return c.cardRepo.get(func() (cardUseCase.CardRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for card repository: %w", err)
		}
		return selectRepository[cardUseCase.CardRepository](c.config.DBDriver,
			func() cardUseCase.CardRepository { return cardRepository.NewPostgreSQLCardRepository(db) },
			func() cardUseCase.CardRepository { return cardRepository.NewMySQLCardRepository(db) },
		)
	})
}

// CardUseCase returns the card issuance, listing and lifecycle use case.
func (c *Container) CardUseCase() (cardUseCase.CardUseCase, error) {
	return c.cardUseCase.get(func() (cardUseCase.CardUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for card use case: %w", err)
		}
		cardRepo, err := c.CardRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get card repository for card use case: %w", err)
		}
		userRepo, err := c.UserRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get user repository for card use case: %w", err)
		}
		outboxRepo, err := c.OutboxRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get outbox repository for card use case: %w", err)
		}
		cipher, err := c.NumberCipher()
		if err != nil {
			return nil, fmt.Errorf("failed to get number cipher for card use case: %w", err)
		}

		useCase := cardUseCase.NewCardUseCase(
			txManager,
			cardRepo,
			userRepo,
			outboxRepo,
			cipher,
			cardService.NewNumberGenerator(),
		)

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for card use case: %w", err)
		}
		return cardUseCase.NewCardUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// TransferUseCase returns the transfer engine.
func (c *Container) TransferUseCase() (cardUseCase.TransferUseCase, error) {
	return c.transferUseCase.get(func() (cardUseCase.TransferUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for transfer use case: %w", err)
		}
		cardRepo, err := c.CardRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get card repository for transfer use case: %w", err)
		}
		outboxRepo, err := c.OutboxRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get outbox repository for transfer use case: %w", err)
		}

		useCase := cardUseCase.NewTransferUseCase(txManager, cardRepo, outboxRepo)

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for transfer use case: %w", err)
		}
		return cardUseCase.NewTransferUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// CardHandler returns the card HTTP handler.
func (c *Container) CardHandler() (*cardHTTP.CardHandler, error) {
	return c.cardHandler.get(func() (*cardHTTP.CardHandler, error) {
		cards, err := c.CardUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get card use case for card handler: %w", err)
		}
		transfers, err := c.TransferUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get transfer use case for card handler: %w", err)
		}
		return cardHTTP.NewCardHandler(cards, transfers, c.Logger()), nil
	})
}

// ExpirySweeper returns the scheduled expired card blocker, or nil when
// CARD_EXPIRY_SWEEP_SCHEDULE is empty.
func (c *Container) ExpirySweeper() (*worker.ExpirySweeper, error) {
	return c.expirySweeper.get(func() (*worker.ExpirySweeper, error) {
		if c.config.CardExpirySweepSchedule == "" {
			return nil, nil
		}
		cards, err := c.CardUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get card use case for expiry sweeper: %w", err)
		}
		return worker.NewExpirySweeper(cards, c.config.CardExpirySweepSchedule, c.Logger()), nil
	})
}
