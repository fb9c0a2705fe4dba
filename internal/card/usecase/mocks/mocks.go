// Package mocks provides testify mocks for the card use case layer.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	"github.com/allisson/cardvault/internal/card/domain"
	"github.com/allisson/cardvault/internal/card/usecase"
)

// MockCardRepository is a mock implementation of usecase.CardRepository.
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Update(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Card, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardRepository) List(ctx context.Context, offset, limit int) ([]*domain.Card, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardRepository) BlockExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockCardUseCase is a mock implementation of usecase.CardUseCase.
type MockCardUseCase struct {
	mock.Mock
}

func (m *MockCardUseCase) Create(
	ctx context.Context,
	actor authDomain.Identity,
	input usecase.CreateCardInput,
) (*domain.Card, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardUseCase) ListAll(
	ctx context.Context,
	actor authDomain.Identity,
	offset, limit int,
) ([]*domain.Card, error) {
	args := m.Called(ctx, actor, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardUseCase) ListOwn(
	ctx context.Context,
	actor authDomain.Identity,
	input usecase.ListOwnInput,
) (*usecase.CardPage, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CardPage), args.Error(1)
}

func (m *MockCardUseCase) Block(ctx context.Context, actor authDomain.Identity, id uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardUseCase) RequestBlock(
	ctx context.Context,
	actor authDomain.Identity,
	id uuid.UUID,
) (*domain.Card, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardUseCase) Activate(
	ctx context.Context,
	actor authDomain.Identity,
	id uuid.UUID,
) (*domain.Card, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardUseCase) Delete(ctx context.Context, actor authDomain.Identity, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockCardUseCase) BlockExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransferUseCase is a mock implementation of usecase.TransferUseCase.
type MockTransferUseCase struct {
	mock.Mock
}

func (m *MockTransferUseCase) Transfer(
	ctx context.Context,
	actor authDomain.Identity,
	input usecase.TransferInput,
) error {
	args := m.Called(ctx, actor, input)
	return args.Error(0)
}
