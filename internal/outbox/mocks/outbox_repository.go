// Package mocks provides testify mocks for outbox persistence.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/cardvault/internal/outbox/domain"
)

// MockOutboxEventRepository is a mock implementation of the outbox event repository.
type MockOutboxEventRepository struct {
	mock.Mock
}

func (m *MockOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// EventOfType matches an outbox event argument by its event type.
func EventOfType(eventType string) any {
	return mock.MatchedBy(func(e *domain.OutboxEvent) bool {
		return e.EventType == eventType
	})
}
