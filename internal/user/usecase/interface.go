// Package usecase implements user management and the user lookups consumed by
// authentication and card issuance.
package usecase

import (
	"context"

	"github.com/google/uuid"

	outboxDomain "github.com/allisson/cardvault/internal/outbox/domain"
	"github.com/allisson/cardvault/internal/user/domain"
)

// CreateUserInput contains the input data for user creation
type CreateUserInput struct {
	Username string
	FullName string
	Email    string
	Password string
	Roles    []string
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns users ordered by username ascending.
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
}

// OutboxEventRepository interface defines outbox event repository operations
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// UseCase defines the interface for user business logic operations
type UseCase interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
}
