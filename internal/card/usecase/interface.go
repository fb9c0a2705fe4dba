// Package usecase implements card issuance, listing, lifecycle transitions and
// the funds transfer between cards. Every operation receives the caller
// identity explicitly.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	outboxDomain "github.com/allisson/cardvault/internal/outbox/domain"
	userDomain "github.com/allisson/cardvault/internal/user/domain"
)

// CardRepository defines card persistence. Reads return the owner username
// joined from users.
type CardRepository interface {
	Create(ctx context.Context, card *cardDomain.Card) error

	// Update persists status and balance of an existing card.
	Update(ctx context.Context, card *cardDomain.Card) error

	// Delete removes the card. Returns ErrCardNotFound when no row was deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	Get(ctx context.Context, id uuid.UUID) (*cardDomain.Card, error)

	// GetForUpdate reads the card and locks its row until the ambient
	// transaction ends. Must be called inside TxManager.WithTx.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*cardDomain.Card, error)

	// ListByOwner returns every card of ownerID ordered by created_at descending.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*cardDomain.Card, error)

	// List returns cards ordered by balance descending with pagination.
	List(ctx context.Context, offset, limit int) ([]*cardDomain.Card, error)

	// BlockExpired blocks every non-blocked card that expired before now and
	// returns the number of cards changed.
	BlockExpired(ctx context.Context, now time.Time) (int64, error)
}

// UserLookup resolves card owners.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}

// OutboxEventRepository stores events in the caller's transaction.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// CreateCardInput contains the data needed to issue a card.
type CreateCardInput struct {
	UserID       uuid.UUID
	StartBalance decimal.Decimal
}

// ListOwnInput filters and paginates the caller's cards.
type ListOwnInput struct {
	// NumberFilter keeps cards whose plaintext number contains it. Empty keeps all.
	NumberFilter string
	Offset       int
	Limit        int
}

// CardPage is a page of cards plus the number of cards matching the filter.
type CardPage struct {
	Cards []*cardDomain.Card
	Total int
}

// TransferInput describes a transfer between two cards of the same owner.
type TransferInput struct {
	FromCardID uuid.UUID
	ToCardID   uuid.UUID
	Amount     decimal.Decimal
}

// CardUseCase defines card issuance, listing and lifecycle operations.
// Returned cards carry the plaintext Number in memory; callers mask it before
// it leaves the process.
type CardUseCase interface {
	// Create issues an ACTIVE card with a new random number. Admin only.
	Create(ctx context.Context, actor authDomain.Identity, input CreateCardInput) (*cardDomain.Card, error)

	// ListAll lists every card ordered by balance descending. Admin only.
	ListAll(ctx context.Context, actor authDomain.Identity, offset, limit int) ([]*cardDomain.Card, error)

	// ListOwn lists the actor's cards newest first, filtered by number.
	ListOwn(ctx context.Context, actor authDomain.Identity, input ListOwnInput) (*CardPage, error)

	// Block moves a card to BLOCKED. Admin only.
	Block(ctx context.Context, actor authDomain.Identity, id uuid.UUID) (*cardDomain.Card, error)

	// RequestBlock moves one of the actor's cards to BLOCK_REQUESTED.
	RequestBlock(ctx context.Context, actor authDomain.Identity, id uuid.UUID) (*cardDomain.Card, error)

	// Activate moves a card to ACTIVE. Admin only.
	Activate(ctx context.Context, actor authDomain.Identity, id uuid.UUID) (*cardDomain.Card, error)

	// Delete hard deletes a card in any state. Admin only.
	Delete(ctx context.Context, actor authDomain.Identity, id uuid.UUID) error

	// BlockExpired blocks every card past its expiration date.
	BlockExpired(ctx context.Context) (int64, error)
}

// TransferUseCase moves funds between two cards owned by the actor.
type TransferUseCase interface {
	Transfer(ctx context.Context, actor authDomain.Identity, input TransferInput) error
}
