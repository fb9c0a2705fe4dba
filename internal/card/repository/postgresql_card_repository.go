// Package repository provides data persistence implementations for cards.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/cardvault/internal/card/domain"
	"github.com/allisson/cardvault/internal/database"

	apperrors "github.com/allisson/cardvault/internal/errors"
)

const postgresCardSelect = `SELECT c.id, c.owner_id, u.username, c.encrypted_number, c.expires_at, c.status,
			  c.balance, c.created_at, c.updated_at
			  FROM cards c JOIN users u ON u.id = c.owner_id`

// PostgreSQLCardRepository handles card persistence for PostgreSQL
type PostgreSQLCardRepository struct {
	db *sql.DB
}

// NewPostgreSQLCardRepository creates a new PostgreSQLCardRepository
func NewPostgreSQLCardRepository(db *sql.DB) *PostgreSQLCardRepository {
	return &PostgreSQLCardRepository{
		db: db,
	}
}

// Create inserts a new card
func (r *PostgreSQLCardRepository) Create(ctx context.Context, card *domain.Card) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO cards (id, owner_id, encrypted_number, expires_at, status, balance, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			  RETURNING created_at, updated_at`

	err := querier.QueryRowContext(
		ctx, query, card.ID, card.OwnerID, card.EncryptedNumber, card.ExpiresAt, string(card.Status),
		card.Balance,
	).Scan(&card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create card")
	}
	return nil
}

// Update persists the card status and balance
func (r *PostgreSQLCardRepository) Update(ctx context.Context, card *domain.Card) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE cards SET status = $1, balance = $2, updated_at = NOW() WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, string(card.Status), card.Balance, card.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update card")
	}
	return expectOneRow(result, "failed to update card")
}

// Delete removes a card
func (r *PostgreSQLCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete card")
	}
	return expectOneRow(result, "failed to delete card")
}

// Get retrieves a card by ID
func (r *PostgreSQLCardRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return r.getOne(ctx, postgresCardSelect+` WHERE c.id = $1`, id)
}

// GetForUpdate retrieves a card by ID and locks its row
func (r *PostgreSQLCardRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return r.getOne(ctx, postgresCardSelect+` WHERE c.id = $1 FOR UPDATE OF c`, id)
}

// ListByOwner retrieves every card of the owner, newest first
func (r *PostgreSQLCardRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Card, error) {
	query := postgresCardSelect + ` WHERE c.owner_id = $1 ORDER BY c.created_at DESC`
	return r.list(ctx, query, ownerID)
}

// List retrieves cards ordered by balance descending with pagination
func (r *PostgreSQLCardRepository) List(ctx context.Context, offset, limit int) ([]*domain.Card, error) {
	query := postgresCardSelect + ` ORDER BY c.balance DESC, c.id ASC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// BlockExpired blocks every non-blocked card that expired before now
func (r *PostgreSQLCardRepository) BlockExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE cards SET status = $1, updated_at = NOW() WHERE expires_at < $2 AND status <> $1`

	result, err := querier.ExecContext(ctx, query, string(domain.StatusBlocked), now)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to block expired cards")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to block expired cards")
	}
	return n, nil
}

func (r *PostgreSQLCardRepository) getOne(ctx context.Context, query string, id uuid.UUID) (*domain.Card, error) {
	querier := database.GetTx(ctx, r.db)

	card, err := scanPostgreSQLCard(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get card")
	}
	return card, nil
}

func (r *PostgreSQLCardRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Card, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cards")
	}
	defer rows.Close() //nolint:errcheck

	cards := make([]*domain.Card, 0)
	for rows.Next() {
		card, err := scanPostgreSQLCard(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan card")
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate cards")
	}

	return cards, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostgreSQLCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	var status string

	err := row.Scan(
		&card.ID, &card.OwnerID, &card.OwnerUsername, &card.EncryptedNumber, &card.ExpiresAt, &status,
		&card.Balance, &card.CreatedAt, &card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.Status = domain.Status(status)
	return &card, nil
}

// expectOneRow maps a write that touched no rows to ErrCardNotFound.
func expectOneRow(result sql.Result, failure string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, failure)
	}
	if n == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}
