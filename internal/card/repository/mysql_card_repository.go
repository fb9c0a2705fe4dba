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

const mysqlCardSelect = `SELECT c.id, c.owner_id, u.username, c.encrypted_number, c.expires_at, c.status,
			  c.balance, c.created_at, c.updated_at
			  FROM cards c JOIN users u ON u.id = c.owner_id`

// MySQLCardRepository handles card persistence for MySQL
type MySQLCardRepository struct {
	db *sql.DB
}

// NewMySQLCardRepository creates a new MySQLCardRepository
func NewMySQLCardRepository(db *sql.DB) *MySQLCardRepository {
	return &MySQLCardRepository{
		db: db,
	}
}

// Create inserts a new card
func (r *MySQLCardRepository) Create(ctx context.Context, card *domain.Card) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := card.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerBytes, err := card.OwnerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `INSERT INTO cards (id, owner_id, encrypted_number, expires_at, status, balance, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	_, err = querier.ExecContext(
		ctx, query, idBytes, ownerBytes, card.EncryptedNumber, card.ExpiresAt, string(card.Status),
		card.Balance, now, now,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create card")
	}

	card.CreatedAt = now
	card.UpdatedAt = now
	return nil
}

// Update persists the card status and balance
func (r *MySQLCardRepository) Update(ctx context.Context, card *domain.Card) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := card.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	now := time.Now().UTC()
	query := `UPDATE cards SET status = ?, balance = ?, updated_at = ? WHERE id = ?`

	// MySQL reports zero affected rows when the values are unchanged, so a
	// missing card is detected by the row lock taken earlier, not here.
	if _, err := querier.ExecContext(ctx, query, string(card.Status), card.Balance, now, idBytes); err != nil {
		return apperrors.Wrap(err, "failed to update card")
	}

	card.UpdatedAt = now
	return nil
}

// Delete removes a card
func (r *MySQLCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete card")
	}
	return expectOneRow(result, "failed to delete card")
}

// Get retrieves a card by ID
func (r *MySQLCardRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return r.getOne(ctx, mysqlCardSelect+` WHERE c.id = ?`, id)
}

// GetForUpdate retrieves a card by ID and locks its row
func (r *MySQLCardRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return r.getOne(ctx, mysqlCardSelect+` WHERE c.id = ? FOR UPDATE OF c`, id)
}

// ListByOwner retrieves every card of the owner, newest first
func (r *MySQLCardRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Card, error) {
	ownerBytes, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := mysqlCardSelect + ` WHERE c.owner_id = ? ORDER BY c.created_at DESC`
	return r.list(ctx, query, ownerBytes)
}

// List retrieves cards ordered by balance descending with pagination
func (r *MySQLCardRepository) List(ctx context.Context, offset, limit int) ([]*domain.Card, error) {
	query := mysqlCardSelect + ` ORDER BY c.balance DESC, c.id ASC LIMIT ? OFFSET ?`
	return r.list(ctx, query, limit, offset)
}

// BlockExpired blocks every non-blocked card that expired before now
func (r *MySQLCardRepository) BlockExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE cards SET status = ?, updated_at = ? WHERE expires_at < ? AND status <> ?`

	blocked := string(domain.StatusBlocked)
	result, err := querier.ExecContext(ctx, query, blocked, now, now, blocked)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to block expired cards")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to block expired cards")
	}
	return n, nil
}

func (r *MySQLCardRepository) getOne(ctx context.Context, query string, id uuid.UUID) (*domain.Card, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	card, err := scanMySQLCard(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get card")
	}
	return card, nil
}

func (r *MySQLCardRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Card, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cards")
	}
	defer rows.Close() //nolint:errcheck

	cards := make([]*domain.Card, 0)
	for rows.Next() {
		card, err := scanMySQLCard(rows)
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

func scanMySQLCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	var idBytes, ownerBytes []byte
	var status string

	err := row.Scan(
		&idBytes, &ownerBytes, &card.OwnerUsername, &card.EncryptedNumber, &card.ExpiresAt, &status,
		&card.Balance, &card.CreatedAt, &card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := card.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := card.OwnerID.UnmarshalBinary(ownerBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	card.Status = domain.Status(status)
	return &card, nil
}
