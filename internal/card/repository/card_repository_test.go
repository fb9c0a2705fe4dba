package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cardvault/internal/card/domain"
	apperrors "github.com/allisson/cardvault/internal/errors"
	"github.com/allisson/cardvault/internal/testutil"
)

var cardColumns = []string{
	"id", "owner_id", "username", "encrypted_number", "expires_at", "status", "balance", "created_at",
	"updated_at",
}

func newCard() *domain.Card {
	return &domain.Card{
		ID:              uuid.Must(uuid.NewV7()),
		OwnerID:         uuid.Must(uuid.NewV7()),
		OwnerUsername:   "alice",
		EncryptedNumber: "c2VhbGVk",
		ExpiresAt:       time.Now().UTC().Add(domain.Validity),
		Status:          domain.StatusActive,
		Balance:         decimal.RequireFromString("1000.50"),
	}
}

func TestPostgreSQLCardRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLCardRepository(db)
		card := newCard()
		now := time.Now().UTC()

		mock.ExpectQuery("INSERT INTO cards").
			WithArgs(card.ID, card.OwnerID, "c2VhbGVk", card.ExpiresAt, "ACTIVE", card.Balance).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		require.NoError(t, repo.Create(ctx, card))
		assert.Equal(t, now, card.CreatedAt)
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLCardRepository(db)

		mock.ExpectQuery("INSERT INTO cards").WillReturnError(errors.New("connection refused"))

		err := repo.Create(ctx, newCard())
		assert.ErrorContains(t, err, "failed to create card")
	})
}

func TestPostgreSQLCardRepository_Get(t *testing.T) {
	ctx := context.Background()
	card := newCard()
	now := time.Now().UTC()

	row := func() *sqlmock.Rows {
		return sqlmock.NewRows(cardColumns).AddRow(
			card.ID.String(), card.OwnerID.String(), "alice", "c2VhbGVk", card.ExpiresAt, "BLOCK_REQUESTED",
			"1000.50", now, now,
		)
	}

	t.Run("Success_Get", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLCardRepository(db)

		mock.ExpectQuery(`SELECT .* FROM cards c JOIN users u ON u.id = c.owner_id WHERE c.id = \$1$`).
			WithArgs(card.ID).
			WillReturnRows(row())

		got, err := repo.Get(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, card.ID, got.ID)
		assert.Equal(t, card.OwnerID, got.OwnerID)
		assert.Equal(t, "alice", got.OwnerUsername)
		assert.Equal(t, domain.StatusBlockRequested, got.Status)
		assert.True(t, got.Balance.Equal(decimal.RequireFromString("1000.5")))
		assert.Empty(t, got.Number)
	})

	t.Run("Success_GetForUpdateLocksRow", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLCardRepository(db)

		mock.ExpectQuery(`SELECT .* WHERE c.id = \$1 FOR UPDATE OF c`).
			WithArgs(card.ID).
			WillReturnRows(row())

		got, err := repo.GetForUpdate(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, card.ID, got.ID)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLCardRepository(db)

		mock.ExpectQuery(`SELECT .* FOR UPDATE OF c`).
			WithArgs(card.ID).
			WillReturnRows(sqlmock.NewRows(cardColumns))

		_, err := repo.GetForUpdate(ctx, card.ID)
		assert.ErrorIs(t, err, domain.ErrCardNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLCardRepository_List(t *testing.T) {
	ctx := context.Background()
	card := newCard()
	now := time.Now().UTC()

	t.Run("Success_ListByOwner", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLCardRepository(db)

		mock.ExpectQuery(`WHERE c.owner_id = \$1 ORDER BY c.created_at DESC`).
			WithArgs(card.OwnerID).
			WillReturnRows(sqlmock.NewRows(cardColumns).
				AddRow(card.ID.String(), card.OwnerID.String(), "alice", "a", card.ExpiresAt, "ACTIVE", "1", now, now).
				AddRow(uuid.Must(uuid.NewV7()).String(), card.OwnerID.String(), "alice", "b", card.ExpiresAt,
					"BLOCKED", "2", now, now))

		cards, err := repo.ListByOwner(ctx, card.OwnerID)
		require.NoError(t, err)
		assert.Len(t, cards, 2)
		assert.Equal(t, domain.StatusBlocked, cards[1].Status)
	})

	t.Run("Success_ListOrderedByBalance", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLCardRepository(db)

		mock.ExpectQuery(`ORDER BY c.balance DESC, c.id ASC LIMIT \$1 OFFSET \$2`).
			WithArgs(10, 20).
			WillReturnRows(sqlmock.NewRows(cardColumns))

		cards, err := repo.List(ctx, 20, 10)
		require.NoError(t, err)
		assert.Empty(t, cards)
		assert.NotNil(t, cards)
	})

	t.Run("Error_Query", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLCardRepository(db)

		mock.ExpectQuery(`ORDER BY c.balance DESC`).WillReturnError(errors.New("timeout"))

		_, err := repo.List(ctx, 0, 10)
		assert.ErrorContains(t, err, "failed to list cards")
	})
}

func TestPostgreSQLCardRepository_Writes(t *testing.T) {
	ctx := context.Background()
	card := newCard()

	t.Run("Success_Update", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLCardRepository(db)

		mock.ExpectExec(`UPDATE cards SET status = \$1, balance = \$2`).
			WithArgs("ACTIVE", card.Balance, card.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, card))
	})

	t.Run("Error_UpdateNotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLCardRepository(db)

		mock.ExpectExec(`UPDATE cards`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, card), domain.ErrCardNotFound)
	})

	t.Run("Success_Delete", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLCardRepository(db)

		mock.ExpectExec(`DELETE FROM cards WHERE id = \$1`).
			WithArgs(card.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, card.ID))
	})

	t.Run("Error_DeleteNotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLCardRepository(db)

		mock.ExpectExec(`DELETE FROM cards`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, card.ID), domain.ErrCardNotFound)
	})

	t.Run("Success_BlockExpired", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLCardRepository(db)
		now := time.Now().UTC()

		mock.ExpectExec(`UPDATE cards SET status = \$1, updated_at = NOW\(\) WHERE expires_at < \$2 AND status <> \$1`).
			WithArgs("BLOCKED", now).
			WillReturnResult(sqlmock.NewResult(0, 4))

		n, err := repo.BlockExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})
}

func TestMySQLCardRepository(t *testing.T) {
	ctx := context.Background()
	card := newCard()
	now := time.Now().UTC()

	row := func() *sqlmock.Rows {
		return sqlmock.NewRows(cardColumns).AddRow(
			testutil.UUIDBytes(t, card.ID), testutil.UUIDBytes(t, card.OwnerID), "alice", "c2VhbGVk",
			card.ExpiresAt, "ACTIVE", []byte("1000.50"), now, now,
		)
	}

	t.Run("Success_Create", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLCardRepository(db)
		c := newCard()

		mock.ExpectExec("INSERT INTO cards").
			WithArgs(testutil.UUIDBytes(t, c.ID), testutil.UUIDBytes(t, c.OwnerID), "c2VhbGVk", c.ExpiresAt,
				"ACTIVE", c.Balance, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, c))
		assert.False(t, c.CreatedAt.IsZero())
	})

	t.Run("Success_GetForUpdate", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLCardRepository(db)

		mock.ExpectQuery(`SELECT .* WHERE c.id = \? FOR UPDATE OF c`).
			WithArgs(testutil.UUIDBytes(t, card.ID)).
			WillReturnRows(row())

		got, err := repo.GetForUpdate(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, card.ID, got.ID)
		assert.Equal(t, card.OwnerID, got.OwnerID)
		assert.Equal(t, "1000.50", got.Balance.StringFixed(2))
	})

	t.Run("Error_GetNotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLCardRepository(db)

		mock.ExpectQuery(`SELECT .* WHERE c.id = \?`).
			WillReturnRows(sqlmock.NewRows(cardColumns))

		_, err := repo.Get(ctx, card.ID)
		assert.ErrorIs(t, err, domain.ErrCardNotFound)
	})

	t.Run("Success_ListByOwner", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLCardRepository(db)

		mock.ExpectQuery(`WHERE c.owner_id = \? ORDER BY c.created_at DESC`).
			WithArgs(testutil.UUIDBytes(t, card.OwnerID)).
			WillReturnRows(row())

		cards, err := repo.ListByOwner(ctx, card.OwnerID)
		require.NoError(t, err)
		assert.Len(t, cards, 1)
	})

	t.Run("Success_List", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLCardRepository(db)

		mock.ExpectQuery(`ORDER BY c.balance DESC, c.id ASC LIMIT \? OFFSET \?`).
			WithArgs(50, 0).
			WillReturnRows(row())

		cards, err := repo.List(ctx, 0, 50)
		require.NoError(t, err)
		assert.Len(t, cards, 1)
	})

	t.Run("Success_Update", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLCardRepository(db)

		mock.ExpectExec(`UPDATE cards SET status = \?, balance = \?, updated_at = \? WHERE id = \?`).
			WithArgs("ACTIVE", card.Balance, sqlmock.AnyArg(), testutil.UUIDBytes(t, card.ID)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Update(ctx, card))
	})

	t.Run("Error_DeleteNotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLCardRepository(db)

		mock.ExpectExec(`DELETE FROM cards WHERE id = \?`).
			WithArgs(testutil.UUIDBytes(t, card.ID)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, card.ID), domain.ErrCardNotFound)
	})

	t.Run("Success_BlockExpired", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLCardRepository(db)

		mock.ExpectExec(`UPDATE cards SET status = \?, updated_at = \? WHERE expires_at < \? AND status <> \?`).
			WithArgs("BLOCKED", now, now, "BLOCKED").
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := repo.BlockExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}
