package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cardvault/internal/testutil"
	"github.com/allisson/cardvault/internal/user/domain"
)

var userColumns = []string{
	"id", "username", "full_name", "email", "password_hash", "roles", "created_at", "updated_at",
}

func newUser() *domain.User {
	return &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     "alice",
		FullName:     "Alice Liddell",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Roles:        []string{"USER", "ADMIN"},
	}
}

func TestPostgreSQLUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLUserRepository(db)
		user := newUser()
		now := time.Now().UTC()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.ID, "alice", "Alice Liddell", "alice@example.com", "hash", "USER,ADMIN").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		require.NoError(t, repo.Create(ctx, user))
		assert.Equal(t, now, user.CreatedAt)
	})

	t.Run("Error_Duplicate", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_username_key"`))

		err := repo.Create(ctx, newUser())
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})
}

func TestPostgreSQLUserRepository_Get(t *testing.T) {
	ctx := context.Background()
	user := newUser()
	now := time.Now().UTC()

	t.Run("Success_GetByUsername", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectQuery(`SELECT .* FROM users WHERE username = \$1`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(user.ID.String(), "alice", "Alice Liddell", "alice@example.com", "hash", "USER,ADMIN", now, now))

		got, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, []string{"USER", "ADMIN"}, got.Roles)
	})

	t.Run("Error_GetByIDNotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs(user.ID).
			WillReturnRows(sqlmock.NewRows(userColumns))

		got, err := repo.GetByID(ctx, user.ID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Success_List", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectQuery(`SELECT .* FROM users ORDER BY username ASC LIMIT \$1 OFFSET \$2`).
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(user.ID.String(), "alice", "Alice Liddell", "alice@example.com", "hash", "USER", now, now))

		users, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "alice", users[0].Username)
	})
}

func TestMySQLUserRepository(t *testing.T) {
	ctx := context.Background()
	user := newUser()
	now := time.Now().UTC()

	t.Run("Success_Create", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(testutil.UUIDBytes(t, user.ID), "alice", "Alice Liddell", "alice@example.com", "hash",
				"USER,ADMIN", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, user))
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("Error_Duplicate", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'users.username'"))

		assert.ErrorIs(t, repo.Create(ctx, newUser()), domain.ErrUserAlreadyExists)
	})

	t.Run("Success_GetByID", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \?`).
			WithArgs(testutil.UUIDBytes(t, user.ID)).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(testutil.UUIDBytes(t, user.ID), "alice", "Alice Liddell", "alice@example.com", "hash", "USER",
					now, now))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, []string{"USER"}, got.Roles)
	})

	t.Run("Error_GetByUsernameNotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectQuery(`SELECT .* FROM users WHERE username = \?`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := repo.GetByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Success_List", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectQuery(`SELECT .* FROM users ORDER BY username ASC LIMIT \? OFFSET \?`).
			WithArgs(5, 10).
			WillReturnRows(sqlmock.NewRows(userColumns))

		users, err := repo.List(ctx, 10, 5)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}
