// Package testutil provides helpers shared by repository and transaction tests.
//
// Repositories are exercised against go-sqlmock so the SQL each driver emits,
// including the row locks taken by transfers, is asserted without a live server:
//
//	db, mock := testutil.NewSQLMock(t)
//	mock.ExpectQuery("SELECT .* FOR UPDATE").WillReturnRows(rows)
package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// NewSQLMock returns a mocked *sql.DB using regular expression query matching.
// Unmet expectations fail the test during cleanup.
func NewSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "failed to create sqlmock")

	t.Cleanup(func() {
		mock.ExpectClose()
		require.NoError(t, db.Close())
		require.NoError(t, mock.ExpectationsWereMet(), "unmet sql expectations")
	})

	return db, mock
}

// UUIDBytes returns the BINARY(16) form used by the MySQL repositories.
func UUIDBytes(t *testing.T, id uuid.UUID) []byte {
	t.Helper()

	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}
