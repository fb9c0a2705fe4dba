// Package domain defines the user entity and its errors.
package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/cardvault/internal/errors"
)

// User is an account that can log in and own cards.
type User struct {
	ID           uuid.UUID
	Username     string
	FullName     string
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user carries role.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// JoinRoles encodes roles for the comma separated roles column.
func JoinRoles(roles []string) string {
	return strings.Join(roles, ",")
}

// SplitRoles decodes the comma separated roles column.
func SplitRoles(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same username or email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)
