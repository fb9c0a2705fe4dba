package domain

import (
	"slices"

	"github.com/google/uuid"
)

// Identity is the authenticated caller, resolved once from a verified token
// and passed explicitly to every card operation.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Roles    []string
}

// HasRole reports whether the identity carries role.
func (i Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}

// IsAdmin reports whether the identity carries the ADMIN role.
func (i Identity) IsAdmin() bool {
	return i.HasRole(RoleAdmin)
}
