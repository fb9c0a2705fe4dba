// Package domain defines the authenticated identity, roles and authentication errors.
package domain

// Role names carried in token claims and stored on users.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
