// Package service provides the token and password services used to
// authenticate users.
package service

// TokenService issues and verifies signed, self-contained bearer tokens.
type TokenService interface {
	// Issue signs a token for subject carrying roles, valid for the configured lifetime.
	Issue(subject string, roles []string) (string, error)

	// Verify reports whether the token has a valid signature and has not expired.
	// It never returns an error.
	Verify(token string) bool

	// Subject returns the token subject. Fails with ErrMalformedToken when the token
	// cannot be verified.
	Subject(token string) (string, error)

	// Roles returns the role claims in issue order. Fails with ErrMalformedToken when
	// the token cannot be verified.
	Roles(token string) ([]string, error)
}

// PasswordService hashes and compares user passwords.
type PasswordService interface {
	Hash(password string) (string, error)

	// Compare performs a constant-time comparison of password against hash.
	Compare(password, hash string) bool
}
