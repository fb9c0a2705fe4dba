package domain

import (
	"github.com/allisson/cardvault/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	// The two cases are not distinguished.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidToken indicates a missing, expired or badly signed bearer token.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid or expired token")

	// ErrMalformedToken indicates claims could not be extracted from a token.
	ErrMalformedToken = errors.Wrap(errors.ErrToken, "malformed token")

	// ErrInsufficientRole indicates the identity lacks the role required by the route.
	ErrInsufficientRole = errors.Wrap(errors.ErrForbidden, "insufficient role")
)
