// Package errors provides the error kinds shared by every domain package.
//
// Domain packages declare their own error values by wrapping one of these
// sentinels, and the HTTP layer maps each sentinel to a status code.
package errors

import (
	"errors"
	"fmt"
)

// Error kinds used across the card, auth and user domains.
var (
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a valid request that the current state disallows
	// (already blocked, inactive card, insufficient funds, duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates malformed input such as a non-positive amount.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates an authenticated actor without rights on the target resource.
	ErrForbidden = errors.New("forbidden")

	// ErrCipher indicates a cryptographic failure while protecting card data.
	// Its wrapped cause must never reach an API response.
	ErrCipher = errors.New("cipher error")

	// ErrToken indicates a malformed or unverifiable authentication token.
	ErrToken = errors.New("token error")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Join returns an error that wraps both kind and cause, so callers can match
// on the domain error while the cause stays available for logging.
func Join(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
