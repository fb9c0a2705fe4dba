package domain

import (
	"github.com/allisson/cardvault/internal/errors"
)

// Card errors.
var (
	// ErrCardNotFound indicates the card does not exist.
	ErrCardNotFound = errors.Wrap(errors.ErrNotFound, "card not found")

	// ErrSenderCardNotFound indicates the transfer source card does not exist.
	ErrSenderCardNotFound = errors.Wrap(errors.ErrNotFound, "sender card not found")

	// ErrReceiverCardNotFound indicates the transfer destination card does not exist.
	ErrReceiverCardNotFound = errors.Wrap(errors.ErrNotFound, "receiver card not found")

	// ErrCardNotOwned indicates the actor does not own the card.
	ErrCardNotOwned = errors.Wrap(errors.ErrForbidden, "card belongs to another user")

	// ErrTransferNotOwned indicates at least one transfer card belongs to someone else.
	ErrTransferNotOwned = errors.Wrap(errors.ErrForbidden, "transfer only between own cards")

	// ErrAdminRequired indicates the operation is restricted to administrators.
	ErrAdminRequired = errors.Wrap(errors.ErrForbidden, "admin role required")

	ErrCardAlreadyBlocked    = errors.Wrap(errors.ErrConflict, "card already blocked")
	ErrBlockAlreadyRequested = errors.Wrap(errors.ErrConflict, "block already requested")
	ErrCardAlreadyActive     = errors.Wrap(errors.ErrConflict, "card already active")
	ErrSenderCardInactive    = errors.Wrap(errors.ErrConflict, "sender card inactive")
	ErrReceiverCardInactive  = errors.Wrap(errors.ErrConflict, "receiver card inactive")
	ErrInsufficientFunds     = errors.Wrap(errors.ErrConflict, "insufficient funds")

	// ErrInvalidTransferAmount indicates a transfer amount that is not positive or has more
	// than two decimals.
	ErrInvalidTransferAmount = errors.Wrap(
		errors.ErrInvalidInput,
		"transfer amount must be positive with at most two decimals",
	)

	// ErrSameCardTransfer indicates a transfer whose source and destination are the same card.
	ErrSameCardTransfer = errors.Wrap(errors.ErrInvalidInput, "cannot transfer to the same card")

	// ErrNegativeStartBalance indicates a card issued with a negative balance.
	ErrNegativeStartBalance = errors.Wrap(errors.ErrInvalidInput, "start balance must not be negative")

	// ErrInvalidCardNumber indicates a card number that is not exactly 16 digits.
	ErrInvalidCardNumber = errors.Wrap(errors.ErrInvalidInput, "card number must have 16 digits")

	// ErrCardNumberCipher indicates the card number could not be encrypted or decrypted.
	// The cause is kept in the chain for logs only.
	ErrCardNumberCipher = errors.Wrap(errors.ErrCipher, "card number cipher failure")
)
