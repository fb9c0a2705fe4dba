// Package domain defines the card entity, its status state machine and the
// errors returned by card operations.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a card.
type Status string

const (
	StatusActive         Status = "ACTIVE"
	StatusBlocked        Status = "BLOCKED"
	StatusBlockRequested Status = "BLOCK_REQUESTED"
)

// NumberLength is the number of digits in a card number.
const NumberLength = 16

// BalanceScale is the number of decimal places kept for balances and amounts.
const BalanceScale = 2

// Validity is how long a newly issued card stays valid.
const Validity = 4 * 365 * 24 * time.Hour

// Card represents a payment card held by a user.
//
// EncryptedNumber is the only persisted form of the card number. Number holds
// the plaintext while the card is in memory and is never written to storage.
type Card struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	OwnerUsername   string
	EncryptedNumber string
	Number          string
	ExpiresAt       time.Time
	Status          Status
	Balance         decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive reports whether the card can send or receive funds.
func (c *Card) IsActive() bool {
	return c.Status == StatusActive
}

// OwnedBy reports whether userID owns the card.
func (c *Card) OwnedBy(userID uuid.UUID) bool {
	return c.OwnerID == userID
}

// IsExpired reports whether the card expiration is before now.
func (c *Card) IsExpired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}

// Block moves the card to BLOCKED from any other state.
func (c *Card) Block() error {
	if c.Status == StatusBlocked {
		return ErrCardAlreadyBlocked
	}
	c.Status = StatusBlocked
	return nil
}

// RequestBlock marks the card as BLOCK_REQUESTED. It does not block the card.
func (c *Card) RequestBlock() error {
	switch c.Status {
	case StatusBlocked:
		return ErrCardAlreadyBlocked
	case StatusBlockRequested:
		return ErrBlockAlreadyRequested
	}
	c.Status = StatusBlockRequested
	return nil
}

// Activate moves the card to ACTIVE from any other state.
func (c *Card) Activate() error {
	if c.Status == StatusActive {
		return ErrCardAlreadyActive
	}
	c.Status = StatusActive
	return nil
}

// Withdraw subtracts amount from the balance. The balance never goes negative.
func (c *Card) Withdraw(amount decimal.Decimal) error {
	if c.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	c.Balance = c.Balance.Sub(amount)
	return nil
}

// Deposit adds amount to the balance.
func (c *Card) Deposit(amount decimal.Decimal) {
	c.Balance = c.Balance.Add(amount)
}

// RoundAmount rounds an amount to the balance scale.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(BalanceScale)
}

// ValidTransferAmount reports whether amount is positive and carries no more
// precision than the balance scale.
func ValidTransferAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(RoundAmount(amount))
}
