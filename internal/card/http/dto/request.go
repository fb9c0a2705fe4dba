// Package dto provides data transfer objects for the card HTTP layer.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	"github.com/allisson/cardvault/internal/card/usecase"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// CreateCardRequest contains the parameters for issuing a card.
type CreateCardRequest struct {
	UserID       string `json:"user_id"`
	StartBalance string `json:"start_balance"`
}

// Validate checks if the create card request is valid.
// An empty start balance means zero.
func (r *CreateCardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.UUID,
		),
		validation.Field(&r.StartBalance,
			customValidation.Amount,
			customValidation.NonNegativeAmount,
		),
	)
}

// ToCreateCardInput converts a validated request into use case input.
func (r *CreateCardRequest) ToCreateCardInput() usecase.CreateCardInput {
	balance := decimal.Zero
	if r.StartBalance != "" {
		balance = decimal.RequireFromString(r.StartBalance)
	}
	return usecase.CreateCardInput{
		UserID:       uuid.MustParse(r.UserID),
		StartBalance: balance,
	}
}

// TransferRequest contains the parameters for moving funds between own cards.
type TransferRequest struct {
	FromCardID string `json:"from_card_id"`
	ToCardID   string `json:"to_card_id"`
	Amount     string `json:"amount"`
}

// Validate checks the request shape. Sign and ownership are checked by the
// transfer use case.
func (r *TransferRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FromCardID,
			validation.Required,
			customValidation.UUID,
		),
		validation.Field(&r.ToCardID,
			validation.Required,
			customValidation.UUID,
		),
		validation.Field(&r.Amount,
			validation.Required,
			customValidation.Amount,
		),
	)
}

// ToTransferInput converts a validated request into use case input.
func (r *TransferRequest) ToTransferInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromCardID: uuid.MustParse(r.FromCardID),
		ToCardID:   uuid.MustParse(r.ToCardID),
		Amount:     decimal.RequireFromString(r.Amount),
	}
}

// ListOwnQuery holds the query parameters of GET /v1/cards.
type ListOwnQuery struct {
	NumberFilter string `form:"number_filter"`
}

// Validate restricts the number filter to at most 16 digits.
func (q *ListOwnQuery) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.NumberFilter,
			validation.Length(0, cardDomain.NumberLength),
			customValidation.Digits,
		),
	)
}
