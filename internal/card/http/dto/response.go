package dto

import (
	"time"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// CardResponse is the public form of a card. The number is always masked.
type CardResponse struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	ExpiresAt     time.Time `json:"expires_at"`
	Status        string    `json:"status"`
	Balance       string    `json:"balance"`
	OwnerUsername string    `json:"owner_username"`
	CreatedAt     time.Time `json:"created_at"`
}

// OwnCardsResponse is returned by GET /v1/cards.
type OwnCardsResponse struct {
	Data  []CardResponse `json:"data"`
	Total int            `json:"total"`
}

// CardListResponse is returned by GET /v1/cards/all.
type CardListResponse struct {
	Data []CardResponse `json:"data"`
}

// MapCardToResponse converts a card with its plaintext number into a response.
// A number that cannot be masked means the stored ciphertext is corrupt and is
// reported as ErrCardNumberCipher.
func MapCardToResponse(card *cardDomain.Card) (CardResponse, error) {
	masked, err := cardDomain.Mask(card.Number)
	if err != nil {
		return CardResponse{}, apperrors.Join(cardDomain.ErrCardNumberCipher, err)
	}

	return CardResponse{
		ID:            card.ID.String(),
		Number:        masked,
		ExpiresAt:     card.ExpiresAt,
		Status:        string(card.Status),
		Balance:       card.Balance.StringFixed(cardDomain.BalanceScale),
		OwnerUsername: card.OwnerUsername,
		CreatedAt:     card.CreatedAt,
	}, nil
}

// MapCardsToResponses converts a slice of cards, preserving order.
func MapCardsToResponses(cards []*cardDomain.Card) ([]CardResponse, error) {
	responses := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		response, err := MapCardToResponse(card)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}
