package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
)

type numberGenerator struct{}

// NewNumberGenerator creates a generator drawing each digit from crypto/rand.
// No Luhn check digit or issuer prefix is applied.
func NewNumberGenerator() NumberGenerator {
	return &numberGenerator{}
}

func (g *numberGenerator) Generate() (string, error) {
	digits := make([]byte, cardDomain.NumberLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		//nolint:gosec // n is bounded [0,9] by big.NewInt(10), safe conversion
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// Validate checks that number has exactly 16 ASCII digits.
func (g *numberGenerator) Validate(number string) error {
	if len(number) != cardDomain.NumberLength {
		return cardDomain.ErrInvalidCardNumber
	}
	for _, c := range number {
		if c < '0' || c > '9' {
			return cardDomain.ErrInvalidCardNumber
		}
	}
	return nil
}
