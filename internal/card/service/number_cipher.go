package service

import (
	"encoding/base64"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

type numberCipher struct {
	aead cryptoService.AEAD
}

// NewNumberCipher creates a NumberCipher using the given key and algorithm.
// Returns ErrCardNumberCipher when the key is not 32 bytes.
func NewNumberCipher(
	aeadManager cryptoService.AEADManager,
	key []byte,
	alg cryptoDomain.Algorithm,
) (NumberCipher, error) {
	aead, err := aeadManager.CreateCipher(key, alg)
	if err != nil {
		return nil, apperrors.Join(cardDomain.ErrCardNumberCipher, err)
	}
	return &numberCipher{aead: aead}, nil
}

// Encrypt returns base64(nonce || ciphertext). Each call uses a new nonce so the
// same number never produces the same output twice.
func (c *numberCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	sealed, err := c.aead.Seal([]byte(plaintext), nil)
	if err != nil {
		return "", apperrors.Join(cardDomain.ErrCardNumberCipher, err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *numberCipher) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", apperrors.Join(cardDomain.ErrCardNumberCipher, err)
	}

	plaintext, err := c.aead.Open(sealed, nil)
	if err != nil {
		return "", apperrors.Join(cardDomain.ErrCardNumberCipher, err)
	}
	return string(plaintext), nil
}
