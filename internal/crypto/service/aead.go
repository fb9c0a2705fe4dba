package service

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// sealer adapts a cipher.AEAD to the AEAD interface.
type sealer struct {
	aead cipher.AEAD
}

// Seal encrypts plaintext under a freshly generated nonce and prepends the nonce.
func (s *sealer) Seal(plaintext, aad []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	out := make([]byte, nonceSize, nonceSize+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(out); err != nil {
		return nil, apperrors.Join(apperrors.ErrCipher, fmt.Errorf("failed to generate nonce: %w", err))
	}

	return s.aead.Seal(out, out[:nonceSize], plaintext, aad), nil
}

// Open splits the nonce from sealed and decrypts the remainder.
// Any failure, including a truncated input, returns ErrDecryptionFailed.
func (s *sealer) Open(sealed, aad []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize+s.aead.Overhead() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := s.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
