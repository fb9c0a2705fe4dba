package service

import (
	"crypto/aes"
	"crypto/cipher"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// NewAESGCM creates an AES-256-GCM cipher. The key must be exactly 32 bytes.
func NewAESGCM(key []byte) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, apperrors.Join(apperrors.ErrCipher, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, apperrors.Join(apperrors.ErrCipher, err)
	}

	return &sealer{aead: aead}, nil
}
