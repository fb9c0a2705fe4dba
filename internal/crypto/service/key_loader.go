package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

type keyLoader struct {
	kmsService KMSService
}

// NewKeyLoader creates a KeyLoader that uses kmsService for wrapped keys.
func NewKeyLoader(kmsService KMSService) KeyLoader {
	return &keyLoader{kmsService: kmsService}
}

func (l *keyLoader) Load(ctx context.Context, encoded, kmsKeyURI string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperrors.Join(cryptoDomain.ErrInvalidKeyEncoding, err)
	}

	key := decoded
	if kmsKeyURI != "" {
		keeper, err := l.kmsService.OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = keeper.Close()
		}()

		key, err = keeper.Decrypt(ctx, decoded)
		cryptoDomain.Zero(decoded)
		if err != nil {
			return nil, apperrors.Join(cryptoDomain.ErrKMSUnavailable, fmt.Errorf("failed to unwrap key: %w", err))
		}
	}

	if len(key) != cryptoDomain.KeySize {
		cryptoDomain.Zero(key)
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	return key, nil
}

func (l *keyLoader) Generate(ctx context.Context, kmsKeyURI string) (string, error) {
	key := make([]byte, cryptoDomain.KeySize)
	defer cryptoDomain.Zero(key)

	if _, err := rand.Read(key); err != nil {
		return "", apperrors.Join(apperrors.ErrCipher, fmt.Errorf("failed to generate key: %w", err))
	}

	if kmsKeyURI == "" {
		return base64.StdEncoding.EncodeToString(key), nil
	}

	keeper, err := l.kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = keeper.Close()
	}()

	wrapped, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return "", apperrors.Join(cryptoDomain.ErrKMSUnavailable, fmt.Errorf("failed to wrap key: %w", err))
	}
	return base64.StdEncoding.EncodeToString(wrapped), nil
}
