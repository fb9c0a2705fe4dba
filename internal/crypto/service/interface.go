// Package service provides the AEAD ciphers and KMS helpers used to keep card
// numbers encrypted at rest.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
)

// AEAD seals and opens values with a fresh random nonce per call.
//
// Seal returns nonce||ciphertext||tag so the output can be stored in a single
// column. Open expects the same layout.
type AEAD interface {
	Seal(plaintext, aad []byte) ([]byte, error)
	Open(sealed, aad []byte) ([]byte, error)
}

// AEADManager creates AEAD cipher instances.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KMSService opens keepers for the configured KMS provider.
type KMSService interface {
	// OpenKeeper opens a keeper for a gocloud.dev secrets URI.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

// KeyLoader turns configured key material into raw key bytes and back.
type KeyLoader interface {
	// Load decodes a base64 key. When kmsKeyURI is set the decoded bytes are
	// unwrapped by the KMS first.
	Load(ctx context.Context, encoded, kmsKeyURI string) ([]byte, error)

	// Generate creates a new random key and returns its base64 form, wrapped by
	// the KMS when kmsKeyURI is set.
	Generate(ctx context.Context, kmsKeyURI string) (string, error)
}
