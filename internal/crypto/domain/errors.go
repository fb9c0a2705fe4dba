package domain

import (
	"github.com/allisson/cardvault/internal/errors"
)

// Cryptographic error definitions. Failures while encrypting or decrypting
// wrap errors.ErrCipher so the HTTP layer answers with a generic message.
var (
	// ErrUnsupportedAlgorithm indicates an algorithm other than aes-gcm or chacha20-poly1305.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key that is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrCipher, "invalid key size")

	// ErrInvalidKeyEncoding indicates key material that is not valid base64.
	ErrInvalidKeyEncoding = errors.Wrap(errors.ErrCipher, "invalid key encoding")

	// ErrDecryptionFailed indicates a wrong key, a wrong nonce or tampered ciphertext.
	// The specific cause is never disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrCipher, "decryption failed")

	// ErrKMSUnavailable indicates the KMS keeper could not be opened or used.
	ErrKMSUnavailable = errors.Wrap(errors.ErrCipher, "kms unavailable")
)
