// Package domain defines the algorithms, keeper contract and errors used to
// protect card data at rest.
package domain

// Algorithm identifies the AEAD used to encrypt card numbers.
//
// Both algorithms take a 32-byte key, a 12-byte random nonce and append a
// 16-byte authentication tag, so a stored value is rejected if it was altered.
type Algorithm string

const (
	// AESGCM is AES-256-GCM, the default on hardware with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305, for hosts without AES acceleration.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the only accepted key length in bytes.
const KeySize = 32

// ParseAlgorithm converts a configuration value into an Algorithm.
func ParseAlgorithm(value string) (Algorithm, error) {
	switch Algorithm(value) {
	case AESGCM, ChaCha20:
		return Algorithm(value), nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
