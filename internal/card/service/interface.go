// Package service provides card number encryption and generation.
package service

// NumberCipher encrypts card numbers for storage and decrypts them on read.
// The empty string stands for an absent number and passes through unchanged.
type NumberCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// NumberGenerator produces random 16-digit card numbers.
type NumberGenerator interface {
	Generate() (string, error)
	Validate(number string) error
}
