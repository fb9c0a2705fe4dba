package app

import (
	"context"
	"fmt"

	cardService "github.com/allisson/cardvault/internal/card/service"
	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
)

// KMSService returns the gocloud.dev keeper factory.
func (c *Container) KMSService() cryptoService.KMSService {
	kms, _ := c.kmsService.get(func() (cryptoService.KMSService, error) {
		return cryptoService.NewKMSService(), nil
	})
	return kms
}

// KeyLoader returns the loader decoding, and optionally unwrapping, card keys.
func (c *Container) KeyLoader() cryptoService.KeyLoader {
	loader, _ := c.keyLoader.get(func() (cryptoService.KeyLoader, error) {
		return cryptoService.NewKeyLoader(c.KMSService()), nil
	})
	return loader
}

// NumberCipher returns the card number cipher built from CARD_ENCRYPTION_KEY.
// The key is unwrapped through KMS_KEY_URI when one is configured.
func (c *Container) NumberCipher() (cardService.NumberCipher, error) {
	return c.numberCipher.get(func() (cardService.NumberCipher, error) {
		alg, err := cryptoDomain.ParseAlgorithm(c.config.CardEncryptionAlgorithm)
		if err != nil {
			return nil, fmt.Errorf("invalid card encryption algorithm %q: %w", c.config.CardEncryptionAlgorithm, err)
		}

		key, err := c.KeyLoader().Load(context.Background(), c.config.CardEncryptionKey, c.config.KMSKeyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to load card encryption key: %w", err)
		}
		defer cryptoDomain.Zero(key)

		return cardService.NewNumberCipher(cryptoService.NewAEADManager(), key, alg)
	})
}
