package usecase_test

import (
	"context"
	"crypto/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	cardService "github.com/allisson/cardvault/internal/card/service"
	cardMocks "github.com/allisson/cardvault/internal/card/usecase/mocks"
	cryptoDomain "github.com/allisson/cardvault/internal/crypto/domain"
	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
	databaseMocks "github.com/allisson/cardvault/internal/database/mocks"
	outboxMocks "github.com/allisson/cardvault/internal/outbox/mocks"
	userMocks "github.com/allisson/cardvault/internal/user/usecase/mocks"
)

func newCipher(t *testing.T) cardService.NumberCipher {
	t.Helper()

	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := cardService.NewNumberCipher(cryptoService.NewAEADManager(), key, cryptoDomain.AESGCM)
	require.NoError(t, err)
	return cipher
}

func adminIdentity() authDomain.Identity {
	return authDomain.Identity{
		UserID:   uuid.Must(uuid.NewV7()),
		Username: "admin",
		Roles:    []string{authDomain.RoleAdmin},
	}
}

func userIdentity() authDomain.Identity {
	return authDomain.Identity{
		UserID:   uuid.Must(uuid.NewV7()),
		Username: "alice",
		Roles:    []string{authDomain.RoleUser},
	}
}

type cardFixture struct {
	txManager  *databaseMocks.MockTxManager
	cardRepo   *cardMocks.MockCardRepository
	userRepo   *userMocks.MockUserRepository
	outboxRepo *outboxMocks.MockOutboxEventRepository
	cipher     cardService.NumberCipher
}

func newCardFixture(t *testing.T) *cardFixture {
	return &cardFixture{
		txManager:  &databaseMocks.MockTxManager{},
		cardRepo:   &cardMocks.MockCardRepository{},
		userRepo:   &userMocks.MockUserRepository{},
		outboxRepo: &outboxMocks.MockOutboxEventRepository{},
		cipher:     newCipher(t),
	}
}

func (f *cardFixture) expectTx(ctx context.Context) {
	f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
}

// newCard returns an ACTIVE card owned by ownerID with number stored encrypted.
func (f *cardFixture) newCard(
	t *testing.T,
	ownerID uuid.UUID,
	number string,
	balance string,
) *cardDomain.Card {
	t.Helper()

	encrypted, err := f.cipher.Encrypt(number)
	require.NoError(t, err)

	return &cardDomain.Card{
		ID:              uuid.Must(uuid.NewV7()),
		OwnerID:         ownerID,
		OwnerUsername:   "alice",
		EncryptedNumber: encrypted,
		ExpiresAt:       time.Now().Add(cardDomain.Validity),
		Status:          cardDomain.StatusActive,
		Balance:         decimal.RequireFromString(balance),
		CreatedAt:       time.Now().UTC(),
	}
}
