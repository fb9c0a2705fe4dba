package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	cardService "github.com/allisson/cardvault/internal/card/service"
	"github.com/allisson/cardvault/internal/database"
	outboxDomain "github.com/allisson/cardvault/internal/outbox/domain"
)

// cardUseCase implements CardUseCase.
type cardUseCase struct {
	txManager  database.TxManager
	cardRepo   CardRepository
	users      UserLookup
	outboxRepo OutboxEventRepository
	cipher     cardService.NumberCipher
	generator  cardService.NumberGenerator
}

// NewCardUseCase creates a new CardUseCase.
func NewCardUseCase(
	txManager database.TxManager,
	cardRepo CardRepository,
	users UserLookup,
	outboxRepo OutboxEventRepository,
	cipher cardService.NumberCipher,
	generator cardService.NumberGenerator,
) CardUseCase {
	return &cardUseCase{
		txManager:  txManager,
		cardRepo:   cardRepo,
		users:      users,
		outboxRepo: outboxRepo,
		cipher:     cipher,
		generator:  generator,
	}
}

func requireAdmin(actor authDomain.Identity) error {
	if !actor.IsAdmin() {
		return cardDomain.ErrAdminRequired
	}
	return nil
}

// Create issues a new ACTIVE card for input.UserID expiring after cardDomain.Validity.
func (uc *cardUseCase) Create(
	ctx context.Context,
	actor authDomain.Identity,
	input CreateCardInput,
) (*cardDomain.Card, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if input.StartBalance.IsNegative() {
		return nil, cardDomain.ErrNegativeStartBalance
	}

	owner, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	number, err := uc.generator.Generate()
	if err != nil {
		return nil, err
	}
	if err := uc.generator.Validate(number); err != nil {
		return nil, err
	}

	encrypted, err := uc.cipher.Encrypt(number)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	card := &cardDomain.Card{
		ID:              uuid.Must(uuid.NewV7()),
		OwnerID:         owner.ID,
		OwnerUsername:   owner.Username,
		EncryptedNumber: encrypted,
		Number:          number,
		ExpiresAt:       now.Add(cardDomain.Validity),
		Status:          cardDomain.StatusActive,
		Balance:         cardDomain.RoundAmount(input.StartBalance),
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.cardRepo.Create(ctx, card); err != nil {
			return err
		}
		return uc.writeEvent(ctx, outboxDomain.EventCardCreated, map[string]any{
			"card_id":  card.ID,
			"owner_id": card.OwnerID,
			"balance":  card.Balance.StringFixed(cardDomain.BalanceScale),
		})
	})
	if err != nil {
		return nil, err
	}

	return card, nil
}

func (uc *cardUseCase) ListAll(
	ctx context.Context,
	actor authDomain.Identity,
	offset, limit int,
) ([]*cardDomain.Card, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	cards, err := uc.cardRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	if err := uc.revealNumbers(cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// ListOwn filters on the plaintext number, so every owned card is decrypted
// before the page is cut.
func (uc *cardUseCase) ListOwn(
	ctx context.Context,
	actor authDomain.Identity,
	input ListOwnInput,
) (*CardPage, error) {
	cards, err := uc.cardRepo.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := uc.revealNumbers(cards); err != nil {
		return nil, err
	}

	matched := make([]*cardDomain.Card, 0, len(cards))
	for _, card := range cards {
		if input.NumberFilter == "" || strings.Contains(card.Number, input.NumberFilter) {
			matched = append(matched, card)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return &CardPage{
		Cards: paginate(matched, input.Offset, input.Limit),
		Total: len(matched),
	}, nil
}

func (uc *cardUseCase) Block(
	ctx context.Context,
	actor authDomain.Identity,
	id uuid.UUID,
) (*cardDomain.Card, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return uc.transition(ctx, id, outboxDomain.EventCardBlocked, func(card *cardDomain.Card) error {
		return card.Block()
	})
}

func (uc *cardUseCase) RequestBlock(
	ctx context.Context,
	actor authDomain.Identity,
	id uuid.UUID,
) (*cardDomain.Card, error) {
	return uc.transition(ctx, id, outboxDomain.EventCardBlockRequested, func(card *cardDomain.Card) error {
		if !card.OwnedBy(actor.UserID) {
			return cardDomain.ErrCardNotOwned
		}
		return card.RequestBlock()
	})
}

func (uc *cardUseCase) Activate(
	ctx context.Context,
	actor authDomain.Identity,
	id uuid.UUID,
) (*cardDomain.Card, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return uc.transition(ctx, id, outboxDomain.EventCardActivated, func(card *cardDomain.Card) error {
		return card.Activate()
	})
}

func (uc *cardUseCase) Delete(ctx context.Context, actor authDomain.Identity, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.cardRepo.Delete(ctx, id); err != nil {
			return err
		}
		return uc.writeEvent(ctx, outboxDomain.EventCardDeleted, map[string]any{
			"card_id":    id,
			"deleted_by": actor.UserID,
		})
	})
}

func (uc *cardUseCase) BlockExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()

	var blocked int64
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		n, err := uc.cardRepo.BlockExpired(ctx, now)
		if err != nil {
			return err
		}
		blocked = n
		if n == 0 {
			return nil
		}
		return uc.writeEvent(ctx, outboxDomain.EventCardsExpiredBlocked, map[string]any{
			"count":      n,
			"expired_at": now,
		})
	})
	if err != nil {
		return 0, err
	}
	return blocked, nil
}

// transition locks the card, applies change and persists the new status with
// an outbox event in one transaction.
func (uc *cardUseCase) transition(
	ctx context.Context,
	id uuid.UUID,
	eventType string,
	change func(card *cardDomain.Card) error,
) (*cardDomain.Card, error) {
	var card *cardDomain.Card
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		card, err = uc.cardRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := change(card); err != nil {
			return err
		}
		if err := uc.cardRepo.Update(ctx, card); err != nil {
			return err
		}
		return uc.writeEvent(ctx, eventType, map[string]any{
			"card_id":  card.ID,
			"owner_id": card.OwnerID,
			"status":   card.Status,
		})
	})
	if err != nil {
		return nil, err
	}

	if err := uc.revealNumbers([]*cardDomain.Card{card}); err != nil {
		return nil, err
	}
	return card, nil
}

func (uc *cardUseCase) revealNumbers(cards []*cardDomain.Card) error {
	for _, card := range cards {
		number, err := uc.cipher.Decrypt(card.EncryptedNumber)
		if err != nil {
			return err
		}
		card.Number = number
	}
	return nil
}

func (uc *cardUseCase) writeEvent(ctx context.Context, eventType string, payload any) error {
	event, err := outboxDomain.NewOutboxEvent(eventType, payload)
	if err != nil {
		return err
	}
	return uc.outboxRepo.Create(ctx, event)
}

func paginate(cards []*cardDomain.Card, offset, limit int) []*cardDomain.Card {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(cards) {
		return []*cardDomain.Card{}
	}
	end := len(cards)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return cards[offset:end]
}
