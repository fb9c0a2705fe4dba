package usecase

import (
	"bytes"
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	"github.com/allisson/cardvault/internal/database"
	apperrors "github.com/allisson/cardvault/internal/errors"
	outboxDomain "github.com/allisson/cardvault/internal/outbox/domain"
)

// transferUseCase implements TransferUseCase.
type transferUseCase struct {
	txManager  database.TxManager
	cardRepo   CardRepository
	outboxRepo OutboxEventRepository
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager database.TxManager,
	cardRepo CardRepository,
	outboxRepo OutboxEventRepository,
) TransferUseCase {
	return &transferUseCase{
		txManager:  txManager,
		cardRepo:   cardRepo,
		outboxRepo: outboxRepo,
	}
}

// Transfer debits FromCardID and credits ToCardID by input.Amount. Both rows are
// locked for the duration of the transaction; any failed check leaves both
// balances unchanged.
//
// Checks run in this order: both cards exist, both are owned by the actor,
// sender is ACTIVE, receiver is ACTIVE, amount is positive with at most two
// decimals, cards differ, sender has enough funds.
func (uc *transferUseCase) Transfer(
	ctx context.Context,
	actor authDomain.Identity,
	input TransferInput,
) error {
	amount := input.Amount

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		locked, err := uc.lockCards(ctx, input.FromCardID, input.ToCardID)
		if err != nil {
			return err
		}

		from, ok := locked[input.FromCardID]
		if !ok {
			return cardDomain.ErrSenderCardNotFound
		}
		to, ok := locked[input.ToCardID]
		if !ok {
			return cardDomain.ErrReceiverCardNotFound
		}

		if !from.OwnedBy(actor.UserID) || !to.OwnedBy(actor.UserID) {
			return cardDomain.ErrTransferNotOwned
		}
		if !from.IsActive() {
			return cardDomain.ErrSenderCardInactive
		}
		if !to.IsActive() {
			return cardDomain.ErrReceiverCardInactive
		}
		if !cardDomain.ValidTransferAmount(amount) {
			return cardDomain.ErrInvalidTransferAmount
		}
		if from.ID == to.ID {
			return cardDomain.ErrSameCardTransfer
		}

		if err := from.Withdraw(amount); err != nil {
			return err
		}
		to.Deposit(amount)

		if err := uc.cardRepo.Update(ctx, from); err != nil {
			return err
		}
		if err := uc.cardRepo.Update(ctx, to); err != nil {
			return err
		}

		event, err := outboxDomain.NewOutboxEvent(outboxDomain.EventCardTransferred, map[string]any{
			"from_card_id": from.ID,
			"to_card_id":   to.ID,
			"owner_id":     actor.UserID,
			"amount":       amount.StringFixed(cardDomain.BalanceScale),
		})
		if err != nil {
			return err
		}
		return uc.outboxRepo.Create(ctx, event)
	})
}

// lockCards locks the requested cards in ascending id order so concurrent
// transfers over the same pair cannot deadlock. Missing cards are left out of
// the result.
func (uc *transferUseCase) lockCards(
	ctx context.Context,
	fromID, toID uuid.UUID,
) (map[uuid.UUID]*cardDomain.Card, error) {
	ids := []uuid.UUID{fromID}
	switch c := bytes.Compare(fromID[:], toID[:]); {
	case c < 0:
		ids = append(ids, toID)
	case c > 0:
		ids = []uuid.UUID{toID, fromID}
	}

	locked := make(map[uuid.UUID]*cardDomain.Card, len(ids))
	for _, id := range ids {
		card, err := uc.cardRepo.GetForUpdate(ctx, id)
		if err != nil {
			if apperrors.Is(err, cardDomain.ErrCardNotFound) {
				continue
			}
			return nil, err
		}
		locked[id] = card
	}
	return locked, nil
}
