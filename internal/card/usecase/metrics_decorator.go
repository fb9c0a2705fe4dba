package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	"github.com/allisson/cardvault/internal/metrics"
)

const metricsDomain = "cards"

func recordOperation(
	ctx context.Context,
	m metrics.BusinessMetrics,
	operation string,
	start time.Time,
	err error,
) {
	status := metrics.Status(err)

	m.RecordOperation(ctx, metricsDomain, operation, status)
	m.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// cardUseCaseWithMetrics decorates CardUseCase with metrics instrumentation.
type cardUseCaseWithMetrics struct {
	next    CardUseCase
	metrics metrics.BusinessMetrics
}

// NewCardUseCaseWithMetrics wraps a CardUseCase with metrics recording.
func NewCardUseCaseWithMetrics(useCase CardUseCase, m metrics.BusinessMetrics) CardUseCase {
	return &cardUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *cardUseCaseWithMetrics) Create(
	ctx context.Context,
	actor authDomain.Identity,
	input CreateCardInput,
) (*cardDomain.Card, error) {
	start := time.Now()
	card, err := c.next.Create(ctx, actor, input)
	recordOperation(ctx, c.metrics, "card_create", start, err)
	return card, err
}

func (c *cardUseCaseWithMetrics) ListAll(
	ctx context.Context,
	actor authDomain.Identity,
	offset, limit int,
) ([]*cardDomain.Card, error) {
	start := time.Now()
	cards, err := c.next.ListAll(ctx, actor, offset, limit)
	recordOperation(ctx, c.metrics, "card_list_all", start, err)
	return cards, err
}

func (c *cardUseCaseWithMetrics) ListOwn(
	ctx context.Context,
	actor authDomain.Identity,
	input ListOwnInput,
) (*CardPage, error) {
	start := time.Now()
	page, err := c.next.ListOwn(ctx, actor, input)
	recordOperation(ctx, c.metrics, "card_list_own", start, err)
	return page, err
}

func (c *cardUseCaseWithMetrics) Block(
	ctx context.Context,
	actor authDomain.Identity,
	id uuid.UUID,
) (*cardDomain.Card, error) {
	start := time.Now()
	card, err := c.next.Block(ctx, actor, id)
	recordOperation(ctx, c.metrics, "card_block", start, err)
	return card, err
}

func (c *cardUseCaseWithMetrics) RequestBlock(
	ctx context.Context,
	actor authDomain.Identity,
	id uuid.UUID,
) (*cardDomain.Card, error) {
	start := time.Now()
	card, err := c.next.RequestBlock(ctx, actor, id)
	recordOperation(ctx, c.metrics, "card_request_block", start, err)
	return card, err
}

func (c *cardUseCaseWithMetrics) Activate(
	ctx context.Context,
	actor authDomain.Identity,
	id uuid.UUID,
) (*cardDomain.Card, error) {
	start := time.Now()
	card, err := c.next.Activate(ctx, actor, id)
	recordOperation(ctx, c.metrics, "card_activate", start, err)
	return card, err
}

func (c *cardUseCaseWithMetrics) Delete(ctx context.Context, actor authDomain.Identity, id uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, actor, id)
	recordOperation(ctx, c.metrics, "card_delete", start, err)
	return err
}

func (c *cardUseCaseWithMetrics) BlockExpired(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := c.next.BlockExpired(ctx)
	recordOperation(ctx, c.metrics, "card_block_expired", start, err)
	return n, err
}

// transferUseCaseWithMetrics decorates TransferUseCase with metrics instrumentation.
type transferUseCaseWithMetrics struct {
	next    TransferUseCase
	metrics metrics.BusinessMetrics
}

// NewTransferUseCaseWithMetrics wraps a TransferUseCase with metrics recording.
func NewTransferUseCaseWithMetrics(useCase TransferUseCase, m metrics.BusinessMetrics) TransferUseCase {
	return &transferUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *transferUseCaseWithMetrics) Transfer(
	ctx context.Context,
	actor authDomain.Identity,
	input TransferInput,
) error {
	start := time.Now()
	err := t.next.Transfer(ctx, actor, input)
	recordOperation(ctx, t.metrics, "card_transfer", start, err)
	return err
}
