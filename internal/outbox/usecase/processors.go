package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/allisson/cardvault/internal/errors"
	"github.com/allisson/cardvault/internal/outbox/domain"
)

// defaultStreamMaxLen caps the stream length with approximate trimming.
const defaultStreamMaxLen = 100000

// StreamAdder is the subset of the go-redis client used to publish events.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisEventPublisher appends every event to a Redis stream.
type RedisEventPublisher struct {
	client StreamAdder
	stream string
	logger *slog.Logger
}

// NewRedisEventPublisher creates a publisher writing to stream.
func NewRedisEventPublisher(client StreamAdder, stream string, logger *slog.Logger) *RedisEventPublisher {
	return &RedisEventPublisher{
		client: client,
		stream: stream,
		logger: logger,
	}
}

// Process adds the event to the stream with its id, type and JSON payload.
func (p *RedisEventPublisher) Process(ctx context.Context, event *domain.OutboxEvent) error {
	if !json.Valid([]byte(event.Payload)) {
		return apperrors.New("event payload is not valid JSON")
	}

	msgID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: defaultStreamMaxLen,
		Approx: true,
		Values: map[string]any{
			"event_id":   event.ID.String(),
			"event_type": event.EventType,
			"payload":    event.Payload,
		},
	}).Result()
	if err != nil {
		return apperrors.Wrap(err, "failed to publish event to redis stream")
	}

	p.logger.Debug("event published",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
		slog.String("stream_id", msgID),
	)
	return nil
}

// LogEventProcessor logs events. It is used when no Redis URL is configured.
type LogEventProcessor struct {
	logger *slog.Logger
}

// NewLogEventProcessor creates a new LogEventProcessor
func NewLogEventProcessor(logger *slog.Logger) *LogEventProcessor {
	return &LogEventProcessor{
		logger: logger,
	}
}

// Process logs the decoded payload of known event types.
func (p *LogEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	var payload map[string]any
	if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
		return apperrors.Wrap(err, "failed to decode event payload")
	}

	switch event.EventType {
	case domain.EventUserCreated,
		domain.EventCardCreated,
		domain.EventCardTransferred,
		domain.EventCardBlocked,
		domain.EventCardBlockRequested,
		domain.EventCardActivated,
		domain.EventCardDeleted,
		domain.EventCardsExpiredBlocked:
		p.logger.Info("outbox event",
			slog.String("event_type", event.EventType),
			slog.Any("payload", payload),
		)
	default:
		p.logger.Warn("unknown event type", slog.String("event_type", event.EventType))
	}

	return nil
}
