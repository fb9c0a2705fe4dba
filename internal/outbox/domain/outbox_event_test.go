package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		event, err := NewOutboxEvent(EventCardBlocked, map[string]string{"card_id": "abc"})
		require.NoError(t, err)
		assert.Equal(t, EventCardBlocked, event.EventType)
		assert.JSONEq(t, `{"card_id":"abc"}`, event.Payload)
		assert.Equal(t, OutboxEventStatusPending, event.Status)
		assert.NotEqual(t, [16]byte{}, [16]byte(event.ID))
	})

	t.Run("Error_UnsupportedPayload", func(t *testing.T) {
		event, err := NewOutboxEvent(EventCardBlocked, make(chan int))
		assert.Nil(t, event)
		assert.Error(t, err)
	})
}

func TestOutboxEvent_Transitions(t *testing.T) {
	t.Run("MarkProcessed", func(t *testing.T) {
		event := &OutboxEvent{Status: OutboxEventStatusPending}
		now := time.Now()
		event.MarkProcessed(now)
		assert.Equal(t, OutboxEventStatusProcessed, event.Status)
		assert.Equal(t, now, *event.ProcessedAt)
	})

	t.Run("MarkFailed", func(t *testing.T) {
		event := &OutboxEvent{Status: OutboxEventStatusPending}
		event.MarkFailed(errors.New("redis down"), 2)
		assert.Equal(t, 1, event.Retries)
		assert.Equal(t, "redis down", *event.LastError)
		assert.Equal(t, OutboxEventStatusPending, event.Status)

		event.MarkFailed(errors.New("redis down"), 2)
		assert.Equal(t, OutboxEventStatusFailed, event.Status)
	})
}
