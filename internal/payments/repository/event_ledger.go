package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	processedKeyPrefix = "stripe:event:" // Processed webhook events: stripe:event:{event_id}
	processedTTL       = 72 * time.Hour  // Stripe redelivers for up to 3 days
)

// EventLedger records which webhook event ids have already been applied so
// at-least-once redelivery can short-circuit before touching the store.
// It is an optimization only; correctness rests on the store's idempotent
// SetPaymentStatus.
type EventLedger struct {
	client *redis.Client
}

func NewEventLedger(client *redis.Client) *EventLedger {
	return &EventLedger{client: client}
}

// Seen reports whether the event id has already been processed.
func (l *EventLedger) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("ledger exists: %w", err)
	}
	return n > 0, nil
}

// MarkProcessed records the event id. It returns true when this call was
// the first to record it.
func (l *EventLedger) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(eventID), time.Now().UTC().Format(time.RFC3339), processedTTL).Result()
	if err != nil {
		return false, fmt.Errorf("ledger setnx: %w", err)
	}
	return ok, nil
}

func (l *EventLedger) key(eventID string) string {
	return processedKeyPrefix + eventID
}
