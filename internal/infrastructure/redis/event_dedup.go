package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventDedup remembers processed webhook event ids so provider retries
// do not re-apply side effects
type EventDedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEventDedup creates a new webhook event deduplicator
func NewEventDedup(client *redis.Client, ttl time.Duration) *EventDedup {
	return &EventDedup{
		client: client,
		ttl:    ttl,
	}
}

func (d *EventDedup) eventKey(eventID string) string {
	return fmt.Sprintf("webhook:event:%s", eventID)
}

// Seen reports whether the event id was already marked
func (d *EventDedup) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.eventKey(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check webhook event: %w", err)
	}
	return n > 0, nil
}

// Mark records the event id for the retention window. The caller marks
// only after the event's side effects applied, so a failed event stays
// eligible for replay.
func (d *EventDedup) Mark(ctx context.Context, eventID string) error {
	if err := d.client.Set(ctx, d.eventKey(eventID), 1, d.ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark webhook event: %w", err)
	}
	return nil
}
