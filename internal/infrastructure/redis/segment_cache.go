package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"whoof-notifications/internal/domain/entity"
)

// SegmentCache stores derived user segments with a short TTL
type SegmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSegmentCache creates a new segment cache
func NewSegmentCache(client *redis.Client, ttl time.Duration) *SegmentCache {
	return &SegmentCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *SegmentCache) segmentKey(userID string) string {
	return fmt.Sprintf("segment:%s", userID)
}

// Get returns the cached segment data, or nil on a miss
func (c *SegmentCache) Get(ctx context.Context, userID string) (*entity.SegmentData, error) {
	raw, err := c.client.Get(ctx, c.segmentKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read segment cache: %w", err)
	}

	var data entity.SegmentData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached segment: %w", err)
	}

	return &data, nil
}

// Set stores segment data with the configured TTL
func (c *SegmentCache) Set(ctx context.Context, data *entity.SegmentData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal segment: %w", err)
	}

	if err := c.client.Set(ctx, c.segmentKey(data.UserID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write segment cache: %w", err)
	}

	return nil
}
