package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "jobless:dashboard:stats:"

// Cache keeps computed stats in Redis for a short TTL. A nil cache (or nil
// client) degrades to always-miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached stats for the user, reporting a miss when absent.
func (c *Cache) Get(ctx context.Context, userID uuid.UUID) (*Stats, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, cacheKeyPrefix+userID.String()).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, err
	}
	return &stats, true, nil
}

// Set stores the stats under the user's key.
func (c *Cache) Set(ctx context.Context, userID uuid.UUID, stats *Stats) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKeyPrefix+userID.String(), raw, c.ttl).Err()
}

// Invalidate drops the user's cached stats.
func (c *Cache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, cacheKeyPrefix+userID.String()).Err()
}
