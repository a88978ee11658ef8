package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	feedCacheKey         = "stock:feed"
	feedCacheStoredAtKey = "stock:feed:stored_at"

	// FeedCacheTTL bounds how long a cached feed can warm a cold catalog.
	FeedCacheTTL = 7 * 24 * time.Hour
)

// FeedCache keeps the raw body of the last successfully decoded stock feed.
type FeedCache struct {
	client *RedisClient
}

// NewFeedCache creates a FeedCache backed by the given RedisClient.
func NewFeedCache(r *RedisClient) *FeedCache {
	return &FeedCache{client: r}
}

// Load returns the cached feed body and when it was stored.
// Returns redis.Nil when nothing has been cached yet.
func (c *FeedCache) Load(ctx context.Context) ([]byte, time.Time, error) {
	vals, err := c.client.Client().MGet(ctx, feedCacheKey, feedCacheStoredAtKey).Result()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("cache load feed: %w", err)
	}
	raw, ok := vals[0].(string)
	if !ok || raw == "" {
		return nil, time.Time{}, redis.Nil
	}

	var storedAt time.Time
	if s, ok := vals[1].(string); ok {
		if storedAt, err = time.Parse(time.RFC3339Nano, s); err != nil {
			return nil, time.Time{}, fmt.Errorf("cache parse stored_at: %w", err)
		}
	}
	return []byte(raw), storedAt, nil
}

// Store replaces the cached feed body.
func (c *FeedCache) Store(ctx context.Context, raw []byte, storedAt time.Time) error {
	if len(raw) == 0 {
		return errors.New("cache store feed: empty body")
	}
	pipe := c.client.Client().TxPipeline()
	pipe.Set(ctx, feedCacheKey, raw, FeedCacheTTL)
	pipe.Set(ctx, feedCacheStoredAtKey, storedAt.UTC().Format(time.RFC3339Nano), FeedCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache store feed: %w", err)
	}
	return nil
}
