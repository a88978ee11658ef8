package services

import (
	"context"
	"time"
)

// FeedSource fetches the raw inventory feed.
type FeedSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FeedCache keeps the last feed body that decoded cleanly. Load returns an
// error (redis.Nil for the Redis implementation) when nothing is cached.
type FeedCache interface {
	Load(ctx context.Context) ([]byte, time.Time, error)
	Store(ctx context.Context, raw []byte, storedAt time.Time) error
}
