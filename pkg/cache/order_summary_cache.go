package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// OrderSummaryTTL is the time-to-live for cached order summaries.
	OrderSummaryTTL = 24 * time.Hour

	orderSummaryKeyPrefix = "order:summary"
)

// OrderSummary is the denormalized order status read model stored in Redis.
// The worker writes it from orders.changed events.
type OrderSummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Supplier      string    `json:"supplier"`
	Status        string    `json:"status"`
	ItemCount     int       `json:"item_count"`
	ReceivedCount int       `json:"received_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OrderSummaryCache reads and writes order summaries.
// Key format: "order:summary:{orderID}"
type OrderSummaryCache struct {
	client *RedisClient
}

// NewOrderSummaryCache creates an OrderSummaryCache backed by the given RedisClient.
func NewOrderSummaryCache(r *RedisClient) *OrderSummaryCache {
	return &OrderSummaryCache{client: r}
}

// Get retrieves a cached summary.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *OrderSummaryCache) Get(ctx context.Context, orderID uuid.UUID) (*OrderSummary, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(orderID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}
	return decodeOrderSummary(vals)
}

// Set writes a summary as a Redis hash with OrderSummaryTTL.
func (c *OrderSummaryCache) Set(ctx context.Context, s *OrderSummary) error {
	key := c.key(s.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, encodeOrderSummary(s)...)
	pipe.Expire(ctx, key, OrderSummaryTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached summary.
func (c *OrderSummaryCache) Delete(ctx context.Context, orderID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(orderID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *OrderSummaryCache) key(orderID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", orderSummaryKeyPrefix, orderID)
}

func encodeOrderSummary(s *OrderSummary) []any {
	return []any{
		"id", s.ID.String(),
		"title", s.Title,
		"supplier", s.Supplier,
		"status", s.Status,
		"item_count", strconv.Itoa(s.ItemCount),
		"received_count", strconv.Itoa(s.ReceivedCount),
		"updated_at", s.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeOrderSummary(vals map[string]string) (*OrderSummary, error) {
	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	itemCount, err := strconv.Atoi(vals["item_count"])
	if err != nil {
		return nil, fmt.Errorf("cache parse item_count: %w", err)
	}
	receivedCount, err := strconv.Atoi(vals["received_count"])
	if err != nil {
		return nil, fmt.Errorf("cache parse received_count: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}
	return &OrderSummary{
		ID:            id,
		Title:         vals["title"],
		Supplier:      vals["supplier"],
		Status:        vals["status"],
		ItemCount:     itemCount,
		ReceivedCount: receivedCount,
		UpdatedAt:     updatedAt,
	}, nil
}
