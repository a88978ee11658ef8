package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/logger"
	orderdomain "github.com/ghuser/stockroom/services/order/domain"
	"github.com/ghuser/stockroom/services/order/domain/events"
	"github.com/ghuser/stockroom/services/order/domain/models"
)

// SummaryService serves order summaries, reading through the Redis cache
// that the worker keeps warm from orders.changed.
type SummaryService struct {
	store *OrderStore
	cache SummaryCache
	log   logger.Logger
}

// NewSummaryService returns a SummaryService. A nil cache serves every read
// from the live store.
func NewSummaryService(store *OrderStore, c SummaryCache, log logger.Logger) *SummaryService {
	return &SummaryService{store: store, cache: c, log: log}
}

// Get returns the summary of one order. The second result reports whether
// it came from the cache.
func (s *SummaryService) Get(ctx context.Context, orderID uuid.UUID) (*cache.OrderSummary, bool, error) {
	if s.cache != nil {
		sum, err := s.cache.Get(ctx, orderID)
		if err == nil {
			return sum, true, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "order summary cache read failed", "order_id", orderID, "error", err)
		}
	}

	order, ok := s.store.GetOrder(orderID)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", orderdomain.ErrOrderNotFound, orderID)
	}
	sum := SummaryFromOrder(order)
	if s.cache != nil {
		if err := s.cache.Set(ctx, sum); err != nil {
			s.log.WarnContext(ctx, "order summary cache write failed", "order_id", orderID, "error", err)
		}
	}
	return sum, false, nil
}

// SummaryFromOrder projects an order onto its cached summary.
func SummaryFromOrder(o models.Order) *cache.OrderSummary {
	return SummaryFromEvent(events.SummaryOf(o))
}

// SummaryFromEvent converts a bus summary into the cached form.
func SummaryFromEvent(s events.OrderSummary) *cache.OrderSummary {
	return &cache.OrderSummary{
		ID:            s.ID,
		Title:         s.Title,
		Supplier:      s.Supplier,
		Status:        s.Status,
		ItemCount:     s.ItemCount,
		ReceivedCount: s.ReceivedCount,
		UpdatedAt:     s.UpdatedAt,
	}
}
