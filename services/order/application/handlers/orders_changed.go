package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/logger"
	appsvcs "github.com/ghuser/stockroom/services/order/application/services"
	domainevents "github.com/ghuser/stockroom/services/order/domain/events"
)

// SummaryWriter is the write side of the order summary read model.
type SummaryWriter interface {
	Set(ctx context.Context, s *cache.OrderSummary) error
	Delete(ctx context.Context, orderID uuid.UUID) error
}

// OrdersChangedConsumer keeps the Redis order summaries in step with
// orders.changed events.
type OrdersChangedConsumer struct {
	summaries SummaryWriter
	log       logger.Logger
}

func NewOrdersChangedConsumer(summaries SummaryWriter, log logger.Logger) *OrdersChangedConsumer {
	return &OrdersChangedConsumer{summaries: summaries, log: log}
}

// Handle is an EventBus.Subscribe handler.
func (c *OrdersChangedConsumer) Handle(ctx context.Context, msg *message.Message) error {
	var ev domainevents.OrdersChangedEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		c.log.ErrorContext(ctx, "dropping undecodable orders event", "message_uuid", msg.UUID, "error", err)
		return nil
	}
	for _, id := range ev.Deleted {
		if err := c.summaries.Delete(ctx, id); err != nil {
			return fmt.Errorf("drop summary %s: %w", id, err)
		}
	}
	for _, s := range ev.Upserted {
		if err := c.summaries.Set(ctx, appsvcs.SummaryFromEvent(s)); err != nil {
			return fmt.Errorf("store summary %s: %w", s.ID, err)
		}
	}
	c.log.DebugContext(ctx, "order summaries refreshed",
		"change", ev.Change, "upserted", len(ev.Upserted), "deleted", len(ev.Deleted))
	return nil
}
