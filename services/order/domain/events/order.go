package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/order/domain/models"
)

// TopicOrdersChanged is published in the same transaction as every order write.
const TopicOrdersChanged = "orders.changed"

// Change kinds carried by OrdersChangedEvent.
const (
	ChangeUpsert  = "upsert"
	ChangeDelete  = "delete"
	ChangeRestore = "restore"
)

// OrderSummary is the denormalized view of one order carried on the bus.
type OrderSummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Supplier      string    `json:"supplier"`
	Status        string    `json:"status"`
	ItemCount     int       `json:"item_count"`
	ReceivedCount int       `json:"received_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OrdersChangedEvent lists the orders written and removed by one store write.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicOrdersChanged).
type OrdersChangedEvent struct {
	EventID    uuid.UUID      `json:"event_id"`
	Version    int            `json:"version"`
	Change     string         `json:"change"`
	Upserted   []OrderSummary `json:"upserted"`
	Deleted    []uuid.UUID    `json:"deleted"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// SummaryOf projects an order onto its bus summary.
func SummaryOf(o models.Order) OrderSummary {
	return OrderSummary{
		ID:            o.ID,
		Title:         o.Title,
		Supplier:      o.Supplier,
		Status:        string(o.Status()),
		ItemCount:     len(o.Items),
		ReceivedCount: o.ReceivedCount(),
		UpdatedAt:     o.UpdatedAt,
	}
}
