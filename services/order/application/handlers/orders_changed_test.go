package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	domainevents "github.com/ghuser/stockroom/services/order/domain/events"
)

type memorySummaries struct {
	set     map[uuid.UUID]cache.OrderSummary
	deleted []uuid.UUID
	err     error
}

func (m *memorySummaries) Set(_ context.Context, s *cache.OrderSummary) error {
	if m.err != nil {
		return m.err
	}
	m.set[s.ID] = *s
	return nil
}

func (m *memorySummaries) Delete(_ context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestOrdersChangedConsumer(t *testing.T) {
	store := &memorySummaries{set: map[uuid.UUID]cache.OrderSummary{}}
	c := NewOrdersChangedConsumer(store, logger.Discard())

	kept, gone := uuid.New(), uuid.New()
	ev := domainevents.OrdersChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Change:     domainevents.ChangeRestore,
		Upserted:   []domainevents.OrderSummary{{ID: kept, Title: "Spring", Status: "completed", ItemCount: 2, ReceivedCount: 2, UpdatedAt: time.Now().UTC()}},
		Deleted:    []uuid.UUID{gone},
		OccurredAt: time.Now().UTC(),
	}
	msg, err := events.NewJSONMessage(ev.EventID.String(), 1, ev)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if s, ok := store.set[kept]; !ok || s.Status != "completed" || s.ReceivedCount != 2 {
		t.Fatalf("summary = %+v, %v", s, ok)
	}
	if len(store.deleted) != 1 || store.deleted[0] != gone {
		t.Fatalf("deleted = %v", store.deleted)
	}

	store.err = errors.New("redis down")
	if err := c.Handle(context.Background(), msg); err == nil {
		t.Fatal("expected cache error to be returned for retry")
	}
	if err := c.Handle(context.Background(), message.NewMessage("x", []byte("nope"))); err != nil {
		t.Fatalf("undecodable payload should be acked, got %v", err)
	}
}
