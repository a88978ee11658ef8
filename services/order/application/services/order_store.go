package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/telemetry"
	auditmodels "github.com/ghuser/stockroom/services/audit/domain/models"
	orderdomain "github.com/ghuser/stockroom/services/order/domain"
	"github.com/ghuser/stockroom/services/order/domain/models"
	"github.com/ghuser/stockroom/services/order/domain/repositories"
	domainsvcs "github.com/ghuser/stockroom/services/order/domain/services"
)

// OrderStore owns the live order dataset. It is the only writer: every
// mutation runs under mu, persists through the repository, swaps the live
// slice and appends a revision before releasing the lock, so the revision
// log follows mutation order.
type OrderStore struct {
	repo      repositories.OrderRepository
	revisions RevisionRecorder
	audit     AuditRecorder
	log       logger.Logger
	metrics   *telemetry.DomainMetrics
	now       func() time.Time

	mu sync.Mutex // serializes mutations, held across persistence

	stateMu sync.RWMutex
	live    []models.Order // newest first; never mutated in place
}

// NewOrderStore returns an empty store. Call Load before serving requests.
func NewOrderStore(repo repositories.OrderRepository, revisions RevisionRecorder, audit AuditRecorder, log logger.Logger, metrics *telemetry.DomainMetrics) *OrderStore {
	if audit == nil {
		audit = nopAudit{}
	}
	return &OrderStore{
		repo:      repo,
		revisions: revisions,
		audit:     audit,
		log:       log,
		metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
		live:      []models.Order{},
	}
}

// Load replaces the live dataset with the repository contents.
func (s *OrderStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", orderdomain.ErrPersistence, err)
	}
	s.commit(orders)
	s.log.InfoContext(ctx, "orders loaded", "count", len(orders))
	return nil
}

// Orders returns a deep copy of the live dataset, newest first.
func (s *OrderStore) Orders() []models.Order {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return models.CloneAll(s.live)
}

// GetOrder returns a copy of the order with the given id.
func (s *OrderStore) GetOrder(id uuid.UUID) (models.Order, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if i := indexOf(s.live, id); i >= 0 {
		return s.live[i].Clone(), true
	}
	return models.Order{}, false
}

// CreateOrder validates in and prepends a new empty order.
func (s *OrderStore) CreateOrder(ctx context.Context, in models.OrderInput) (models.Order, error) {
	if err := domainsvcs.ValidateOrderInput(in); err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", orderdomain.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := models.NewOrder(in, s.now())
	if err := s.repo.Insert(ctx, order); err != nil {
		return models.Order{}, s.persistenceError(ctx, "create order", order.ID, err)
	}

	current := s.snapshot()
	next := make([]models.Order, 0, len(current)+1)
	next = append(next, order)
	next = append(next, current...)
	s.commit(next)

	s.recordLocked(ctx, fmt.Sprintf("Created order %q", order.Title), next, "create_order")
	s.audit.Record(ctx, auditmodels.ActionCreateOrder, &order.ID, map[string]any{
		"summary": fmt.Sprintf("Order created for %s", order.Supplier),
		"title":   order.Title,
	})
	return order.Clone(), nil
}

// AddItem appends one item to an order.
func (s *OrderStore) AddItem(ctx context.Context, orderID uuid.UUID, in models.ItemInput) (models.Item, error) {
	if err := domainsvcs.ValidateItemInput(in); err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", orderdomain.ErrValidation, err)
	}
	items, err := s.appendItems(ctx, orderID, []models.ItemInput{in}, func(_ []models.Item) string {
		return fmt.Sprintf("Added item %q to order", in.Article)
	})
	if err != nil {
		return models.Item{}, err
	}
	return items[0], nil
}

// AddItems appends a batch of items to an order as one mutation.
func (s *OrderStore) AddItems(ctx context.Context, orderID uuid.UUID, ins []models.ItemInput) ([]models.Item, error) {
	if err := domainsvcs.ValidateItemBatch(ins); err != nil {
		return nil, fmt.Errorf("%w: %w", orderdomain.ErrValidation, err)
	}
	return s.appendItems(ctx, orderID, ins, func(added []models.Item) string {
		return fmt.Sprintf("Added %d items to order", len(added))
	})
}

func (s *OrderStore) appendItems(ctx context.Context, orderID uuid.UUID, ins []models.ItemInput, describe func([]models.Item) string) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.snapshot()
	i := indexOf(current, orderID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", orderdomain.ErrOrderNotFound, orderID)
	}

	now := s.now()
	added := make([]models.Item, len(ins))
	for j, in := range ins {
		added[j] = models.NewItem(in, now)
	}
	updated := current[i].WithItems(added, now)
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, s.persistenceError(ctx, "add items", orderID, err)
	}

	next := replaceAt(current, i, updated)
	s.commit(next)

	s.recordLocked(ctx, describe(added), next, "add_items")
	s.audit.Record(ctx, auditmodels.ActionUpdateOrder, &orderID, map[string]any{
		"changes": []string{"items"},
		"added":   len(added),
	})
	return cloneItems(added), nil
}

// ToggleReceived flips the received flag of one item.
func (s *OrderStore) ToggleReceived(ctx context.Context, orderID, itemID uuid.UUID) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.snapshot()
	i := indexOf(current, orderID)
	if i < 0 {
		return models.Item{}, fmt.Errorf("%w: %s", orderdomain.ErrOrderNotFound, orderID)
	}
	j := current[i].ItemIndex(itemID)
	if j < 0 {
		return models.Item{}, fmt.Errorf("%w: %s", orderdomain.ErrItemNotFound, itemID)
	}

	updated := current[i].WithToggledItem(j, s.now())
	if err := s.repo.Update(ctx, updated); err != nil {
		return models.Item{}, s.persistenceError(ctx, "toggle item", orderID, err)
	}

	next := replaceAt(current, i, updated)
	s.commit(next)

	item := updated.Items[j]
	state := "Pending"
	if item.Received {
		state = "Received"
	}
	s.recordLocked(ctx, fmt.Sprintf("Marked %q as %s", item.Article, state), next, "toggle_received")
	s.audit.Record(ctx, auditmodels.ActionUpdateOrder, &orderID, map[string]any{
		"changes":  []string{"items"},
		"item_id":  itemID,
		"received": item.Received,
	})
	return item.Clone(), nil
}

// DeleteOrder removes an order.
func (s *OrderStore) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.snapshot()
	i := indexOf(current, orderID)
	if i < 0 {
		return fmt.Errorf("%w: %s", orderdomain.ErrOrderNotFound, orderID)
	}
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return s.persistenceError(ctx, "delete order", orderID, err)
	}

	removed := current[i]
	next := make([]models.Order, 0, len(current)-1)
	next = append(next, current[:i]...)
	next = append(next, current[i+1:]...)
	s.commit(next)

	s.recordLocked(ctx, fmt.Sprintf("Deleted order %q", removed.Title), next, "delete_order")
	s.audit.Record(ctx, auditmodels.ActionDeleteOrder, &orderID, map[string]any{"title": removed.Title})
	return nil
}

// ReplaceAll substitutes the entire dataset without validation and without
// appending a revision. resolve is called once the mutation lock is held and
// supplies the target dataset; its error is returned as is and nothing
// changes. The repository is reconciled next; on failure the live dataset is
// untouched and then is not called. then runs while the mutation lock is
// still held, so no other mutation can slip in between.
func (s *OrderStore) ReplaceAll(ctx context.Context, resolve func() ([]models.Order, error), then func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dataset, err := resolve()
	if err != nil {
		return err
	}
	next := models.CloneAll(dataset)
	if err := s.repo.Restore(ctx, next); err != nil {
		return s.persistenceError(ctx, "restore orders", uuid.Nil, err)
	}
	s.commit(next)
	if then != nil {
		then()
	}

	s.metrics.RecordMutation(ctx, "replace_all")
	s.audit.Record(ctx, auditmodels.ActionRestoreDatabase, nil, map[string]any{"snapshot_size": len(next)})
	s.log.InfoContext(ctx, "orders replaced", "count", len(next))
	return nil
}

// snapshot returns the current live slice. Callers hold mu, so the slice
// cannot be swapped underneath them; elements must not be modified.
func (s *OrderStore) snapshot() []models.Order {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.live
}

func (s *OrderStore) commit(next []models.Order) {
	s.stateMu.Lock()
	s.live = next
	s.stateMu.Unlock()
}

func (s *OrderStore) recordLocked(ctx context.Context, description string, dataset []models.Order, op string) {
	s.metrics.RecordMutation(ctx, op)
	if s.revisions != nil {
		s.revisions.Append(ctx, description, dataset)
	}
	s.log.InfoContext(ctx, "orders changed", "op", op, "description", description)
}

func (s *OrderStore) persistenceError(ctx context.Context, op string, orderID uuid.UUID, err error) error {
	s.log.ErrorContext(ctx, "order write failed", "op", op, "order_id", orderID, "error", err)
	tags := map[string]string{"op": op}
	if orderID != uuid.Nil {
		tags["order_id"] = orderID.String()
	}
	telemetry.CaptureError(ctx, err, tags)
	return fmt.Errorf("%w: %s: %w", orderdomain.ErrPersistence, op, err)
}

func indexOf(orders []models.Order, id uuid.UUID) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}

func replaceAt(orders []models.Order, i int, o models.Order) []models.Order {
	next := make([]models.Order, len(orders))
	copy(next, orders)
	next[i] = o
	return next
}

func cloneItems(items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

type nopAudit struct{}

func (nopAudit) Record(context.Context, string, *uuid.UUID, map[string]any) {}
