// Package memory holds an in-process OrderRepository used when no database
// is configured and in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	orderdomain "github.com/ghuser/stockroom/services/order/domain"
	"github.com/ghuser/stockroom/services/order/domain/models"
)

// OrderRepository keeps orders in a map.
type OrderRepository struct {
	mu     sync.Mutex
	orders map[uuid.UUID]models.Order
	fail   error
}

func NewOrderRepository(seed ...models.Order) *OrderRepository {
	r := &OrderRepository{orders: make(map[uuid.UUID]models.Order, len(seed))}
	for _, o := range seed {
		r.orders[o.ID] = o.Clone()
	}
	return r
}

// SetFailure makes subsequent writes fail with err; nil clears it.
func (r *OrderRepository) SetFailure(err error) {
	r.mu.Lock()
	r.fail = err
	r.mu.Unlock()
}

func (r *OrderRepository) List(_ context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *OrderRepository) Insert(_ context.Context, order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *OrderRepository) Update(_ context.Context, order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	if _, ok := r.orders[order.ID]; !ok {
		return orderdomain.ErrOrderNotFound
	}
	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *OrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	if _, ok := r.orders[id]; !ok {
		return orderdomain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *OrderRepository) Restore(_ context.Context, dataset []models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	next := make(map[uuid.UUID]models.Order, len(dataset))
	for _, o := range dataset {
		next[o.ID] = o.Clone()
	}
	r.orders = next
	return nil
}
