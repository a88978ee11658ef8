package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/order/domain/models"
)

// OrderRepository is the durable store for the order dataset.
// The domain layer owns this interface; infrastructure implements it.
type OrderRepository interface {
	// List returns every order, newest first.
	List(ctx context.Context) ([]models.Order, error)

	Insert(ctx context.Context, order models.Order) error

	// Update overwrites an existing order. Returns ErrOrderNotFound when absent.
	Update(ctx context.Context, order models.Order) error

	// Delete removes an order. Returns ErrOrderNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// Restore makes the stored dataset equal to dataset atomically: orders
	// absent from dataset are deleted, the rest are inserted or overwritten.
	Restore(ctx context.Context, dataset []models.Order) error
}
