package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/services/order/domain/models"
)

// RevisionRecorder receives the full dataset after every committed mutation.
type RevisionRecorder interface {
	Append(ctx context.Context, description string, dataset []models.Order) uuid.UUID
}

// AuditRecorder records an action. Implementations must not block on or
// report failures.
type AuditRecorder interface {
	Record(ctx context.Context, action string, orderID *uuid.UUID, details map[string]any)
}

// ObjectStore uploads export files and hands out temporary links to them.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	PresignGet(ctx context.Context, key string) (string, time.Time, error)
}

// SummaryCache stores order summaries keyed by order id.
type SummaryCache interface {
	Get(ctx context.Context, orderID uuid.UUID) (*cache.OrderSummary, error)
	Set(ctx context.Context, s *cache.OrderSummary) error
}
