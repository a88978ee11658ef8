package repositories

import (
	"context"

	"github.com/ghuser/stockroom/services/audit/domain/models"
)

// AuditRepository persists audit records.
type AuditRepository interface {
	// Save stores rec. Saving the same record id twice is a no-op.
	Save(ctx context.Context, rec models.Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]models.Record, error)
}
