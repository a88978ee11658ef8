package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/services/audit/domain/models"
)

const (
	insertAuditSQL = `INSERT INTO audit_logs (id, action, operator, order_id, details, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO NOTHING`

	recentAuditSQL = `SELECT id, action, operator, order_id, details, occurred_at
FROM audit_logs ORDER BY occurred_at DESC LIMIT $1`
)

// AuditRepository implements repositories.AuditRepository against PostgreSQL.
type AuditRepository struct {
	db *database.Database
}

func NewAuditRepository(db *database.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

// Save inserts rec, ignoring a record already stored under the same id.
func (r *AuditRepository) Save(ctx context.Context, rec models.Record) error {
	details, err := json.Marshal(rec.Details)
	if err != nil {
		return fmt.Errorf("encode audit details: %w", err)
	}
	var orderID any
	if rec.OrderID != nil {
		orderID = *rec.OrderID
	}
	if _, err := r.db.DB().ExecContext(ctx, insertAuditSQL,
		rec.ID, rec.Action, rec.Operator, orderID, details, rec.OccurredAt); err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

// Recent returns the latest records.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]models.Record, error) {
	rows, err := r.db.DB().QueryContext(ctx, recentAuditSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	out := []models.Record{}
	for rows.Next() {
		var (
			rec     models.Record
			orderID *string
			details []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Action, &rec.Operator, &orderID, &details, &rec.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		if orderID != nil {
			id, err := parseUUID(*orderID)
			if err != nil {
				return nil, err
			}
			rec.OrderID = &id
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &rec.Details); err != nil {
				return nil, fmt.Errorf("decode audit details: %w", err)
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}
	return out, nil
}
