package repositories

import (
	"context"

	"github.com/ghuser/stockroom/services/history/domain/models"
)

// RevisionStore persists the revision log across restarts.
type RevisionStore interface {
	// Load returns stored entries, newest first.
	Load(ctx context.Context) ([]models.RevisionEntry, error)

	// Push prepends entry and keeps at most limit entries.
	Push(ctx context.Context, entry models.RevisionEntry, limit int) error

	// Rewrite replaces the stored log with entries, newest first.
	Rewrite(ctx context.Context, entries []models.RevisionEntry) error
}
