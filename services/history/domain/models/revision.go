package models

import (
	"time"

	"github.com/google/uuid"

	ordermodels "github.com/ghuser/stockroom/services/order/domain/models"
)

// MaxRevisions bounds the revision log; the oldest entry is dropped first.
const MaxRevisions = 50

// RevisionEntry is a timestamped, immutable snapshot of the whole order
// dataset taken right after a mutation.
type RevisionEntry struct {
	ID          uuid.UUID           `json:"id"`
	Timestamp   time.Time           `json:"timestamp"`
	User        string              `json:"user"`
	Description string              `json:"description"`
	Snapshot    []ordermodels.Order `json:"snapshot"`
}

// RevisionHeader is an entry without its snapshot, for timelines.
type RevisionHeader struct {
	ID          uuid.UUID `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	User        string    `json:"user"`
	Description string    `json:"description"`
	OrderCount  int       `json:"order_count"`
}

// Clone deep-copies e including its snapshot.
func (e RevisionEntry) Clone() RevisionEntry {
	out := e
	out.Snapshot = ordermodels.CloneAll(e.Snapshot)
	return out
}

// Header drops the snapshot.
func (e RevisionEntry) Header() RevisionHeader {
	return RevisionHeader{
		ID:          e.ID,
		Timestamp:   e.Timestamp,
		User:        e.User,
		Description: e.Description,
		OrderCount:  len(e.Snapshot),
	}
}
