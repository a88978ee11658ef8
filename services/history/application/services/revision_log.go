package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/operator"
	auditmodels "github.com/ghuser/stockroom/services/audit/domain/models"
	"github.com/ghuser/stockroom/services/history/domain/models"
	"github.com/ghuser/stockroom/services/history/domain/repositories"
	ordermodels "github.com/ghuser/stockroom/services/order/domain/models"
)

const persistTimeout = 5 * time.Second

// AuditRecorder records an action without reporting failures.
type AuditRecorder interface {
	Record(ctx context.Context, action string, orderID *uuid.UUID, details map[string]any)
}

// RevisionLog is the bounded, newest-first list of dataset snapshots.
// Entries are deep copies and never alias live order data. Persistence is
// written through synchronously; its failures are logged and dropped so the
// in-memory log stays authoritative.
type RevisionLog struct {
	store       repositories.RevisionStore
	audit       AuditRecorder
	log         logger.Logger
	defaultUser string
	now         func() time.Time

	mu      sync.RWMutex
	entries []models.RevisionEntry
}

// NewRevisionLog returns an empty log. A nil store keeps entries in memory
// only.
func NewRevisionLog(store repositories.RevisionStore, audit AuditRecorder, defaultUser string, log logger.Logger) *RevisionLog {
	return &RevisionLog{
		store:       store,
		audit:       audit,
		log:         log,
		defaultUser: defaultUser,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Load replaces the in-memory log with the persisted one.
func (l *RevisionLog) Load(ctx context.Context) error {
	if l.store == nil {
		return nil
	}
	entries, err := l.store.Load(ctx)
	if err != nil {
		return err
	}
	if len(entries) > models.MaxRevisions {
		entries = entries[:models.MaxRevisions]
	}
	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
	l.log.InfoContext(ctx, "revision log loaded", "entries", len(entries))
	return nil
}

// Append snapshots dataset and prepends it as the newest entry. The user is
// the operator in ctx, else the configured default. Timestamps strictly
// increase even when the clock does not.
func (l *RevisionLog) Append(ctx context.Context, description string, dataset []ordermodels.Order) uuid.UUID {
	user, ok := operator.DeviceFromCtx(ctx)
	if !ok {
		user = l.defaultUser
	}
	entry := models.RevisionEntry{
		ID:          uuid.New(),
		User:        user,
		Description: description,
		Snapshot:    ordermodels.CloneAll(dataset),
	}

	l.mu.Lock()
	entry.Timestamp = l.now()
	if len(l.entries) > 0 && !entry.Timestamp.After(l.entries[0].Timestamp) {
		entry.Timestamp = l.entries[0].Timestamp.Add(time.Millisecond)
	}
	keep := min(len(l.entries), models.MaxRevisions-1)
	next := make([]models.RevisionEntry, 0, keep+1)
	next = append(next, entry)
	next = append(next, l.entries[:keep]...)
	l.entries = next
	l.mu.Unlock()

	if l.store != nil {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		if err := l.store.Push(pctx, entry, models.MaxRevisions); err != nil {
			l.log.WarnContext(ctx, "revision not persisted", "revision_id", entry.ID, "error", err)
		}
		cancel()
	}
	if l.audit != nil {
		l.audit.Record(ctx, auditmodels.ActionHistorySnapshot, nil, map[string]any{
			"revision_id": entry.ID,
			"description": description,
		})
	}
	return entry.ID
}

// Entries returns deep copies of every entry, newest first.
func (l *RevisionLog) Entries() []models.RevisionEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.RevisionEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Clone()
	}
	return out
}

// Headers lists the timeline without snapshots.
func (l *RevisionLog) Headers() []models.RevisionHeader {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.RevisionHeader, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Header()
	}
	return out
}

// Entry returns a copy of one entry.
func (l *RevisionLog) Entry(id uuid.UUID) (models.RevisionEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.indexOf(id); i >= 0 {
		return l.entries[i].Clone(), true
	}
	return models.RevisionEntry{}, false
}

// SnapshotOf returns a copy of the dataset stored in one entry.
func (l *RevisionLog) SnapshotOf(id uuid.UUID) ([]ordermodels.Order, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.indexOf(id); i >= 0 {
		return ordermodels.CloneAll(l.entries[i].Snapshot), true
	}
	return nil, false
}

// TruncateTo drops every entry newer than id. Unknown ids are a no-op.
func (l *RevisionLog) TruncateTo(ctx context.Context, id uuid.UUID) {
	l.mu.Lock()
	i := l.indexOf(id)
	if i < 0 {
		l.mu.Unlock()
		return
	}
	l.entries = append([]models.RevisionEntry(nil), l.entries[i:]...)
	remaining := l.entries
	l.mu.Unlock()

	if l.store != nil {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		defer cancel()
		if err := l.store.Rewrite(pctx, remaining); err != nil {
			l.log.WarnContext(ctx, "truncated revision log not persisted", "revision_id", id, "error", err)
		}
	}
	l.log.InfoContext(ctx, "revision log truncated", "revision_id", id, "dropped", i, "remaining", len(remaining))
}

// Len returns the number of entries.
func (l *RevisionLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *RevisionLog) indexOf(id uuid.UUID) int {
	for i := range l.entries {
		if l.entries[i].ID == id {
			return i
		}
	}
	return -1
}
