package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/operator"
	"github.com/ghuser/stockroom/pkg/telemetry"
	historydomain "github.com/ghuser/stockroom/services/history/domain"
	"github.com/ghuser/stockroom/services/history/domain/models"
	ordermodels "github.com/ghuser/stockroom/services/order/domain/models"
)

// DatasetReplacer swaps the whole order dataset. resolve supplies the dataset
// once no other mutation can interleave; then runs after the swap under the
// same exclusion.
type DatasetReplacer interface {
	ReplaceAll(ctx context.Context, resolve func() ([]ordermodels.Order, error), then func()) error
}

// PendingRevert describes the revision an operator has selected. Entry is
// zero apart from its ID when the revision has since been pruned.
type PendingRevert struct {
	Entry  models.RevisionHeader `json:"entry"`
	Exists bool                  `json:"exists"`
}

// RevertResult reports a completed revert.
type RevertResult struct {
	Entry          models.RevisionHeader `json:"entry"`
	RestoredOrders int                   `json:"restored_orders"`
	Remaining      int                   `json:"remaining_revisions"`
}

// RevertCoordinator runs the select, confirm or cancel flow per operator and
// applies a confirmed revert as one unit: the dataset is replaced and the
// log truncated, or neither happens.
type RevertCoordinator struct {
	revisions   *RevisionLog
	orders      DatasetReplacer
	passphrase  string
	defaultUser string
	log         logger.Logger
	metrics     *telemetry.DomainMetrics

	mu      sync.Mutex
	pending map[string]uuid.UUID

	revertMu sync.Mutex
}

// NewRevertCoordinator returns a coordinator. An empty passphrase disables
// the confirmation phrase check.
func NewRevertCoordinator(revisions *RevisionLog, orders DatasetReplacer, passphrase, defaultUser string, log logger.Logger, metrics *telemetry.DomainMetrics) *RevertCoordinator {
	return &RevertCoordinator{
		revisions:   revisions,
		orders:      orders,
		passphrase:  passphrase,
		defaultUser: defaultUser,
		log:         log,
		metrics:     metrics,
		pending:     make(map[string]uuid.UUID),
	}
}

// RequiresPassphrase reports whether Confirm checks a phrase.
func (c *RevertCoordinator) RequiresPassphrase() bool {
	return c.passphrase != ""
}

// Select marks entryID as the caller's revert target, replacing any earlier
// selection.
func (c *RevertCoordinator) Select(ctx context.Context, entryID uuid.UUID) (PendingRevert, error) {
	entry, ok := c.revisions.Entry(entryID)
	if !ok {
		return PendingRevert{}, fmt.Errorf("%w: %s", historydomain.ErrRevisionNotFound, entryID)
	}
	c.mu.Lock()
	c.pending[c.who(ctx)] = entryID
	c.mu.Unlock()
	return PendingRevert{Entry: entry.Header(), Exists: true}, nil
}

// Pending returns the caller's selection, if any.
func (c *RevertCoordinator) Pending(ctx context.Context) (PendingRevert, bool) {
	c.mu.Lock()
	id, ok := c.pending[c.who(ctx)]
	c.mu.Unlock()
	if !ok {
		return PendingRevert{}, false
	}
	if entry, found := c.revisions.Entry(id); found {
		return PendingRevert{Entry: entry.Header(), Exists: true}, true
	}
	return PendingRevert{Entry: models.RevisionHeader{ID: id}}, true
}

// Cancel clears the caller's selection.
func (c *RevertCoordinator) Cancel(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	who := c.who(ctx)
	if _, ok := c.pending[who]; !ok {
		return historydomain.ErrNoPendingRevert
	}
	delete(c.pending, who)
	return nil
}

// Confirm executes the caller's pending revert. A wrong phrase keeps the
// selection. Once the snapshot is fetched the revert runs to completion
// even if ctx is cancelled. When the dataset cannot be replaced the log is
// left untouched and the selection kept so the caller can retry.
func (c *RevertCoordinator) Confirm(ctx context.Context, phrase string) (RevertResult, error) {
	who := c.who(ctx)
	c.mu.Lock()
	id, ok := c.pending[who]
	c.mu.Unlock()
	if !ok {
		return RevertResult{}, historydomain.ErrNoPendingRevert
	}
	if c.passphrase != "" && subtle.ConstantTimeCompare([]byte(phrase), []byte(c.passphrase)) != 1 {
		c.log.WarnContext(ctx, "revert confirmation rejected", "operator", who, "revision_id", id)
		return RevertResult{}, historydomain.ErrConfirmationRejected
	}

	c.revertMu.Lock()
	defer c.revertMu.Unlock()

	// Resolved under the order store's mutation lock, so no Append can prune
	// the entry between lookup and TruncateTo.
	var (
		entry     models.RevisionEntry
		remaining int
	)
	ctx = context.WithoutCancel(ctx)
	err := c.orders.ReplaceAll(ctx, func() ([]ordermodels.Order, error) {
		var found bool
		if entry, found = c.revisions.Entry(id); !found {
			return nil, fmt.Errorf("%w: %s", historydomain.ErrRevisionNotFound, id)
		}
		return entry.Snapshot, nil
	}, func() {
		c.revisions.TruncateTo(ctx, id)
		remaining = c.revisions.Len()
	})
	c.metrics.RecordRevert(ctx, err)
	if errors.Is(err, historydomain.ErrRevisionNotFound) {
		c.clear(who, id)
		return RevertResult{}, err
	}
	if err != nil {
		c.log.ErrorContext(ctx, "revert failed", "operator", who, "revision_id", id, "error", err)
		telemetry.CaptureError(ctx, err, map[string]string{"revision_id": id.String(), "operator": who})
		return RevertResult{}, err
	}

	c.clear(who, id)
	c.log.InfoContext(ctx, "reverted orders", "operator", who, "revision_id", id, "orders", len(entry.Snapshot))
	return RevertResult{
		Entry:          entry.Header(),
		RestoredOrders: len(entry.Snapshot),
		Remaining:      remaining,
	}, nil
}

// clear drops the caller's selection if it still points at id.
func (c *RevertCoordinator) clear(who string, id uuid.UUID) {
	c.mu.Lock()
	if c.pending[who] == id {
		delete(c.pending, who)
	}
	c.mu.Unlock()
}

func (c *RevertCoordinator) who(ctx context.Context) string {
	if label, ok := operator.DeviceFromCtx(ctx); ok {
		return label
	}
	return c.defaultUser
}
