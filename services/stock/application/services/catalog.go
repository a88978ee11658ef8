package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/telemetry"
	stockdomain "github.com/ghuser/stockroom/services/stock/domain"
	"github.com/ghuser/stockroom/services/stock/domain/models"
	domainsvcs "github.com/ghuser/stockroom/services/stock/domain/services"
)

// StockCatalog holds the synced inventory and answers searches against it.
//
// Syncs are serialized. The entry list and its index are swapped together
// under a write lock, so a search sees either the old catalog or the new one.
// A failed sync keeps the previous entries and marks the catalog stale.
type StockCatalog struct {
	source  FeedSource
	cache   FeedCache
	parser  *domainsvcs.StockParser
	log     logger.Logger
	metrics *telemetry.DomainMetrics
	now     func() time.Time

	syncMu sync.Mutex

	mu      sync.RWMutex
	entries []models.StockEntry
	index   *domainsvcs.FuzzyIndex
	status  models.CatalogStatus
}

// NewStockCatalog returns an empty catalog in the loading state. cache and
// metrics may be nil.
func NewStockCatalog(
	source FeedSource,
	cache FeedCache,
	parser *domainsvcs.StockParser,
	log logger.Logger,
	metrics *telemetry.DomainMetrics,
) *StockCatalog {
	return &StockCatalog{
		source:  source,
		cache:   cache,
		parser:  parser,
		log:     log,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
		index:   domainsvcs.BuildFuzzyIndex(nil),
		status:  models.CatalogStatus{Loading: true},
	}
}

// Warm installs the cached feed, if any, so searches work before the first
// network sync. The catalog stays stale until Sync succeeds.
func (c *StockCatalog) Warm(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	raw, storedAt, err := c.cache.Load(ctx)
	if err != nil {
		return fmt.Errorf("load cached feed: %w", err)
	}
	feed, err := domainsvcs.DecodeFeed(raw)
	if err != nil {
		return fmt.Errorf("%w: cached feed: %w", stockdomain.ErrMalformedFeed, err)
	}

	c.syncMu.Lock()
	defer c.syncMu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status.SyncedAt != nil {
		return nil
	}
	c.install(feed)
	c.status = models.CatalogStatus{
		Stale:    true,
		LastSync: feed.LastSync,
		SyncedAt: &storedAt,
		Count:    len(feed.Entries),
	}
	c.log.InfoContext(ctx, "stock catalog warmed from cache", "count", len(feed.Entries), "stored_at", storedAt)
	return nil
}

// Sync fetches and decodes the feed, then replaces the catalog. On failure
// the previous entries stay searchable and ErrSyncFailed or ErrMalformedFeed
// is returned.
func (c *StockCatalog) Sync(ctx context.Context) error {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()

	start := time.Now()
	c.mu.Lock()
	c.status.Loading = true
	c.mu.Unlock()

	raw, err := c.source.Fetch(ctx)
	if err != nil {
		return c.fail(ctx, start, fmt.Errorf("%w: %w", stockdomain.ErrSyncFailed, err))
	}
	feed, err := domainsvcs.DecodeFeed(raw)
	if err != nil {
		return c.fail(ctx, start, fmt.Errorf("%w: %w", stockdomain.ErrMalformedFeed, err))
	}

	syncedAt := c.now()
	c.mu.Lock()
	c.install(feed)
	c.status = models.CatalogStatus{
		LastSync: feed.LastSync,
		SyncedAt: &syncedAt,
		Count:    len(feed.Entries),
	}
	c.mu.Unlock()

	c.metrics.RecordSync(ctx, nil, time.Since(start), len(feed.Entries))
	c.log.InfoContext(ctx, "stock catalog synced", "count", len(feed.Entries), "took_ms", time.Since(start).Milliseconds())

	if c.cache != nil {
		if err := c.cache.Store(ctx, raw, syncedAt); err != nil {
			c.log.WarnContext(ctx, "stock feed not cached", "error", err)
		}
	}
	return nil
}

// install swaps in a decoded feed. Callers hold c.mu.
func (c *StockCatalog) install(feed models.Feed) {
	c.entries = feed.Entries
	c.index = domainsvcs.BuildFuzzyIndex(feed.Entries)
}

func (c *StockCatalog) fail(ctx context.Context, start time.Time, err error) error {
	c.mu.Lock()
	c.status.Loading = false
	c.status.Error = err.Error()
	c.status.Stale = true
	count := len(c.entries)
	c.mu.Unlock()

	c.metrics.RecordSync(ctx, err, time.Since(start), 0)
	c.log.WarnContext(ctx, "stock sync failed, serving previous catalog", "error", err, "count", count)
	return err
}

// Run syncs immediately and then every interval until ctx is cancelled.
// A non-positive interval disables the periodic syncs.
func (c *StockCatalog) Run(ctx context.Context, interval time.Duration) error {
	_ = c.Sync(ctx)
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_ = c.Sync(ctx)
		}
	}
}

// Search returns up to MaxSearchResults hits in rank order, each with its
// parsed description.
func (c *StockCatalog) Search(ctx context.Context, query string) []models.SearchResult {
	c.mu.RLock()
	idx := c.index
	c.mu.RUnlock()

	hits := idx.Search(query)
	results := make([]models.SearchResult, len(hits))
	for i, e := range hits {
		results[i] = models.SearchResult{StockEntry: e, Parsed: c.parser.Parse(e.ProductName)}
	}
	c.metrics.RecordSearch(ctx, len(results))
	return results
}

// Parse decomposes a free-text stock description.
func (c *StockCatalog) Parse(raw string) models.ParsedStock {
	return c.parser.Parse(raw)
}

// Status returns a copy of the current catalog status.
func (c *StockCatalog) Status() models.CatalogStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Products returns a copy of the current entry list in feed order.
func (c *StockCatalog) Products() []models.StockEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.StockEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Health reports "stale" after a failed sync or a cache warm, "loading"
// before the first sync finishes and "ok" otherwise.
func (c *StockCatalog) Health() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch {
	case c.status.Stale:
		return "stale"
	case c.status.SyncedAt == nil:
		return "loading"
	default:
		return "ok"
	}
}
