package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DomainMetrics holds the business counters exported on /metrics.
// A nil *DomainMetrics is valid and records nothing.
type DomainMetrics struct {
	syncs        metric.Int64Counter
	syncDuration metric.Float64Histogram
	catalogSize  metric.Int64UpDownCounter
	searches     metric.Int64Counter
	mutations    metric.Int64Counter
	reverts      metric.Int64Counter

	lastCatalogSize atomic.Int64
}

// NewDomainMetrics registers the instruments on meter.
func NewDomainMetrics(meter metric.Meter) (*DomainMetrics, error) {
	m := &DomainMetrics{}
	var err error
	if m.syncs, err = meter.Int64Counter("stock_syncs_total",
		metric.WithDescription("Stock feed sync attempts by result")); err != nil {
		return nil, fmt.Errorf("metric stock_syncs_total: %w", err)
	}
	if m.syncDuration, err = meter.Float64Histogram("stock_sync_duration_seconds",
		metric.WithDescription("Stock feed sync latency"), metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("metric stock_sync_duration_seconds: %w", err)
	}
	if m.catalogSize, err = meter.Int64UpDownCounter("stock_catalog_entries",
		metric.WithDescription("Products in the live stock catalog")); err != nil {
		return nil, fmt.Errorf("metric stock_catalog_entries: %w", err)
	}
	if m.searches, err = meter.Int64Counter("stock_searches_total",
		metric.WithDescription("Stock searches by whether anything matched")); err != nil {
		return nil, fmt.Errorf("metric stock_searches_total: %w", err)
	}
	if m.mutations, err = meter.Int64Counter("order_mutations_total",
		metric.WithDescription("Committed order mutations by operation")); err != nil {
		return nil, fmt.Errorf("metric order_mutations_total: %w", err)
	}
	if m.reverts, err = meter.Int64Counter("history_reverts_total",
		metric.WithDescription("Revert confirmations by result")); err != nil {
		return nil, fmt.Errorf("metric history_reverts_total: %w", err)
	}
	return m, nil
}

// RecordSync counts a sync attempt and, on success, moves the catalog size gauge.
func (m *DomainMetrics) RecordSync(ctx context.Context, err error, took time.Duration, entries int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("result", result(err)))
	m.syncs.Add(ctx, 1, attrs)
	m.syncDuration.Record(ctx, took.Seconds(), attrs)
	if err == nil {
		prev := m.lastCatalogSize.Swap(int64(entries))
		m.catalogSize.Add(ctx, int64(entries)-prev)
	}
}

// RecordSearch counts a search.
func (m *DomainMetrics) RecordSearch(ctx context.Context, hits int) {
	if m == nil {
		return
	}
	m.searches.Add(ctx, 1, metric.WithAttributes(attribute.Bool("matched", hits > 0)))
}

// RecordMutation counts a committed order mutation.
func (m *DomainMetrics) RecordMutation(ctx context.Context, op string) {
	if m == nil {
		return
	}
	m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

// RecordRevert counts a revert confirmation.
func (m *DomainMetrics) RecordRevert(ctx context.Context, err error) {
	if m == nil {
		return
	}
	m.reverts.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result(err))))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
