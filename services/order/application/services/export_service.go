package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/logger"
	orderdomain "github.com/ghuser/stockroom/services/order/domain"
	domainsvcs "github.com/ghuser/stockroom/services/order/domain/services"
)

const csvContentType = "text/csv; charset=utf-8"

// ExportLink points at an uploaded export.
type ExportLink struct {
	Key           string
	URL           string
	ExpiresAt     time.Time
	ItemCount     int
	TotalQuantity int
}

// ExportService renders the pending items of an order as CSV, either for
// direct download or uploaded to the object store.
type ExportService struct {
	store   *OrderStore
	objects ObjectStore
	log     logger.Logger
	now     func() time.Time
}

// NewExportService returns an ExportService. A nil objects disables Upload.
func NewExportService(store *OrderStore, objects ObjectStore, log logger.Logger) *ExportService {
	return &ExportService{store: store, objects: objects, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// CSV returns the download file name and body for the pending items of an order.
func (s *ExportService) CSV(_ context.Context, orderID uuid.UUID) (string, []byte, error) {
	exp, err := s.build(orderID)
	if err != nil {
		return "", nil, err
	}
	body, err := RenderCSV(exp)
	if err != nil {
		return "", nil, err
	}
	return exportFilename(exp), body, nil
}

// Upload stores the CSV under exports/{order id}/ and returns a presigned link.
func (s *ExportService) Upload(ctx context.Context, orderID uuid.UUID) (ExportLink, error) {
	if s.objects == nil {
		return ExportLink{}, orderdomain.ErrExportUnavailable
	}
	exp, err := s.build(orderID)
	if err != nil {
		return ExportLink{}, err
	}
	body, err := RenderCSV(exp)
	if err != nil {
		return ExportLink{}, err
	}

	key := fmt.Sprintf("exports/%s/%s", orderID, exportFilename(exp))
	if err := s.objects.Put(ctx, key, csvContentType, body); err != nil {
		s.log.ErrorContext(ctx, "export upload failed", "order_id", orderID, "error", err)
		return ExportLink{}, fmt.Errorf("%w: %w", orderdomain.ErrExportUnavailable, err)
	}
	url, expires, err := s.objects.PresignGet(ctx, key)
	if err != nil {
		return ExportLink{}, fmt.Errorf("%w: %w", orderdomain.ErrExportUnavailable, err)
	}
	s.log.InfoContext(ctx, "export uploaded", "order_id", orderID, "key", key, "items", len(exp.Items))
	return ExportLink{
		Key:           key,
		URL:           url,
		ExpiresAt:     expires,
		ItemCount:     len(exp.Items),
		TotalQuantity: exp.TotalQuantity,
	}, nil
}

func (s *ExportService) build(orderID uuid.UUID) (domainsvcs.PendingExport, error) {
	order, ok := s.store.GetOrder(orderID)
	if !ok {
		return domainsvcs.PendingExport{}, fmt.Errorf("%w: %s", orderdomain.ErrOrderNotFound, orderID)
	}
	return domainsvcs.BuildPendingExport(order, s.now())
}

// RenderCSV writes a header block (order, supplier, date), one row per
// pending item and a closing total row.
func RenderCSV(exp domainsvcs.PendingExport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{
		{"Order", exp.Order.Title},
		{"Supplier", exp.Order.Supplier},
		{"Date", exp.Order.Date.Format(time.DateOnly)},
		{},
		{"Article", "Color", "Size", "Quantity"},
	}
	for _, it := range exp.Items {
		rows = append(rows, []string{it.Article, it.Color, it.Size, strings.TrimSpace(it.Quantity)})
	}
	rows = append(rows, []string{"Total", "", "", strconv.Itoa(exp.TotalQuantity)})
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func exportFilename(exp domainsvcs.PendingExport) string {
	return fmt.Sprintf("%s-%s-pending.csv", slug(exp.Order.Title), exp.Order.Date.Format(time.DateOnly))
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "order"
	}
	return out
}
