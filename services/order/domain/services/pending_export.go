package services

import (
	"time"

	"github.com/ghuser/stockroom/services/order/domain"
	"github.com/ghuser/stockroom/services/order/domain/models"
)

// PendingExport is the set of items of one order still awaiting arrival.
type PendingExport struct {
	Order         models.Order
	Items         []models.Item
	TotalQuantity int
	GeneratedAt   time.Time
}

// BuildPendingExport collects the unreceived items of o in their original
// order. Quantities that do not parse count as zero. Returns
// domain.ErrNothingToExport when every item has been received.
func BuildPendingExport(o models.Order, now time.Time) (PendingExport, error) {
	exp := PendingExport{Order: o.Clone(), GeneratedAt: now}
	for _, it := range exp.Order.Items {
		if it.Received {
			continue
		}
		exp.Items = append(exp.Items, it)
		if n, err := ParseQuantity(it.Quantity); err == nil {
			exp.TotalQuantity += n
		}
	}
	if len(exp.Items) == 0 {
		return PendingExport{}, domain.ErrNothingToExport
	}
	return exp, nil
}
