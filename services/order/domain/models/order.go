package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is derived from an order's items and never stored.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in progress"
	StatusCompleted  Status = "completed"
)

// Order is a supplier order: a titled list of line items expected to arrive.
type Order struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Supplier  string    `json:"supplier"`
	Date      time.Time `json:"date"` // calendar date, UTC midnight
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Items     []Item    `json:"items"`
}

// Item is one article line within an order.
// Invariant: !Received implies ReceivedDate == nil.
type Item struct {
	ID           uuid.UUID  `json:"id"`
	Article      string     `json:"article"`
	Color        string     `json:"color,omitempty"`
	Size         string     `json:"size,omitempty"`
	Quantity     string     `json:"quantity"`
	ImageURL     string     `json:"image_url,omitempty"`
	Received     bool       `json:"received"`
	DateCreated  time.Time  `json:"date_created"`
	DateModified *time.Time `json:"date_modified"`
	ReceivedDate *time.Time `json:"received_date"`
}

// OrderInput carries the fields a caller supplies when creating an order.
type OrderInput struct {
	Title    string
	Supplier string
	Date     time.Time // zero means today
}

// ItemInput carries the fields a caller supplies when adding an item.
type ItemInput struct {
	Article  string
	Color    string
	Size     string
	Quantity string
	ImageURL string
}

// CalendarDate truncates t to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewOrder builds an order with a fresh id and no items.
func NewOrder(in OrderInput, now time.Time) Order {
	date := in.Date
	if date.IsZero() {
		date = now
	}
	return Order{
		ID:        uuid.New(),
		Title:     in.Title,
		Supplier:  in.Supplier,
		Date:      CalendarDate(date),
		CreatedAt: now,
		UpdatedAt: now,
		Items:     []Item{},
	}
}

// NewItem builds an unreceived item with a fresh id.
func NewItem(in ItemInput, now time.Time) Item {
	return Item{
		ID:          uuid.New(),
		Article:     in.Article,
		Color:       in.Color,
		Size:        in.Size,
		Quantity:    in.Quantity,
		ImageURL:    in.ImageURL,
		DateCreated: now,
	}
}

// Status derives the order status from its items.
func (o Order) Status() Status {
	return DeriveStatus(o.Items)
}

// ReceivedCount returns how many items have been received.
func (o Order) ReceivedCount() int {
	n := 0
	for _, it := range o.Items {
		if it.Received {
			n++
		}
	}
	return n
}

// DeriveStatus: no items or none received is pending, all received is
// completed, anything in between is in progress.
func DeriveStatus(items []Item) Status {
	received := 0
	for _, it := range items {
		if it.Received {
			received++
		}
	}
	switch {
	case len(items) == 0, received == 0:
		return StatusPending
	case received == len(items):
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// ItemIndex returns the position of itemID in o.Items, or -1.
func (o Order) ItemIndex(itemID uuid.UUID) int {
	for i, it := range o.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

// WithToggledItem returns a copy of o in which item i has flipped its
// received flag. o itself is not modified.
func (o Order) WithToggledItem(i int, now time.Time) Order {
	next := o.Clone()
	it := &next.Items[i]
	it.Received = !it.Received
	if it.Received {
		it.ReceivedDate = timePtr(now)
	} else {
		it.ReceivedDate = nil
	}
	it.DateModified = timePtr(now)
	next.UpdatedAt = now
	return next
}

// WithItems returns a copy of o with items appended.
func (o Order) WithItems(items []Item, now time.Time) Order {
	next := o.Clone()
	next.Items = append(next.Items, items...)
	next.UpdatedAt = now
	return next
}

// Clone returns a deep copy of o sharing no mutable state with it.
func (o Order) Clone() Order {
	out := o
	out.Items = make([]Item, len(o.Items))
	for i, it := range o.Items {
		out.Items[i] = it.Clone()
	}
	return out
}

// Clone returns a deep copy of it.
func (it Item) Clone() Item {
	out := it
	if it.DateModified != nil {
		out.DateModified = timePtr(*it.DateModified)
	}
	if it.ReceivedDate != nil {
		out.ReceivedDate = timePtr(*it.ReceivedDate)
	}
	return out
}

// CloneAll deep-copies a dataset. A nil dataset yields an empty one.
func CloneAll(orders []Order) []Order {
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	return &t
}
