package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestOrderSummary_EncodeDecode(t *testing.T) {
	in := &OrderSummary{
		ID:            uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Title:         "Diwali restock",
		Supplier:      "Relaxo",
		Status:        "in progress",
		ItemCount:     4,
		ReceivedCount: 1,
		UpdatedAt:     time.Date(2025, 3, 1, 10, 15, 0, 0, time.UTC),
	}

	fields := encodeOrderSummary(in)
	vals := make(map[string]string, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		vals[fields[i].(string)] = fields[i+1].(string)
	}

	got, err := decodeOrderSummary(vals)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *got != *in {
		t.Fatalf("got %+v, want %+v", got, in)
	}
}

func TestDecodeOrderSummary_RejectsCorruptHash(t *testing.T) {
	valid := map[string]string{
		"id":             uuid.NewString(),
		"item_count":     "2",
		"received_count": "0",
		"updated_at":     time.Now().UTC().Format(time.RFC3339Nano),
	}
	for _, field := range []string{"id", "item_count", "received_count", "updated_at"} {
		t.Run(field, func(t *testing.T) {
			vals := make(map[string]string, len(valid))
			for k, v := range valid {
				vals[k] = v
			}
			vals[field] = "garbage"
			if _, err := decodeOrderSummary(vals); err == nil {
				t.Fatalf("expected error for corrupt %s", field)
			}
		})
	}
}
