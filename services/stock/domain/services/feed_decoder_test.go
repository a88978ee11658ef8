package services

import (
	"testing"
	"time"

	"github.com/ghuser/stockroom/services/stock/domain/models"
)

const sampleFeed = `[
  {"groupName": "SPORTS", "products": [
    {"productName": "AIR MAX BLK/WHT (6-10) RS.450/-", "quantity": 12, "imageUrl": "https://img.example/air.jpg"},
    {"productName": "RUNNER MRP280 (7X10)", "quantity": "4"}
  ]},
  {"groupName": "_META_DATA_", "lastSync": "2025-03-01T10:15:00Z", "products": []},
  {"groupName": "SLIPPERS", "products": [
    {"productName": "HAWAI CHAPPAL", "quantity": null},
    {"productName": "FLIP FLOP", "quantity": "n/a"}
  ]}
]`

func TestDecodeFeed(t *testing.T) {
	feed, err := DecodeFeed([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.StockEntry{
		{ProductName: "AIR MAX BLK/WHT (6-10) RS.450/-", GroupName: "SPORTS", Quantity: 12, ImageURL: "https://img.example/air.jpg"},
		{ProductName: "RUNNER MRP280 (7X10)", GroupName: "SPORTS", Quantity: 4},
		{ProductName: "HAWAI CHAPPAL", GroupName: "SLIPPERS"},
		{ProductName: "FLIP FLOP", GroupName: "SLIPPERS"},
	}
	if len(feed.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(feed.Entries), len(want), feed.Entries)
	}
	for i := range want {
		if feed.Entries[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, feed.Entries[i], want[i])
		}
	}

	if feed.LastSync == nil {
		t.Fatal("expected LastSync from metadata group")
	}
	if wantSync := time.Date(2025, 3, 1, 10, 15, 0, 0, time.UTC); !feed.LastSync.Equal(wantSync) {
		t.Errorf("LastSync: got %v, want %v", feed.LastSync, wantSync)
	}
}

func TestDecodeFeed_ExcludesMetadataGroup(t *testing.T) {
	feed, err := DecodeFeed([]byte(`[{"groupName":"_META_DATA_","lastSync":"not a date","products":[{"productName":"GHOST"}]}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feed.Entries) != 0 {
		t.Fatalf("metadata products leaked into entries: %+v", feed.Entries)
	}
	if feed.LastSync != nil {
		t.Fatalf("unparseable lastSync should be dropped, got %v", feed.LastSync)
	}
}

func TestDecodeFeed_Malformed(t *testing.T) {
	for _, raw := range []string{`{"groupName":"x"}`, `not json`, `[{"products": 5}]`} {
		if _, err := DecodeFeed([]byte(raw)); err == nil {
			t.Errorf("DecodeFeed(%q) expected error", raw)
		}
	}
}
