package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ghuser/stockroom/services/stock/domain/models"
)

type feedGroup struct {
	GroupName string        `json:"groupName"`
	LastSync  string        `json:"lastSync,omitempty"`
	Products  []feedProduct `json:"products"`
}

type feedProduct struct {
	ProductName string       `json:"productName"`
	Quantity    feedQuantity `json:"quantity"`
	ImageURL    string       `json:"imageUrl,omitempty"`
}

// feedQuantity accepts numbers, numeric strings and null. Anything else is zero.
type feedQuantity int

func (q *feedQuantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		raw = strings.TrimSpace(unquoted)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*q = 0
		return nil
	}
	*q = feedQuantity(int(f))
	return nil
}

// DecodeFeed parses the grouped inventory feed: a JSON array of groups, each
// with a product list. The metadata group supplies LastSync and is dropped
// from the flattened entries.
func DecodeFeed(raw []byte) (models.Feed, error) {
	var groups []feedGroup
	if err := json.Unmarshal(raw, &groups); err != nil {
		return models.Feed{}, fmt.Errorf("decode feed: %w", err)
	}

	var feed models.Feed
	for _, g := range groups {
		if g.GroupName == models.MetaGroupName {
			if t, ok := parseSyncTime(g.LastSync); ok {
				feed.LastSync = &t
			}
			continue
		}
		for _, p := range g.Products {
			feed.Entries = append(feed.Entries, models.StockEntry{
				ProductName: p.ProductName,
				GroupName:   g.GroupName,
				Quantity:    int(p.Quantity),
				ImageURL:    p.ImageURL,
			})
		}
	}
	return feed, nil
}

func parseSyncTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
