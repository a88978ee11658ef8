package models

import "time"

// MetaGroupName marks the feed pseudo-group that carries sync metadata instead of products.
const MetaGroupName = "_META_DATA_"

// PriceType distinguishes net trade prices from printed retail prices.
type PriceType string

const (
	PriceNet PriceType = "Net"
	PriceMRP PriceType = "MRP"
)

// StockEntry is one product line from the inventory feed, flattened out of its group.
type StockEntry struct {
	ProductName string `json:"product_name"`
	GroupName   string `json:"group_name"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Color is a canonical color from the lexicon.
type Color struct {
	Label string `json:"label"`
	Hex   string `json:"hex"`
}

// ColorMatch is the color portion of a parsed stock string. Text joins every
// distinct label found; Hex is the swatch of the first token.
type ColorMatch struct {
	Text           string   `json:"text"`
	Hex            string   `json:"hex"`
	OriginalTokens []string `json:"original_tokens"`
}

// ParsedStock is the structured decomposition of a raw stock description.
// It is derived on every parse and never persisted.
type ParsedStock struct {
	Name         string      `json:"name"`
	Color        *ColorMatch `json:"color"`
	Size         string      `json:"size"`
	Price        string      `json:"price"`
	PriceType    PriceType   `json:"price_type"`
	OriginalName string      `json:"original_name"`
}

// SearchResult pairs a catalog hit with its parsed description.
type SearchResult struct {
	StockEntry
	Parsed ParsedStock `json:"parsed"`
}

// Feed is a decoded inventory feed.
type Feed struct {
	Entries  []StockEntry
	LastSync *time.Time
}

// CatalogStatus reports the health of the synced inventory.
// Stale is set when the last sync attempt failed and results come from older data.
type CatalogStatus struct {
	Loading  bool       `json:"loading"`
	Error    string     `json:"error,omitempty"`
	Stale    bool       `json:"stale"`
	LastSync *time.Time `json:"last_sync,omitempty"`
	SyncedAt *time.Time `json:"synced_at,omitempty"`
	Count    int        `json:"count"`
}
