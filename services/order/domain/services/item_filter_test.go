package services

import (
	"fmt"
	"testing"

	"github.com/ghuser/stockroom/services/order/domain/models"
)

func articles(items []models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Article
	}
	return out
}

func TestFilterItems(t *testing.T) {
	items := []models.Item{
		{Article: "runner", Color: "Navy", Size: "7x10"},
		{Article: "AIR MAX", Color: "Black", Size: "6-10"},
		{Article: "Hawai", Color: "Blue", Size: "8x11"},
		{Article: "BOOT", Color: "Brown", Size: "5-9"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"AIR MAX", "BOOT", "Hawai", "runner"}},
		{"  ", []string{"AIR MAX", "BOOT", "Hawai", "runner"}},
		{"AIR", []string{"AIR MAX"}},
		{"bl", []string{"AIR MAX", "Hawai"}},
		{"X1", []string{"Hawai", "runner"}},
		{"6-10", []string{"AIR MAX"}},
		{"sandal", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := articles(FilterItems(items, tt.query))
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Fatalf("FilterItems(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}

	if items[0].Article != "runner" {
		t.Fatal("FilterItems reordered its input")
	}
}
