package services

import (
	"sort"
	"strings"

	"github.com/ghuser/stockroom/services/order/domain/models"
)

// FilterItems returns copies of the items whose article, color or size
// contains query, case-insensitively, sorted by article. An empty query
// keeps every item.
func FilterItems(items []models.Item, query string) []models.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if q == "" ||
			strings.Contains(strings.ToLower(it.Article), q) ||
			strings.Contains(strings.ToLower(it.Color), q) ||
			strings.Contains(strings.ToLower(it.Size), q) {
			out = append(out, it.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Article) < strings.ToLower(out[j].Article)
	})
	return out
}
