package services

import (
	"fmt"
	"testing"

	"github.com/ghuser/stockroom/services/stock/domain/models"
)

func names(entries []models.StockEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ProductName
	}
	return out
}

func TestFuzzyIndex_RanksExactBeforePrefixBeforeSubstring(t *testing.T) {
	idx := BuildFuzzyIndex([]models.StockEntry{
		{ProductName: "FAIRY TALE", GroupName: "KIDS"},
		{ProductName: "AIRFORCE ONE", GroupName: "SPORTS"},
		{ProductName: "AIR MAX", GroupName: "SPORTS"},
		{ProductName: "BOOT", GroupName: "WINTER"},
	})

	got := names(idx.Search("air"))
	want := []string{"AIR MAX", "AIRFORCE ONE", "FAIRY TALE"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("Search(air) = %v, want %v", got, want)
	}
}

func TestFuzzyIndex_ToleratesTypos(t *testing.T) {
	idx := BuildFuzzyIndex([]models.StockEntry{
		{ProductName: "NIKE AIR", GroupName: "SPORTS"},
		{ProductName: "RUNNER PRO", GroupName: "SPORTS"},
		{ProductName: "HAWAI CHAPPAL", GroupName: "SLIPPERS"},
	})

	tests := []struct {
		query string
		want  string
	}{
		{"nkie", "NIKE AIR"},
		{"runr", "RUNNER PRO"},
		{"chapal", "HAWAI CHAPPAL"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := idx.Search(tt.query)
			if len(got) == 0 || got[0].ProductName != tt.want {
				t.Fatalf("Search(%q) = %v, want %q first", tt.query, names(got), tt.want)
			}
		})
	}
}

func TestFuzzyIndex_GroupNameMatchesRankBelowProductName(t *testing.T) {
	idx := BuildFuzzyIndex([]models.StockEntry{
		{ProductName: "CLASSIC 101", GroupName: "LIBERTY"},
		{ProductName: "LIBERTY WARRIOR", GroupName: "MISC"},
	})
	got := names(idx.Search("liberty"))
	want := []string{"LIBERTY WARRIOR", "CLASSIC 101"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("Search(liberty) = %v, want %v", got, want)
	}
}

func TestFuzzyIndex_AllQueryTokensMustMatch(t *testing.T) {
	idx := BuildFuzzyIndex([]models.StockEntry{
		{ProductName: "AIR MAX BLK/WHT", GroupName: "SPORTS"},
		{ProductName: "AIR MAX RED", GroupName: "SPORTS"},
	})
	got := names(idx.Search("air blk"))
	if len(got) != 1 || got[0] != "AIR MAX BLK/WHT" {
		t.Fatalf("Search(air blk) = %v", got)
	}
}

func TestFuzzyIndex_ShortQueriesReturnNothing(t *testing.T) {
	idx := BuildFuzzyIndex([]models.StockEntry{
		{ProductName: "A", GroupName: "A"},
		{ProductName: "AIR MAX", GroupName: "SPORTS"},
	})
	for _, q := range []string{"", " ", "a", " a ", "é"} {
		if got := idx.Search(q); len(got) != 0 {
			t.Errorf("Search(%q) = %v, want empty", q, names(got))
		}
	}
}

func TestFuzzyIndex_CapsResults(t *testing.T) {
	var entries []models.StockEntry
	for i := 1; i <= 20; i++ {
		entries = append(entries, models.StockEntry{ProductName: fmt.Sprintf("SHOE %d", i), GroupName: "BULK"})
	}
	got := BuildFuzzyIndex(entries).Search("shoe")
	if len(got) != MaxSearchResults {
		t.Fatalf("got %d results, want %d", len(got), MaxSearchResults)
	}
	for i, e := range got {
		if want := fmt.Sprintf("SHOE %d", i+1); e.ProductName != want {
			t.Fatalf("result %d = %q, want %q (ties keep catalog order)", i, e.ProductName, want)
		}
	}
}

func TestFuzzyIndex_Empty(t *testing.T) {
	idx := BuildFuzzyIndex(nil)
	if idx.Len() != 0 {
		t.Fatalf("Len() = %d", idx.Len())
	}
	if got := idx.Search("anything"); len(got) != 0 {
		t.Fatalf("Search on empty index = %v", names(got))
	}
}
