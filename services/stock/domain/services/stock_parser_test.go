package services

import (
	"strconv"
	"strings"
	"testing"

	"github.com/ghuser/stockroom/services/stock/domain/models"
)

func TestStockParser_Parse(t *testing.T) {
	p := NewStockParser(DefaultLexicon())

	tests := []struct {
		name      string
		raw       string
		wantName  string
		wantColor string
		wantHex   string
		wantSize  string
		wantPrice string
		wantType  models.PriceType
	}{
		{
			name: "net price with range size and two colors", raw: "AIR MAX BLK/WHT (6-10) RS.450/-",
			wantName: "AIR MAX", wantColor: "Black & White", wantHex: "#1f2937",
			wantSize: "6-10", wantPrice: "450", wantType: models.PriceNet,
		},
		{
			name: "mrp price with multiplied size", raw: "RUNNER MRP280 (7X10)",
			wantName: "RUNNER", wantSize: "7x10", wantPrice: "280", wantType: models.PriceMRP,
		},
		{
			name: "at-sign decimal price", raw: "SANDAL @ 120.50 NAVY",
			wantName: "SANDAL", wantColor: "Navy", wantHex: "#1e3a8a",
			wantPrice: "120.50", wantType: models.PriceNet,
		},
		{
			name: "unparenthesised star size", raw: "KIDS SHOE BLK/RED 5*10 Rs 90",
			wantName: "KIDS SHOE", wantColor: "Black & Red", wantHex: "#1f2937",
			wantSize: "5*10", wantPrice: "90", wantType: models.PriceNet,
		},
		{
			name: "synonyms collapse to one label", raw: "BLK BLACK SHOE",
			wantName: "SHOE", wantColor: "Black", wantHex: "#1f2937", wantType: models.PriceNet,
		},
		{
			name: "lowercase input keeps its case", raw: "flip flop blk",
			wantName: "flip flop", wantColor: "Black", wantHex: "#1f2937", wantType: models.PriceNet,
		},
		{
			name: "hyphenated name with range", raw: "AIR-MAX (6-9)",
			wantName: "AIR-MAX", wantSize: "6-9", wantType: models.PriceNet,
		},
		{
			name: "nothing recognisable", raw: "PLAIN SLIPPER",
			wantName: "PLAIN SLIPPER", wantType: models.PriceNet,
		},
		{
			name: "surrounding punctuation trimmed", raw: "** COMFORT WALK **",
			wantName: "COMFORT WALK", wantType: models.PriceNet,
		},
		{
			name: "empty input", raw: "",
			wantName: "", wantType: models.PriceNet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.raw)
			if got.Name != tt.wantName {
				t.Errorf("Name: got %q, want %q", got.Name, tt.wantName)
			}
			if got.Size != tt.wantSize {
				t.Errorf("Size: got %q, want %q", got.Size, tt.wantSize)
			}
			if got.Price != tt.wantPrice {
				t.Errorf("Price: got %q, want %q", got.Price, tt.wantPrice)
			}
			if got.PriceType != tt.wantType {
				t.Errorf("PriceType: got %q, want %q", got.PriceType, tt.wantType)
			}
			if got.OriginalName != tt.raw {
				t.Errorf("OriginalName: got %q, want %q", got.OriginalName, tt.raw)
			}
			switch {
			case tt.wantColor == "" && got.Color != nil:
				t.Errorf("Color: got %+v, want nil", got.Color)
			case tt.wantColor != "" && got.Color == nil:
				t.Errorf("Color: got nil, want %q", tt.wantColor)
			case tt.wantColor != "":
				if got.Color.Text != tt.wantColor {
					t.Errorf("Color.Text: got %q, want %q", got.Color.Text, tt.wantColor)
				}
				if got.Color.Hex != tt.wantHex {
					t.Errorf("Color.Hex: got %q, want %q", got.Color.Hex, tt.wantHex)
				}
			}
		})
	}
}

func TestStockParser_RemovesExtractedTokensFromName(t *testing.T) {
	got := NewStockParser(DefaultLexicon()).Parse("AIR MAX BLK/WHT (6-10) RS.450/-")
	for _, fragment := range []string{"BLK", "WHT", "6-10", "RS", "450", "(", ")", "/-"} {
		if strings.Contains(got.Name, fragment) {
			t.Errorf("name %q still contains %q", got.Name, fragment)
		}
	}
	if want := []string{"BLK", "WHT"}; strings.Join(got.Color.OriginalTokens, ",") != strings.Join(want, ",") {
		t.Errorf("OriginalTokens: got %v, want %v", got.Color.OriginalTokens, want)
	}
}

func TestStockParser_OutputShape(t *testing.T) {
	p := NewStockParser(DefaultLexicon())
	inputs := []string{
		"AIR MAX BLK/WHT (6-10) RS.450/-",
		"RUNNER MRP280 (7X10)",
		"(((", "--//--", "@", "MRP", "RS.", "12-", "(5 x 8.5)",
		"L.GRY SPORTS 40-45 mrp 1299.00",
		"VKC PRIDE (8*10) D.GRY/RED @310",
		"  paragon  slipper   ",
		"ÄÖÜ çà BLK",
		"P 6x9 RS.100.5/-",
	}
	for _, raw := range inputs {
		got := p.Parse(raw)
		if got.Price != "" {
			if _, err := strconv.ParseFloat(got.Price, 64); err != nil {
				t.Errorf("Parse(%q).Price = %q is not numeric", raw, got.Price)
			}
		}
		if strings.ContainsAny(got.Size, "()") {
			t.Errorf("Parse(%q).Size = %q contains parentheses", raw, got.Size)
		}
		if got.Name != "" {
			first, last := rune(got.Name[0]), rune(got.Name[len(got.Name)-1])
			if !isASCIIAlnum(first) || !isASCIIAlnum(last) {
				t.Errorf("Parse(%q).Name = %q has leading or trailing punctuation", raw, got.Name)
			}
		}
		if got.PriceType != models.PriceNet && got.PriceType != models.PriceMRP {
			t.Errorf("Parse(%q).PriceType = %q", raw, got.PriceType)
		}
	}
}

func TestStockParser_Deterministic(t *testing.T) {
	p := NewStockParser(DefaultLexicon())
	raw := "VKC PRIDE (8*10) D.GRY/RED @310"
	first := p.Parse(raw)
	for i := 0; i < 20; i++ {
		got := p.Parse(raw)
		if got.Name != first.Name || got.Size != first.Size || got.Price != first.Price || got.Color.Text != first.Color.Text {
			t.Fatalf("parse %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestTrimName_TreatsNonASCIIEdgesAsPunctuation(t *testing.T) {
	tests := map[string]string{
		"éclair sandalé": "clair sandal",
		"-- Ähre 7 --":   "hre 7",
		"café au lait":   "café au lait",
		"ÄÖÜ":            "",
	}
	for in, want := range tests {
		if got := trimName(in, nil); got != want {
			t.Errorf("trimName(%q) = %q, want %q", in, got, want)
		}
	}
}
