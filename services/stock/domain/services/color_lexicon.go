// Package services contains stateless domain services for the stock bounded context:
// the color lexicon, the stock-string parser, feed decoding and the fuzzy index.
package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ghuser/stockroom/services/stock/domain/models"
)

// ColorLexicon maps trade color abbreviations to canonical colors.
// It is immutable after construction and safe for concurrent use.
type ColorLexicon struct {
	colors map[string]models.Color
	keys   []string
	// whole-word, case-insensitive matchers used to strip tokens from a name
	words map[string]*regexp.Regexp
}

var defaultLexicon = NewColorLexicon(defaultColors)

// DefaultLexicon returns the shared lexicon of footwear trade colors.
func DefaultLexicon() *ColorLexicon {
	return defaultLexicon
}

// NewColorLexicon builds a lexicon from token to color pairs. Tokens are uppercased.
func NewColorLexicon(colors map[string]models.Color) *ColorLexicon {
	l := &ColorLexicon{
		colors: make(map[string]models.Color, len(colors)),
		words:  make(map[string]*regexp.Regexp, len(colors)),
	}
	for token, c := range colors {
		token = strings.ToUpper(token)
		l.colors[token] = c
		l.words[token] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(token) + `\b`)
	}
	l.keys = make([]string, 0, len(l.colors))
	for token := range l.colors {
		l.keys = append(l.keys, token)
	}
	sort.Slice(l.keys, func(i, j int) bool {
		if len(l.keys[i]) != len(l.keys[j]) {
			return len(l.keys[i]) > len(l.keys[j])
		}
		return l.keys[i] < l.keys[j]
	})
	return l
}

// Lookup returns the color for token. Matching is exact after uppercasing.
func (l *ColorLexicon) Lookup(token string) (models.Color, bool) {
	c, ok := l.colors[strings.ToUpper(token)]
	return c, ok
}

// Keys returns all tokens, longest first.
func (l *ColorLexicon) Keys() []string {
	out := make([]string, len(l.keys))
	copy(out, l.keys)
	return out
}

// Len reports the number of tokens in the lexicon.
func (l *ColorLexicon) Len() int {
	return len(l.colors)
}

var defaultColors = map[string]models.Color{
	// blacks
	"BLK":   {Label: "Black", Hex: "#1f2937"},
	"BLACK": {Label: "Black", Hex: "#1f2937"},
	"BK":    {Label: "Black", Hex: "#1f2937"},
	"FBK":   {Label: "Full Black", Hex: "#000000"},

	// whites
	"WHT":   {Label: "White", Hex: "#94a3b8"},
	"WHITE": {Label: "White", Hex: "#94a3b8"},
	"WT":    {Label: "White", Hex: "#94a3b8"},

	// greys
	"GRY":    {Label: "Grey", Hex: "#6b7280"},
	"GREY":   {Label: "Grey", Hex: "#6b7280"},
	"L.GRY":  {Label: "Light Grey", Hex: "#9ca3af"},
	"D.GRY":  {Label: "Dark Grey", Hex: "#4b5563"},
	"D.GREY": {Label: "Dark Grey", Hex: "#4b5563"},
	"MOUSE":  {Label: "Mouse", Hex: "#78716c"},

	// blues
	"BLU":    {Label: "Blue", Hex: "#3b82f6"},
	"BLUE":   {Label: "Blue", Hex: "#3b82f6"},
	"NAVY":   {Label: "Navy", Hex: "#1e3a8a"},
	"NVY":    {Label: "Navy", Hex: "#1e3a8a"},
	"NV":     {Label: "Navy", Hex: "#1e3a8a"},
	"R.BLUE": {Label: "Royal Blue", Hex: "#2563eb"},
	"P.BLU":  {Label: "Peacock", Hex: "#0891b2"},
	"PCOOK":  {Label: "Peacock", Hex: "#0891b2"},
	"P.COCK": {Label: "Peacock", Hex: "#0891b2"},
	"PCOCK":  {Label: "Peacock", Hex: "#0891b2"},
	"P":      {Label: "Peacock", Hex: "#0891b2"},
	"SKY":    {Label: "Sky", Hex: "#0ea5e9"},
	"TURQ":   {Label: "Turquoise", Hex: "#06b6d4"},
	"DNM":    {Label: "Denim", Hex: "#3730a3"},

	// reds
	"RED":    {Label: "Red", Hex: "#ef4444"},
	"RD":     {Label: "Red", Hex: "#ef4444"},
	"MRN":    {Label: "Maroon", Hex: "#991b1b"},
	"MAROON": {Label: "Maroon", Hex: "#991b1b"},
	"CHERRY": {Label: "Cherry", Hex: "#9f1239"},
	"WINE":   {Label: "Wine", Hex: "#881337"},
	"GRP":    {Label: "Grape", Hex: "#881337"},
	"GRAPE":  {Label: "Grape", Hex: "#881337"},
	"GRAP":   {Label: "Grape", Hex: "#881337"},

	// greens
	"GRN":     {Label: "Green", Hex: "#10b981"},
	"GREEN":   {Label: "Green", Hex: "#10b981"},
	"OLV":     {Label: "Olive", Hex: "#65a30d"},
	"OLIVE":   {Label: "Olive", Hex: "#65a30d"},
	"MEHENDI": {Label: "Mehendi", Hex: "#4d7c0f"},
	"PISTA":   {Label: "Pista", Hex: "#86efac"},
	"SGN":     {Label: "Sage", Hex: "#6ee7b7"},
	"F.GRN":   {Label: "Forest", Hex: "#15803d"},
	"R.GRN":   {Label: "R.Green", Hex: "#15803d"},

	// yellows
	"YEL":     {Label: "Yellow", Hex: "#eab308"},
	"YLW":     {Label: "Yellow", Hex: "#eab308"},
	"YELLOW":  {Label: "Yellow", Hex: "#eab308"},
	"MUSTARD": {Label: "Mustard", Hex: "#ca8a04"},
	"MST":     {Label: "Mustard", Hex: "#ca8a04"},
	"LEMON":   {Label: "Lemon", Hex: "#facc15"},

	// pinks and purples
	"PNK":       {Label: "Pink", Hex: "#ec4899"},
	"PINK":      {Label: "Pink", Hex: "#ec4899"},
	"BP":        {Label: "Baby Pink", Hex: "#f472b6"},
	"BABY PINK": {Label: "Baby Pink", Hex: "#f472b6"},
	"RANI":      {Label: "Rani", Hex: "#db2777"},
	"PEACH":     {Label: "Peach", Hex: "#fb7185"},
	"ONION":     {Label: "Onion", Hex: "#c084fc"},
	"MAUVE":     {Label: "Mauve", Hex: "#d8b4fe"},
	"PURPLE":    {Label: "Purple", Hex: "#a855f7"},
	"VIOLT":     {Label: "Violet", Hex: "#7c3aed"},

	// browns and beiges
	"BRN":      {Label: "Brown", Hex: "#78350f"},
	"BROWN":    {Label: "Brown", Hex: "#78350f"},
	"BGE":      {Label: "Beige", Hex: "#d6d3d1"},
	"BEIGE":    {Label: "Beige", Hex: "#a8a29e"},
	"BEG":      {Label: "Beige", Hex: "#a8a29e"},
	"TAN":      {Label: "Tan", Hex: "#d4a373"},
	"CJK":      {Label: "Chikoo", Hex: "#d4a373"},
	"CHIKOO":   {Label: "Chikoo", Hex: "#d4a373"},
	"CHIKKU":   {Label: "Chikoo", Hex: "#a16d48"},
	"CHIKU":    {Label: "Chikoo", Hex: "#a16d48"},
	"CAMEL":    {Label: "Camel", Hex: "#d97706"},
	"KHAKI":    {Label: "Khaki", Hex: "#a3a3a3"},
	"CRM":      {Label: "Cream", Hex: "#d4d4d4"},
	"CREAM":    {Label: "Cream", Hex: "#d4d4d4"},
	"S.TAN":    {Label: "S.Tan", Hex: "#d4a373"},
	"FOSSIL":   {Label: "Fossil", Hex: "#b8a590"},
	"FSL":      {Label: "Fossil", Hex: "#b8a590"},
	"BISCUIT":  {Label: "Biscuit", Hex: "#ddb892"},
	"BIS":      {Label: "Biscuit", Hex: "#ddb892"},
	"BISCUITE": {Label: "Biscuit", Hex: "#ddb892"},
	"COFFEE":   {Label: "Coffee", Hex: "#6f4e37"},
	"COFFE":    {Label: "Coffee", Hex: "#6f4e37"},

	// metallics
	"GLD":    {Label: "Gold", Hex: "#ca8a04"},
	"GOLD":   {Label: "Gold", Hex: "#ca8a04"},
	"COPPER": {Label: "Copper", Hex: "#b45309"},
	"SLVR":   {Label: "Silver", Hex: "#64748b"},
	"SILVER": {Label: "Silver", Hex: "#64748b"},

	"MIX":   {Label: "Mix", Hex: "#6366f1"},
	"MULTI": {Label: "Multi", Hex: "#6366f1"},
}
