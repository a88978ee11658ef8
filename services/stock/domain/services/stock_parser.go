package services

import (
	"regexp"
	"strings"

	"github.com/ghuser/stockroom/services/stock/domain/models"
)

var (
	pricePattern     = regexp.MustCompile(`(?i)(MRP|RS\.?|@)\s*(\d+(?:\.\d+)?)`)
	trailingDash     = regexp.MustCompile(`/-\s*$`)
	sizePattern      = regexp.MustCompile(`(\(*\s*\d+[\s.]*[xX*]\s*[\d.]+\s*\)*)|(\(*\s*\d+\s*-\s*\d+\s*\)*)`)
	colorSeparators  = regexp.MustCompile(`[\s()\-/]+`)
	spacedSlash      = regexp.MustCompile(`\s+/\s+`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	sizeNoise        = strings.NewReplacer("(", "", ")", "")
	sizeSeparatorMap = strings.NewReplacer("X", "x")
)

// parseStage extracts one attribute from the remaining text into out and
// returns what is left for the next stage.
type parseStage func(remaining string, out *models.ParsedStock) string

// StockParser decomposes raw inventory descriptions such as
// "AIR MAX BLK/WHT (6-10) RS.450/-" into name, color, size and price.
// Stages run in a fixed order because each one removes its match before the next looks.
type StockParser struct {
	lexicon *ColorLexicon
	stages  []parseStage
}

// NewStockParser returns a parser that resolves colors against lexicon.
func NewStockParser(lexicon *ColorLexicon) *StockParser {
	p := &StockParser{lexicon: lexicon}
	p.stages = []parseStage{extractPrice, extractSize, p.extractColor, trimName}
	return p
}

// Parse never fails: unrecognised input comes back as a cleaned name with
// empty attributes and a Net price type.
func (p *StockParser) Parse(raw string) models.ParsedStock {
	out := models.ParsedStock{PriceType: models.PriceNet, OriginalName: raw}
	remaining := raw
	for _, stage := range p.stages {
		remaining = stage(remaining, &out)
	}
	out.Name = remaining
	return out
}

func extractPrice(remaining string, out *models.ParsedStock) string {
	m := pricePattern.FindStringSubmatchIndex(remaining)
	if m == nil {
		return remaining
	}
	label := strings.ToUpper(remaining[m[2]:m[3]])
	if strings.HasPrefix(label, "MRP") {
		out.PriceType = models.PriceMRP
	}
	out.Price = remaining[m[4]:m[5]]

	rest := remaining[:m[0]] + remaining[m[1]:]
	rest = trailingDash.ReplaceAllString(rest, "")
	return strings.TrimSpace(rest)
}

func extractSize(remaining string, out *models.ParsedStock) string {
	loc := sizePattern.FindStringIndex(remaining)
	if loc == nil {
		return remaining
	}
	size := sizeNoise.Replace(remaining[loc[0]:loc[1]])
	size = strings.Join(strings.Fields(size), "")
	out.Size = sizeSeparatorMap.Replace(size)
	return strings.TrimSpace(remaining[:loc[0]] + remaining[loc[1]:])
}

func (p *StockParser) extractColor(remaining string, out *models.ParsedStock) string {
	match := p.matchColor(remaining)
	if match == nil {
		return remaining
	}
	out.Color = match

	for _, token := range match.OriginalTokens {
		remaining = strings.TrimSpace(p.lexicon.words[token].ReplaceAllString(remaining, ""))
	}
	remaining = spacedSlash.ReplaceAllString(remaining, " ")
	remaining = whitespaceRun.ReplaceAllString(remaining, " ")
	return strings.TrimSpace(remaining)
}

// matchColor looks up every separator-delimited token of text and folds the
// hits into a single match. Duplicate tokens and duplicate labels collapse.
func (p *StockParser) matchColor(text string) *models.ColorMatch {
	var (
		tokens     []string
		labels     []string
		seenTokens = map[string]bool{}
		seenLabels = map[string]bool{}
		primary    models.Color
	)
	for _, token := range colorSeparators.Split(strings.ToUpper(text), -1) {
		if token == "" || seenTokens[token] {
			continue
		}
		c, ok := p.lexicon.Lookup(token)
		if !ok {
			continue
		}
		if len(tokens) == 0 {
			primary = c
		}
		seenTokens[token] = true
		tokens = append(tokens, token)
		if !seenLabels[c.Label] {
			seenLabels[c.Label] = true
			labels = append(labels, c.Label)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return &models.ColorMatch{
		Text:           strings.Join(labels, " & "),
		Hex:            primary.Hex,
		OriginalTokens: tokens,
	}
}

// trimName strips edge characters outside ASCII letters and digits; feed
// product names are ASCII, so accented edges are treated as punctuation.
func trimName(remaining string, _ *models.ParsedStock) string {
	return strings.TrimFunc(remaining, func(r rune) bool { return !isASCIIAlnum(r) })
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
