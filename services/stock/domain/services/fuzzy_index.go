package services

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ghuser/stockroom/services/stock/domain/models"
)

const (
	// MinQueryLength is the shortest trimmed query, in runes, that is searched at all.
	MinQueryLength = 2
	// MaxSearchResults caps the number of hits returned by Search.
	MaxSearchResults = 15

	matchThreshold   = 0.4
	prefixScore      = 0.05
	substringScore   = 0.1
	subsequenceScore = 0.35
	groupPenalty     = 0.1
	minSubsequence   = 3
)

type indexedEntry struct {
	entry       models.StockEntry
	nameTokens  []string
	groupTokens []string
	nameFlat    string
	groupFlat   string
}

// FuzzyIndex ranks stock entries against free-text queries by token edit
// distance over product and group names. An index is never mutated; build a
// new one when the catalog changes.
type FuzzyIndex struct {
	entries []indexedEntry
}

// BuildFuzzyIndex indexes entries in their given order. Ties in score keep that order.
func BuildFuzzyIndex(entries []models.StockEntry) *FuzzyIndex {
	idx := &FuzzyIndex{entries: make([]indexedEntry, len(entries))}
	for i, e := range entries {
		name := strings.ToUpper(e.ProductName)
		group := strings.ToUpper(e.GroupName)
		idx.entries[i] = indexedEntry{
			entry:       e,
			nameTokens:  tokenize(name),
			groupTokens: tokenize(group),
			nameFlat:    compact(name),
			groupFlat:   compact(group),
		}
	}
	return idx
}

// Len reports the number of indexed entries.
func (idx *FuzzyIndex) Len() int {
	return len(idx.entries)
}

type scoredEntry struct {
	entry models.StockEntry
	score float64
}

// Search returns up to MaxSearchResults entries, best match first.
// Queries shorter than MinQueryLength return nothing.
func (idx *FuzzyIndex) Search(query string) []models.StockEntry {
	query = strings.ToUpper(strings.TrimSpace(query))
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil
	}
	qTokens := tokenize(query)
	qFlat := compact(query)
	if len(qTokens) == 0 {
		return nil
	}

	var hits []scoredEntry
	for _, ie := range idx.entries {
		score, ok := fieldScore(qTokens, qFlat, ie.nameTokens, ie.nameFlat)
		if gs, gok := fieldScore(qTokens, qFlat, ie.groupTokens, ie.groupFlat); gok && (!ok || gs+groupPenalty < score) {
			score, ok = gs+groupPenalty, true
		}
		if ok {
			hits = append(hits, scoredEntry{entry: ie.entry, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })
	if len(hits) > MaxSearchResults {
		hits = hits[:MaxSearchResults]
	}
	out := make([]models.StockEntry, len(hits))
	for i, h := range hits {
		out[i] = h.entry
	}
	return out
}

// fieldScore is the mean best-token score when every query token matches a
// field token; otherwise it falls back to an in-order subsequence match.
func fieldScore(qTokens []string, qFlat string, fTokens []string, fFlat string) (float64, bool) {
	if len(fTokens) == 0 {
		return 0, false
	}
	total := 0.0
	matched := true
	for _, q := range qTokens {
		best := 1.0
		for _, f := range fTokens {
			if s := tokenScore(q, f); s < best {
				best = s
			}
		}
		if best > matchThreshold {
			matched = false
			break
		}
		total += best
	}
	if matched {
		return total / float64(len(qTokens)), true
	}
	if utf8.RuneCountInString(qFlat) >= minSubsequence && fuzzy.MatchFold(qFlat, fFlat) {
		return subsequenceScore, true
	}
	return 0, false
}

// tokenScore is 0 for an exact match and grows towards 1 as the tokens diverge.
// Transpositions count as a single edit.
func tokenScore(q, f string) float64 {
	switch {
	case q == f:
		return 0
	case strings.HasPrefix(f, q):
		return prefixScore
	case strings.Contains(f, q):
		return substringScore
	}

	qLen := utf8.RuneCountInString(q)
	fLen := utf8.RuneCountInString(f)
	best := normalized(edlib.OSADamerauLevenshteinDistance(q, f), max(qLen, fLen))

	// partial queries: compare against the head of the field token
	if fLen > qLen {
		head := string([]rune(f)[:qLen])
		if s := normalized(edlib.OSADamerauLevenshteinDistance(q, head), qLen) + prefixScore; s < best {
			best = s
		}
	}
	return best
}

func normalized(distance, length int) float64 {
	if length == 0 {
		return 1
	}
	return float64(distance) / float64(length)
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func compact(s string) string {
	return strings.Join(tokenize(s), "")
}
