package search

import (
	"strings"

	"github.com/sotkon/dre-radar/internal/models"
)

// Filter applies the free-text query and the active seeds to a record set
// and returns the surviving records in their original relative order.
//
// A record must contain the trimmed, lowercased query as a substring of its
// full-text haystack, and — when any seeds are active — satisfy at least
// one of them. Either stage with empty input is a no-op. The input slice is
// never modified.
func Filter(records []models.Procedimento, query string, active []models.Seed) []models.Procedimento {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Procedimento, 0, len(records))
	for _, p := range records {
		if query != "" && !strings.Contains(SearchText(p), query) {
			continue
		}
		if len(active) > 0 && !MatchesAny(p, active) {
			continue
		}
		out = append(out, p)
	}
	return out
}
