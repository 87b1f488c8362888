package search

import (
	"strings"

	"github.com/sotkon/dre-radar/internal/models"
)

// Matches reports whether one record satisfies one seed definition.
//
// Evaluation order, short-circuiting on the first failure:
//  1. a non-empty seed district must equal the record district exactly,
//     case-insensitively;
//  2. when title tags exist, at least one must be a substring of the title
//     text — a miss rejects even if general tags would match elsewhere;
//  3. when general tags exist, at least one must be a substring of title
//     text plus other text, and that verdict is final.
//
// A seed with neither tag group that passed the district gate matches.
func Matches(p models.Procedimento, seed models.Seed) bool {
	if seed.District != "" {
		if !strings.EqualFold(p.Distrito, seed.District) {
			return false
		}
	}

	titleText := TitleText(p)

	if len(seed.TitleTags) > 0 {
		hit := false
		for _, tag := range seed.TitleTags {
			if strings.Contains(titleText, strings.ToLower(tag)) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if len(seed.Tags) > 0 {
		fullText := titleText + " " + OtherText(p)
		for _, tag := range seed.Tags {
			if strings.Contains(fullText, strings.ToLower(tag)) {
				return true
			}
		}
		return false
	}

	return true
}

// MatchesAny reports whether the record satisfies at least one of the given
// seeds (OR semantics). An empty seed slice matches nothing here; the
// filter stage treats "no active seeds" as a no-op before calling this.
func MatchesAny(p models.Procedimento, seeds []models.Seed) bool {
	for _, s := range seeds {
		if Matches(p, s) {
			return true
		}
	}
	return false
}
