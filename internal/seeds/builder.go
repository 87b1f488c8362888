// Package seeds manages named filter definitions: building and validating
// them, persisting them in a local key-value store, merging a read-only
// remote seed document, and tracking the active set.
package seeds

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/sotkon/dre-radar/internal/models"
)

// ErrNoCriteria is returned when a seed would match everything: no tags, no
// title tags and no district.
var ErrNoCriteria = errors.New("seed needs at least one tag, title tag or district")

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns "SEED" followed by six uniform [A-Z0-9] characters.
// Uniqueness is not checked: with the handful of seeds a user keeps, the
// collision probability is negligible and accepted.
func GenerateCode() string {
	var b strings.Builder
	b.WriteString("SEED")
	for i := 0; i < 6; i++ {
		b.WriteByte(codeCharset[rand.Intn(len(codeCharset))])
	}
	return b.String()
}

// New builds a seed from raw user input. Tags are trimmed, lowercased and
// de-duplicated keeping insertion order; the display name is derived from
// the first tags available. At least one discriminating criterion is
// required.
func New(tags, titleTags []string, district string) (models.Seed, error) {
	cleanTags := cleanTagList(tags)
	cleanTitleTags := cleanTagList(titleTags)
	district = strings.TrimSpace(district)

	if len(cleanTags) == 0 && len(cleanTitleTags) == 0 && district == "" {
		return models.Seed{}, ErrNoCriteria
	}

	return models.Seed{
		Code:      GenerateCode(),
		Tags:      cleanTags,
		TitleTags: cleanTitleTags,
		District:  district,
		Name:      deriveName(cleanTags, cleanTitleTags, district),
		Created:   time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func cleanTagList(raw []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// deriveName labels a seed after its first two title tags, then its first
// two general tags, then the district. Title tags win because they are the
// narrower, more telling criterion.
func deriveName(tags, titleTags []string, district string) string {
	pick := func(list []string) string {
		name := strings.Join(list[:min(2, len(list))], ", ")
		if len(list) > 2 {
			name += "..."
		}
		return name
	}
	switch {
	case len(titleTags) > 0:
		return pick(titleTags)
	case len(tags) > 0:
		return pick(tags)
	case district != "":
		return "Filtro: " + district
	}
	return "Nova Seed"
}
