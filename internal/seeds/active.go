package seeds

import (
	"errors"
	"strings"

	"github.com/sotkon/dre-radar/internal/models"
)

var (
	// ErrNotFound means no stored seed carries the given code.
	ErrNotFound = errors.New("seed not found")
	// ErrAlreadyActive means the seed is already in the active set; the
	// set is unchanged and the caller should tell the user, not fail.
	ErrAlreadyActive = errors.New("seed already active")
)

// ActiveSet is the ordered collection of seed codes currently applied as
// filters. Order matters for display only; matching is a pure OR.
type ActiveSet struct {
	codes []string
}

// Activate adds the seed with the given code, validated against the known
// seed list. The code is uppercased before lookup.
func (a *ActiveSet) Activate(known []models.Seed, code string) (models.Seed, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var found *models.Seed
	for i := range known {
		if known[i].Code == code {
			found = &known[i]
			break
		}
	}
	if found == nil {
		return models.Seed{}, ErrNotFound
	}

	for _, c := range a.codes {
		if c == code {
			return *found, ErrAlreadyActive
		}
	}

	a.codes = append(a.codes, code)
	return *found, nil
}

// Deactivate removes a code from the set; unknown codes are ignored.
func (a *ActiveSet) Deactivate(code string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	out := a.codes[:0]
	for _, c := range a.codes {
		if c != code {
			out = append(out, c)
		}
	}
	a.codes = out
}

// Clear empties the active set.
func (a *ActiveSet) Clear() {
	a.codes = nil
}

// Codes returns the active codes in activation order.
func (a *ActiveSet) Codes() []string {
	out := make([]string, len(a.codes))
	copy(out, a.codes)
	return out
}

// Resolve maps the active codes back to seed definitions, skipping codes
// that no longer resolve.
func (a *ActiveSet) Resolve(known []models.Seed) []models.Seed {
	byCode := make(map[string]models.Seed, len(known))
	for _, s := range known {
		byCode[s.Code] = s
	}
	var out []models.Seed
	for _, c := range a.codes {
		if s, ok := byCode[c]; ok {
			out = append(out, s)
		}
	}
	return out
}
