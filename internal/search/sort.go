package search

import (
	"sort"
	"strings"
	"time"

	"github.com/sotkon/dre-radar/internal/models"
)

// Column identifies a sortable column of the dashboard table.
type Column string

const (
	ColumnTitle       Column = "title"
	ColumnEntity      Column = "entity"
	ColumnPlatform    Column = "platform"
	ColumnPublication Column = "publication"
	ColumnDeadline    Column = "deadline"
	ColumnPrice       Column = "price"
)

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// State is the current sort column and direction. It is session state only,
// never persisted.
type State struct {
	Column    Column
	Direction Direction
}

// DefaultState orders by publication date, most recent first — the initial
// view after loading records.
func DefaultState() State {
	return State{Column: ColumnPublication, Direction: Descending}
}

// Toggle returns the state after a sort request on col: the same column
// flips the direction, a new column resets to ascending.
func (s State) Toggle(col Column) State {
	if s.Column == col {
		if s.Direction == Ascending {
			return State{Column: col, Direction: Descending}
		}
		return State{Column: col, Direction: Ascending}
	}
	return State{Column: col, Direction: Ascending}
}

// Sort orders a copy of records by the given column and direction. The sort
// is stable so ties keep their original relative order, and an unknown
// column leaves the order untouched. The input slice is not modified.
func Sort(records []models.Procedimento, col Column, dir Direction) []models.Procedimento {
	out := make([]models.Procedimento, len(records))
	copy(out, records)

	cmp := comparator(col)
	if cmp == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

func comparator(col Column) func(a, b models.Procedimento) int {
	switch col {
	case ColumnTitle:
		return func(a, b models.Procedimento) int {
			return strings.Compare(TitleText(a), TitleText(b))
		}
	case ColumnEntity:
		return func(a, b models.Procedimento) int {
			return strings.Compare(strings.ToLower(Entity(a)), strings.ToLower(Entity(b)))
		}
	case ColumnPlatform:
		return func(a, b models.Procedimento) int {
			return strings.Compare(strings.ToLower(a.Plataforma), strings.ToLower(b.Plataforma))
		}
	case ColumnPublication:
		return comparePublication
	case ColumnDeadline:
		return compareDeadline
	case ColumnPrice:
		return func(a, b models.Procedimento) int {
			va, vb := PriceValue(a.PrecoBase), PriceValue(b.PrecoBase)
			switch {
			case va < vb:
				return -1
			case va > vb:
				return 1
			}
			return 0
		}
	}
	return nil
}

// comparePublication compares extracted publication dates as calendar dates
// when both are real; when either is the "N/A" sentinel the two display
// strings are compared as plain text instead.
func comparePublication(a, b models.Procedimento) int {
	va, vb := PublicationDate(a), PublicationDate(b)
	if va != NA && vb != NA {
		ta, errA := time.Parse("2/1/2006", va)
		tb, errB := time.Parse("2/1/2006", vb)
		if errA == nil && errB == nil {
			return ta.Compare(tb)
		}
		return 0
	}
	return strings.Compare(va, vb)
}

// compareDeadline compares raw proposal deadlines. With both values
// non-empty, the first whitespace-delimited token is parsed as DD-MM-YYYY
// and compared numerically; a value that fails to parse compares equal, so
// one malformed record never reorders the rest. Otherwise the raw strings
// are compared.
func compareDeadline(a, b models.Procedimento) int {
	va, vb := a.PrazoPropostas, b.PrazoPropostas
	if va != "" && vb != "" {
		ta, errA := time.Parse("2-1-2006", firstToken(va))
		tb, errB := time.Parse("2-1-2006", firstToken(vb))
		if errA != nil || errB != nil {
			return 0
		}
		return ta.Compare(tb)
	}
	return strings.Compare(va, vb)
}

func firstToken(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return s
}
