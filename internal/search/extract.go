// Package search implements the matching, filtering and sorting engine for
// procurement notices: field extraction with fallback chains, haystack
// construction, seed matching and column-aware ordering.
package search

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sotkon/dre-radar/internal/models"
)

// NA is the display sentinel for absent or unparseable values. It never
// enters the search index, only rendered output.
const NA = "N/A"

// NoDescription is the display fallback when a record has neither a
// description nor a contract designation.
const NoDescription = "Sem descrição"

var (
	publicationRe = regexp.MustCompile(`Data de Envio do Anúncio:\s*(\d{1,2}-\d{1,2}-\d{4})`)
	deadlineRe    = regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})\s+(\d{1,2}):(\d{2})`)
	priceDigitsRe = regexp.MustCompile(`[^\d,]`)
)

// Title returns the record title, falling back from descricao to
// designacao_contrato. Empty when both are absent; use DisplayTitle for
// rendering.
func Title(p models.Procedimento) string {
	if p.Descricao != "" {
		return p.Descricao
	}
	return p.DesignacaoContrato
}

// DisplayTitle is Title with the "Sem descrição" sentinel for rendering.
func DisplayTitle(p models.Procedimento) string {
	if t := Title(p); t != "" {
		return t
	}
	return NoDescription
}

// Entity returns the contracting entity, falling back from entidade to
// entidade_adjudicante.
func Entity(p models.Procedimento) string {
	if p.Entidade != "" {
		return p.Entidade
	}
	return p.EntidadeAdjudicante
}

// PublicationDate extracts the announcement date from the free-text details
// block, matching "Data de Envio do Anúncio: DD-MM-YYYY". The result keeps
// the source's digit widths with slashes ("5/3/2024"). Returns "N/A" when
// the marker is missing. This is the only source of the publication date.
func PublicationDate(p models.Procedimento) string {
	if p.DetalhesCompletos == "" {
		return NA
	}
	m := publicationRe.FindStringSubmatch(p.DetalhesCompletos)
	if m == nil {
		return NA
	}
	return strings.ReplaceAll(m[1], "-", "/")
}

// FormatDeadline splits a proposal deadline of the form "DD-MM-YYYY HH:MM"
// into a date part ("DD/MM/YYYY") and a time part ("HH:MM"). When the
// pattern does not match, the raw string is returned as the date part with
// an empty time part. Absent or "N/A" input yields ("N/A", "").
func FormatDeadline(raw string) (date, clock string) {
	if raw == "" || raw == NA {
		return NA, ""
	}
	m := deadlineRe.FindStringSubmatch(raw)
	if m == nil {
		return raw, ""
	}
	return m[1] + "/" + m[2] + "/" + m[3], m[4] + ":" + m[5]
}

// FormatPrice rewrites the literal "EUR"/"eur" as the € symbol and nothing
// else. Absent or "N/A" input yields "N/A".
func FormatPrice(raw string) string {
	if raw == "" || raw == NA {
		return NA
	}
	return strings.ReplaceAll(strings.ReplaceAll(raw, "EUR", "€"), "eur", "€")
}

// PriceValue parses a free-form price string for sorting: every rune that
// is not a digit or comma is stripped, the comma becomes a decimal point,
// and the remainder is parsed as a float. Unparseable input yields 0 so a
// bad record never aborts a sort.
func PriceValue(raw string) float64 {
	cleaned := priceDigitsRe.ReplaceAllString(raw, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
