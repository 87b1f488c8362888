package search

import (
	"strings"

	"github.com/sotkon/dre-radar/internal/models"
)

// SearchText concatenates every searchable field of a record into one
// lowercase haystack for free-text queries. Missing fields contribute an
// empty string; the "N/A" publication-date sentinel is replaced by "" so
// display fallbacks never pollute the index.
func SearchText(p models.Procedimento) string {
	pub := PublicationDate(p)
	if pub == NA {
		pub = ""
	}
	fields := []string{
		Title(p),
		Entity(p),
		p.Plataforma,
		p.PrecoBase,
		p.PrazoPropostas,
		p.NIPC,
		p.Distrito,
		p.Concelho,
		p.Freguesia,
		p.Site,
		p.Email,
		p.NumeroProcedimento,
		p.PrazoExecucao,
		p.FundosEU,
		p.AutorNome,
		p.AutorCargo,
		pub,
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// TitleText is the lowercased title-with-fallback haystack, the only field
// title tags are allowed to match against.
func TitleText(p models.Procedimento) string {
	return strings.ToLower(Title(p))
}

// OtherText concatenates the non-title fields general tags may match in
// addition to the title. District is excluded on purpose: it has its own
// exact-match rule in the seed matcher.
func OtherText(p models.Procedimento) string {
	fields := []string{
		p.Entidade,
		p.EntidadeAdjudicante,
		p.Plataforma,
		p.NIPC,
		p.Concelho,
		p.Freguesia,
		p.AutorNome,
		p.AutorCargo,
	}
	return strings.ToLower(strings.Join(fields, " "))
}
