// Package rss renders the seed-filtered RSS 2.0 feed of active
// procurement notices.
package rss

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/sotkon/dre-radar/internal/models"
	"github.com/sotkon/dre-radar/internal/search"
)

type feed struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	Language      string `xml:"language"`
	LastBuildDate string `xml:"lastBuildDate"`
	Items         []item `xml:"item"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description cdata  `xml:"description"`
	GUID        guid   `xml:"guid"`
}

type cdata struct {
	Text string `xml:",cdata"`
}

type guid struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Generate builds the filtered feed: every record matching at least one
// seed becomes an item, labeled with the first seed that matched it.
// Returns the serialized XML and the number of items.
func Generate(procs []models.Procedimento, seeds []models.Seed, now time.Time) ([]byte, int, error) {
	ch := channel{
		Title:         "DRE Procedimentos Filtrados (Seeds)",
		Link:          "https://diariodarepublica.pt",
		Description:   "Feed RSS automatizado com base nas sementes de pesquisa parametrizadas.",
		Language:      "pt-PT",
		LastBuildDate: now.UTC().Format("Mon, 02 Jan 2006 15:04:05") + " GMT",
	}

	for _, p := range procs {
		seedName, ok := firstMatch(p, seeds)
		if !ok {
			continue
		}
		link := cleanURL(p.Link)
		ch.Items = append(ch.Items, item{
			Title:       itemTitle(p, seedName),
			Link:        link,
			Description: cdata{Text: itemDescription(p, seedName)},
			GUID:        guid{IsPermaLink: "false", Value: link},
		})
	}

	out, err := xml.MarshalIndent(feed{Version: "2.0", Channel: ch}, "", "  ")
	if err != nil {
		return nil, 0, err
	}
	return append([]byte(xml.Header), out...), len(ch.Items), nil
}

func firstMatch(p models.Procedimento, seeds []models.Seed) (string, bool) {
	for _, s := range seeds {
		if search.Matches(p, s) {
			if s.Name != "" {
				return s.Name, true
			}
			return s.Code, true
		}
	}
	return "", false
}

func itemTitle(p models.Procedimento, seedName string) string {
	nipc := fallback(p.NIPC, "N/A")
	entidade := p.EntidadeAdjudicante
	if entidade == "" {
		entidade = fallback(p.Entidade, "N/A")
	}
	designacao := search.Title(p)
	if designacao == "" {
		designacao = "Procedimento sem título"
	}
	return fmt.Sprintf("[%s] [%s] %s - %s", seedName, nipc, entidade, designacao)
}

// itemDescription is an HTML card readable in mail clients, mirroring what
// the dashboard's detail row shows.
func itemDescription(p models.Procedimento, seedName string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif;">`)
	fmt.Fprintf(&b, `<div><b>%s</b></div>`, itemTitleEntity(p))
	fmt.Fprintf(&b, `<div>%s</div>`, fallback(search.Title(p), "Procedimento sem título"))
	fmt.Fprintf(&b, `<div>PLATAFORMA: %s | MATCH: %s</div>`, fallback(p.Plataforma, "N/A"), seedName)
	fmt.Fprintf(&b, `<div>NIPC: %s | CONCELHO: %s</div>`, fallback(p.NIPC, "N/A"), fallback(p.Concelho, "N/A"))
	fmt.Fprintf(&b, `<div>PRAZO: %s | PREÇO: %s</div>`, fallback(p.PrazoExecucao, "N/A"), search.FormatPrice(p.PrecoBase))
	fmt.Fprintf(&b, `<div><a href="%s">Anúncio DRE</a> | <a href="%s">Procedimento</a></div>`, cleanURL(p.Link), cleanURL(p.URLProcedimento))
	fmt.Fprintf(&b, `<div><b>DESCRIÇÃO:</b> %s</div>`, fallback(p.Descricao, "N/A"))
	b.WriteString(`</div>`)
	return b.String()
}

func itemTitleEntity(p models.Procedimento) string {
	if p.EntidadeAdjudicante != "" {
		return p.EntidadeAdjudicante
	}
	return fallback(p.Entidade, "N/A")
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// cleanURL strips whitespace and newlines that would invalidate the feed.
func cleanURL(u string) string {
	if u == "" {
		return "https://diariodarepublica.pt"
	}
	u = strings.TrimSpace(u)
	u = strings.ReplaceAll(u, "\n", "")
	u = strings.ReplaceAll(u, "\r", "")
	return strings.ReplaceAll(u, " ", "%20")
}
