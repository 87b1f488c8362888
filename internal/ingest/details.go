package ingest

import (
	"context"
	"fmt"
	"html"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/sotkon/dre-radar/internal/config"
	"github.com/sotkon/dre-radar/internal/models"
)

// Markers that open the announcement detail block, most specific first.
var detailMarkers = []string{
	"1 - IDENTIFICAÇÃO E CONTACTOS DA ENTIDADE ADJUDICANTE",
	"IDENTIFICAÇÃO E CONTACTOS DA ENTIDADE ADJUDICANTE",
	"IDENTIFICAÇÃO",
}

var (
	blockBreakRe = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|div|li|tr|h[1-6])>`)
	spacesRe     = regexp.MustCompile(`\s+`)
	stripPolicy  = bluemonday.StrictPolicy()
)

// detailPatterns maps announcement labels to record fields. The layout of
// DRE pages is stable enough that plain line-anchored regexes beat any
// selector-based extraction.
var detailPatterns = []struct {
	re    *regexp.Regexp
	apply func(p *models.Procedimento, v string)
}{
	{regexp.MustCompile(`Designação da entidade adjudicante:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.Entidade = v }},
	{regexp.MustCompile(`NIPC:\s*(\d+)`), func(p *models.Procedimento, v string) { p.NIPC = v }},
	{regexp.MustCompile(`Distrito:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.Distrito = v }},
	{regexp.MustCompile(`Concelho:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.Concelho = v }},
	{regexp.MustCompile(`Freguesia:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.Freguesia = v }},
	{regexp.MustCompile(`Endereço da Entidade \(URL\):\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.Site = v }},
	{regexp.MustCompile(`Endereço Eletrónico:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.Email = v }},
	{regexp.MustCompile(`Designação do contrato:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.DesignacaoContrato = v }},
	{regexp.MustCompile(`Descrição:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.Descricao = v }},
	{regexp.MustCompile(`Preço base s/IVA:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.PrecoBase = v }},
	{regexp.MustCompile(`Prazo de execução do contrato:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.PrazoExecucao = v }},
	{regexp.MustCompile(`Prazo para apresentação das propostas:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.PrazoPropostas = v }},
	{regexp.MustCompile(`Têm fundos EU\?\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.FundosEU = v }},
	{regexp.MustCompile(`Plataforma eletrónica utilizada pela entidade adjudicante:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.Plataforma = v }},
	{regexp.MustCompile(`URL para Apresentação:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.URLProcedimento = v }},
	{regexp.MustCompile(`IDENTIFICAÇÃO DO\(S\) AUTOR\(ES\) DE ANÚNCIO\nNome:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.AutorNome = v }},
	{regexp.MustCompile(`Cargo:\s*([^\n]+)`), func(p *models.Procedimento, v string) { p.AutorCargo = v }},
}

// DetailFetcher downloads announcement pages with rate limiting and
// retries.
type DetailFetcher struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	Delay      time.Duration
}

// NewDetailFetcher builds a fetcher from the fetch configuration.
func NewDetailFetcher(cfg config.FetchConfig) *DetailFetcher {
	return &DetailFetcher{
		UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.MaxRetries,
		Delay:      cfg.Delay,
	}
}

// FetchHTML downloads one announcement page and returns its body.
func (f *DetailFetcher) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	c := colly.NewCollector(
		colly.UserAgent(f.UserAgent),
		colly.AllowURLRevisit(),
		colly.DetectCharset(),
	)
	c.Limit(&colly.LimitRule{DomainGlob: "*", Delay: f.Delay})
	c.SetRequestTimeout(f.Timeout)

	var body string
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		retries := 0
		if v := r.Request.Ctx.GetAny("retries"); v != nil {
			retries = v.(int)
		}
		if retries < f.MaxRetries {
			r.Request.Ctx.Put("retries", retries+1)
			log.Printf("[ingest] retry %d/%d for %s: %v", retries+1, f.MaxRetries, r.Request.URL, err)
			time.Sleep(time.Duration(retries+1) * time.Second)
			r.Request.Retry()
			return
		}
		fetchErr = fmt.Errorf("fetch failed after %d retries: %w", f.MaxRetries, err)
	})

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("visit failed: %w", err)
	}
	c.Wait()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if fetchErr != nil {
		return "", fetchErr
	}
	if body == "" {
		return "", fmt.Errorf("no response received for %s", pageURL)
	}
	return body, nil
}

// ExtractDetails locates the detail block in an announcement page and
// returns its plain text, one label per line. Returns "" when no block is
// found.
func ExtractDetails(pageHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return ""
	}

	block := findDetailBlock(doc)
	if block == nil {
		return ""
	}

	raw, err := block.Html()
	if err != nil {
		return ""
	}
	return htmlBlockToText(raw)
}

// findDetailBlock picks the innermost div containing one of the markers —
// the div wrapping the least text is the tightest fit around the block.
func findDetailBlock(doc *goquery.Document) *goquery.Selection {
	for _, marker := range detailMarkers {
		var best *goquery.Selection
		bestLen := -1
		doc.Find("div").Each(func(_ int, sel *goquery.Selection) {
			text := sel.Text()
			if !strings.Contains(text, marker) {
				return
			}
			if bestLen == -1 || len(text) < bestLen {
				best = sel
				bestLen = len(text)
			}
		})
		if best != nil {
			return best
		}
	}
	return nil
}

// htmlBlockToText converts a detail block to newline-separated text:
// block-level tag boundaries become newlines, every remaining tag is
// stripped, entities are decoded and blank lines dropped.
func htmlBlockToText(raw string) string {
	raw = blockBreakRe.ReplaceAllString(raw, "\n")
	text := html.UnescapeString(stripPolicy.Sanitize(raw))

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// ApplyDetails fills record fields from the detail block text and stores
// the whole block, the source of the publication date downstream.
func ApplyDetails(p *models.Procedimento, detailsText string) {
	if detailsText == "" {
		return
	}
	p.DetalhesCompletos = detailsText

	for _, pat := range detailPatterns {
		if m := pat.re.FindStringSubmatch(detailsText); m != nil {
			pat.apply(p, spacesRe.ReplaceAllString(strings.TrimSpace(m[1]), " "))
		}
	}
}
