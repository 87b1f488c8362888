package rss

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotkon/dre-radar/internal/models"
)

func TestGenerate(t *testing.T) {
	procs := []models.Procedimento{
		{
			Descricao:           "Empreitada de obras na escola",
			EntidadeAdjudicante: "Município de Braga",
			NIPC:                "506901173",
			Link:                "https://dre.pt/a",
		},
		{
			Descricao: "Aquisição de viaturas",
			Entidade:  "Município de Faro",
			Link:      "https://dre.pt/b",
		},
		{
			Descricao: "Fornecimento de energia",
			Link:      "https://dre.pt/c",
		},
	}
	seeds := []models.Seed{
		{Code: "SEEDAAA111", Name: "obras", Tags: []string{"obras"}},
		{Code: "SEEDBBB222", Name: "viaturas e obras", Tags: []string{"viaturas", "obras"}},
	}

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	out, count, err := Generate(procs, seeds, now)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "only matching records become items")

	var doc struct {
		Channel struct {
			LastBuildDate string `xml:"lastBuildDate"`
			Items         []struct {
				Title string `xml:"title"`
				Link  string `xml:"link"`
				GUID  struct {
					IsPermaLink string `xml:"isPermaLink,attr"`
					Value       string `xml:",chardata"`
				} `xml:"guid"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	require.NoError(t, xml.Unmarshal(out, &doc))

	require.Len(t, doc.Channel.Items, 2)
	assert.Equal(t, "Mon, 10 Jun 2024 12:00:00 GMT", doc.Channel.LastBuildDate)

	first := doc.Channel.Items[0]
	assert.Equal(t, "[obras] [506901173] Município de Braga - Empreitada de obras na escola", first.Title,
		"the first matching seed labels the item")
	assert.Equal(t, "https://dre.pt/a", first.Link)
	assert.Equal(t, "false", first.GUID.IsPermaLink)
	assert.Equal(t, "https://dre.pt/a", first.GUID.Value)

	second := doc.Channel.Items[1]
	assert.Equal(t, "[viaturas e obras] [N/A] Município de Faro - Aquisição de viaturas", second.Title)
}

func TestGenerateNoSeeds(t *testing.T) {
	procs := []models.Procedimento{{Descricao: "Obra", Link: "https://dre.pt/a"}}

	out, count, err := Generate(procs, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.True(t, strings.Contains(string(out), "<channel>"), "an empty feed is still a valid document")
}

func TestCleanURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{" https://dre.pt/x\n", "https://dre.pt/x"},
		{"https://dre.pt/a b", "https://dre.pt/a%20b"},
		{"", "https://diariodarepublica.pt"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanURL(tt.raw), "raw=%q", tt.raw)
	}
}
