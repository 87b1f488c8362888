package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sotkon/dre-radar/internal/models"
)

func TestSearchText(t *testing.T) {
	p := models.Procedimento{
		DesignacaoContrato:  "Requalificação da Escola Básica",
		EntidadeAdjudicante: "Município de Évora",
		Plataforma:          "VortalGOV",
		NIPC:                "501234567",
		Distrito:            "Évora",
		DetalhesCompletos:   "Data de Envio do Anúncio: 5-3-2024",
	}

	text := SearchText(p)

	assert.Equal(t, strings.ToLower(text), text, "haystack must be lowercase")
	assert.Contains(t, text, "requalificação da escola básica")
	assert.Contains(t, text, "município de évora")
	assert.Contains(t, text, "vortalgov")
	assert.Contains(t, text, "501234567")
	assert.Contains(t, text, "5/3/2024")
}

func TestSearchTextExcludesSentinel(t *testing.T) {
	// No publication marker in the details: the display fallback is "N/A"
	// but the haystack must not contain it.
	p := models.Procedimento{Descricao: "Obra", DetalhesCompletos: "Distrito: Beja"}
	assert.NotContains(t, SearchText(p), strings.ToLower(NA))
}

func TestTitleText(t *testing.T) {
	p := models.Procedimento{Descricao: "Construção de PAVILHÃO"}
	assert.Equal(t, "construção de pavilhão", TitleText(p))
}

func TestOtherTextExcludesDistrict(t *testing.T) {
	p := models.Procedimento{
		Entidade: "Junta de Freguesia",
		Distrito: "Portalegre",
		Concelho: "Elvas",
	}

	other := OtherText(p)
	assert.Contains(t, other, "junta de freguesia")
	assert.Contains(t, other, "elvas")
	assert.NotContains(t, other, "portalegre")
}
