package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotkon/dre-radar/internal/models"
)

const samplePage = `<html><body>
<div id="layout">
  <nav>Início &gt; Pesquisa &gt; Detalhe</nav>
  <div class="anuncio">
    <p>1 - IDENTIFICAÇÃO E CONTACTOS DA ENTIDADE ADJUDICANTE</p>
    <p>Designação da entidade adjudicante: Município de   Braga</p>
    <p>NIPC: 506901173</p>
    <p>Distrito: Braga</p>
    <p>Concelho: Braga</p>
    <p>Designação do contrato: Requalificação da Escola Básica</p>
    <p>Descrição: Empreitada de requalificação e ampliação</p>
    <p>Preço base s/IVA: 1.200.000,00 EUR</p>
    <p>Prazo para apresentação das propostas: 20-6-2024 18:00</p>
    <p>Plataforma eletrónica utilizada pela entidade adjudicante: VortalGOV</p>
    <p>Data de Envio do Anúncio: 5-3-2024</p>
  </div>
</div>
</body></html>`

func TestExtractDetails(t *testing.T) {
	text := ExtractDetails(samplePage)
	require.NotEmpty(t, text)

	assert.Contains(t, text, "IDENTIFICAÇÃO E CONTACTOS DA ENTIDADE ADJUDICANTE")
	assert.Contains(t, text, "NIPC: 506901173")
	assert.NotContains(t, text, "Pesquisa", "the innermost block excludes surrounding navigation")
	assert.NotContains(t, text, "<p>", "markup is stripped")
}

func TestExtractDetailsNoMarker(t *testing.T) {
	assert.Empty(t, ExtractDetails(`<html><body><div>Página de erro</div></body></html>`))
}

func TestApplyDetails(t *testing.T) {
	text := ExtractDetails(samplePage)
	require.NotEmpty(t, text)

	var p models.Procedimento
	ApplyDetails(&p, text)

	assert.Equal(t, text, p.DetalhesCompletos)
	assert.Equal(t, "Município de Braga", p.Entidade, "repeated whitespace is collapsed")
	assert.Equal(t, "506901173", p.NIPC)
	assert.Equal(t, "Braga", p.Distrito)
	assert.Equal(t, "Requalificação da Escola Básica", p.DesignacaoContrato)
	assert.Equal(t, "Empreitada de requalificação e ampliação", p.Descricao)
	assert.Equal(t, "1.200.000,00 EUR", p.PrecoBase)
	assert.Equal(t, "20-6-2024 18:00", p.PrazoPropostas)
	assert.Equal(t, "VortalGOV", p.Plataforma)
}

func TestApplyDetailsAuthorBlock(t *testing.T) {
	text := "IDENTIFICAÇÃO DO(S) AUTOR(ES) DE ANÚNCIO\nNome: Maria Santos\nCargo: Presidente da Câmara"

	var p models.Procedimento
	ApplyDetails(&p, text)

	assert.Equal(t, "Maria Santos", p.AutorNome)
	assert.Equal(t, "Presidente da Câmara", p.AutorCargo)
}

func TestApplyDetailsEmptyInput(t *testing.T) {
	var p models.Procedimento
	ApplyDetails(&p, "")
	assert.Empty(t, p.DetalhesCompletos)
}
