package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sotkon/dre-radar/internal/models"
)

func TestMatches(t *testing.T) {
	record := models.Procedimento{
		Descricao: "Empreitada de obras de requalificação urbana",
		Entidade:  "Município de Obras e Serviços de Viseu",
		Distrito:  "Viseu",
		Concelho:  "Viseu",
	}

	tests := []struct {
		name string
		p    models.Procedimento
		seed models.Seed
		want bool
	}{
		{
			name: "general tag hits the title",
			p:    record,
			seed: models.Seed{Tags: []string{"requalificação"}},
			want: true,
		},
		{
			name: "general tag hits a non-title field",
			p:    record,
			seed: models.Seed{Tags: []string{"serviços"}},
			want: true,
		},
		{
			name: "general tag misses everywhere",
			p:    record,
			seed: models.Seed{Tags: []string{"aquisição de viaturas"}},
			want: false,
		},
		{
			name: "title tag restricted to the title",
			p: models.Procedimento{
				Descricao: "Aquisição de serviços de limpeza",
				Entidade:  "Direção de Obras Públicas",
			},
			seed: models.Seed{TitleTags: []string{"obras"}},
			want: false,
		},
		{
			name: "title tag hit in the title",
			p:    record,
			seed: models.Seed{TitleTags: []string{"obras"}},
			want: true,
		},
		{
			name: "title tag miss rejects despite a general tag hit elsewhere",
			p: models.Procedimento{
				Descricao: "Aquisição de serviços de limpeza",
				Entidade:  "Direção de Obras Públicas",
			},
			seed: models.Seed{TitleTags: []string{"obras"}, Tags: []string{"limpeza"}},
			want: false,
		},
		{
			name: "title tag hit then general tag decides",
			p:    record,
			seed: models.Seed{TitleTags: []string{"empreitada"}, Tags: []string{"viseu"}},
			want: true,
		},
		{
			name: "title tag hit but general tag miss",
			p:    record,
			seed: models.Seed{TitleTags: []string{"empreitada"}, Tags: []string{"ponte"}},
			want: false,
		},
		{
			name: "district gate rejects before tags run",
			p:    record,
			seed: models.Seed{District: "Lisboa", Tags: []string{"requalificação"}},
			want: false,
		},
		{
			name: "district matches case-insensitively",
			p:    record,
			seed: models.Seed{District: "vIsEu"},
			want: true,
		},
		{
			name: "district must match exactly, not by substring",
			p:    models.Procedimento{Distrito: "Viana do Castelo"},
			seed: models.Seed{District: "Viana"},
			want: false,
		},
		{
			name: "district-only seed with empty record district",
			p:    models.Procedimento{Descricao: "Obra"},
			seed: models.Seed{District: "Viseu"},
			want: false,
		},
		{
			name: "no criteria passes everything",
			p:    record,
			seed: models.Seed{},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.p, tt.seed))
		})
	}
}

func TestMatchesAny(t *testing.T) {
	p := models.Procedimento{Descricao: "Fornecimento de energia", Distrito: "Porto"}

	miss := models.Seed{Tags: []string{"água"}}
	hit := models.Seed{Tags: []string{"energia"}}

	assert.True(t, MatchesAny(p, []models.Seed{miss, hit}))
	assert.False(t, MatchesAny(p, []models.Seed{miss}))
	assert.False(t, MatchesAny(p, nil))
}
