package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sotkon/dre-radar/internal/models"
)

func TestFilter(t *testing.T) {
	records := []models.Procedimento{
		{NumeroProcedimento: "1", Descricao: "Empreitada de obras na escola", Distrito: "Braga"},
		{NumeroProcedimento: "2", Descricao: "Aquisição de viaturas elétricas", Distrito: "Porto"},
		{NumeroProcedimento: "3", Descricao: "Obras de saneamento", Distrito: "Braga"},
	}

	tests := []struct {
		name   string
		query  string
		active []models.Seed
		want   []string
	}{
		{
			name: "no query and no seeds keeps everything",
			want: []string{"1", "2", "3"},
		},
		{
			name:  "query is trimmed and lowercased",
			query: "  OBRAS  ",
			want:  []string{"1", "3"},
		},
		{
			name:   "seed stage alone",
			active: []models.Seed{{District: "Braga"}},
			want:   []string{"1", "3"},
		},
		{
			name:   "query and seeds intersect",
			query:  "escola",
			active: []models.Seed{{District: "Braga"}},
			want:   []string{"1"},
		},
		{
			name:   "two seeds combine with OR",
			active: []models.Seed{{Tags: []string{"viaturas"}}, {Tags: []string{"saneamento"}}},
			want:   []string{"2", "3"},
		},
		{
			name:   "nothing survives",
			query:  "inexistente",
			active: []models.Seed{{District: "Braga"}},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.query, tt.active)
			assert.Equal(t, tt.want, numeros(got))
		})
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	records := []models.Procedimento{
		{NumeroProcedimento: "1", Descricao: "A"},
		{NumeroProcedimento: "2", Descricao: "B"},
	}

	Filter(records, "b", nil)

	assert.Equal(t, "1", records[0].NumeroProcedimento)
	assert.Equal(t, "2", records[1].NumeroProcedimento)
}
