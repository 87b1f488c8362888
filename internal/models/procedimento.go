package models

// Procedimento is one public-procurement notice extracted from the Diário da
// República. Every field is optional: the DRE detail pages are scraped with
// best-effort regexes, so consumers must treat "" as absent. Records are
// never mutated after loading.
type Procedimento struct {
	NumeroProcedimento  string `json:"numero_procedimento,omitempty"`
	Entidade            string `json:"entidade,omitempty"`
	EntidadeAdjudicante string `json:"entidade_adjudicante,omitempty"`
	Descricao           string `json:"descricao,omitempty"`
	DesignacaoContrato  string `json:"designacao_contrato,omitempty"`
	Plataforma          string `json:"plataforma_eletronica,omitempty"`
	PrecoBase           string `json:"preco_base,omitempty"`
	PrazoPropostas      string `json:"prazo_apresentacao_propostas,omitempty"`
	PrazoExecucao       string `json:"prazo_execucao,omitempty"`
	NIPC                string `json:"nipc,omitempty"`
	Distrito            string `json:"distrito,omitempty"`
	Concelho            string `json:"concelho,omitempty"`
	Freguesia           string `json:"freguesia,omitempty"`
	Site                string `json:"site,omitempty"`
	Email               string `json:"email,omitempty"`
	FundosEU            string `json:"fundos_eu,omitempty"`
	AutorNome           string `json:"autor_nome,omitempty"`
	AutorCargo          string `json:"autor_cargo,omitempty"`
	DetalhesCompletos   string `json:"detalhes_completos,omitempty"`
	Link                string `json:"link,omitempty"`
	URLProcedimento     string `json:"url_procedimento,omitempty"`
}

// Seed is a named, persisted filter definition. Tags match anywhere in a
// record's text, TitleTags only against the title, District is an exact
// case-insensitive gate. Seeds are append-only once saved.
type Seed struct {
	Code      string   `json:"code"`
	Tags      []string `json:"tags"`
	TitleTags []string `json:"titleTags"`
	District  string   `json:"district"`
	Name      string   `json:"name"`
	Created   string   `json:"created"`
}
