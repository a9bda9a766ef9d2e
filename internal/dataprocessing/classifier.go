package dataprocessing

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	apperrors "guestcomplaints/internal/errors"
	"guestcomplaints/pkg/contracts/domain"
)

// DefaultKeywordTable returns the built-in topic table. Triggers are
// lower-case and matched as plain substrings.
func DefaultKeywordTable() domain.KeywordTable {
	return domain.KeywordTable{
		{Topic: "Limpeza", Triggers: []string{
			"sujo", "empoeirada", "sem papel", "sujeira", "limpo", "limpeza", "poeira", "imundo",
			"lençóis", "toalhas", "cheiro ruim", "odor", "quarto sujo", "cheiro nojento",
		}},
		{Topic: "Acesso/Check-in", Triggers: []string{
			"porta", "check-in estava uma bagunça", "não acessei o lugar", "chaves", "não conseguimos entrar.",
			"trancado", "não consegui entrar", "código não funcionou", "problema no acesso", "sem chave",
			"problema com o código", "acesso difícil", "demora no check-in",
		}},
		{Topic: "Itens faltando", Triggers: []string{
			"sem papel higiênico", "exceto garfos", "faltando", "não tinha", "sem toalha", "sem sabonete",
			"sem cobertor", "sem travesseiro", "sem utensílios", "sem itens básicos", "poucos pratos", "faltavam copos",
		}},
		{Topic: "Atendimento", Triggers: []string{
			"atendimento ruim", "não respondam às mensagens", "não respondeu", "sem resposta", "demoraram para ajudar",
			"ninguém apareceu", "pessoal inútil", "equipe despreparada", "falta de suporte", "comunicação ruim",
			"resposta demorada", "não profissional",
		}},
		{Topic: "Manutenção/Estrutura", Triggers: []string{
			"remoto", "aquecedor", "incêndio", "tínhamos água", "água quente", "chuveiro quebrado", "chuveiro",
			"caixa elétrica", "alarme", "vazamento", "lâmpada queimada", "teto rachado", "paredes descascando",
			"radiador", "aquecimento não funcionou", "equipamento com defeito", "sem luz", "tomada não funciona",
			"problema estrutural", "estragado", "mofo", "infiltração",
		}},
		{Topic: "Conforto", Triggers: []string{
			"colchão ruim", "frio", "cama desconfortável", "muito frio", "muito calor", "barulhento",
			"sem isolamento", "muito pequeno", "sem ventilação", "ambiente gelado", "não tinha aquecedor",
		}},
		{Topic: "Internet", Triggers: []string{
			"sem wi-fi", "internet ruim", "internet", "wi-fi não funcionou", "sem sinal", "conexão fraca",
			"internet lenta", "wi-fi caindo",
		}},
		{Topic: "Barulho", Triggers: []string{
			"barulho", "ruído", "som alto", "vizinho barulhento", "festa", "gritaria", "incomodado com o barulho",
		}},
		{Topic: "Anúncio incorreto", Triggers: []string{
			"não era como nas fotos", "leva uma hora ", "anúncio enganoso", "fotos diferentes",
			"expectativa diferente", "propaganda enganosa", "não era o que esperava",
		}},
		{Topic: "Avaliação genérica", Triggers: []string{
			"péssima experiência", "horrível", "não recomendo", "decepção", "terrível", "pior estadia", "nada",
		}},
	}
}

// Classifier assigns topics to comments by substring matching.
type Classifier struct {
	table domain.KeywordTable
}

// NewClassifier creates a classifier over table. An empty table falls back
// to DefaultKeywordTable.
func NewClassifier(table domain.KeywordTable) *Classifier {
	if len(table) == 0 {
		table = DefaultKeywordTable()
	}
	return &Classifier{table: table}
}

// Table returns the keyword table in declaration order.
func (c *Classifier) Table() domain.KeywordTable {
	return c.table
}

// Classify returns the matched topics joined by domain.TopicSeparator, in
// table order, or domain.OtherTopic when nothing matches. The comment is
// expected to be lower-cased already.
func (c *Classifier) Classify(comment string) string {
	var matched []string
	for _, tk := range c.table {
		for _, trigger := range tk.Triggers {
			if strings.Contains(comment, trigger) {
				matched = append(matched, tk.Topic)
				break
			}
		}
	}
	if len(matched) == 0 {
		return domain.OtherTopic
	}
	return strings.Join(matched, domain.TopicSeparator)
}

// Annotate returns a copy of records with Topics set.
func (c *Classifier) Annotate(records []domain.ComplaintRecord) []domain.ComplaintRecord {
	out := make([]domain.ComplaintRecord, len(records))
	for i, r := range records {
		r.Topics = c.Classify(r.Comment)
		out[i] = r
	}
	return out
}

// LoadKeywordTable reads an ordered topic table from YAML:
//
//	Limpeza:
//	  - sujo
//	  - poeira
//	Internet:
//	  - sem wi-fi
//
// Topic order in the file is kept.
func LoadKeywordTable(path string) (domain.KeywordTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewMissingInputError(path, err)
	}

	var doc yaml.MapSlice
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewParsingError("invalid keyword table", err).WithContext("path", path)
	}

	table := make(domain.KeywordTable, 0, len(doc))
	for _, item := range doc {
		topic, ok := item.Key.(string)
		if !ok || strings.TrimSpace(topic) == "" {
			return nil, apperrors.NewParsingError(fmt.Sprintf("invalid topic name %v", item.Key), nil).
				WithContext("path", path)
		}

		values, ok := item.Value.([]interface{})
		if !ok || len(values) == 0 {
			return nil, apperrors.NewParsingError(fmt.Sprintf("topic %q needs a list of triggers", topic), nil).
				WithContext("path", path)
		}

		triggers := make([]string, 0, len(values))
		for _, v := range values {
			s, ok := v.(string)
			if !ok || s == "" {
				return nil, apperrors.NewParsingError(fmt.Sprintf("topic %q has an invalid trigger %v", topic, v), nil).
					WithContext("path", path)
			}
			triggers = append(triggers, strings.ToLower(s))
		}
		table = append(table, domain.TopicKeywords{Topic: topic, Triggers: triggers})
	}

	if len(table) == 0 {
		return nil, apperrors.NewParsingError("keyword table is empty", nil).WithContext("path", path)
	}
	return table, nil
}

// LoadSuggestions reads the flat topic -> suggestion JSON object.
func LoadSuggestions(path string) (domain.SuggestionTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewMissingInputError(path, err)
	}

	var table domain.SuggestionTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, apperrors.NewParsingError("invalid suggestions file", err).WithContext("path", path)
	}
	if table == nil {
		table = domain.SuggestionTable{}
	}
	return table, nil
}
