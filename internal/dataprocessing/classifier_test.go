package dataprocessing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "guestcomplaints/internal/errors"
	"guestcomplaints/pkg/contracts/domain"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name    string
		comment string
		want    string
	}{
		{
			name:    "two topics in table order",
			comment: "quarto muito sujo e sem papel higiênico",
			want:    "Limpeza, Itens faltando",
		},
		{
			name:    "table order beats comment order",
			comment: "internet lenta e muito barulho, quarto sujo",
			want:    "Limpeza, Internet, Barulho",
		},
		{
			name:    "substring inside a longer word",
			comment: "o café estava friorento",
			want:    "Conforto",
		},
		{
			name:    "trailing space trigger",
			comment: "o trajeto leva uma hora a pé",
			want:    "Anúncio incorreto",
		},
		{
			name:    "no match",
			comment: "tudo certo",
			want:    domain.OtherTopic,
		},
		{
			name:    "empty comment",
			comment: "",
			want:    domain.OtherTopic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.comment))
		})
	}
}

func TestClassifier_EveryTriggerSelectsItsTopic(t *testing.T) {
	c := NewClassifier(nil)
	for _, tk := range c.Table() {
		for _, trigger := range tk.Triggers {
			topics := SplitTopics(c.Classify("xx " + trigger + " xx"))
			assert.Contains(t, topics, tk.Topic, "trigger %q", trigger)
		}
	}
}

func TestClassifier_OrderFollowsTable(t *testing.T) {
	table := domain.KeywordTable{
		{Topic: "B", Triggers: []string{"beta"}},
		{Topic: "A", Triggers: []string{"alpha"}},
	}
	c := NewClassifier(table)

	assert.Equal(t, "B, A", c.Classify("alpha beta"))
	assert.Equal(t, "B, A", c.Classify("beta alpha"))
	assert.Equal(t, "A", c.Classify("alpha alpha"))
}

func TestClassifier_Annotate(t *testing.T) {
	c := NewClassifier(nil)
	in := []domain.ComplaintRecord{
		{Comment: "barulho"},
		{Comment: ""},
	}

	out := c.Annotate(in)

	require.Len(t, out, 2)
	assert.Equal(t, "Barulho", out[0].Topics)
	assert.Equal(t, domain.OtherTopic, out[1].Topics)
	assert.Empty(t, in[0].Topics, "input is not mutated")
}

func TestDefaultKeywordTable(t *testing.T) {
	table := DefaultKeywordTable()
	assert.Equal(t, []string{
		"Limpeza", "Acesso/Check-in", "Itens faltando", "Atendimento", "Manutenção/Estrutura",
		"Conforto", "Internet", "Barulho", "Anúncio incorreto", "Avaliação genérica",
	}, table.Topics())

	for _, tk := range table {
		for _, trigger := range tk.Triggers {
			assert.Equal(t, strings.ToLower(trigger), trigger, "triggers are lower-case")
		}
	}
}

func TestLoadKeywordTable(t *testing.T) {
	dir := t.TempDir()

	t.Run("keeps file order", func(t *testing.T) {
		path := filepath.Join(dir, "keywords.yaml")
		require.NoError(t, os.WriteFile(path, []byte("Zumbido:\n  - Zzz\n  - apito\nAlarme:\n  - sirene\n"), 0644))

		table, err := LoadKeywordTable(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Zumbido", "Alarme"}, table.Topics())
		assert.Equal(t, []string{"zzz", "apito"}, table[0].Triggers)
	})

	t.Run("topic without triggers", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("Vazio: []\n"), 0644))

		_, err := LoadKeywordTable(path)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadKeywordTable(filepath.Join(dir, "absent.yaml"))
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingInput))
	})
}

func TestLoadSuggestions(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "sugestoes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Limpeza": "Reforçar a limpeza.", "Internet": "Trocar o roteador."}`), 0644))

	table, err := LoadSuggestions(path)
	require.NoError(t, err)
	assert.Equal(t, "Reforçar a limpeza.", table["Limpeza"])
	assert.Len(t, table, 2)

	_, err = LoadSuggestions(filepath.Join(dir, "absent.json"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingInput))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`["not", "an", "object"]`), 0644))
	_, err = LoadSuggestions(bad)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}
