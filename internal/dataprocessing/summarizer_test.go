package dataprocessing

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestcomplaints/internal/shared/testutil"
	"guestcomplaints/pkg/contracts/domain"
)

func TestNewSummarizer(t *testing.T) {
	tests := []struct {
		name         string
		config       SummarizerConfig
		wantTop      int
		wantExamples int
	}{
		{name: "default config", config: DefaultSummarizerConfig(), wantTop: 3, wantExamples: 2},
		{name: "zero config falls back", config: SummarizerConfig{}, wantTop: 3, wantExamples: 2},
		{name: "custom config", config: SummarizerConfig{TopN: 5, ExamplesPerTopic: 1}, wantTop: 5, wantExamples: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSummarizer(nil, tt.config)
			assert.Equal(t, tt.wantTop, s.topN)
			assert.Equal(t, tt.wantExamples, s.examplesPerTopic)
			assert.NotNil(t, s.logger)
		})
	}
}

func TestRankTopics(t *testing.T) {
	records := []domain.ComplaintRecord{
		{Topics: "Limpeza"},
		{Topics: "Limpeza, Barulho"},
	}
	want := []domain.TopicCount{{Topic: "Limpeza", Count: 2}, {Topic: "Barulho", Count: 1}}
	if diff := cmp.Diff(want, RankTopics(records)); diff != "" {
		t.Errorf("RankTopics() mismatch (-want +got):\n%s", diff)
	}
}

func TestRankTopics_TiesKeepFirstSeenOrder(t *testing.T) {
	records := []domain.ComplaintRecord{
		{Topics: "Internet"},
		{Topics: "Barulho, Limpeza"},
		{Topics: "Limpeza"},
		{Topics: "Barulho"},
	}
	want := []domain.TopicCount{
		{Topic: "Barulho", Count: 2},
		{Topic: "Limpeza", Count: 2},
		{Topic: "Internet", Count: 1},
	}
	if diff := cmp.Diff(want, RankTopics(records)); diff != "" {
		t.Errorf("RankTopics() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, RankTopics(nil))
}

func reportRecords() []domain.ComplaintRecord {
	return []domain.ComplaintRecord{
		{Comment: "quarto sujo ", Score: intPtr(2), Location: "Portugal", Topics: "Limpeza"},
		{Comment: "quarto sujo", Score: intPtr(3), Location: "Portugal", Topics: "Limpeza"},
		{Comment: "poeira e barulho", Score: intPtr(4), Location: "Portugal", Topics: "Limpeza, Barulho"},
		{Comment: "sujeira", Score: intPtr(1), Location: "Portugal", Topics: "Limpeza"},
		{Comment: "internet lenta", Score: nil, Location: "Portugal", Topics: "Internet"},
		{Comment: "tudo bem", Score: intPtr(6), Location: "Portugal", Topics: domain.OtherTopic},
		{Comment: "frio", Score: intPtr(5), Location: "Portugal", Topics: "Conforto"},
		{Comment: "barulho demais", Score: intPtr(9), Location: "Portugal", Topics: "Barulho"},
		{Comment: "  ", Score: intPtr(1), Location: "Portugal", Topics: domain.OtherTopic},
	}
}

func TestSummarizer_GenerateReport(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	s := NewSummarizer(logger, DefaultSummarizerConfig())
	suggestions := domain.SuggestionTable{
		"Limpeza":  "Reforçar a equipe de limpeza.",
		"Conforto": "Rever colchões e aquecimento.",
		"Piscina":  "Nunca aparece.",
	}

	report := s.GenerateReport(context.Background(), reportRecords(), []string{"Janeiro", "Fevereiro"}, suggestions)

	wantRanked := []domain.TopicCount{
		{Topic: "Limpeza", Count: 4},
		{Topic: "Barulho", Count: 1},
		{Topic: "Internet", Count: 1},
		{Topic: domain.OtherTopic, Count: 1},
		{Topic: "Conforto", Count: 1},
	}
	if diff := cmp.Diff(wantRanked, report.Ranked); diff != "" {
		t.Errorf("ranked mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, report.Top, 3)
	assert.Len(t, report.Remaining, 2)
	assert.Equal(t, append(append([]domain.TopicCount{}, report.Top...), report.Remaining...), report.Ranked)

	assert.Equal(t, []string{"quarto sujo", "poeira e barulho"}, report.Examples["Limpeza"], "distinct after trimming")
	assert.Equal(t, []string{"poeira e barulho"}, report.Examples["Barulho"], "score 9 record excluded")
	for topic, quotes := range report.Examples {
		assert.LessOrEqual(t, len(quotes), 2, topic)
		for _, q := range quotes {
			assert.NotEmpty(t, strings.TrimSpace(q), topic)
		}
	}

	want := strings.Join([]string{
		"# Relatório da Unidade/Total",
		"",
		"**Localização:** Portugal",
		"",
		"**Período:** Janeiro, Fevereiro",
		"",
		"## Top 3 Temas Mais Recorrentes",
		"- **Limpeza**: 4 reclamações",
		"- **Barulho**: 1 reclamações",
		"- **Internet**: 1 reclamações",
		"",
		"## Demais Temas Identificados",
		"- **Other**: 1 reclamações",
		"- **Conforto**: 1 reclamações",
		"",
		"## Exemplos de Reclamações",
		"### Limpeza",
		"- quarto sujo",
		"- poeira e barulho",
		"### Barulho",
		"- poeira e barulho",
		"### Internet",
		"- internet lenta",
		"### Other",
		"- tudo bem",
		"### Conforto",
		"- frio",
		"",
		"## Sugestões de Melhoria",
		"### Limpeza",
		"Reforçar a equipe de limpeza.",
		"",
		"### Conforto",
		"Rever colchões e aquecimento.",
		"",
		"",
	}, "\n")
	if diff := cmp.Diff(want, report.Markdown); diff != "" {
		t.Errorf("markdown mismatch (-want +got):\n%s", diff)
	}

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "report generated")
}

func TestSummarizer_GenerateReport_MultipleLocations(t *testing.T) {
	s := NewSummarizer(nil, DefaultSummarizerConfig())
	records := []domain.ComplaintRecord{
		{Comment: "sujo", Location: "Portugal", Topics: "Limpeza"},
		{Comment: "frio", Location: "Londres", Topics: "Conforto"},
	}

	report := s.GenerateReport(context.Background(), records, []string{"Março"}, nil)

	assert.Empty(t, report.Location)
	assert.NotContains(t, report.Markdown, "**Localização:**")
	assert.NotContains(t, report.Markdown, "## Demais Temas Identificados")
	assert.NotContains(t, report.Markdown, "### Limpeza\nReforçar")
}

func TestSummarizer_GenerateReport_Empty(t *testing.T) {
	s := NewSummarizer(nil, DefaultSummarizerConfig())

	report := s.GenerateReport(context.Background(), nil, []string{"Abril"}, domain.SuggestionTable{"Limpeza": "x"})

	assert.Empty(t, report.Ranked)
	assert.Empty(t, report.Top)
	assert.Empty(t, report.Remaining)
	assert.Contains(t, report.Markdown, "**Período:** Abril")
	assert.Contains(t, report.Markdown, "## Top 3 Temas Mais Recorrentes")
	assert.NotContains(t, report.Markdown, "### Limpeza")
}

func TestSummarizer_WriteMarkdown(t *testing.T) {
	s := NewSummarizer(nil, DefaultSummarizerConfig())
	path := filepath.Join(t.TempDir(), "out", "relatorio.md")

	err := s.WriteMarkdown(context.Background(), path, domain.TopicReport{Markdown: "# Relatório da Unidade/Total\n"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Relatório da Unidade/Total\n", string(data))
}
