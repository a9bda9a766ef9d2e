package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"guestcomplaints/pkg/contracts/domain"
)

// Report headings.
const (
	reportTitle       = "# Relatório da Unidade/Total"
	headingTop        = "## Top 3 Temas Mais Recorrentes"
	headingRemaining  = "## Demais Temas Identificados"
	headingExamples   = "## Exemplos de Reclamações"
	headingSuggestion = "## Sugestões de Melhoria"
)

// Summarizer builds the topic report for a filtered record set.
type Summarizer struct {
	logger           *slog.Logger
	topN             int
	examplesPerTopic int
}

// SummarizerConfig holds configuration options for the Summarizer.
type SummarizerConfig struct {
	TopN             int // Topics listed under the top section
	ExamplesPerTopic int // Maximum quotes per topic
}

// DefaultSummarizerConfig returns the standard report layout.
func DefaultSummarizerConfig() SummarizerConfig {
	return SummarizerConfig{
		TopN:             3,
		ExamplesPerTopic: 2,
	}
}

// NewSummarizer creates a summarizer. Zero config values fall back to
// DefaultSummarizerConfig.
func NewSummarizer(logger *slog.Logger, config SummarizerConfig) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}

	defaults := DefaultSummarizerConfig()
	if config.TopN <= 0 {
		config.TopN = defaults.TopN
	}
	if config.ExamplesPerTopic <= 0 {
		config.ExamplesPerTopic = defaults.ExamplesPerTopic
	}

	return &Summarizer{
		logger:           logger,
		topN:             config.TopN,
		examplesPerTopic: config.ExamplesPerTopic,
	}
}

// GenerateReport applies the report filter to records (the display subset),
// ranks topics and renders the Markdown document. months is printed as the
// report period.
func (s *Summarizer) GenerateReport(ctx context.Context, records []domain.ComplaintRecord, months []string, suggestions domain.SuggestionTable) domain.TopicReport {
	subset := ForReport(records)
	ranked := RankTopics(subset)

	top, remaining := ranked, []domain.TopicCount{}
	if len(ranked) > s.topN {
		top, remaining = ranked[:s.topN], ranked[s.topN:]
	}

	examples := make(map[string][]string, len(ranked))
	for _, tc := range ranked {
		examples[tc.Topic] = s.collectExamples(subset, tc.Topic)
	}

	report := domain.TopicReport{
		Location:  singleLocation(subset),
		Months:    append([]string(nil), months...),
		Ranked:    ranked,
		Top:       top,
		Remaining: remaining,
		Examples:  examples,
	}
	report.Markdown = renderMarkdown(report, suggestions)

	s.logger.InfoContext(ctx, "report generated",
		slog.Int("input_records", len(records)),
		slog.Int("report_records", len(subset)),
		slog.Int("topics", len(ranked)))

	return report
}

// WriteMarkdown saves the rendered report to path, creating parent directories.
func (s *Summarizer) WriteMarkdown(ctx context.Context, path string, report domain.TopicReport) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(report.Markdown), 0644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	s.logger.InfoContext(ctx, "report written", slog.String("path", path))
	return nil
}

// RankTopics explodes the joined topic strings and counts each topic.
// Topics are ordered by count descending; equal counts keep the order in
// which the topics were first seen.
func RankTopics(records []domain.ComplaintRecord) []domain.TopicCount {
	index := map[string]int{}
	var ranked []domain.TopicCount

	for _, r := range records {
		for _, topic := range SplitTopics(r.Topics) {
			if i, ok := index[topic]; ok {
				ranked[i].Count++
				continue
			}
			index[topic] = len(ranked)
			ranked = append(ranked, domain.TopicCount{Topic: topic, Count: 1})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if ranked == nil {
		ranked = []domain.TopicCount{}
	}
	return ranked
}

// collectExamples returns up to examplesPerTopic distinct trimmed comments
// whose joined topic string contains topic, in record order.
func (s *Summarizer) collectExamples(records []domain.ComplaintRecord, topic string) []string {
	seen := map[string]bool{}
	examples := []string{}
	for _, r := range records {
		if len(examples) == s.examplesPerTopic {
			break
		}
		if !strings.Contains(r.Topics, topic) {
			continue
		}
		quote := strings.TrimSpace(r.Comment)
		if quote == "" || seen[quote] {
			continue
		}
		seen[quote] = true
		examples = append(examples, quote)
	}
	return examples
}

// singleLocation returns the location shared by every record, or "" when
// there are none or more than one.
func singleLocation(records []domain.ComplaintRecord) string {
	location := ""
	for i, r := range records {
		if i == 0 {
			location = r.Location
			continue
		}
		if r.Location != location {
			return ""
		}
	}
	return location
}

func renderMarkdown(report domain.TopicReport, suggestions domain.SuggestionTable) string {
	var b strings.Builder

	b.WriteString(reportTitle + "\n\n")
	if report.Location != "" {
		fmt.Fprintf(&b, "**Localização:** %s\n\n", report.Location)
	}
	fmt.Fprintf(&b, "**Período:** %s\n\n", strings.Join(report.Months, ", "))

	b.WriteString(headingTop + "\n")
	for _, tc := range report.Top {
		fmt.Fprintf(&b, "- **%s**: %d reclamações\n", tc.Topic, tc.Count)
	}

	if len(report.Remaining) > 0 {
		b.WriteString("\n" + headingRemaining + "\n")
		for _, tc := range report.Remaining {
			fmt.Fprintf(&b, "- **%s**: %d reclamações\n", tc.Topic, tc.Count)
		}
	}

	b.WriteString("\n" + headingExamples + "\n")
	for _, tc := range report.Ranked {
		quotes := report.Examples[tc.Topic]
		if len(quotes) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n", tc.Topic)
		for _, q := range quotes {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}

	b.WriteString("\n" + headingSuggestion + "\n")
	for _, tc := range report.Ranked {
		text, ok := suggestions[tc.Topic]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "### %s\n%s\n\n", tc.Topic, text)
	}

	return b.String()
}
