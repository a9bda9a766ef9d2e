package exporter

import (
	"fmt"
	"io"
	"strings"

	"guestcomplaints/pkg/contracts/domain"
)

var markdownCellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// WriteTableMarkdown writes the complaint table as a GitHub-style Markdown
// table. Pipes are escaped and line breaks inside comments collapse to spaces.
func WriteTableMarkdown(w io.Writer, records []domain.ComplaintRecord) error {
	var b strings.Builder

	writeMarkdownRow(&b, TableHeaders)
	b.WriteString("|")
	for range TableHeaders {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, row := range TableRows(records) {
		writeMarkdownRow(&b, row)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write markdown table: %w", err)
	}
	return nil
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(markdownCellReplacer.Replace(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
