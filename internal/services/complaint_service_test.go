package services

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"guestcomplaints/internal/dataprocessing"
	apperrors "guestcomplaints/internal/errors"
	"guestcomplaints/internal/exporter"
	"guestcomplaints/internal/shared/testutil"
	"guestcomplaints/pkg/contracts/domain"
)

func day(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

func newComplaintService(t *testing.T) *ComplaintService {
	t.Helper()
	dir := t.TempDir()

	pt := testutil.WriteWorkbook(t, dir, "Portugal.xlsx",
		testutil.MonthSheet{Name: "Janeiro", Rows: [][]interface{}{
			{day(20), "P1", "Quarto sujo e sem papel higiênico", 3},
			{day(5), "P2", "Muito barulho à noite", 9},
			{day(7), "P1", "   ", 2},
		}},
		testutil.MonthSheet{Name: "Fevereiro", Rows: [][]interface{}{
			{nil, "P3", "Internet lenta", 4},
		}},
	)
	ld := testutil.WriteWorkbook(t, dir, "Londres.xlsx",
		testutil.MonthSheet{Name: "Janeiro", Rows: [][]interface{}{
			{day(10), "L1", "Cama desconfortável, muito frio", 5},
		}},
	)

	set := domain.SourceSet{Sources: []domain.Source{
		{Path: pt, Location: "Portugal"},
		{Path: ld, Location: "Londres"},
	}}

	logger, _ := testutil.NewTestLogger(t)
	cache := NewDatasetCache(set, dataprocessing.NewLoader(logger), dataprocessing.NewClassifier(nil), logger)
	return NewComplaintService(cache, domain.SuggestionTable{"Limpeza": "Revisar o checklist de limpeza."}, logger)
}

func TestComplaintService_Table(t *testing.T) {
	svc := newComplaintService(t)
	ctx := context.Background()

	rows, err := svc.Table(ctx, domain.Filter{})
	require.NoError(t, err)

	var units []string
	for _, r := range rows {
		units = append(units, r.Unit)
	}
	assert.Equal(t, []string{"P2", "L1", "P1", "P3"}, units, "sorted by date, undated last, blanks dropped")

	rows, err = svc.Table(ctx, domain.Filter{Location: "Londres"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Conforto", rows[0].Topics)

	rows, err = svc.Table(ctx, domain.Filter{Topics: []string{"Itens faltando"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Limpeza, Itens faltando", rows[0].Topics)
}

func TestComplaintService_Options(t *testing.T) {
	svc := newComplaintService(t)

	ctx := context.Background()

	opts, err := svc.Options(ctx, domain.Filter{Months: []string{"Fevereiro"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"Fevereiro", "Janeiro"}, opts.Months)
	assert.Equal(t, []string{"Londres", "Portugal"}, opts.Locations)
	assert.Equal(t, []string{"P3"}, opts.Units)

	opts, err = svc.Options(ctx, domain.Filter{Months: []string{"Janeiro"}, Location: "Portugal"})
	require.NoError(t, err)
	assert.Equal(t, []string{"P1", "P2"}, opts.Units)
	assert.Equal(t, []string{"Londres", "Portugal"}, opts.Locations)

	opts, err = svc.Options(ctx, domain.Filter{Location: "Londres"})
	require.NoError(t, err)
	assert.Equal(t, []string{"L1"}, opts.Units)
}

func TestComplaintService_Report(t *testing.T) {
	svc := newComplaintService(t)

	report, err := svc.Report(context.Background(), domain.Filter{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Fevereiro", "Janeiro"}, report.Months, "all months when none selected")
	assert.Empty(t, report.Location, "two locations present")

	counts := map[string]int{}
	for _, tc := range report.Ranked {
		counts[tc.Topic] = tc.Count
	}
	assert.Equal(t, map[string]int{"Limpeza": 1, "Itens faltando": 1, "Conforto": 1, "Internet": 1}, counts,
		"score 9 record excluded")

	assert.Contains(t, report.Markdown, "**Período:** Fevereiro, Janeiro")
	assert.Contains(t, report.Markdown, "### Limpeza\nRevisar o checklist de limpeza.\n")

	single, err := svc.Report(context.Background(), domain.Filter{Months: []string{"Janeiro"}, Location: "Portugal"})
	require.NoError(t, err)
	assert.Equal(t, "Portugal", single.Location)
	assert.Contains(t, single.Markdown, "**Localização:** Portugal")
	assert.Contains(t, single.Markdown, "**Período:** Janeiro")
}

func TestComplaintService_ExportXLSX(t *testing.T) {
	svc := newComplaintService(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(context.Background(), domain.Filter{Months: []string{"Janeiro"}}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exporter.TableSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 4, "header plus three non-blank January rows")
}

func TestComplaintService_ExportCSV(t *testing.T) {
	svc := newComplaintService(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), domain.Filter{Units: []string{"P3"}}, &buf))
	assert.Contains(t, buf.String(), "internet lenta")
}

func TestComplaintService_MissingWorkbook(t *testing.T) {
	set := domain.SingleSource(filepath.Join(t.TempDir(), "absent.xlsx"))
	cache := NewDatasetCache(set, dataprocessing.NewLoader(nil), dataprocessing.NewClassifier(nil), nil)
	svc := NewComplaintService(cache, nil, nil)

	_, err := svc.Table(context.Background(), domain.Filter{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingInput))

	_, err = svc.Report(context.Background(), domain.Filter{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingInput))
}

func TestComplaintService_Topics(t *testing.T) {
	svc := newComplaintService(t)
	topics := svc.Topics()
	assert.Equal(t, "Limpeza", topics[0])
	assert.Equal(t, domain.OtherTopic, topics[len(topics)-1])
}
