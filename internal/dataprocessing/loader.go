package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "guestcomplaints/internal/errors"
	"guestcomplaints/pkg/contracts/domain"
)

// Column headers of a translated complaint sheet.
const (
	ColumnReviewDate = "Review date"
	ColumnUnit       = "Unit"
	ColumnComment    = "Negative review (PT)"
	ColumnScore      = "Review score"
)

// dateLayouts are tried in order for text date cells.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 January 2006",
	"January 2, 2006",
}

// Loader reads complaint workbooks into records.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a workbook loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "loader"))}
}

// LoadSources reads every source in order and concatenates their records.
// Each sheet is one month; its name becomes the record's Month. Records are
// tagged with the source's location label, or domain.NoLocation when the
// source has none.
func (l *Loader) LoadSources(ctx context.Context, set domain.SourceSet) ([]domain.ComplaintRecord, error) {
	if len(set.Sources) == 0 {
		return nil, apperrors.NewAppValidationError("no workbook configured")
	}

	// Casers keep internal state; one per load.
	lower := cases.Lower(language.BrazilianPortuguese)

	var records []domain.ComplaintRecord
	for _, src := range set.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		location := src.Location
		if location == "" {
			location = domain.NoLocation
		}

		loaded, err := l.loadWorkbook(ctx, src.Path, location, lower)
		if err != nil {
			return nil, err
		}
		records = append(records, loaded...)
	}

	l.logger.InfoContext(ctx, "complaint workbooks loaded",
		slog.Int("sources", len(set.Sources)),
		slog.Int("records", len(records)))

	return records, nil
}

func (l *Loader) loadWorkbook(ctx context.Context, path, location string, lower cases.Caser) ([]domain.ComplaintRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewMissingInputError(path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path), err).
			WithContext("path", path)
	}
	defer f.Close()

	var records []domain.ComplaintRecord
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %s", sheet), err).
				WithContext("path", path)
		}
		if len(rows) == 0 {
			l.logger.DebugContext(ctx, "skipping empty sheet", slog.String("sheet", sheet))
			continue
		}

		cols := mapColumns(rows[0])
		if cols.comment < 0 {
			l.logger.WarnContext(ctx, "sheet has no comment column, comments left blank",
				slog.String("path", path),
				slog.String("sheet", sheet),
				slog.String("column", ColumnComment))
		}

		before := len(records)
		for _, row := range rows[1:] {
			if isEmptyRow(row) {
				continue
			}
			records = append(records, domain.ComplaintRecord{
				ReviewDate: parseDate(cell(row, cols.date)),
				Unit:       strings.TrimSpace(cell(row, cols.unit)),
				Score:      parseScore(cell(row, cols.score)),
				Comment:    lower.String(cell(row, cols.comment)),
				Month:      sheet,
				Location:   location,
			})
		}

		l.logger.DebugContext(ctx, "sheet loaded",
			slog.String("path", path),
			slog.String("month", sheet),
			slog.Int("rows", len(records)-before))
	}

	return records, nil
}

type columnIndex struct {
	date, unit, comment, score int
}

// mapColumns locates the known headers after trimming. Absent columns map to -1.
func mapColumns(header []string) columnIndex {
	idx := columnIndex{date: -1, unit: -1, comment: -1, score: -1}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case ColumnReviewDate:
			idx.date = i
		case ColumnUnit:
			idx.unit = i
		case ColumnComment:
			idx.comment = i
		case ColumnScore:
			idx.score = i
		}
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseDate accepts Excel serial numbers and the text layouts above.
// Anything else yields nil.
func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial <= 0 {
			return nil
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil
		}
		return &t
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// parseScore accepts integral numbers, including "9.0". Anything else yields nil.
func parseScore(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return nil
	}
	score := int(f)
	return &score
}
