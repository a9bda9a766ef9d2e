package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"guestcomplaints/pkg/contracts/domain"
)

// TableSheet is the worksheet name of an exported complaint table.
const TableSheet = "Reclamações"

// WriteTableXLSX encodes the complaint table as a single-sheet workbook.
// Dates are written as Excel dates and scores as numbers so the sheet can
// be loaded back.
func WriteTableXLSX(w io.Writer, records []domain.ComplaintRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TableSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(TableSheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	header := make([]interface{}, len(TableHeaders))
	for i, h := range TableHeaders {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}

	for i, r := range records {
		row := []interface{}{nil, r.Unit, r.Location, r.Topics, r.Comment, nil}
		if r.ReviewDate != nil {
			row[0] = excelize.Cell{StyleID: dateStyle, Value: *r.ReviewDate}
		}
		if r.Score != nil {
			row[5] = *r.Score
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}
