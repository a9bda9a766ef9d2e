package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ComplaintHeaders is the header row of a translated complaint sheet.
var ComplaintHeaders = []interface{}{"Review date", "Unit", "Negative review (PT)", "Review score"}

// MonthSheet is one worksheet of a complaint workbook.
type MonthSheet struct {
	Name    string
	Headers []interface{}
	Rows    [][]interface{}
}

// WriteWorkbook saves the sheets, in order, to dir/name and returns its path.
// A nil Headers slice falls back to ComplaintHeaders.
func WriteWorkbook(t *testing.T, dir, name string, sheets ...MonthSheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			t.Fatalf("create sheet %s: %v", sheet.Name, err)
		}

		headers := sheet.Headers
		if headers == nil {
			headers = ComplaintHeaders
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &headers); err != nil {
			t.Fatalf("write header row: %v", err)
		}
		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			values := row
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				t.Fatalf("write row %d: %v", r+2, err)
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}
