package exporter

import (
	"guestcomplaints/pkg/contracts/domain"
)

// TableHeaders are the columns of the complaint table, in display order.
var TableHeaders = []string{
	"Review date",
	"Unit",
	"Localização",
	"Tema identificado",
	"Negative review (PT)",
	"Review score",
}

// TableRow renders one record in TableHeaders order.
func TableRow(r domain.ComplaintRecord) []string {
	return []string{
		formatDate(r.ReviewDate),
		r.Unit,
		r.Location,
		r.Topics,
		r.Comment,
		formatScore(r.Score),
	}
}

// TableRows renders records in order.
func TableRows(records []domain.ComplaintRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, TableRow(r))
	}
	return rows
}
