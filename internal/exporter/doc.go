// Package exporter writes the filtered complaint table as CSV or XLSX.
//
// Both formats share TableHeaders and the row layout of TableRow: review
// date, unit, location, topic list, comment and score. CSV output carries a
// UTF-8 BOM so spreadsheet tools detect the encoding.
//
// Example usage:
//
//	if err := exporter.WriteTableXLSX(w, records); err != nil {
//	    return err
//	}
//
//	path, err := exporter.NewCSVWriter(paths).WriteTableFile("reclamacoes.csv", records)
package exporter
