// Package files discovers complaint workbooks on disk.
//
// When no explicit location list is configured, the data directory is
// scanned for per-location workbooks (Reclamacoes_2025_Traduzido_Portugal.xlsx,
// Reclamacoes_2025_Traduzido_Londres.xlsx, ...). Two or more matches form a
// multi-location source set; otherwise the single configured workbook is
// used.
//
//	discovery := files.NewDiscovery(paths.DataDir)
//	set, ok, err := discovery.LocationWorkbooks(".", files.DefaultLocationPattern)
package files
