// Package services implements the business logic layer between the HTTP
// handlers and the data processing pipeline.
//
// # Available Services
//
//	- ComplaintService: filtered table, selector options, topic report and exports
//	- HealthService: liveness, readiness and version information
//
// # Dataset lifecycle
//
// Records are loaded and classified once by DatasetCache and shared
// read-only by every request. The cache key is the SHA-256 of the workbook
// bytes; concurrent first requests share a single load through
// singleflight. InputWatcher marks the cache stale when a workbook changes
// on disk, and the next request reloads only if the contents differ.
//
//	cache := services.NewDatasetCache(sources, dataprocessing.NewLoader(logger),
//	    dataprocessing.NewClassifier(nil), logger)
//	svc := services.NewComplaintService(cache, suggestions, logger)
//	rows, err := svc.Table(ctx, domain.Filter{Months: []string{"Janeiro"}})
//
// # Error Handling
//
// Missing workbooks surface as MISSING_INPUT application errors; empty
// results are never errors.
package services
