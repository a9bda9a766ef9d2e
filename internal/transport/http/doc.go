// Package http implements the HTTP handlers of the complaint analysis
// service. Handlers stay thin: they decode the query string into a
// domain.Filter, validate it, call the complaint service and render the
// result. Every error goes through the shared ErrorHandler and is returned
// as RFC 7807 problem details.
//
// Routes mounted by the application:
//
//	GET /api/complaints              filtered table, sorted by review date
//	GET /api/complaints/options      selector values (units limited to ?month= and ?location=)
//	GET /api/complaints/topics       configured topics plus "Other"
//	GET /api/complaints/export.xlsx  filtered table as a workbook
//	GET /api/complaints/export.csv   filtered table as CSV
//	GET /api/report                  Markdown report (?format=json for structure)
//	GET /api/report/download         Markdown report as relatorio.md
//	GET /api/health, /api/health/ready, /api/health/live, /api/version
//	GET /metrics
//
// Filters use month, location, unit and topic query parameters.
package http
