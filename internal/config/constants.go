package config

import "time"

// Application constants for the guest complaint reporting service
const (
	AppName = "Guest Complaints"

	// EnvPrefix namespaces every environment variable (COMPLAINTS_SERVER_PORT, ...)
	EnvPrefix = "COMPLAINTS"

	// Input files, relative to the data directory
	DefaultDataDir         = "data"
	DefaultLogsDir         = "logs"
	DefaultWorkbook        = "Reclamacoes_2025_Traduzido.xlsx"
	DefaultSuggestionsFile = "sugestoes_padrao_final.json"
	DefaultLocationPattern = "Reclamacoes_*_Traduzido_*.xlsx"

	// ReportFileName is offered to clients downloading the Markdown report
	ReportFileName = "relatorio.md"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Server timeouts
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// InputSettleDelay lets a workbook finish saving before the dataset reloads
	InputSettleDelay = 250 * time.Millisecond
)
