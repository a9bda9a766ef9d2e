// Package config provides centralized configuration for the guest complaint
// reporting service.
//
// # Configuration Sources
//
// Configuration is assembled in order of increasing precedence:
//
//	1. Default() values
//	2. A YAML file (COMPLAINTS_CONFIG_FILE, config.yaml or configs/config.yaml)
//	3. COMPLAINTS_* environment variables
//
// # Environment Variables
//
//	COMPLAINTS_SERVER_PORT=8080
//	COMPLAINTS_LOGGING_LEVEL=debug
//	COMPLAINTS_INPUTS_WORKBOOK=Reclamacoes_2025_Traduzido.xlsx
//	COMPLAINTS_INPUTS_LOCATIONS=Portugal=Reclamacoes_2025_Traduzido_Portugal.xlsx,Londres=Reclamacoes_2025_Traduzido_Londres.xlsx
//	COMPLAINTS_INPUTS_SUGGESTIONS_FILE=sugestoes_padrao_final.json
//
// # Input Layout
//
// The workbook layout is an explicit choice: either a single workbook whose
// records carry the "N/A" location, or one labelled workbook per location.
// Config.SourceSet turns that choice into a domain.SourceSet for the loader.
package config
