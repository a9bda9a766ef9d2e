// Package app wires configuration, logging, telemetry, services and the
// chi router into a runnable HTTP application.
//
// # Initialization Flow
//
//	1. Resolve paths and initialize OpenTelemetry
//	2. Load the suggestion table and optional keyword table
//	3. Build the dataset cache, complaint service and health service
//	4. Set up middleware and routes
//	5. Preload the dataset, so missing inputs fail before listening
//	6. Serve until SIGINT or SIGTERM, then shut down gracefully
//
// NewServices is shared with the report CLI so both binaries classify and
// report the same way.
package app
