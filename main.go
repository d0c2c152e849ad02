// =============================================================================
// NetBox to Darkbot - Main Entry Point
// =============================================================================
//
// This is the main entry point for the NetBox to Darkbot CLI application.
// It delegates command execution to the cmd package.
//
// USAGE:
//   netbox2darkbot ips <Netbox CSV file>       - Darkbot database keyed by IP
//   netbox2darkbot reverse <Netbox CSV file>   - Darkbot database keyed by DNS name
//   netbox2darkbot validate <Netbox CSV file>  - Lint the export
//   netbox2darkbot version                     - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/netbox2darkbot/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
