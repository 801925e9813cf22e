// =============================================================================
// Purchase Parser - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Purchase Parser CLI application.
// It delegates command execution to the cmd package.
//
// USAGE:
//   purchase parse    - Parse one purchase line and print it
//   purchase process  - Convert every purchase file in the input directory
//   purchase format   - Print a YAML or XLSX purchase as a purchase line
//   purchase version  - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Parser, purchase record and renderers
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/purchase-parser/cmd"
)

func main() {
	cmd.Execute()
}
