// Package main provides the entry point for the stagehand CLI tool.
package main

import (
	"os"

	"github.com/stagehand-sh/stagehand/src/internal/cli"
)

// Build information. These are set by the build process.
var (
	version   = "dev"
	buildTime = "unknown"
	commit    = "unknown"
)

func main() {
	// Set version information in CLI
	cli.SetVersionInfo(version, buildTime, commit)

	// Errors are already rendered by the CLI layer; only the exit code is
	// decided here.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
