// Package main is the entry point for the aethermark CLI.
package main

import (
	"os"

	"github.com/yaklabco/aethermark/internal/cli"
	"github.com/yaklabco/aethermark/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err != nil && !cli.IsReported(err) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCodeFromError(err)
}
