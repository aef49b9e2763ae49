// Package cli provides the Cobra command structure for aethermark.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aethermark/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root aethermark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "aethermark",
		Short: "A markdown-it compatible Markdown block tokenizer",
		Long: `aethermark tokenizes Markdown into the flat token stream used by
markdown-it: paired open/close tokens with nesting levels and source line
maps, plus inline tokens holding the text a renderer would parse further.

It can dump token streams as text, JSON or YAML, list the rule chains a
preset enables, and cross-check block structure against goldmark.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(commandContext(cmd), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().Bool("no-config", false, "ignore system, user and project config files")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newCompareCommand())
	rootCmd.AddCommand(newPresetsCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
