package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aethermark/internal/configloader"
	"github.com/yaklabco/aethermark/internal/logging"
	"github.com/yaklabco/aethermark/pkg/config"
	"github.com/yaklabco/aethermark/pkg/fsutil"
	"github.com/yaklabco/aethermark/pkg/markdown"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new aethermark configuration file",
		Long: `Create a new .aethermark.yml configuration file in the current directory
with the default preset. The file can be customized to switch presets,
override parser options and enable or disable individual rules.

Examples:
  aethermark init                      Create minimal .aethermark.yml
  aethermark init --full               List every rule with its default state
  aethermark init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules listed")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFiles[0],
		"Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", flags.output, err)
	}

	opts := config.TemplateOptions{Full: flags.full}
	if flags.full {
		md, err := markdown.New(config.DefaultPreset)
		if err != nil {
			return fmt.Errorf("build parser: %w", err)
		}
		for _, rule := range md.Rules() {
			opts.Rules = append(opts.Rules, config.RuleInfo{
				Name:    rule.Name,
				Kind:    rule.Kind,
				Enabled: rule.Enabled,
				Alt:     rule.Alt,
			})
		}
	}

	content := config.GenerateTemplate(opts)
	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'aethermark rules' to see all available rules")

	return nil
}
