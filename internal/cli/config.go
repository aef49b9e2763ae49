package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/aethermark/internal/configloader"
	"github.com/yaklabco/aethermark/internal/logging"
	"github.com/yaklabco/aethermark/pkg/config"
	"github.com/yaklabco/aethermark/pkg/markdown"
)

// parserFlags are shared by every command that builds a parser.
type parserFlags struct {
	preset     string
	enable     []string
	disable    []string
	maxNesting int
	detectLang bool
}

func addParserFlags(cmd *cobra.Command, flags *parserFlags, defaultPreset string) {
	cmd.Flags().StringVar(&flags.preset, "preset", defaultPreset,
		"parser preset: "+strings.Join(markdown.PresetNames(), ", "))
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule names to disable")
	cmd.Flags().IntVar(&flags.maxNesting, "max-nesting", 0, "maximum block nesting depth (0 = preset value)")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-lang", false, "annotate code blocks with their language")
}

// apply copies the flags the user actually set into cfg.
func (f *parserFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("preset") {
		cfg.Preset = f.preset
	}
	if flags.Changed("enable") {
		cfg.Rules.Enable = f.enable
	}
	if flags.Changed("disable") {
		cfg.Rules.Disable = f.disable
	}
	if flags.Changed("max-nesting") {
		cfg.Options.MaxNesting = &f.maxNesting
	}
	if flags.Changed("detect-lang") {
		cfg.Plugins.FenceLang.Enabled = &f.detectLang
	}
}

// loadConfig resolves the layered configuration with cliCfg on top. It
// returns the working directory used for discovery.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	result, workDir, err := resolveConfig(cmd, cliCfg)
	if err != nil {
		return nil, "", err
	}
	return result.Config, workDir, nil
}

func resolveConfig(cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, string, error) {
	logger := commandLogger(cmd)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}
	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return nil, "", fmt.Errorf("get no-config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreSystemConfig:  noConfig,
		IgnoreUserConfig:    noConfig,
		IgnoreProjectConfig: noConfig,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, result.LoadedFrom)
	}

	cfg := result.Config
	logger.Debug("configuration resolved",
		logging.FieldConfig, configPath,
		logging.FieldPreset, cfg.Preset,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
	)

	return result, workDir, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// commandLogger returns the logger the root command attached to the context.
func commandLogger(cmd *cobra.Command) *log.Logger {
	return logging.FromContext(commandContext(cmd))
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
