package cli

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/aethermark/internal/logging"
	"github.com/yaklabco/aethermark/internal/ui/pretty"
	"github.com/yaklabco/aethermark/pkg/config"
	"github.com/yaklabco/aethermark/pkg/fsutil"
	"github.com/yaklabco/aethermark/pkg/reporter"
	"github.com/yaklabco/aethermark/pkg/runner"
)

// stdinPath is the argument that selects standard input.
const stdinPath = "-"

type parseFlags struct {
	parser     parserFlags
	format     string
	output     string
	inline     bool
	showHidden bool
	noSummary  bool
	stats      bool
	compact    bool
	jobs       int
	ignore     []string
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Tokenize Markdown files",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	addParserFlags(cmd, &flags.parser, config.DefaultPreset)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, yaml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.inline, "inline", false, "treat each input as a single inline span")
	cmd.Flags().BoolVar(&flags.showHidden, "show-hidden", false, "include hidden tokens in text output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line in text output")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print token counts by type after text output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")

	return cmd
}

const parseLongDescription = `Tokenize Markdown files and print the block token stream.

By default, parses all .md and .markdown files in the current directory
and subdirectories. Use "-" to read a single document from standard input.

Examples:
  aethermark parse                        # Parse current directory
  aethermark parse README.md              # Parse one file
  aethermark parse --format json docs/    # JSON token streams
  cat doc.md | aethermark parse -         # Parse stdin
  aethermark parse --preset zero -        # Paragraphs only
  aethermark parse -o tokens.yaml --format yaml docs/`

func (f *parseFlags) toConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	f.parser.apply(cmd, cfg)

	if cmd.Flags().Changed("format") {
		format, err := config.ParseFormat(f.format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		cfg.Format = format
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if cmd.Flags().Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	cfg.Output = f.output
	cfg.Inline = f.inline
	cfg.ShowHidden = f.showHidden

	return cfg, nil
}

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	logger := commandLogger(cmd)
	ctx := commandContext(cmd)

	cliCfg, err := flags.toConfig(cmd)
	if err != nil {
		return err
	}

	if slices.Contains(args, stdinPath) && len(args) > 1 {
		return fmt.Errorf("%w: %q cannot be combined with other paths", ErrInvalidUsage, stdinPath)
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	start := time.Now()
	var result *runner.Result
	if len(args) == 1 && args[0] == stdinPath {
		result, err = parseStdin(cmd.InOrStdin(), cfg, logger)
	} else {
		logger.Debug("starting parse run",
			logging.FieldPaths, args,
			logging.FieldWorkingDir, workDir,
			logging.FieldJobs, cfg.Jobs,
		)
		result, err = runner.New(logger).Run(ctx, runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			ExcludeGlobs: cfg.Ignore,
			Jobs:         cfg.Jobs,
			Config:       cfg,
		})
	}
	if err != nil {
		return fmt.Errorf("parse run failed: %w", err)
	}

	logger.Debug("parse run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldTokensTotal, result.Stats.TokensTotal,
		logging.FieldDuration, time.Since(start),
	)

	var buf bytes.Buffer
	out := cmd.OutOrStdout()
	color := colorMode(cmd)
	if cfg.Output != "" {
		out = &buf
		color = "never"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:          out,
		Format:          cfg.Format,
		Color:           color,
		ShowHidden:      cfg.ShowHidden,
		ShowSummary:     !flags.noSummary,
		DetailedSummary: flags.stats,
		Compact:         flags.compact,
		Width:           pretty.TerminalWidth(out),
		WorkingDir:      workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	failed, err := rep.Report(ctx, result)
	if err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if cfg.Output != "" {
		changed, err := fsutil.WriteAtomicIfChanged(ctx, cfg.Output, buf.Bytes(), fsutil.DefaultFileMode)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if changed {
			logger.Info("wrote output", logging.FieldOutput, cfg.Output)
		} else {
			logger.Debug("output unchanged", logging.FieldOutput, cfg.Output)
		}
	}

	if failed > 0 {
		return ErrParseFailed
	}
	return nil
}

func parseStdin(in io.Reader, cfg *config.Config, logger *log.Logger) (*runner.Result, error) {
	src, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	md, err := runner.NewParser(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build parser: %w", err)
	}

	return runner.NewResult(runner.ParseSource(md, stdinPath, string(src), cfg.Inline)), nil
}
