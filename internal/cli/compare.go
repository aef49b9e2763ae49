package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aethermark/internal/ui/pretty"
	"github.com/yaklabco/aethermark/pkg/config"
	"github.com/yaklabco/aethermark/pkg/crosscheck"
	"github.com/yaklabco/aethermark/pkg/fsutil"
	"github.com/yaklabco/aethermark/pkg/markdown"
	"github.com/yaklabco/aethermark/pkg/reporter"
	"github.com/yaklabco/aethermark/pkg/runner"
)

// missingBlock stands in for the shorter outline at a divergence.
const missingBlock = "(end)"

type compareFlags struct {
	parser parserFlags
	format string
	ignore []string
}

func newCompareCommand() *cobra.Command {
	flags := &compareFlags{}

	cmd := &cobra.Command{
		Use:   "compare [paths...]",
		Short: "Cross-check block structure against goldmark",
		Long: `Parse each document with aethermark and with goldmark and compare the
resulting block outlines (block kind and depth, in document order). The
first divergence of each mismatching file is reported.

The commonmark preset is used unless --preset is given.

Examples:
  aethermark compare docs/
  aethermark compare --format json README.md
  cat doc.md | aethermark compare -`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, flags)
		},
	}

	addParserFlags(cmd, &flags.parser, markdown.PresetCommonMark)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, yaml")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string, flags *compareFlags) error {
	ctx := commandContext(cmd)

	format, err := config.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	cliCfg := &config.Config{Preset: flags.parser.preset}
	flags.parser.apply(cmd, cliCfg)
	if cmd.Flags().Changed("ignore") {
		cliCfg.Ignore = flags.ignore
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	md, err := runner.NewParser(cfg, commandLogger(cmd))
	if err != nil {
		return fmt.Errorf("build parser: %w", err)
	}
	checker := crosscheck.New(md)

	var reports []*crosscheck.Report
	if len(args) == 1 && args[0] == stdinPath {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		report, err := checker.Compare(ctx, stdinPath, src)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	} else {
		files, err := runner.Discover(ctx, runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			ExcludeGlobs: cfg.Ignore,
		})
		if err != nil {
			return fmt.Errorf("discover files: %w", err)
		}
		for _, path := range files {
			src, _, err := fsutil.ReadFile(ctx, path)
			if err != nil {
				return err
			}
			report, err := checker.Compare(ctx, path, src)
			if err != nil {
				return err
			}
			reports = append(reports, report)
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		err = writeJSON(out, reports)
	case config.FormatYAML:
		err = writeYAML(out, reports)
	default:
		err = writeCompareText(out, colorMode(cmd), workDir, reports)
	}
	if err != nil {
		return err
	}

	for _, report := range reports {
		if !report.Match {
			return ErrMismatch
		}
	}
	return nil
}

func writeCompareText(out io.Writer, color, workDir string, reports []*crosscheck.Report) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))

	mismatches := 0
	for _, report := range reports {
		path := styles.FilePath.Render(reporter.DisplayPath(report.Path, workDir))
		if report.Match {
			if _, err := fmt.Fprintf(out, "%s %s\n", styles.Success.Render("ok  "), path); err != nil {
				return err
			}
			continue
		}

		mismatches++
		i := report.FirstDiff
		if _, err := fmt.Fprintf(out, "%s %s: block %d: aethermark %s, goldmark %s\n",
			styles.Failure.Render("diff"), path, i+1,
			entryAt(report.Aethermark, i), entryAt(report.Goldmark, i)); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d compared, %d differ", len(reports), mismatches)
	if mismatches == 0 {
		summary = styles.Success.Render(summary)
	} else {
		summary = styles.Failure.Render(summary)
	}
	_, err := fmt.Fprintf(out, "\n%s\n", summary)
	return err
}

func entryAt(outline crosscheck.Outline, i int) string {
	if i < 0 || i >= len(outline) {
		return missingBlock
	}
	return outline[i].String()
}
