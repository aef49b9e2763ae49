package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/aethermark/internal/ui/pretty"
	"github.com/yaklabco/aethermark/pkg/runner"
)

// TextReporter prints each file's tokens as an indented outline.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(runner.Stats{}))
		}
		return 0, nil
	}

	failed := 0
	for i, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return failed, fmt.Errorf("report cancelled: %w", err)
		}

		path := DisplayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			failed++
			fmt.Fprintln(r.bw, r.styles.FormatFileError(path, file.Error))
			continue
		}

		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Tokens)))
		for _, tok := range file.Tokens {
			if tok.Hidden && !r.opts.ShowHidden {
				continue
			}
			fmt.Fprintln(r.bw, "  "+r.styles.TokenLine(tok, r.opts.Width-2))
		}
	}

	switch {
	case r.opts.DetailedSummary:
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	case r.opts.ShowSummary:
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failed, nil
}
