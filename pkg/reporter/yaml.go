package reporter

import (
	"bufio"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/aethermark/pkg/config"
	"github.com/yaklabco/aethermark/pkg/runner"
)

// YAMLReporter formats results as a YAML document.
type YAMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewYAMLReporter creates a new YAML reporter.
func NewYAMLReporter(opts Options) *YAMLReporter {
	return &YAMLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *YAMLReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	doc := BuildDocument(result, r.opts.WorkingDir)

	encoder := yaml.NewEncoder(r.bw)
	encoder.SetIndent(config.YAMLIndent())
	if err := encoder.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return 0, fmt.Errorf("close YAML encoder: %w", err)
	}

	return doc.Summary.FilesErrored, nil
}
