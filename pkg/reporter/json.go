package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/aethermark/pkg/fencelang"
	"github.com/yaklabco/aethermark/pkg/markdown"
	"github.com/yaklabco/aethermark/pkg/mdast"
	"github.com/yaklabco/aethermark/pkg/runner"
)

// DocumentVersion is the schema version of structured output.
const DocumentVersion = "1.0.0"

// Document is the top-level structure of JSON and YAML output.
type Document struct {
	Version string       `json:"version" yaml:"version"`
	Files   []FileResult `json:"files" yaml:"files"`
	Summary Summary      `json:"summary" yaml:"summary"`
}

// FileResult represents a single file's tokens.
type FileResult struct {
	Path      string         `json:"path" yaml:"path"`
	SHA256    string         `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	Size      int64          `json:"size,omitempty" yaml:"size,omitempty"`
	Languages map[string]int `json:"languages,omitempty" yaml:"languages,omitempty"`
	Tokens    []*mdast.Token `json:"tokens" yaml:"tokens"`
	Error     string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary contains aggregate statistics.
type Summary struct {
	FilesParsed  int            `json:"filesParsed" yaml:"files_parsed"`
	FilesErrored int            `json:"filesErrored" yaml:"files_errored"`
	TokensTotal  int            `json:"tokensTotal" yaml:"tokens_total"`
	ByType       map[string]int `json:"byType" yaml:"by_type"`
}

// BuildDocument converts a runner result into the structured output model.
func BuildDocument(result *runner.Result, workDir string) *Document {
	doc := &Document{
		Version: DocumentVersion,
		Files:   make([]FileResult, 0),
		Summary: Summary{ByType: make(map[string]int)},
	}
	if result == nil {
		return doc
	}

	doc.Files = make([]FileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fr := FileResult{
			Path:   DisplayPath(file.Path, workDir),
			Tokens: file.Tokens,
		}
		if fr.Tokens == nil {
			fr.Tokens = []*mdast.Token{}
		}
		if file.Info != nil {
			fr.SHA256 = file.Info.Digest()
			fr.Size = file.Info.Size
		}
		if file.Env != nil {
			if counts, ok := markdown.EnvValue[map[string]int](file.Env, fencelang.EnvKey); ok {
				fr.Languages = counts
			}
		}
		if file.Error != nil {
			fr.Error = file.Error.Error()
		}
		doc.Files = append(doc.Files, fr)
	}

	doc.Summary.FilesParsed = result.Stats.FilesParsed
	doc.Summary.FilesErrored = result.Stats.FilesErrored
	doc.Summary.TokensTotal = result.Stats.TokensTotal
	for typ, n := range result.Stats.TokensByType {
		doc.Summary.ByType[typ] = n
	}

	return doc
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	doc := BuildDocument(result, r.opts.WorkingDir)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return doc.Summary.FilesErrored, nil
}
