package runner

import (
	"errors"

	"github.com/yaklabco/aethermark/pkg/fsutil"
	"github.com/yaklabco/aethermark/pkg/markdown"
	"github.com/yaklabco/aethermark/pkg/mdast"
)

// FileOutcome is the parse result of one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Info is the file metadata captured on read. Nil for stdin.
	Info *fsutil.FileInfo

	// Tokens is the block token stream.
	Tokens []*mdast.Token

	// Env is the environment the parse ran with. Plugins leave results here.
	Env *markdown.Env

	// Error is set if the file could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesParsed     int
	FilesErrored    int

	// GrammarErrors counts files whose rule chain could not consume a line.
	GrammarErrors int

	TokensTotal int

	// TokensByType maps token types to counts.
	TokensByType map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any file failed to read or parse.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// NewResult aggregates outcomes produced outside Run, such as stdin input.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

func newStats() Stats {
	return Stats{TokensByType: make(map[string]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		var grammarErr *markdown.GrammarError
		if errors.As(outcome.Error, &grammarErr) {
			r.Stats.GrammarErrors++
		}
		return
	}

	r.Stats.FilesParsed++
	r.Stats.TokensTotal += len(outcome.Tokens)
	for _, tok := range outcome.Tokens {
		r.Stats.TokensByType[tok.Type]++
	}
}
