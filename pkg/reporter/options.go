package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowHidden includes hidden tokens in text output.
	ShowHidden bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// DetailedSummary replaces the one-line summary with per-type counts.
	DetailedSummary bool

	// Compact uses minified output where applicable.
	Compact bool

	// Width bounds text lines; 0 disables truncation.
	Width int

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}
