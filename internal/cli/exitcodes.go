package cli

import (
	"errors"
	"io/fs"
)

// Exit codes for aethermark.
const (
	// ExitSuccess indicates every input was tokenized.
	ExitSuccess = 0

	// ExitParseErrors indicates at least one file failed to read or parse.
	ExitParseErrors = 1

	// ExitMismatch indicates compare found a structural difference.
	ExitMismatch = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that select an exit code.
var (
	// ErrParseFailed is returned when some inputs could not be tokenized.
	ErrParseFailed = errors.New("some files failed to parse")

	// ErrMismatch is returned when compare finds differing outlines.
	ErrMismatch = errors.New("block structure differs from goldmark")

	// ErrInvalidUsage marks bad flags or arguments.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that failed to load or validate.
	ErrConfig = errors.New("configuration error")
)

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrParseFailed):
		return ExitParseErrors
	case errors.Is(err, ErrMismatch):
		return ExitMismatch
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err only signals an outcome the command has
// already printed.
func IsReported(err error) bool {
	return errors.Is(err, ErrParseFailed) || errors.Is(err, ErrMismatch)
}
