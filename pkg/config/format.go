package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported output formats.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatYAML}
}

// IsValid reports whether f is a supported format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ParseFormat converts a user-supplied name into an OutputFormat.
// "yml" is accepted as an alias for yaml.
func ParseFormat(name string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	if f == "yml" {
		f = FormatYAML
	}
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}
