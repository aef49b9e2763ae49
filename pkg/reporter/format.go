package reporter

import "github.com/yaklabco/aethermark/pkg/config"

// Format represents an output format.
type Format = config.OutputFormat

// Output formats supported by the reporter.
const (
	FormatText = config.FormatText
	FormatJSON = config.FormatJSON
	FormatYAML = config.FormatYAML
)

// ParseFormat parses a format string. The empty string selects text.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}
	return config.ParseFormat(formatStr)
}
