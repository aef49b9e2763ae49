// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Token components
	Open    lipgloss.Style
	Close   lipgloss.Style
	Self    lipgloss.Style
	Tag     lipgloss.Style
	Content lipgloss.Style
	Markup  lipgloss.Style
	Lines   lipgloss.Style
	Hidden  lipgloss.Style
	Meta    lipgloss.Style

	// File and status
	FilePath lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Success  lipgloss.Style
	Failure  lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	Enabled        lipgloss.Style
	Disabled       lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Open:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Close:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Self:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Tag:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Content: lipgloss.NewStyle(),
		Markup:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Lines:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Hidden:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Italic(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Enabled:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Disabled:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Open:           plain,
		Close:          plain,
		Self:           plain,
		Tag:            plain,
		Content:        plain,
		Markup:         plain,
		Lines:          plain,
		Hidden:         plain,
		Meta:           plain,
		FilePath:       plain,
		Error:          plain,
		Warning:        plain,
		Success:        plain,
		Failure:        plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Enabled:        plain,
		Disabled:       plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
