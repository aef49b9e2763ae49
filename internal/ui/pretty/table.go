package pretty

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/term"
)

const (
	tablePadding     = 2
	minColumnWidth   = 4
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableFormatter renders rows of plain cells as an aligned table that fits
// the terminal width. The last column absorbs any shrinking.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Row is one table row. Style, when set, colors the whole row.
type Row struct {
	Cells []string
	Style *lipgloss.Style
}

// Format renders headers and rows.
func (t *TableFormatter) Format(headers []string, rows []Row) string {
	widths := t.columnWidths(headers, rows)

	var b strings.Builder
	b.WriteString(t.styles.TableHeader.Render(t.line(headers, widths)))
	b.WriteString("\n")
	b.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, totalWidth(widths))))
	b.WriteString("\n")

	for _, row := range rows {
		line := t.line(row.Cells, widths)
		if row.Style != nil {
			line = row.Style.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (t *TableFormatter) line(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		if ansi.PrintableRuneWidth(cell) > w {
			cell = truncate.StringWithTail(cell, uint(w), ellipsis) //nolint:gosec // widths are positive.
		}
		if i < len(widths)-1 {
			cell = padding.String(cell, uint(w)) //nolint:gosec // widths are positive.
		}
		parts[i] = cell
	}
	return strings.TrimRight(strings.Join(parts, strings.Repeat(" ", tablePadding)), " ")
}

func (t *TableFormatter) columnWidths(headers []string, rows []Row) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = ansi.PrintableRuneWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row.Cells {
			if i < len(widths) {
				widths[i] = max(widths[i], ansi.PrintableRuneWidth(cell))
			}
		}
	}

	if over := totalWidth(widths) - t.termWidth; over > 0 && len(widths) > 0 {
		last := len(widths) - 1
		widths[last] = max(widths[last]-over, minColumnWidth)
	}
	return widths
}

func totalWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	if len(widths) > 1 {
		total += tablePadding * (len(widths) - 1)
	}
	return total
}

// TerminalWidth returns the width of the terminal behind writer, or 0 when
// writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(interface{ Fd() uintptr })
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
