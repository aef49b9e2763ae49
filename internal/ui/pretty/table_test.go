package pretty_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/aethermark/internal/ui/pretty"
)

func TestTableFormat(t *testing.T) {
	t.Parallel()

	table := pretty.NewTableFormatter(pretty.NewStyles(false), 80)
	out := table.Format(
		[]string{"KIND", "RULE", "ALT"},
		[]pretty.Row{
			{Cells: []string{"core", "normalize"}},
			{Cells: []string{"block", "fence", "paragraph, reference"}},
		},
	)

	want := "KIND   RULE       ALT\n" +
		strings.Repeat("-", 38) + "\n" +
		"core   normalize\n" +
		"block  fence      paragraph, reference\n"
	assert.Equal(t, want, out)
}

func TestTableFormatShrinksLastColumn(t *testing.T) {
	t.Parallel()

	table := pretty.NewTableFormatter(pretty.NewStyles(false), 30)
	out := table.Format(
		[]string{"PATH", "NOTE"},
		[]pretty.Row{{Cells: []string{"docs/a.md", strings.Repeat("x", 60)}}},
	)

	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.LessOrEqual(t, ansi.PrintableRuneWidth(line), 30, line)
	}
	assert.Contains(t, out, "…")
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Zero(t, pretty.TerminalWidth(&buf))
}
