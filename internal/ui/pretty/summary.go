package pretty

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/aethermark/pkg/runner"
)

const (
	summaryDividerWidth = 40
	summaryTopTypes     = 8
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files parsed, 120 tokens, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("%d %s parsed", stats.FilesParsed, plural(stats.FilesParsed, "file", "files"))),
		fmt.Sprintf("%d %s", stats.TokensTotal, plural(stats.TokensTotal, "token", "tokens")),
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block listing the most
// frequent token types.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(s.SummaryTitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth))
	b.WriteString("\n")

	b.WriteString("  Files parsed:   " + s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed)) + "\n")
	if stats.FilesErrored > 0 {
		b.WriteString("  Files failed:   " + s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.GrammarErrors > 0 {
		b.WriteString("  Grammar errors: " + s.Failure.Render(strconv.Itoa(stats.GrammarErrors)) + "\n")
	}
	b.WriteString("  Tokens:         " + s.SummaryValue.Render(strconv.Itoa(stats.TokensTotal)) + "\n")

	types := slices.SortedFunc(maps.Keys(stats.TokensByType), func(a, c string) int {
		return cmp.Or(cmp.Compare(stats.TokensByType[c], stats.TokensByType[a]), cmp.Compare(a, c))
	})
	if len(types) > summaryTopTypes {
		types = types[:summaryTopTypes]
	}
	for _, typ := range types {
		b.WriteString(fmt.Sprintf("    %-20s %s\n", typ, s.SummaryValue.Render(strconv.Itoa(stats.TokensByType[typ]))))
	}

	b.WriteString("\n")
	if stats.FilesErrored > 0 {
		b.WriteString(s.Failure.Render("Parse failed"))
	} else {
		b.WriteString(s.Success.Render("Parse succeeded"))
	}
	b.WriteString("\n")

	return b.String()
}
