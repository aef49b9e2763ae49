package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/aethermark/internal/ui/pretty"
	"github.com/yaklabco/aethermark/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{"nothing found", runner.Stats{}, "No Markdown files found\n"},
		{"single", runner.Stats{FilesDiscovered: 1, FilesParsed: 1, TokensTotal: 1}, "1 file parsed, 1 token\n"},
		{
			"with failures",
			runner.Stats{FilesDiscovered: 3, FilesParsed: 2, FilesErrored: 1, TokensTotal: 40},
			"2 files parsed, 40 tokens, 1 failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered: 4,
		FilesParsed:     3,
		FilesErrored:    1,
		GrammarErrors:   1,
		TokensTotal:     30,
		TokensByType: map[string]int{
			"inline":         9,
			"paragraph_open": 6,
			"heading_open":   3,
			"fence":          6,
		},
	}

	out := styles.FormatSummary(stats)

	assert.Contains(t, out, "Files parsed:   3")
	assert.Contains(t, out, "Files failed:   1")
	assert.Contains(t, out, "Grammar errors: 1")
	assert.Contains(t, out, "Parse failed")

	// Sorted by count, then name.
	inline := strings.Index(out, "inline")
	fence := strings.Index(out, "fence")
	para := strings.Index(out, "paragraph_open")
	heading := strings.Index(out, "heading_open")
	assert.Less(t, inline, fence)
	assert.Less(t, fence, para)
	assert.Less(t, para, heading)
}

func TestFormatSummary_Success(t *testing.T) {
	styles := pretty.NewStyles(false)

	out := styles.FormatSummary(runner.Stats{FilesDiscovered: 1, FilesParsed: 1})
	assert.Contains(t, out, "Parse succeeded")
	assert.NotContains(t, out, "Files failed")
}
