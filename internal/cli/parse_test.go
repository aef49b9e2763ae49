package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aethermark/internal/cli"
	"github.com/yaklabco/aethermark/pkg/reporter"
)

func TestParse_Text(t *testing.T) {
	t.Parallel()

	dir := writeMarkdown(t, map[string]string{"doc.md": "# Hello\n\n- a\n- b\n"})

	out, err := execute(t, nil, "parse", filepath.Join(dir, "doc.md"))
	require.NoError(t, err)

	assert.Contains(t, out, "doc.md (15 tokens)")
	assert.Contains(t, out, `heading_open <h1> "#" [0,1)`)
	assert.Contains(t, out, `inline [0,1) "Hello"`)
	assert.NotContains(t, out, "paragraph_open")
	assert.Contains(t, out, "1 file parsed, 15 tokens")
}

func TestParse_ShowHiddenNoSummary(t *testing.T) {
	t.Parallel()

	dir := writeMarkdown(t, map[string]string{"doc.md": "- a\n"})

	out, err := execute(t, nil, "parse", "--show-hidden", "--no-summary", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "paragraph_open <p> [0,1) hidden")
	assert.NotContains(t, out, "file parsed")
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	dir := writeMarkdown(t, map[string]string{
		"a.md":         "```go\nfmt.Println()\n```\n",
		"sub/b.md":     "> quote\n",
		"skip/c.md":    "ignored\n",
		".hidden/d.md": "hidden\n",
	})

	out, err := execute(t, nil, "parse", "--format", "json", "--detect-lang", "--ignore", "skip", dir)
	require.NoError(t, err)

	var doc reporter.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	require.Len(t, doc.Files, 2)
	assert.True(t, strings.HasSuffix(doc.Files[0].Path, "a.md"))
	assert.Equal(t, map[string]int{"go": 1}, doc.Files[0].Languages)
	assert.NotEmpty(t, doc.Files[0].SHA256)
	assert.Equal(t, "blockquote_open", doc.Files[1].Tokens[0].Type)
	assert.Equal(t, 2, doc.Summary.FilesParsed)
	assert.Equal(t, 6, doc.Summary.TokensTotal)
}

func TestParse_Stdin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		wantTypes []string
	}{
		{
			name:      "block",
			args:      []string{"parse", "--format", "json", "-"},
			wantTypes: []string{"heading_open", "inline", "heading_close"},
		},
		{
			name:      "inline",
			args:      []string{"parse", "--format", "json", "--inline", "-"},
			wantTypes: []string{"inline"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, strings.NewReader("# title"), tt.args...)
			require.NoError(t, err)

			var doc reporter.Document
			require.NoError(t, json.Unmarshal([]byte(out), &doc))
			require.Len(t, doc.Files, 1)
			assert.Equal(t, "-", doc.Files[0].Path)

			types := make([]string, 0, len(doc.Files[0].Tokens))
			for _, tok := range doc.Files[0].Tokens {
				types = append(types, tok.Type)
			}
			assert.Equal(t, tt.wantTypes, types)
		})
	}
}

func TestParse_OutputFile(t *testing.T) {
	t.Parallel()

	dir := writeMarkdown(t, map[string]string{"doc.md": "text\n"})
	outPath := filepath.Join(t.TempDir(), "tokens.yaml")

	out, err := execute(t, nil, "parse", "--format", "yaml", "-o", outPath, filepath.Join(dir, "doc.md"))
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "type: paragraph_open")
	assert.Contains(t, string(content), "tokens_total: 3")
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	dir := writeMarkdown(t, map[string]string{"doc.md": "text\n"})
	file := filepath.Join(dir, "doc.md")

	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantErr  error
		wantCode int
	}{
		{
			name:     "grammar error",
			args:     []string{"parse", "--preset", "zero", "--disable", "paragraph", file},
			wantErr:  cli.ErrParseFailed,
			wantCode: cli.ExitParseErrors,
		},
		{
			name:     "unknown format",
			args:     []string{"parse", "--format", "sarif", file},
			wantErr:  cli.ErrInvalidUsage,
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "unknown preset",
			args:     []string{"parse", "--preset", "gfm", file},
			wantErr:  cli.ErrConfig,
			wantCode: cli.ExitConfigError,
		},
		{
			name:     "stdin mixed with paths",
			args:     []string{"parse", "-", file},
			wantErr:  cli.ErrInvalidUsage,
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "missing path",
			args:     []string{"parse", filepath.Join(dir, "nope.md")},
			wantCode: cli.ExitIOError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, strings.NewReader(tt.stdin), tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantCode, cli.ExitCodeFromError(err))
		})
	}
}
