package markdown_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aethermark/pkg/markdown"
	"github.com/yaklabco/aethermark/pkg/mdast"
)

// outline renders tokens as one line each: type/tag@level, then the quoted
// content when present, then "hidden" for suppressed tokens.
func outline(tokens []*mdast.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		line := fmt.Sprintf("%s/%s@%d", tok.Type, tok.Tag, tok.Level)
		if tok.Content != "" {
			line += fmt.Sprintf(" %q", tok.Content)
		}
		if tok.Hidden {
			line += " hidden"
		}
		out = append(out, line)
	}
	return out
}

func mustNew(t *testing.T, preset string, opts ...markdown.Option) *markdown.Markdown {
	t.Helper()

	md, err := markdown.New(preset, opts...)
	require.NoError(t, err)
	return md
}

func mustParse(t *testing.T, md *markdown.Markdown, src string) []*mdast.Token {
	t.Helper()

	tokens, err := md.Parse(src, nil)
	require.NoError(t, err)
	require.NoError(t, mdast.ValidateNesting(tokens))
	return tokens
}

func assertOutline(t *testing.T, want []string, tokens []*mdast.Token) {
	t.Helper()

	if diff := cmp.Diff(want, outline(tokens)); diff != "" {
		t.Errorf("token outline mismatch (-want +got):\n%s", diff)
	}
}
