// Package crosscheck compares the block structure produced by aethermark
// with the structure goldmark builds for the same source. It is used by the
// compare command and by tests to catch grammar regressions.
package crosscheck

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/aethermark/pkg/markdown"
	"github.com/yaklabco/aethermark/pkg/mdast"
)

// Entry is one block in an outline.
type Entry struct {
	Kind  string `json:"kind" yaml:"kind"`
	Depth int    `json:"depth" yaml:"depth"`
}

func (e Entry) String() string {
	return strconv.Itoa(e.Depth) + ":" + e.Kind
}

// Outline is a pre-order list of blocks.
type Outline []Entry

// Report is the result of comparing one document.
type Report struct {
	Path       string  `json:"path" yaml:"path"`
	Match      bool    `json:"match" yaml:"match"`
	FirstDiff  int     `json:"first_diff" yaml:"first_diff"`
	Aethermark Outline `json:"aethermark" yaml:"aethermark"`
	Goldmark   Outline `json:"goldmark" yaml:"goldmark"`
}

// Checker parses documents with both engines.
type Checker struct {
	gm goldmark.Markdown
	md *markdown.Markdown
}

// New creates a checker. md should use a CommonMark-compatible preset.
func New(md *markdown.Markdown) *Checker {
	return &Checker{
		gm: goldmark.New(),
		md: md,
	}
}

// Compare parses src with both engines and reports the first divergence.
func (c *Checker) Compare(ctx context.Context, path string, src []byte) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compare cancelled: %w", err)
	}

	tokens, err := c.md.Parse(string(src), nil)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	report := &Report{
		Path:       path,
		Aethermark: FromTokens(tokens),
		Goldmark:   FromGoldmark(c.gm, src),
	}
	report.FirstDiff = firstDiff(report.Aethermark, report.Goldmark)
	report.Match = report.FirstDiff < 0

	return report, nil
}

func firstDiff(a, b Outline) int {
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return min(len(a), len(b))
	}
	return -1
}

// FromTokens builds an outline from a block token stream. Inline tokens are skipped.
func FromTokens(tokens []*mdast.Token) Outline {
	var out Outline
	depth := 0
	for _, tok := range tokens {
		switch {
		case tok.Type == "inline":
			continue
		case tok.IsClose():
			depth--
			continue
		}

		kind := mdast.BaseType(tok.Type)
		if kind == "heading" {
			kind = tok.Tag
		}
		out = append(out, Entry{Kind: kind, Depth: depth})

		if tok.IsOpen() {
			depth++
		}
	}
	return out
}

// FromGoldmark builds an outline from goldmark's AST for src.
func FromGoldmark(gm goldmark.Markdown, src []byte) Outline {
	doc := gm.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	var out Outline
	var visit func(n ast.Node, depth int)
	visit = func(n ast.Node, depth int) {
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if child.Type() != ast.TypeBlock {
				continue
			}
			kind := goldmarkKind(child)
			out = append(out, Entry{Kind: kind, Depth: depth})
			visit(child, depth+1)
		}
	}
	visit(doc, 0)

	return out
}

func goldmarkKind(n ast.Node) string {
	switch node := n.(type) {
	case *ast.Heading:
		return "h" + strconv.Itoa(node.Level)
	case *ast.Paragraph, *ast.TextBlock:
		// Tight list items hold TextBlocks where aethermark emits hidden paragraphs.
		return "paragraph"
	case *ast.List:
		if node.IsOrdered() {
			return "ordered_list"
		}
		return "bullet_list"
	case *ast.ListItem:
		return "list_item"
	case *ast.Blockquote:
		return "blockquote"
	case *ast.FencedCodeBlock:
		return "fence"
	case *ast.CodeBlock:
		return "code_block"
	case *ast.ThematicBreak:
		return "hr"
	case *ast.HTMLBlock:
		return "html_block"
	default:
		return n.Kind().String()
	}
}
