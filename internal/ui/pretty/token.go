package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/yaklabco/aethermark/pkg/mdast"
)

const (
	indentUnit  = "  "
	ellipsis    = "…"
	minLineRoom = 16
)

// TokenLine formats one token as an indented outline row:
//
//	paragraph_open <p> [2,3)
//	  inline "some text"
//
// Content is quoted with escapes and truncated so the row fits width.
// width <= 0 disables truncation.
func (s *Styles) TokenLine(tok *mdast.Token, width int) string {
	var b strings.Builder

	b.WriteString(strings.Repeat(indentUnit, max(tok.Level, 0)))

	switch tok.Nesting {
	case mdast.NestingOpen:
		b.WriteString(s.Open.Render(tok.Type))
	case mdast.NestingClose:
		b.WriteString(s.Close.Render(tok.Type))
	default:
		b.WriteString(s.Self.Render(tok.Type))
	}

	if tok.Tag != "" {
		b.WriteString(" " + s.Tag.Render("<"+tok.Tag+">"))
	}
	if tok.Markup != "" {
		b.WriteString(" " + s.Markup.Render(strconv.Quote(tok.Markup)))
	}
	if tok.Info != "" {
		b.WriteString(" " + s.Dim.Render("info="+strconv.Quote(tok.Info)))
	}
	if tok.Map != nil {
		b.WriteString(" " + s.Lines.Render(fmt.Sprintf("[%d,%d)", tok.Map[0], tok.Map[1])))
	}
	if tok.Meta != nil {
		b.WriteString(" " + s.Meta.Render(fmt.Sprint(tok.Meta)))
	}
	if tok.Hidden {
		b.WriteString(" " + s.Hidden.Render("hidden"))
	}

	if tok.Content != "" {
		quoted := strconv.Quote(tok.Content)
		if width > 0 {
			room := max(width-ansi.PrintableRuneWidth(b.String())-1, minLineRoom)
			quoted = truncate.StringWithTail(quoted, uint(room), ellipsis) //nolint:gosec // room is positive.
		}
		b.WriteString(" " + s.Content.Render(quoted))
	}

	return b.String()
}

// FormatFileHeader formats the heading printed before a file's tokens.
func (s *Styles) FormatFileHeader(path string, tokenCount int) string {
	word := "tokens"
	if tokenCount == 1 {
		word = "token"
	}
	return s.FilePath.Render(path) + " " + s.Dim.Render(fmt.Sprintf("(%d %s)", tokenCount, word))
}

// FormatFileError formats a file that could not be parsed.
func (s *Styles) FormatFileError(path string, err error) string {
	return s.FilePath.Render(path) + ": " + s.Error.Render("error: "+err.Error())
}
