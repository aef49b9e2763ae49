package markdown

import "github.com/yaklabco/aethermark/pkg/mdast"

// InlineParser expands the content of an inline token into child tokens.
// Implementations append to out and return it.
type InlineParser interface {
	Parse(src string, md *Markdown, env *Env, out []*mdast.Token) []*mdast.Token
}

// InlineParserFunc adapts a function to InlineParser.
type InlineParserFunc func(src string, md *Markdown, env *Env, out []*mdast.Token) []*mdast.Token

// Parse calls f.
func (f InlineParserFunc) Parse(src string, md *Markdown, env *Env, out []*mdast.Token) []*mdast.Token {
	return f(src, md, env, out)
}

// TextInlineParser emits the whole content as one text token. It is the
// default until a full inline grammar is plugged in.
type TextInlineParser struct{}

// Parse implements InlineParser.
func (TextInlineParser) Parse(src string, _ *Markdown, _ *Env, out []*mdast.Token) []*mdast.Token {
	if src == "" {
		return out
	}
	tok := mdast.NewToken("text", "", mdast.NestingSelf)
	tok.Content = src
	return append(out, tok)
}
