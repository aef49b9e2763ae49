package markdown

import (
	"strings"

	"github.com/yaklabco/aethermark/pkg/mdast"
	"github.com/yaklabco/aethermark/pkg/ruler"
)

// StateCore is shared by every core rule during one Parse call.
type StateCore struct {
	Src        string
	Env        *Env
	Tokens     []*mdast.Token
	InlineMode bool
	Md         *Markdown
}

// CoreRule is a whole-document pass.
type CoreRule func(s *StateCore)

type coreRuleDef struct {
	name string
	fn   CoreRule
}

//nolint:gochecknoglobals // Read-only rule table.
var defaultCoreRules = []coreRuleDef{
	{"normalize", coreNormalize},
	{"block", coreBlock},
	{"inline", coreInline},
	{"linkify", coreLinkify},
	{"replacements", coreReplacements},
	{"smartquotes", coreSmartquotes},
	{"text_join", coreTextJoin},
}

// ParserCore runs the ordered core passes.
type ParserCore struct {
	Ruler *ruler.Ruler[CoreRule]
}

// NewParserCore returns a core parser with every built-in pass registered and enabled.
func NewParserCore() *ParserCore {
	r := ruler.New[CoreRule]()
	for _, def := range defaultCoreRules {
		r.Push(def.name, def.fn)
	}
	return &ParserCore{Ruler: r}
}

// Process runs each enabled core rule in order.
func (p *ParserCore) Process(s *StateCore) {
	for _, rule := range p.Ruler.GetRules("") {
		rule(s)
	}
}

//nolint:gochecknoglobals // Immutable replacer.
var normalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\x00", "\uFFFD")

func coreNormalize(s *StateCore) {
	s.Src = normalizer.Replace(s.Src)
}

func coreBlock(s *StateCore) {
	if s.InlineMode {
		tok := mdast.NewToken("inline", "", mdast.NestingSelf)
		tok.Content = s.Src
		tok.SetMap(0, 1)
		tok.Children = []*mdast.Token{}
		s.Tokens = append(s.Tokens, tok)
		return
	}

	s.Tokens = s.Md.Block.Parse(s.Src, s.Md, s.Env, s.Tokens)
}

func coreInline(s *StateCore) {
	for _, tok := range s.Tokens {
		if tok.Type != "inline" {
			continue
		}
		if tok.Children == nil {
			tok.Children = []*mdast.Token{}
		}
		tok.Children = s.Md.Inline.Parse(tok.Content, s.Md, s.Env, tok.Children)
	}
}

// Unimplemented passes. They keep their names so presets and plugins can
// reference them.

func coreLinkify(*StateCore) {}

func coreReplacements(*StateCore) {}

func coreSmartquotes(*StateCore) {}

// coreTextJoin merges runs of adjacent text children of inline tokens.
// text_special tokens are folded into plain text first.
func coreTextJoin(s *StateCore) {
	for _, blockTok := range s.Tokens {
		if blockTok.Type != "inline" {
			continue
		}

		children := blockTok.Children
		for _, child := range children {
			if child.Type == "text_special" {
				child.Type = "text"
			}
		}

		last := 0
		for curr := range children {
			if children[curr].Type == "text" &&
				curr+1 < len(children) &&
				children[curr+1].Type == "text" {
				children[curr+1].Content = children[curr].Content + children[curr+1].Content
				continue
			}
			if curr != last {
				children[last] = children[curr]
			}
			last++
		}

		if last != len(children) {
			clear(children[last:])
			blockTok.Children = children[:last]
		}
	}
}
