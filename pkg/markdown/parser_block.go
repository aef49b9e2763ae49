package markdown

import (
	"github.com/yaklabco/aethermark/pkg/mdast"
	"github.com/yaklabco/aethermark/pkg/ruler"
)

// BlockRule tries to match a block construct at startLine. In silent mode it
// only reports whether it would match and must not touch the state.
type BlockRule func(s *StateBlock, startLine, endLine int, silent bool) bool

// Alt chain names used by container rules to find their terminators.
const (
	ChainParagraph  = "paragraph"
	ChainReference  = "reference"
	ChainBlockquote = "blockquote"
	ChainList       = "list"
)

type blockRuleDef struct {
	name string
	fn   BlockRule
	alt  []string
}

// Registration order is rule priority.
//
//nolint:gochecknoglobals // Read-only rule table.
var defaultBlockRules = []blockRuleDef{
	{"table", ruleTable, []string{ChainParagraph, ChainReference}},
	{"code", ruleCode, nil},
	{"fence", ruleFence, []string{ChainParagraph, ChainReference, ChainBlockquote, ChainList}},
	{"blockquote", ruleBlockquote, []string{ChainParagraph, ChainReference, ChainBlockquote, ChainList}},
	{"hr", ruleHr, []string{ChainParagraph, ChainReference, ChainBlockquote, ChainList}},
	{"list", ruleList, []string{ChainParagraph, ChainReference, ChainBlockquote}},
	{"reference", ruleReference, nil},
	{"html_block", ruleHTMLBlock, []string{ChainParagraph, ChainReference, ChainBlockquote}},
	{"heading", ruleHeading, []string{ChainParagraph, ChainReference, ChainBlockquote}},
	{"lheading", ruleLHeading, nil},
	{"paragraph", ruleParagraph, nil},
}

// ParserBlock turns source lines into block tokens.
type ParserBlock struct {
	Ruler *ruler.Ruler[BlockRule]
}

// NewParserBlock returns a block parser with every built-in rule registered and enabled.
func NewParserBlock() *ParserBlock {
	r := ruler.New[BlockRule]()
	for _, def := range defaultBlockRules {
		r.Push(def.name, def.fn, ruler.RuleOptions{Alt: def.alt})
	}
	return &ParserBlock{Ruler: r}
}

// Tokenize runs the enabled rules over lines [startLine, endLine).
//
// A rule that matches without advancing the cursor, or a non-empty line no
// rule accepts, panics with a *GrammarError. Parse recovers it.
func (p *ParserBlock) Tokenize(s *StateBlock, startLine, endLine int) {
	rules := p.Ruler.GetRules("")
	maxNesting := s.Md.Options.MaxNesting

	line := startLine
	hasEmptyLines := false

	for line < endLine {
		s.Line = s.SkipEmptyLines(line)
		line = s.Line
		if line >= endLine {
			break
		}

		// Nested blocks end where indentation drops below the container's.
		if s.SCount[line] < s.BlkIndent {
			break
		}

		// Deeply nested input is truncated rather than rejected.
		if s.Level >= maxNesting {
			s.Line = endLine
			break
		}

		prevLine := s.Line
		matched := false
		for idx, rule := range rules {
			if !rule(s, line, endLine, false) {
				continue
			}
			if s.Line <= prevLine {
				panic(&GrammarError{Line: line, Rule: p.ruleName(idx), Err: ErrRuleDidNotAdvance})
			}
			matched = true
			break
		}

		if !matched {
			panic(&GrammarError{Line: line, Err: ErrNoRuleMatched})
		}

		s.Tight = !hasEmptyLines

		// Paragraphs may have consumed the blank line that ends them.
		if s.IsEmpty(s.Line - 1) {
			hasEmptyLines = true
		}

		line = s.Line
		if line < endLine && s.IsEmpty(line) {
			hasEmptyLines = true
			line++
			s.Line = line
		}
	}
}

// ruleName maps an index into the default chain back to its rule name.
func (p *ParserBlock) ruleName(idx int) string {
	for _, name := range p.Ruler.Names() {
		if !p.Ruler.IsEnabled(name) {
			continue
		}
		if idx == 0 {
			return name
		}
		idx--
	}
	return ""
}

// Parse tokenizes src and appends the block tokens to tokens.
func (p *ParserBlock) Parse(src string, md *Markdown, env *Env, tokens []*mdast.Token) []*mdast.Token {
	if src == "" {
		return tokens
	}

	s := NewStateBlock(src, md, env, tokens)
	p.Tokenize(s, s.Line, s.LineMax)
	return s.Tokens
}
