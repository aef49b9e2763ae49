package markdown

import (
	"strings"

	"github.com/yaklabco/aethermark/pkg/mdast"
)

// ruleParagraph consumes lines until a blank line or a rule from the
// paragraph chain interrupts. It matches any non-empty line.
func ruleParagraph(s *StateBlock, startLine, endLine int, _ bool) bool {
	if s.IsEmpty(startLine) {
		return false
	}

	terminators := s.Md.Block.Ruler.GetRules(ChainParagraph)

	oldParent := s.ParentType
	s.ParentType = ParentParagraph

	nextLine := startLine + 1
	for ; nextLine < endLine && !s.IsEmpty(nextLine); nextLine++ {
		// Code-indented text after a paragraph is a lazy continuation.
		if s.SCount[nextLine]-s.BlkIndent > 3 {
			continue
		}

		// Lazy blockquote line.
		if s.SCount[nextLine] < 0 {
			continue
		}

		if anyRuleMatches(terminators, s, nextLine, endLine) {
			break
		}
	}

	content := strings.TrimSpace(s.GetLines(startLine, nextLine, s.BlkIndent, false))

	s.Line = nextLine

	open := s.Push("paragraph_open", "p", mdast.NestingOpen)
	open.SetMap(startLine, s.Line)

	inline := s.Push("inline", "", mdast.NestingSelf)
	inline.Content = content
	inline.SetMap(startLine, s.Line)
	inline.Children = []*mdast.Token{}

	s.Push("paragraph_close", "p", mdast.NestingClose)

	s.ParentType = oldParent

	return true
}
