package markdown

import (
	"strings"

	"github.com/yaklabco/aethermark/pkg/mdast"
)

// ruleHr matches a thematic break: three or more '*', '-' or '_', spaces allowed between.
func ruleHr(s *StateBlock, startLine, _ int, silent bool) bool {
	maxPos := s.EMarks[startLine]

	if s.SCount[startLine]-s.BlkIndent >= 4 {
		return false
	}

	pos := s.BMarks[startLine] + s.TShift[startLine]
	if pos >= maxPos {
		return false
	}

	marker := s.Src[pos]
	pos++
	if marker != '*' && marker != '-' && marker != '_' {
		return false
	}

	cnt := 1
	for pos < maxPos {
		ch := s.Src[pos]
		pos++
		if ch != marker && !isSpace(ch) {
			return false
		}
		if ch == marker {
			cnt++
		}
	}

	if cnt < 3 {
		return false
	}

	if silent {
		return true
	}

	s.Line = startLine + 1

	tok := s.Push("hr", "hr", mdast.NestingSelf)
	tok.SetMap(startLine, s.Line)
	tok.Markup = strings.Repeat(string(marker), cnt)

	return true
}
