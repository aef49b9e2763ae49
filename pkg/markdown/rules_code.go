package markdown

import "github.com/yaklabco/aethermark/pkg/mdast"

// ruleCode matches an indented code block.
func ruleCode(s *StateBlock, startLine, endLine int, _ bool) bool {
	if s.SCount[startLine]-s.BlkIndent < 4 {
		return false
	}

	nextLine := startLine + 1
	last := nextLine

	for nextLine < endLine {
		if s.IsEmpty(nextLine) {
			nextLine++
			continue
		}
		if s.SCount[nextLine]-s.BlkIndent >= 4 {
			nextLine++
			last = nextLine
			continue
		}
		break
	}

	s.Line = last

	tok := s.Push("code_block", "code", mdast.NestingSelf)
	tok.Content = s.GetLines(startLine, last, 4+s.BlkIndent, false) + "\n"
	tok.SetMap(startLine, s.Line)

	return true
}
