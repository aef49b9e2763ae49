package markdown

import (
	"strings"

	"github.com/yaklabco/aethermark/pkg/mdast"
)

// ruleFence matches a fenced code block (``` or ~~~).
func ruleFence(s *StateBlock, startLine, endLine int, silent bool) bool {
	pos := s.BMarks[startLine] + s.TShift[startLine]
	maxPos := s.EMarks[startLine]

	if s.SCount[startLine]-s.BlkIndent >= 4 {
		return false
	}

	if pos+3 > maxPos {
		return false
	}

	marker := s.Src[pos]
	if marker != '~' && marker != '`' {
		return false
	}

	mem := pos
	pos = s.SkipChars(pos, marker)
	length := pos - mem
	if length < 3 {
		return false
	}

	markup := s.Src[mem:pos]
	params := s.Src[pos:maxPos]

	// Backtick fences cannot carry a backtick in the info string.
	if marker == '`' && strings.IndexByte(params, marker) >= 0 {
		return false
	}

	if silent {
		return true
	}

	nextLine := startLine
	haveEndMarker := false

	for {
		nextLine++
		if nextLine >= endLine {
			// Unclosed fences run to the end of the document or parent.
			break
		}

		pos = s.BMarks[nextLine] + s.TShift[nextLine]
		mem = pos
		maxPos = s.EMarks[nextLine]

		if pos < maxPos && s.SCount[nextLine] < s.BlkIndent {
			// Non-empty line with negative indent ends the enclosing list:
			// - ```
			//  test
			break
		}

		if s.charAt(pos) != marker || pos >= maxPos {
			continue
		}

		if s.SCount[nextLine]-s.BlkIndent >= 4 {
			// Closing fence must be indented less than 4 spaces.
			continue
		}

		pos = s.SkipChars(pos, marker)
		if pos-mem < length {
			continue
		}

		pos = s.SkipSpaces(pos)
		if pos < maxPos {
			continue
		}

		haveEndMarker = true
		break
	}

	// Strip the opening fence's own indent from the content.
	length = s.SCount[startLine]

	s.Line = nextLine
	if haveEndMarker {
		s.Line++
	}

	tok := s.Push("fence", "code", mdast.NestingSelf)
	tok.Info = params
	tok.Content = s.GetLines(startLine+1, nextLine, length, true)
	tok.Markup = markup
	tok.SetMap(startLine, s.Line)

	return true
}
