package markdown

import (
	"strconv"
	"strings"

	"github.com/yaklabco/aethermark/pkg/mdast"
)

// ruleHeading matches an ATX heading ("# Title").
func ruleHeading(s *StateBlock, startLine, _ int, silent bool) bool {
	pos := s.BMarks[startLine] + s.TShift[startLine]
	maxPos := s.EMarks[startLine]

	if s.SCount[startLine]-s.BlkIndent >= 4 {
		return false
	}

	if pos >= maxPos || s.Src[pos] != '#' {
		return false
	}

	level := 1
	pos++
	for pos < maxPos && s.Src[pos] == '#' && level <= 6 {
		level++
		pos++
	}

	if level > 6 || (pos < maxPos && !isSpace(s.Src[pos])) {
		return false
	}

	if silent {
		return true
	}

	// Cut a closing sequence like "  ###  " off the end.
	maxPos = s.SkipSpacesBack(maxPos, pos)
	tmp := s.SkipCharsBack(maxPos, '#', pos)
	if tmp > pos && isSpace(s.Src[tmp-1]) {
		maxPos = tmp
	}

	s.Line = startLine + 1

	tag := "h" + strconv.Itoa(level)
	markup := strings.Repeat("#", level)

	open := s.Push("heading_open", tag, mdast.NestingOpen)
	open.Markup = markup
	open.SetMap(startLine, s.Line)

	inline := s.Push("inline", "", mdast.NestingSelf)
	inline.Content = strings.TrimSpace(s.Src[pos:maxPos])
	inline.SetMap(startLine, s.Line)
	inline.Children = []*mdast.Token{}

	closeTok := s.Push("heading_close", tag, mdast.NestingClose)
	closeTok.Markup = markup

	return true
}

// ruleLHeading matches a setext heading: paragraph text underlined by '=' or '-'.
func ruleLHeading(s *StateBlock, startLine, endLine int, _ bool) bool {
	terminators := s.Md.Block.Ruler.GetRules(ChainParagraph)

	if s.SCount[startLine]-s.BlkIndent >= 4 {
		return false
	}

	// Terminators must see a paragraph parent, as the paragraph rule would.
	oldParent := s.ParentType
	s.ParentType = ParentParagraph
	defer func() { s.ParentType = oldParent }()

	level := 0
	var marker byte
	nextLine := startLine + 1

	for ; nextLine < endLine && !s.IsEmpty(nextLine); nextLine++ {
		// Code-indented text after a paragraph is a lazy continuation.
		if s.SCount[nextLine]-s.BlkIndent > 3 {
			continue
		}

		if s.SCount[nextLine] >= s.BlkIndent {
			pos := s.BMarks[nextLine] + s.TShift[nextLine]
			maxPos := s.EMarks[nextLine]

			if pos < maxPos {
				marker = s.Src[pos]
				if marker == '-' || marker == '=' {
					pos = s.SkipChars(pos, marker)
					pos = s.SkipSpaces(pos)
					if pos >= maxPos {
						level = 2
						if marker == '=' {
							level = 1
						}
						break
					}
				}
			}
		}

		// Lazy blockquote line, already checked by the blockquote rule.
		if s.SCount[nextLine] < 0 {
			continue
		}

		if anyRuleMatches(terminators, s, nextLine, endLine) {
			break
		}
	}

	if level == 0 {
		return false
	}

	content := strings.TrimSpace(s.GetLines(startLine, nextLine, s.BlkIndent, false))

	s.Line = nextLine + 1

	tag := "h" + strconv.Itoa(level)
	markup := string(marker)

	open := s.Push("heading_open", tag, mdast.NestingOpen)
	open.Markup = markup
	open.SetMap(startLine, s.Line)

	inline := s.Push("inline", "", mdast.NestingSelf)
	inline.Content = content
	inline.SetMap(startLine, s.Line-1)
	inline.Children = []*mdast.Token{}

	closeTok := s.Push("heading_close", tag, mdast.NestingClose)
	closeTok.Markup = markup

	return true
}

// anyRuleMatches runs rules in silent mode and reports whether one matched.
func anyRuleMatches(rules []BlockRule, s *StateBlock, line, endLine int) bool {
	for _, rule := range rules {
		if rule(s, line, endLine, true) {
			return true
		}
	}
	return false
}
