package markdown

import (
	"strconv"

	"github.com/yaklabco/aethermark/pkg/mdast"
)

// skipBulletListMarker returns the position after a '*', '-' or '+' marker,
// or -1 when the line does not start with one.
func skipBulletListMarker(s *StateBlock, startLine int) int {
	maxPos := s.EMarks[startLine]
	pos := s.BMarks[startLine] + s.TShift[startLine]

	if pos >= maxPos {
		return -1
	}

	marker := s.Src[pos]
	pos++
	if marker != '*' && marker != '-' && marker != '+' {
		return -1
	}

	// " -test " is not a list item.
	if pos < maxPos && !isSpace(s.Src[pos]) {
		return -1
	}

	return pos
}

// skipOrderedListMarker returns the position after a "1." or "1)" marker,
// or -1 when the line does not start with one.
func skipOrderedListMarker(s *StateBlock, startLine int) int {
	start := s.BMarks[startLine] + s.TShift[startLine]
	maxPos := s.EMarks[startLine]
	pos := start

	// At least one digit and the delimiter.
	if pos+1 >= maxPos {
		return -1
	}

	ch := s.Src[pos]
	pos++
	if ch < '0' || ch > '9' {
		return -1
	}

	for {
		if pos >= maxPos {
			return -1
		}

		ch = s.Src[pos]
		pos++

		if ch >= '0' && ch <= '9' {
			// No more than 9 digits.
			if pos-start >= 10 {
				return -1
			}
			continue
		}

		if ch == ')' || ch == '.' {
			break
		}

		return -1
	}

	// " 1.test " is not a list item.
	if pos < maxPos && !isSpace(s.Src[pos]) {
		return -1
	}

	return pos
}

// markTightParagraphs hides the paragraph pairs directly inside the items
// of the list opened at tokens[idx].
func markTightParagraphs(s *StateBlock, idx int) {
	level := s.Level + 2

	for i, l := idx+2, len(s.Tokens)-2; i < l; i++ {
		if s.Tokens[i].Level == level && s.Tokens[i].Type == "paragraph_open" {
			s.Tokens[i+2].Hidden = true
			s.Tokens[i].Hidden = true
			i += 2
		}
	}
}

//nolint:gocognit,gocyclo,cyclop,funlen // Mirrors the list grammar step by step.
func ruleList(s *StateBlock, startLine, endLine int, silent bool) bool {
	nextLine := startLine
	tight := true

	if s.SCount[nextLine]-s.BlkIndent >= 4 {
		return false
	}

	// Special case:
	//  - item 1
	//   - item 2
	//    - item 3
	//     - item 4
	//      - this one is a paragraph continuation
	if s.ListIndent >= 0 &&
		s.SCount[nextLine]-s.ListIndent >= 4 &&
		s.SCount[nextLine] < s.BlkIndent {
		return false
	}

	// Interrupting a paragraph is restricted, but the next item of the
	// current list may still end the previous item's paragraph.
	isTerminatingParagraph := silent &&
		s.ParentType == ParentParagraph &&
		s.SCount[nextLine] >= s.BlkIndent

	var (
		isOrdered      bool
		markerValue    int
		start          int
		posAfterMarker int
	)

	if posAfterMarker = skipOrderedListMarker(s, nextLine); posAfterMarker >= 0 {
		isOrdered = true
		start = s.BMarks[nextLine] + s.TShift[nextLine]
		// At most 9 digits, cannot overflow.
		markerValue, _ = strconv.Atoi(s.Src[start : posAfterMarker-1])

		// An ordered list interrupting a paragraph must start at 1.
		if isTerminatingParagraph && markerValue != 1 {
			return false
		}
	} else if posAfterMarker = skipBulletListMarker(s, nextLine); posAfterMarker < 0 {
		return false
	}

	// A list interrupting a paragraph must not start with an empty item.
	if isTerminatingParagraph && s.SkipSpaces(posAfterMarker) >= s.EMarks[nextLine] {
		return false
	}

	if silent {
		return true
	}

	// A marker change ends the list.
	markerChar := s.Src[posAfterMarker-1]
	markup := string(markerChar)

	listTokIdx := len(s.Tokens)

	var listOpen *mdast.Token
	if isOrdered {
		listOpen = s.Push("ordered_list_open", "ol", mdast.NestingOpen)
		if markerValue != 1 {
			listOpen.AttrPush(mdast.Attr{Name: "start", Value: strconv.Itoa(markerValue)})
		}
	} else {
		listOpen = s.Push("bullet_list_open", "ul", mdast.NestingOpen)
	}
	listOpen.SetMap(nextLine, 0)
	listOpen.Markup = markup

	prevEmptyEnd := false
	terminators := s.Md.Block.Ruler.GetRules(ChainList)

	oldParent := s.ParentType
	s.ParentType = ParentList

	for nextLine < endLine {
		pos := posAfterMarker
		maxPos := s.EMarks[nextLine]

		initial := s.SCount[nextLine] + posAfterMarker - (s.BMarks[nextLine] + s.TShift[nextLine])
		offset := initial

	scan:
		for pos < maxPos {
			switch s.Src[pos] {
			case '\t':
				offset += 4 - (offset+s.BSCount[nextLine])%4
			case ' ':
				offset++
			default:
				break scan
			}
			pos++
		}

		contentStart := pos

		var indentAfterMarker int
		if contentStart >= maxPos {
			// "-    \n  3": the indent after an empty marker is 1.
			indentAfterMarker = 1
		} else {
			indentAfterMarker = offset - initial
		}

		// Anything past 4 columns is an indented code block inside the item.
		if indentAfterMarker > 4 {
			indentAfterMarker = 1
		}

		// "  -  test"
		//  ^^^^^ - total width of the marker and its padding
		indent := initial + indentAfterMarker

		itemOpen := s.Push("list_item_open", "li", mdast.NestingOpen)
		itemOpen.Markup = markup
		itemOpen.SetMap(nextLine, 0)
		if isOrdered {
			itemOpen.Info = s.Src[start : posAfterMarker-1]
		}

		oldTight := s.Tight
		oldTShift := s.TShift[nextLine]
		oldSCount := s.SCount[nextLine]

		//  - example list
		// ^ ListIndent position will be here
		//   ^ BlkIndent position will be here
		oldListIndent := s.ListIndent
		s.ListIndent = s.BlkIndent
		s.BlkIndent = indent

		s.Tight = true
		s.TShift[nextLine] = contentStart - s.BMarks[nextLine]
		s.SCount[nextLine] = offset

		if contentStart >= maxPos && s.IsEmpty(nextLine+1) {
			// An empty item followed by a blank line ends the list:
			//   -
			//
			//     foo
			s.Line = min(s.Line+2, endLine)
		} else {
			s.Md.Block.Tokenize(s, nextLine, endLine)
		}

		// One loose item makes the whole list loose.
		if !s.Tight || prevEmptyEnd {
			tight = false
		}

		// An item ending in a blank line is loose, unless it is the last one.
		prevEmptyEnd = s.Line-nextLine > 1 && s.IsEmpty(s.Line-1)

		s.BlkIndent = s.ListIndent
		s.ListIndent = oldListIndent
		s.TShift[nextLine] = oldTShift
		s.SCount[nextLine] = oldSCount
		s.Tight = oldTight

		itemClose := s.Push("list_item_close", "li", mdast.NestingClose)
		itemClose.Markup = markup

		nextLine = s.Line
		itemOpen.Map[1] = nextLine

		if nextLine >= endLine {
			break
		}

		// Terminated by outdent.
		if s.SCount[nextLine] < s.BlkIndent {
			break
		}

		// Indented code, not another item.
		if s.SCount[nextLine]-s.BlkIndent >= 4 {
			break
		}

		if anyRuleMatches(terminators, s, nextLine, endLine) {
			break
		}

		// A different list type ends this one.
		if isOrdered {
			posAfterMarker = skipOrderedListMarker(s, nextLine)
			if posAfterMarker < 0 {
				break
			}
			start = s.BMarks[nextLine] + s.TShift[nextLine]
		} else {
			posAfterMarker = skipBulletListMarker(s, nextLine)
			if posAfterMarker < 0 {
				break
			}
		}

		if markerChar != s.Src[posAfterMarker-1] {
			break
		}
	}

	var listClose *mdast.Token
	if isOrdered {
		listClose = s.Push("ordered_list_close", "ol", mdast.NestingClose)
	} else {
		listClose = s.Push("bullet_list_close", "ul", mdast.NestingClose)
	}
	listClose.Markup = markup

	listOpen.Map[1] = nextLine
	s.Line = nextLine

	s.ParentType = oldParent

	if tight {
		markTightParagraphs(s, listTokIdx)
	}

	return true
}
