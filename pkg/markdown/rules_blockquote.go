package markdown

import "github.com/yaklabco/aethermark/pkg/mdast"

// lineSnapshot holds the per-line fields a container rule overwrites.
type lineSnapshot struct {
	bMark, bsCount, sCount, tShift int
}

func (s *StateBlock) snapshotLine(line int) lineSnapshot {
	return lineSnapshot{
		bMark:   s.BMarks[line],
		bsCount: s.BSCount[line],
		sCount:  s.SCount[line],
		tShift:  s.TShift[line],
	}
}

func (s *StateBlock) restoreLine(line int, snap lineSnapshot) {
	s.BMarks[line] = snap.bMark
	s.BSCount[line] = snap.bsCount
	s.SCount[line] = snap.sCount
	s.TShift[line] = snap.tShift
}

func ruleBlockquote(s *StateBlock, startLine, endLine int, silent bool) bool {
	pos := s.BMarks[startLine] + s.TShift[startLine]
	maxPos := s.EMarks[startLine]

	oldLineMax := s.LineMax

	if s.SCount[startLine]-s.BlkIndent >= 4 {
		return false
	}

	if pos >= maxPos || s.Src[pos] != '>' {
		return false
	}

	if silent {
		return true
	}

	// Lines are rewritten in place from startLine onward; saved[i] restores startLine+i.
	var saved []lineSnapshot

	terminators := s.Md.Block.Ruler.GetRules(ChainBlockquote)

	oldParent := s.ParentType
	s.ParentType = ParentBlockquote

	lastLineEmpty := false
	nextLine := startLine

	for ; nextLine < endLine; nextLine++ {
		// Outdented lines cannot carry a marker for this quote, but may still be lazy.
		isOutdented := s.SCount[nextLine] < s.BlkIndent

		pos = s.BMarks[nextLine] + s.TShift[nextLine]
		maxPos = s.EMarks[nextLine]

		if pos >= maxPos {
			// Blank line outside the quote.
			break
		}

		if s.Src[pos] == '>' && !isOutdented {
			pos++

			// Skip one optional space after '>'.
			initial := s.SCount[nextLine] + 1
			spaceAfterMarker := false
			adjustTab := false

			switch s.charAt(pos) {
			case ' ':
				if pos < maxPos {
					pos++
					initial++
					spaceAfterMarker = true
				}
			case '\t':
				if pos < maxPos {
					spaceAfterMarker = true
					if (s.BSCount[nextLine]+initial)%4 == 3 {
						// "  >\t  test": the tab lands exactly on a tab stop.
						pos++
						initial++
					} else {
						// Otherwise the tab is split and part of it stays as content.
						adjustTab = true
					}
				}
			}

			offset := initial
			saved = append(saved, s.snapshotLine(nextLine))
			s.BMarks[nextLine] = pos

			for pos < maxPos {
				ch := s.Src[pos]
				if !isSpace(ch) {
					break
				}
				if ch == '\t' {
					extra := 0
					if adjustTab {
						extra = 1
					}
					offset += 4 - (offset+s.BSCount[nextLine]+extra)%4
				} else {
					offset++
				}
				pos++
			}

			lastLineEmpty = pos >= maxPos

			s.BSCount[nextLine] = s.SCount[nextLine] + 1
			if spaceAfterMarker {
				s.BSCount[nextLine]++
			}
			s.SCount[nextLine] = offset - initial
			s.TShift[nextLine] = pos - s.BMarks[nextLine]
			continue
		}

		// Not quoted, and the previous quoted line was blank.
		if lastLineEmpty {
			break
		}

		terminate := false
		for _, rule := range terminators {
			if rule(s, nextLine, endLine, true) {
				terminate = true
				break
			}
		}

		if terminate {
			// Stop the inner tokenizer here so the next block is not parsed as lazy text.
			s.LineMax = nextLine

			if s.BlkIndent != 0 {
				// Outer container indent is dropped before the quote is closed.
				saved = append(saved, s.snapshotLine(nextLine))
				s.SCount[nextLine] -= s.BlkIndent
			}
			break
		}

		saved = append(saved, s.snapshotLine(nextLine))

		// Lazy paragraph continuation; -1 makes every indent check ignore it.
		s.SCount[nextLine] = -1
	}

	oldIndent := s.BlkIndent
	s.BlkIndent = 0

	open := s.Push("blockquote_open", "blockquote", mdast.NestingOpen)
	open.Markup = ">"
	open.SetMap(startLine, 0)

	s.Md.Block.Tokenize(s, startLine, nextLine)

	closeTok := s.Push("blockquote_close", "blockquote", mdast.NestingClose)
	closeTok.Markup = ">"

	open.Map[1] = s.Line
	s.LineMax = oldLineMax
	s.ParentType = oldParent
	s.BlkIndent = oldIndent

	for i, snap := range saved {
		s.restoreLine(startLine+i, snap)
	}

	return true
}
