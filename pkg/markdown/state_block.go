package markdown

import (
	"strings"

	"github.com/yaklabco/aethermark/pkg/mdast"
)

// ParentType tells block rules which container they are running inside.
// Only terminator checks consult it.
type ParentType uint8

// Parent contexts.
const (
	ParentRoot ParentType = iota
	ParentBlockquote
	ParentList
	ParentParagraph
	ParentReference
)

var parentTypeNames = [...]string{
	ParentRoot:       "root",
	ParentBlockquote: "blockquote",
	ParentList:       "list",
	ParentParagraph:  "paragraph",
	ParentReference:  "reference",
}

func (p ParentType) String() string {
	if int(p) < len(parentTypeNames) {
		return parentTypeNames[p]
	}
	return "unknown"
}

// StateBlock is the line-indexed view of a document used by block rules.
//
// The per-line slices are shared by every nested rule invocation. A rule
// that rewrites an entry must restore it before returning.
type StateBlock struct {
	Src    string
	Md     *Markdown
	Env    *Env
	Tokens []*mdast.Token

	// BMarks and EMarks are the byte offsets of each line's start and end
	// (EMarks points at the newline, or at len(Src) for the last line).
	BMarks []int
	EMarks []int

	// TShift is the number of leading space/tab bytes of each line.
	TShift []int

	// SCount is the leading indent of each line with tabs expanded to
	// multiples of four. Lazy blockquote continuations use -1.
	SCount []int

	// BSCount is the extra virtual indent left behind by a blockquote
	// marker that was followed by a tab.
	BSCount []int

	// BlkIndent is the indent required for a line to belong to the current block.
	BlkIndent int

	// Line is the tokenizer cursor.
	Line int

	// LineMax is the number of lines; BMarks[LineMax] is the sentinel.
	LineMax int

	Tight      bool
	DDIndent   int
	ListIndent int
	ParentType ParentType
	Level      int
}

// NewStateBlock splits src into lines and computes their indentation.
func NewStateBlock(src string, md *Markdown, env *Env, tokens []*mdast.Token) *StateBlock {
	s := &StateBlock{
		Src:        src,
		Md:         md,
		Env:        env,
		Tokens:     tokens,
		DDIndent:   -1,
		ListIndent: -1,
		ParentType: ParentRoot,
	}

	estimated := strings.Count(src, "\n") + 4
	s.BMarks = make([]int, 0, estimated)
	s.EMarks = make([]int, 0, estimated)
	s.TShift = make([]int, 0, estimated)
	s.SCount = make([]int, 0, estimated)
	s.BSCount = make([]int, 0, estimated)

	length := len(src)
	start, indent, offset := 0, 0, 0
	indentFound := false

	for pos := 0; pos < length; pos++ {
		ch := src[pos]

		if !indentFound {
			if isSpace(ch) {
				indent++
				if ch == '\t' {
					offset += 4 - offset%4
				} else {
					offset++
				}
				continue
			}
			indentFound = true
		}

		if ch == '\n' || pos == length-1 {
			if ch != '\n' {
				pos++
			}
			s.appendLine(start, pos, indent, offset)

			indentFound = false
			indent = 0
			offset = 0
			start = pos + 1
		}
	}

	// Sentinel line, simplifies bounds checks in the rules.
	s.appendLine(length, length, 0, 0)
	s.LineMax = len(s.BMarks) - 1

	return s
}

func (s *StateBlock) appendLine(begin, end, indent, offset int) {
	s.BMarks = append(s.BMarks, begin)
	s.EMarks = append(s.EMarks, end)
	s.TShift = append(s.TShift, indent)
	s.SCount = append(s.SCount, offset)
	s.BSCount = append(s.BSCount, 0)
}

// Push appends a block token and keeps Level in sync with its nesting.
func (s *StateBlock) Push(typ, tag string, nesting mdast.Nesting) *mdast.Token {
	tok := mdast.NewToken(typ, tag, nesting)
	tok.Block = true

	if nesting < 0 {
		s.Level--
	}
	tok.Level = s.Level
	if nesting > 0 {
		s.Level++
	}

	s.Tokens = append(s.Tokens, tok)
	return tok
}

// IsEmpty reports whether the line has nothing but indentation.
func (s *StateBlock) IsEmpty(line int) bool {
	return s.BMarks[line]+s.TShift[line] >= s.EMarks[line]
}

// SkipEmptyLines returns the first non-empty line at or after from, capped at LineMax.
func (s *StateBlock) SkipEmptyLines(from int) int {
	for ; from < s.LineMax; from++ {
		if s.BMarks[from]+s.TShift[from] < s.EMarks[from] {
			break
		}
	}
	return from
}

// SkipSpaces skips spaces and tabs forward from pos.
func (s *StateBlock) SkipSpaces(pos int) int {
	for pos < len(s.Src) && isSpace(s.Src[pos]) {
		pos++
	}
	return pos
}

// SkipSpacesBack skips spaces and tabs backward from pos, never below minPos.
func (s *StateBlock) SkipSpacesBack(pos, minPos int) int {
	for pos > minPos {
		if !isSpace(s.Src[pos-1]) {
			return pos
		}
		pos--
	}
	return pos
}

// SkipChars skips a run of the byte c forward from pos.
func (s *StateBlock) SkipChars(pos int, c byte) int {
	for pos < len(s.Src) && s.Src[pos] == c {
		pos++
	}
	return pos
}

// SkipCharsBack skips a run of the byte c backward from pos, never below minPos.
func (s *StateBlock) SkipCharsBack(pos int, c byte, minPos int) int {
	for pos > minPos {
		if s.Src[pos-1] != c {
			return pos
		}
		pos--
	}
	return pos
}

// GetLines returns the text of lines [begin, end) with up to indent columns
// of leading whitespace removed from each line. A tab that straddles the
// indent boundary is replaced by the spaces left over. The newline of the
// last line is kept only when keepLastLF is set.
func (s *StateBlock) GetLines(begin, end, indent int, keepLastLF bool) string {
	if begin >= end {
		return ""
	}

	var sb strings.Builder
	sb.Grow(64 * (end - begin))

	for line := begin; line < end; line++ {
		lineIndent := 0
		lineStart := s.BMarks[line]
		first := lineStart

		last := s.EMarks[line]
		if line+1 < end || keepLastLF {
			last++
		}
		last = min(last, len(s.Src))

	scan:
		for first < last && lineIndent < indent {
			ch := s.Src[first]
			switch {
			case isSpace(ch):
				if ch == '\t' {
					lineIndent += 4 - (lineIndent+s.BSCount[line])%4
				} else {
					lineIndent++
				}
			case first-lineStart < s.TShift[line]:
				// Blockquote marker region.
				lineIndent++
			default:
				break scan
			}
			first++
		}

		if lineIndent > indent {
			sb.WriteString(strings.Repeat(" ", lineIndent-indent))
		}
		sb.WriteString(s.Src[first:last])
	}

	return sb.String()
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

// charAt returns the byte at pos, or 0 past the end of the source.
func (s *StateBlock) charAt(pos int) byte {
	if pos < 0 || pos >= len(s.Src) {
		return 0
	}
	return s.Src[pos]
}
