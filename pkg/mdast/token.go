package mdast

import "strconv"

// Nesting describes how a token affects the nesting level.
type Nesting int

// Nesting values. Opening tokens increase the level, closing tokens decrease it.
const (
	NestingClose Nesting = -1
	NestingSelf  Nesting = 0
	NestingOpen  Nesting = 1
)

// String returns the name of the nesting value.
func (n Nesting) String() string {
	switch n {
	case NestingClose:
		return "close"
	case NestingSelf:
		return "self"
	case NestingOpen:
		return "open"
	default:
		return "Nesting(" + strconv.Itoa(int(n)) + ")"
	}
}

// Attr is a single name/value attribute. Attribute lists keep insertion order
// and may hold duplicate names.
type Attr struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Token is the unit of parser output. A document is a flat token sequence where
// every opening token is matched by a closing token at the same Level.
type Token struct {
	// Type is the semantic name, e.g. "paragraph_open".
	Type string `json:"type" yaml:"type"`

	// Tag is the HTML tag name, e.g. "p".
	Tag string `json:"tag" yaml:"tag"`

	// Nesting marks the token as opening, closing or self-closing.
	Nesting Nesting `json:"nesting" yaml:"nesting"`

	// Attrs holds HTML attributes; nil means none.
	Attrs []Attr `json:"attrs,omitempty" yaml:"attrs,omitempty"`

	// Map is the [begin, end) source line range, or nil when unknown.
	Map *[2]int `json:"map,omitempty" yaml:"map,omitempty,flow"`

	// Level is the number of opening tokens enclosing this one.
	Level int `json:"level" yaml:"level"`

	// Children holds inline child tokens. Nil means the token was never
	// expanded; an empty slice means expanded with no children.
	Children []*Token `json:"children,omitempty" yaml:"children,omitempty"`

	// Content is the inner text of self-closing and inline tokens.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Markup is the literal delimiter text ("#", "```", "-", ...).
	Markup string `json:"markup,omitempty" yaml:"markup,omitempty"`

	// Info is the fence info string or the ordered list item number.
	Info string `json:"info,omitempty" yaml:"info,omitempty"`

	// Meta is a free slot for extensions. Must be treated as opaque by generic logic.
	Meta any `json:"meta,omitempty" yaml:"meta,omitempty"`

	// Block is true for block-level tokens.
	Block bool `json:"block" yaml:"block"`

	// Hidden is true for tokens that must not be rendered (tight list paragraphs).
	Hidden bool `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// NewToken creates a token with the given type, tag and nesting.
func NewToken(typ, tag string, nesting Nesting) *Token {
	return &Token{
		Type:    typ,
		Tag:     tag,
		Nesting: nesting,
	}
}

// SetMap sets the source line range of the token.
func (t *Token) SetMap(begin, end int) {
	t.Map = &[2]int{begin, end}
}

// AttrIndex returns the index of the first attribute with the given name, or -1.
func (t *Token) AttrIndex(name string) int {
	for i, attr := range t.Attrs {
		if attr.Name == name {
			return i
		}
	}
	return -1
}

// AttrPush appends attributes verbatim, keeping duplicates.
func (t *Token) AttrPush(attrs ...Attr) {
	t.Attrs = append(t.Attrs, attrs...)
}

// AttrSet overwrites the first attribute with the given name or appends a new one.
func (t *Token) AttrSet(name, value string) {
	if idx := t.AttrIndex(name); idx >= 0 {
		t.Attrs[idx].Value = value
		return
	}
	t.AttrPush(Attr{Name: name, Value: value})
}

// AttrGet returns the value of the first attribute with the given name.
func (t *Token) AttrGet(name string) (string, bool) {
	if idx := t.AttrIndex(name); idx >= 0 {
		return t.Attrs[idx].Value, true
	}
	return "", false
}

// AttrJoin appends " "+value to an existing attribute or creates it.
// Joining onto an empty value leaves a leading space and joining an empty
// value leaves a trailing space; callers that build class lists rely on this.
func (t *Token) AttrJoin(name, value string) {
	if idx := t.AttrIndex(name); idx >= 0 {
		t.Attrs[idx].Value += " " + value
		return
	}
	t.AttrPush(Attr{Name: name, Value: value})
}

// IsOpen reports whether the token opens a container.
func (t *Token) IsOpen() bool {
	return t.Nesting == NestingOpen
}

// IsClose reports whether the token closes a container.
func (t *Token) IsClose() bool {
	return t.Nesting == NestingClose
}
