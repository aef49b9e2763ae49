package markdown

import (
	"maps"
	"slices"
)

// HighlightFunc highlights code. It returns "" to fall back to escaped output.
type HighlightFunc func(code, lang, attrs string) string

// Options are the parser and renderer settings carried by a preset.
type Options struct {
	// HTML enables raw HTML in the source.
	HTML bool `json:"html" yaml:"html"`

	// XHTMLOut closes single tags with " /".
	XHTMLOut bool `json:"xhtmlOut" yaml:"xhtml_out"`

	// Breaks converts newlines in paragraphs to <br>.
	Breaks bool `json:"breaks" yaml:"breaks"`

	// LangPrefix is prepended to the fence language in the code class.
	LangPrefix string `json:"langPrefix" yaml:"lang_prefix"`

	Linkify     bool `json:"linkify" yaml:"linkify"`
	Typographer bool `json:"typographer" yaml:"typographer"`

	// Quotes are the double and single replacement pairs used by the typographer.
	Quotes [4]string `json:"quotes" yaml:"quotes"`

	Highlight HighlightFunc `json:"-" yaml:"-"`

	// MaxNesting bounds block nesting. Deeper content is dropped.
	MaxNesting int `json:"maxNesting" yaml:"max_nesting"`
}

// Components lists the rules a preset enables per chain. A nil list leaves
// every rule of that chain enabled.
type Components struct {
	Core    []string `json:"core,omitempty" yaml:"core,omitempty"`
	Block   []string `json:"block,omitempty" yaml:"block,omitempty"`
	Inline  []string `json:"inline,omitempty" yaml:"inline,omitempty"`
	Inline2 []string `json:"inline2,omitempty" yaml:"inline2,omitempty"`
}

// Preset bundles options with rule selections.
type Preset struct {
	Name       string     `json:"name" yaml:"name"`
	Options    Options    `json:"options" yaml:"options"`
	Components Components `json:"components" yaml:"components"`
}

// Preset names.
const (
	PresetDefault    = "default"
	PresetZero       = "zero"
	PresetCommonMark = "commonmark"
)

//nolint:gochecknoglobals // Typographic quotes shared by every preset.
var defaultQuotes = [4]string{"\u201c", "\u201d", "\u2018", "\u2019"}

//nolint:gochecknoglobals // Read-only preset table; LookupPreset returns copies.
var presets = map[string]Preset{
	PresetDefault: {
		Name: PresetDefault,
		Options: Options{
			LangPrefix: "language-",
			Quotes:     defaultQuotes,
			MaxNesting: 100,
		},
	},
	PresetZero: {
		Name: PresetZero,
		Options: Options{
			LangPrefix: "language-",
			Quotes:     defaultQuotes,
			MaxNesting: 20,
		},
		Components: Components{
			Core:    []string{"normalize", "block", "inline", "text_join"},
			Block:   []string{"paragraph"},
			Inline:  []string{"text"},
			Inline2: []string{"balance_pairs", "fragments_join"},
		},
	},
	PresetCommonMark: {
		Name: PresetCommonMark,
		Options: Options{
			HTML:       true,
			XHTMLOut:   true,
			LangPrefix: "language-",
			Quotes:     defaultQuotes,
			MaxNesting: 20,
		},
		Components: Components{
			Core: []string{"normalize", "block", "inline", "text_join"},
			Block: []string{
				"blockquote", "code", "fence", "heading", "hr",
				"html_block", "lheading", "list", "reference", "paragraph",
			},
			Inline: []string{
				"autolink", "backticks", "emphasis", "entity", "escape",
				"html_inline", "image", "link", "newline", "text",
			},
			Inline2: []string{"balance_pairs", "emphasis", "fragments_join"},
		},
	},
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(presets))
}

// LookupPreset returns a copy of the named built-in preset.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, false
	}
	p.Components = Components{
		Core:    slices.Clone(p.Components.Core),
		Block:   slices.Clone(p.Components.Block),
		Inline:  slices.Clone(p.Components.Inline),
		Inline2: slices.Clone(p.Components.Inline2),
	}
	return p, true
}
