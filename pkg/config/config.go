// Package config defines the persisted configuration for aethermark.
// These types are pure data; discovery and merging live in internal/configloader.
package config

// OutputFormat specifies how parsed tokens are written.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ParserOptions overrides individual preset options. Nil fields keep the
// preset value.
type ParserOptions struct {
	HTML        *bool    `yaml:"html,omitempty"`
	XHTMLOut    *bool    `yaml:"xhtml_out,omitempty"`
	Breaks      *bool    `yaml:"breaks,omitempty"`
	LangPrefix  *string  `yaml:"lang_prefix,omitempty"`
	Linkify     *bool    `yaml:"linkify,omitempty"`
	Typographer *bool    `yaml:"typographer,omitempty"`
	Quotes      []string `yaml:"quotes,omitempty"`
	MaxNesting  *int     `yaml:"max_nesting,omitempty"`
}

// RulesConfig toggles rules on top of the preset.
type RulesConfig struct {
	Enable  []string `yaml:"enable,omitempty"`
	Disable []string `yaml:"disable,omitempty"`
}

// FenceLangConfig controls the fence language plugin. Nil fields are unset
// so that lower-precedence sources can still supply them.
type FenceLangConfig struct {
	Enabled      *bool `yaml:"enabled,omitempty"`
	Detect       *bool `yaml:"detect,omitempty"`
	IndentedCode *bool `yaml:"indented_code,omitempty"`
}

// IsEnabled reports whether the plugin should be installed.
func (f FenceLangConfig) IsEnabled() bool { return f.Enabled != nil && *f.Enabled }

// DetectEnabled reports whether content detection is on. It defaults to true.
func (f FenceLangConfig) DetectEnabled() bool { return f.Detect == nil || *f.Detect }

// IndentedCodeEnabled reports whether indented code blocks are annotated.
func (f FenceLangConfig) IndentedCodeEnabled() bool {
	return f.IndentedCode != nil && *f.IndentedCode
}

// PluginsConfig lists the built-in plugins.
type PluginsConfig struct {
	FenceLang FenceLangConfig `yaml:"fence_lang,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// Preset names the base preset: default, zero or commonmark.
	Preset string `yaml:"preset"`

	// Options overrides preset options.
	Options ParserOptions `yaml:"options,omitempty"`

	// Rules enables or disables rules after the preset is applied.
	Rules RulesConfig `yaml:"rules,omitempty"`

	// Plugins configures built-in plugins.
	Plugins PluginsConfig `yaml:"plugins,omitempty"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `yaml:"ignore,omitempty"`

	// Jobs is the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Inline parses input as a single inline span.
	Inline bool `yaml:"-"`

	// ShowHidden includes hidden tokens in text output.
	ShowHidden bool `yaml:"-"`

	// Output is the file to write to instead of stdout.
	Output string `yaml:"-"`
}

// DefaultPreset is used when no preset is configured.
const DefaultPreset = "default"

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Preset: DefaultPreset,
		Format: FormatText,
		Jobs:   0,
	}
}
