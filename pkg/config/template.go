package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every known rule as a commented entry.
	Full bool

	// Rules lists the rules to document in a full template.
	Rules []RuleInfo
}

// RuleInfo describes a parser rule for template generation.
type RuleInfo struct {
	Name    string
	Kind    string // core or block
	Enabled bool
	Alt     []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Base preset: default, zero, or commonmark
preset: default

# Preset option overrides
# options:
#   html: false
#   breaks: false
#   lang_prefix: "language-"
#   max_nesting: 100

# Built-in plugins
plugins:
  fence_lang:
    enabled: false
    # Guess the language of fences without an info string
    detect: true
    # Also annotate indented code blocks
    indented_code: false

# Number of parallel workers (0 = auto)
# jobs: 0

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)

	if !opts.Full {
		buf.WriteString(`
# Rules to toggle after the preset is applied
# rules:
#   enable: []
#   disable: []
`)
		return buf.Bytes()
	}

	rules := slices.Clone(opts.Rules)
	slices.SortStableFunc(rules, func(a, b RuleInfo) int {
		if a.Kind != b.Kind {
			return strings.Compare(a.Kind, b.Kind)
		}
		return 0
	})

	buf.WriteString("\n# Rules to toggle after the preset is applied.\n")
	buf.WriteString("# Known rules (enabled under the default preset):\n")
	for _, r := range rules {
		state := "off"
		if r.Enabled {
			state = "on"
		}
		line := fmt.Sprintf("#   %-6s %-12s %s", r.Kind, r.Name, state)
		if len(r.Alt) > 0 {
			line += "  alt: " + strings.Join(r.Alt, ", ")
		}
		buf.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	buf.WriteString("rules:\n  enable: []\n  disable: []\n")

	return buf.Bytes()
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# aethermark configuration
# See: https://github.com/yaklabco/aethermark`
}
