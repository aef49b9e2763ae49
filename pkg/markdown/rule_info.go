package markdown

import "github.com/yaklabco/aethermark/pkg/ruler"

// Rule chain kinds reported by Rules.
const (
	KindCore  = "core"
	KindBlock = "block"
)

// RuleInfo describes one registered rule.
type RuleInfo struct {
	Kind    string   `json:"kind" yaml:"kind"`
	Name    string   `json:"name" yaml:"name"`
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Alt     []string `json:"alt,omitempty" yaml:"alt,omitempty"`
}

// Rules lists every core and block rule in execution order.
func (m *Markdown) Rules() []RuleInfo {
	infos := describe(KindCore, m.Core.Ruler, nil)
	return describe(KindBlock, m.Block.Ruler, infos)
}

// HasRule reports whether any chain registers name.
func (m *Markdown) HasRule(name string) bool {
	for _, info := range m.Rules() {
		if info.Name == name {
			return true
		}
	}
	return false
}

func describe[T any](kind string, r *ruler.Ruler[T], infos []RuleInfo) []RuleInfo {
	for _, name := range r.Names() {
		infos = append(infos, RuleInfo{
			Kind:    kind,
			Name:    name,
			Enabled: r.IsEnabled(name),
			Alt:     r.AltChains(name),
		})
	}
	return infos
}
