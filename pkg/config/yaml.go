package config

import (
	"bytes"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
// CLI-only fields are not written.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
// Unknown keys are rejected so typos surface early.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Options = c.Options.clone()
	clone.Rules = RulesConfig{
		Enable:  slices.Clone(c.Rules.Enable),
		Disable: slices.Clone(c.Rules.Disable),
	}
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Plugins.FenceLang = FenceLangConfig{
		Enabled:      clonePtr(c.Plugins.FenceLang.Enabled),
		Detect:       clonePtr(c.Plugins.FenceLang.Detect),
		IndentedCode: clonePtr(c.Plugins.FenceLang.IndentedCode),
	}

	return &clone
}

func (o ParserOptions) clone() ParserOptions {
	return ParserOptions{
		HTML:        clonePtr(o.HTML),
		XHTMLOut:    clonePtr(o.XHTMLOut),
		Breaks:      clonePtr(o.Breaks),
		LangPrefix:  clonePtr(o.LangPrefix),
		Linkify:     clonePtr(o.Linkify),
		Typographer: clonePtr(o.Typographer),
		Quotes:      slices.Clone(o.Quotes),
		MaxNesting:  clonePtr(o.MaxNesting),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
