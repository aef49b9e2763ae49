package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aethermark/pkg/config"
)

func ptr[T any](v T) *T { return &v }

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies options", func(t *testing.T) {
		original := &config.Config{
			Options: config.ParserOptions{
				HTML:       ptr(true),
				MaxNesting: ptr(20),
				Quotes:     []string{"«", "»", "‹", "›"},
			},
		}

		clone := original.Clone()
		*clone.Options.HTML = false
		*clone.Options.MaxNesting = 5
		clone.Options.Quotes[0] = "x"

		assert.True(t, *original.Options.HTML)
		assert.Equal(t, 20, *original.Options.MaxNesting)
		assert.Equal(t, "«", original.Options.Quotes[0])
	})

	t.Run("deep copies slices", func(t *testing.T) {
		original := &config.Config{
			Ignore: []string{"vendor/**"},
			Rules:  config.RulesConfig{Enable: []string{"fence"}, Disable: []string{"hr"}},
		}

		clone := original.Clone()
		clone.Ignore[0] = "changed"
		clone.Rules.Enable[0] = "changed"
		clone.Rules.Disable = append(clone.Rules.Disable, "code")

		assert.Equal(t, []string{"vendor/**"}, original.Ignore)
		assert.Equal(t, []string{"fence"}, original.Rules.Enable)
		assert.Equal(t, []string{"hr"}, original.Rules.Disable)
	})

	t.Run("deep copies plugin flags", func(t *testing.T) {
		original := &config.Config{}
		original.Plugins.FenceLang.Enabled = ptr(true)

		clone := original.Clone()
		*clone.Plugins.FenceLang.Enabled = false

		assert.True(t, original.Plugins.FenceLang.IsEnabled())
	})

	t.Run("copies CLI-only fields", func(t *testing.T) {
		original := &config.Config{
			Format:     config.FormatJSON,
			Inline:     true,
			ShowHidden: true,
			Output:     "out.json",
		}

		clone := original.Clone()
		assert.Equal(t, config.FormatJSON, clone.Format)
		assert.True(t, clone.Inline)
		assert.True(t, clone.ShowHidden)
		assert.Equal(t, "out.json", clone.Output)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	original := config.NewConfig()
	original.Preset = "commonmark"
	original.Options.Breaks = ptr(true)
	original.Options.LangPrefix = ptr("lang-")
	original.Plugins.FenceLang = config.FenceLangConfig{Enabled: ptr(true), Detect: ptr(false)}
	original.Rules.Disable = []string{"hr"}
	original.Format = config.FormatYAML

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "format")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "commonmark", parsed.Preset)
	assert.True(t, *parsed.Options.Breaks)
	assert.Equal(t, "lang-", *parsed.Options.LangPrefix)
	assert.Nil(t, parsed.Options.HTML)
	assert.True(t, parsed.Plugins.FenceLang.IsEnabled())
	assert.False(t, parsed.Plugins.FenceLang.DetectEnabled())
	assert.Nil(t, parsed.Plugins.FenceLang.IndentedCode)
	assert.Equal(t, []string{"hr"}, parsed.Rules.Disable)
	assert.Empty(t, parsed.Format)
}

func TestFromYAML(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("  \n"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Preset)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := config.FromYAML([]byte("preset: zero\nflavor: gfm\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "flavor")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := config.FromYAML([]byte("preset: [\n"))
		require.Error(t, err)
	})
}

func TestToYAMLWithHeader(t *testing.T) {
	cfg := config.NewConfig()

	data, err := cfg.ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# header\n\npreset: default"))

	plain, err := cfg.ToYAMLWithHeader("")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(plain), "preset: default"))
}

func TestGenerateTemplate(t *testing.T) {
	t.Run("minimal parses", func(t *testing.T) {
		data := config.GenerateTemplate(config.TemplateOptions{})
		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultPreset, cfg.Preset)
		assert.True(t, cfg.Plugins.FenceLang.DetectEnabled())
		assert.False(t, cfg.Plugins.FenceLang.IsEnabled())
		require.NotNil(t, cfg.Plugins.FenceLang.Enabled)
	})

	t.Run("full lists rules", func(t *testing.T) {
		data := config.GenerateTemplate(config.TemplateOptions{
			Full: true,
			Rules: []config.RuleInfo{
				{Name: "fence", Kind: "block", Enabled: true, Alt: []string{"paragraph", "reference"}},
				{Name: "block", Kind: "core", Enabled: true},
				{Name: "linkify", Kind: "core"},
			},
		})

		text := string(data)
		assert.Contains(t, text, "fence")
		assert.Contains(t, text, "alt: paragraph, reference")
		assert.Less(t, strings.Index(text, "#   block  fence"), strings.Index(text, "#   core   block"))
		assert.Contains(t, text, "#   core   linkify      off")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Empty(t, cfg.Rules.Enable)
	})
}
