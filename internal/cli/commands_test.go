package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/aethermark/internal/cli"
	"github.com/yaklabco/aethermark/pkg/crosscheck"
	"github.com/yaklabco/aethermark/pkg/markdown"
)

func TestRules_JSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, nil, "rules", "--preset", "zero", "--format", "json")
	require.NoError(t, err)

	var rules []markdown.RuleInfo
	require.NoError(t, json.Unmarshal([]byte(out), &rules))

	states := map[string]bool{}
	for _, rule := range rules {
		states[rule.Kind+"/"+rule.Name] = rule.Enabled
	}
	assert.True(t, states["core/normalize"])
	assert.False(t, states["core/linkify"])
	assert.True(t, states["block/paragraph"])
	assert.False(t, states["block/fence"])
}

func TestRules_DisabledFilter(t *testing.T) {
	t.Parallel()

	out, err := execute(t, nil, "rules", "--disable", "hr,table", "--disabled", "--format", "yaml")
	require.NoError(t, err)

	var rules []markdown.RuleInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &rules))

	names := make([]string, 0, len(rules))
	for _, rule := range rules {
		names = append(names, rule.Name)
	}
	assert.ElementsMatch(t, []string{"hr", "table"}, names)
}

func TestRules_Table(t *testing.T) {
	t.Parallel()

	out, err := execute(t, nil, "rules")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[0], "KIND"))
	assert.Contains(t, out, "paragraph, reference, blockquote, list")
	assert.Contains(t, out, "text_join")
}

func TestPresets(t *testing.T) {
	t.Parallel()

	out, err := execute(t, nil, "presets", "--format", "json")
	require.NoError(t, err)

	var presets []markdown.Preset
	require.NoError(t, json.Unmarshal([]byte(out), &presets))
	require.Len(t, presets, 3)
	assert.Equal(t, "commonmark", presets[0].Name)
	assert.Equal(t, "default", presets[1].Name)
	assert.Equal(t, 100, presets[1].Options.MaxNesting)
	assert.Equal(t, []string{"paragraph"}, presets[2].Components.Block)

	out, err = execute(t, nil, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "(all)")
	assert.Contains(t, out, "zero")
}

func TestCompare(t *testing.T) {
	t.Parallel()

	dir := writeMarkdown(t, map[string]string{
		"a.md": "# Title\n\n> quote\n\n- one\n- two\n",
		"b.md": "```\ncode\n```\n",
	})

	out, err := execute(t, nil, "compare", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 compared, 0 differ")

	out, err = execute(t, nil, "compare", "--disable", "list", "--format", "json", filepath.Join(dir, "a.md"))
	require.ErrorIs(t, err, cli.ErrMismatch)
	assert.Equal(t, cli.ExitMismatch, cli.ExitCodeFromError(err))

	var reports []crosscheck.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.False(t, reports[0].Match)
	assert.Equal(t, 3, reports[0].FirstDiff)
}

func TestCompare_StdinText(t *testing.T) {
	t.Parallel()

	out, err := execute(t, strings.NewReader("- a\n- b\n"), "compare", "--disable", "list", "-")
	require.ErrorIs(t, err, cli.ErrMismatch)
	assert.Contains(t, out, "diff -: block 1: aethermark 0:paragraph, goldmark 0:bullet_list")
	assert.Contains(t, out, "1 compared, 1 differ")
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "aethermark.yml")

	_, err := execute(t, nil, "init", "--output", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "preset: default")

	_, err = execute(t, nil, "init", "--output", path)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)

	_, err = execute(t, nil, "init", "--output", path, "--full", "--force")
	require.NoError(t, err)

	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "paragraph")
	assert.Contains(t, string(content), "alt: paragraph, reference, blockquote, list")
}

func TestInit_GeneratedConfigLoads(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "aethermark.yml")
	_, err := execute(t, nil, "init", "--full", "--output", cfgPath)
	require.NoError(t, err)

	_, err = execute(t, strings.NewReader("text\n"), "parse", "--config", cfgPath, "-")
	require.NoError(t, err)
}

func TestConfigCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("preset: zero\nrules:\n  enable: [fence]\n"), 0o644))

	out, err := execute(t, nil, "config", "--config", cfgPath, "--max-nesting", "7")
	require.NoError(t, err)

	assert.Contains(t, out, "# Loaded: "+cfgPath)
	assert.Contains(t, out, "preset: zero")
	assert.Contains(t, out, "max_nesting: 7")
	assert.Contains(t, out, "- fence")
}

func TestConfigCommand_Env(t *testing.T) {
	t.Parallel()

	out, err := execute(t, nil, "config", "--env")
	require.NoError(t, err)

	assert.Contains(t, out, "VARIABLE")
	assert.Contains(t, out, "AETHERMARK_PRESET")
	assert.Contains(t, out, "AETHERMARK_FENCE_LANG")
}

func TestParse_Stats(t *testing.T) {
	t.Parallel()

	out, err := execute(t, strings.NewReader("# a\n\ntext\n"), "parse", "--stats", "-")
	require.NoError(t, err)

	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Tokens:         6")
	assert.Contains(t, out, "Parse succeeded")
}
