package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aethermark/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func ptr[T any](v T) *T { return &v }

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.DefaultPreset, result.Config.Preset)
	assert.Equal(t, config.FormatText, result.Config.Format)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".aethermark.yml"), `
preset: commonmark
options:
  max_nesting: 8
rules:
  disable: [hr]
plugins:
  fence_lang:
    enabled: true
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "commonmark", cfg.Preset)
	require.NotNil(t, cfg.Options.MaxNesting)
	assert.Equal(t, 8, *cfg.Options.MaxNesting)
	assert.Equal(t, []string{"hr"}, cfg.Rules.Disable)
	assert.True(t, cfg.Plugins.FenceLang.IsEnabled())
	assert.True(t, cfg.Plugins.FenceLang.DetectEnabled())
	assert.Len(t, result.LoadedFrom, 1)
}

func TestLoad_ProjectConfigSearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "aethermark.yaml"), "preset: zero\n")
	nested := filepath.Join(root, "docs", "guide")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)

	assert.Equal(t, "zero", result.Config.Preset)
	assert.Equal(t, filepath.Join(root, "aethermark.yaml"), result.Paths.Project)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".aethermark.yml"), "preset: zero\n")
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoad_ExplicitConfigWinsOverProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".aethermark.yml"), "preset: zero\njobs: 2\n")
	custom := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, custom, "preset: commonmark\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = custom

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "commonmark", result.Config.Preset)
	assert.Equal(t, 2, result.Config.Jobs)
	assert.Equal(t, []string{filepath.Join(tmpDir, ".aethermark.yml"), custom}, result.LoadedFrom)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".aethermark.yml"), `
preset: zero
jobs: 2
options:
  html: true
  breaks: true
`)

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Preset:  "commonmark",
		Jobs:    8,
		Format:  config.FormatJSON,
		Options: config.ParserOptions{HTML: ptr(false)},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "commonmark", cfg.Preset)
	assert.Equal(t, 8, cfg.Jobs)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.False(t, *cfg.Options.HTML)
	assert.True(t, *cfg.Options.Breaks)
}

func TestLoad_Env(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".aethermark.yml"), "preset: zero\n")

	t.Setenv("AETHERMARK_PRESET", "commonmark")
	t.Setenv("AETHERMARK_MAX_NESTING", "3")
	t.Setenv("AETHERMARK_RULES_DISABLE", "hr, code ,")
	t.Setenv("AETHERMARK_FENCE_LANG", "1")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "commonmark", cfg.Preset)
	assert.Equal(t, 3, *cfg.Options.MaxNesting)
	assert.Equal(t, []string{"hr", "code"}, cfg.Rules.Disable)
	assert.True(t, cfg.Plugins.FenceLang.IsEnabled())
}

func TestLoad_EnvInvalid(t *testing.T) {
	t.Setenv("AETHERMARK_JOBS", "many")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AETHERMARK_JOBS")
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		errText string
	}{
		{name: "unknown preset", content: "preset: gfm\n", errText: "unknown preset"},
		{name: "zero nesting", content: "options:\n  max_nesting: 0\n", errText: "max_nesting"},
		{name: "short quotes", content: "options:\n  quotes: [a, b]\n", errText: "quotes"},
		{name: "negative jobs", content: "jobs: -1\n", errText: "jobs"},
		{name: "bad glob", content: "ignore: ['[']\n", errText: "glob"},
		{name: "unknown key", content: "flavor: gfm\n", errText: "flavor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, ".aethermark.yml"), tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoad_UnknownRuleWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".aethermark.yml"), `
rules:
  enable: [tables, fence]
  disable: [fence]
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], `unknown rule "tables"`)
	assert.Contains(t, result.Warnings[0], ".aethermark.yml")
	assert.Contains(t, result.Warnings[1], "both enabled and disabled")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	got := MergeAll(
		&config.Config{Preset: "zero", Ignore: []string{"a"}},
		&config.Config{Options: config.ParserOptions{LangPrefix: ptr("x-")}},
		&config.Config{Preset: "commonmark", Ignore: []string{}},
	)

	assert.Equal(t, "commonmark", got.Preset)
	assert.Equal(t, "x-", *got.Options.LangPrefix)
	assert.Empty(t, got.Ignore)
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Contains(t, vars, "AETHERMARK_PRESET")
	assert.Equal(t, "AETHERMARK_MAX_NESTING", GetEnvVarName("options.max_nesting"))
	assert.Empty(t, GetEnvVarName("nope"))
}
