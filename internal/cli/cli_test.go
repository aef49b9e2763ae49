package cli_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aethermark/internal/cli"
)

var testInfo = cli.BuildInfo{
	Version: "1.2.3",
	Commit:  "abc123",
	Date:    "2024-01-01",
}

// execute runs the root command with config files ignored and color off.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(append(args, "--no-config", "--color", "never"))

	err := cmd.Execute()
	return stdout.String(), err
}

func writeMarkdown(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "aethermark", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"parse", "rules", "compare", "presets", "config", "init", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	for _, name := range []string{"debug", "config", "no-config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
}

func TestParseCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	parseCmd, _, err := cmd.Find([]string{"parse"})
	require.NoError(t, err)

	for _, name := range []string{
		"preset", "enable", "disable", "max-nesting", "detect-lang",
		"format", "output", "inline", "show-hidden", "no-summary", "stats", "compact", "jobs", "ignore",
	} {
		assert.NotNil(t, parseCmd.Flags().Lookup(name), "parse flag %q", name)
	}

	assert.Equal(t, "default", parseCmd.Flags().Lookup("preset").DefValue)
	require.NoError(t, parseCmd.Args(parseCmd, []string{"a.md", "docs/"}))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, nil, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "aethermark")
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
}

func TestHelpIsStyled(t *testing.T) {
	t.Parallel()

	out, err := execute(t, nil, "parse", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "aethermark parse [paths...]")
	assert.Contains(t, out, "--show-hidden")
	assert.Contains(t, out, "Global Flags:")
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	_, err := execute(t, nil, "parse", "--no-such-flag")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrInvalidUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}
