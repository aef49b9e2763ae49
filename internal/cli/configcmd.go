package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aethermark/internal/configloader"
	"github.com/yaklabco/aethermark/internal/ui/pretty"
	"github.com/yaklabco/aethermark/pkg/config"
)

type configFlags struct {
	parser parserFlags
	env    bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration aethermark would use in the current directory
after merging system, user, project and explicit config files, AETHERMARK_*
environment variables and flags. The loaded files are listed in the header.

Use --env to list the supported environment variables instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.env {
				return writeEnvTable(cmd.OutOrStdout(), colorMode(cmd))
			}
			return runConfig(cmd, flags)
		},
	}

	addParserFlags(cmd, &flags.parser, config.DefaultPreset)
	cmd.Flags().BoolVar(&flags.env, "env", false, "list supported environment variables")

	return cmd
}

func runConfig(cmd *cobra.Command, flags *configFlags) error {
	cliCfg := &config.Config{}
	flags.parser.apply(cmd, cliCfg)

	result, _, err := resolveConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	var header strings.Builder
	header.WriteString("# Resolved aethermark configuration")
	if len(result.LoadedFrom) == 0 {
		header.WriteString("\n# No configuration files loaded")
	}
	for _, path := range result.LoadedFrom {
		header.WriteString("\n# Loaded: " + path)
	}

	content, err := result.Config.ToYAMLWithHeader(header.String())
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(content)
	return err
}

func writeEnvTable(out io.Writer, color string) error {
	vars := configloader.ListEnvVars()

	rows := make([]pretty.Row, 0, len(vars))
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		rows = append(rows, pretty.Row{Cells: []string{name, vars[name]}})
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))
	table := pretty.NewTableFormatter(styles, pretty.TerminalWidth(out))
	_, err := io.WriteString(out, table.Format([]string{"VARIABLE", "DESCRIPTION"}, rows))
	return err
}
