package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aethermark/internal/ui/pretty"
	"github.com/yaklabco/aethermark/pkg/config"
	"github.com/yaklabco/aethermark/pkg/markdown"
)

// allRules marks a chain the preset leaves fully enabled.
const allRules = "(all)"

func newPresetsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List built-in parser presets",
		Long: `List the built-in presets with their nesting limit, HTML setting and
the core and block rules each one enables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := config.ParseFormat(format)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
			}

			presets := make([]markdown.Preset, 0, len(markdown.PresetNames()))
			for _, name := range markdown.PresetNames() {
				preset, _ := markdown.LookupPreset(name)
				presets = append(presets, preset)
			}

			out := cmd.OutOrStdout()
			switch parsed {
			case config.FormatJSON:
				return writeJSON(out, presets)
			case config.FormatYAML:
				return writeYAML(out, presets)
			default:
				return writePresetsTable(out, colorMode(cmd), presets)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, yaml")

	return cmd
}

func writePresetsTable(out io.Writer, color string, presets []markdown.Preset) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))

	rows := make([]pretty.Row, 0, len(presets))
	for _, preset := range presets {
		rows = append(rows, pretty.Row{Cells: []string{
			preset.Name,
			strconv.Itoa(preset.Options.MaxNesting),
			strconv.FormatBool(preset.Options.HTML),
			ruleList(preset.Components.Core),
			ruleList(preset.Components.Block),
		}})
	}

	table := pretty.NewTableFormatter(styles, pretty.TerminalWidth(out))
	_, err := io.WriteString(out, table.Format([]string{"PRESET", "NESTING", "HTML", "CORE", "BLOCK"}, rows))
	return err
}

func ruleList(names []string) string {
	if names == nil {
		return allRules
	}
	return strings.Join(names, ",")
}
