package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/aethermark/internal/ui/pretty"
	"github.com/yaklabco/aethermark/pkg/config"
	"github.com/yaklabco/aethermark/pkg/markdown"
	"github.com/yaklabco/aethermark/pkg/runner"
)

type rulesFlags struct {
	parser   parserFlags
	format   string
	disabled bool
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List core and block rules",
		Long: `List the core and block rule chains in execution order, whether each
rule is enabled under the resolved configuration, and the alternative chains
(paragraph, reference, blockquote, list) a block rule is also registered in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, flags)
		},
	}

	addParserFlags(cmd, &flags.parser, config.DefaultPreset)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, yaml")
	cmd.Flags().BoolVar(&flags.disabled, "disabled", false, "list only disabled rules")

	return cmd
}

func runRules(cmd *cobra.Command, flags *rulesFlags) error {
	format, err := config.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	cliCfg := &config.Config{}
	flags.parser.apply(cmd, cliCfg)

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	md, err := runner.NewParser(cfg, commandLogger(cmd))
	if err != nil {
		return fmt.Errorf("build parser: %w", err)
	}

	rules := md.Rules()
	if flags.disabled {
		rules = filterDisabled(rules)
	}

	out := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		return writeJSON(out, rules)
	case config.FormatYAML:
		return writeYAML(out, rules)
	default:
		return writeRulesTable(out, colorMode(cmd), rules)
	}
}

func filterDisabled(rules []markdown.RuleInfo) []markdown.RuleInfo {
	out := make([]markdown.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		if !rule.Enabled {
			out = append(out, rule)
		}
	}
	return out
}

func writeRulesTable(out io.Writer, color string, rules []markdown.RuleInfo) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))

	rows := make([]pretty.Row, 0, len(rules))
	for _, rule := range rules {
		state, style := "on", styles.Enabled
		if !rule.Enabled {
			state, style = "off", styles.Disabled
		}
		rows = append(rows, pretty.Row{
			Cells: []string{rule.Kind, rule.Name, state, strings.Join(rule.Alt, ", ")},
			Style: &style,
		})
	}

	table := pretty.NewTableFormatter(styles, pretty.TerminalWidth(out))
	_, err := io.WriteString(out, table.Format([]string{"KIND", "NAME", "STATE", "ALT"}, rows))
	return err
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(config.YAMLIndent())
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close YAML encoder: %w", err)
	}
	return nil
}
