package runner

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/aethermark/pkg/config"
	"github.com/yaklabco/aethermark/pkg/fencelang"
	"github.com/yaklabco/aethermark/pkg/markdown"
)

// NewParser builds a parser from a resolved configuration: the preset, then
// option overrides, then rule toggles, then plugins. Unknown rule names are
// ignored; configloader already warned about them.
func NewParser(cfg *config.Config, logger *log.Logger) (*markdown.Markdown, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	md, err := markdown.New(cfg.Preset, markdown.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	applyOptions(&md.Options, cfg.Options)

	if err := md.Enable(cfg.Rules.Enable, true); err != nil {
		return nil, fmt.Errorf("enable rules: %w", err)
	}
	if err := md.Disable(cfg.Rules.Disable, true); err != nil {
		return nil, fmt.Errorf("disable rules: %w", err)
	}

	if fl := cfg.Plugins.FenceLang; fl.IsEnabled() {
		plugin := fencelang.Plugin(fencelang.Options{
			Detect:       fl.DetectEnabled(),
			IndentedCode: fl.IndentedCodeEnabled(),
		})
		if err := md.Use(plugin); err != nil {
			return nil, err
		}
	}

	return md, nil
}

func applyOptions(dst *markdown.Options, src config.ParserOptions) {
	setIf(&dst.HTML, src.HTML)
	setIf(&dst.XHTMLOut, src.XHTMLOut)
	setIf(&dst.Breaks, src.Breaks)
	setIf(&dst.LangPrefix, src.LangPrefix)
	setIf(&dst.Linkify, src.Linkify)
	setIf(&dst.Typographer, src.Typographer)
	setIf(&dst.MaxNesting, src.MaxNesting)
	if len(src.Quotes) == len(dst.Quotes) {
		copy(dst.Quotes[:], src.Quotes)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
