package configloader

import "github.com/yaklabco/aethermark/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override wins when non-zero
//   - Pointer options: override wins when non-nil
//   - Slices: override replaces base entirely when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Preset != "" {
		result.Preset = override.Preset
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	// CLI-only toggles can only be switched on.
	if override.Inline {
		result.Inline = true
	}
	if override.ShowHidden {
		result.ShowHidden = true
	}

	result.Options = mergeOptions(base.Options, override.Options)
	result.Plugins.FenceLang = mergeFenceLang(base.Plugins.FenceLang, override.Plugins.FenceLang)

	if override.Rules.Enable != nil {
		result.Rules.Enable = override.Rules.Enable
	}
	if override.Rules.Disable != nil {
		result.Rules.Disable = override.Rules.Disable
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

func mergeOptions(base, override config.ParserOptions) config.ParserOptions {
	result := base

	if override.HTML != nil {
		result.HTML = override.HTML
	}
	if override.XHTMLOut != nil {
		result.XHTMLOut = override.XHTMLOut
	}
	if override.Breaks != nil {
		result.Breaks = override.Breaks
	}
	if override.LangPrefix != nil {
		result.LangPrefix = override.LangPrefix
	}
	if override.Linkify != nil {
		result.Linkify = override.Linkify
	}
	if override.Typographer != nil {
		result.Typographer = override.Typographer
	}
	if override.Quotes != nil {
		result.Quotes = override.Quotes
	}
	if override.MaxNesting != nil {
		result.MaxNesting = override.MaxNesting
	}

	return result
}

func mergeFenceLang(base, override config.FenceLangConfig) config.FenceLangConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Detect != nil {
		result.Detect = override.Detect
	}
	if override.IndentedCode != nil {
		result.IndentedCode = override.IndentedCode
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
