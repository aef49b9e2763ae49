package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/aethermark/pkg/config"
)

// envVarPrefix is the prefix for all aethermark environment variables.
const envVarPrefix = "AETHERMARK_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"PRESET":        {field: "preset", typ: envTypeString, description: "Base preset: default, zero, or commonmark"},
	"FORMAT":        {field: "format", typ: envTypeString, description: "Output format: text, json, or yaml"},
	"JOBS":          {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"MAX_NESTING":   {field: "options.max_nesting", typ: envTypeInt, description: "Maximum block nesting depth"},
	"HTML":          {field: "options.html", typ: envTypeBool, description: "Allow raw HTML: true or false"},
	"BREAKS":        {field: "options.breaks", typ: envTypeBool, description: "Convert newlines to breaks: true or false"},
	"LANG_PREFIX":   {field: "options.lang_prefix", typ: envTypeString, description: "CSS class prefix for fenced code"},
	"IGNORE":        {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"RULES_ENABLE":  {field: "rules.enable", typ: envTypeSlice, description: "Comma-separated rules to enable"},
	"RULES_DISABLE": {field: "rules.disable", typ: envTypeSlice, description: "Comma-separated rules to disable"},
	"FENCE_LANG":    {field: "plugins.fence_lang.enabled", typ: envTypeBool, description: "Annotate code blocks with languages"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Variables are prefixed with AETHERMARK_ (e.g., AETHERMARK_PRESET).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue splits a comma-separated string, trimming each element.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "preset":
		cfg.Preset = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "options.lang_prefix":
		cfg.Options.LangPrefix = &value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "options.html":
		cfg.Options.HTML = &value
	case "options.breaks":
		cfg.Options.Breaks = &value
	case "plugins.fence_lang.enabled":
		cfg.Plugins.FenceLang.Enabled = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "options.max_nesting":
		cfg.Options.MaxNesting = &value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "rules.enable":
		cfg.Rules.Enable = value
	case "rules.disable":
		cfg.Rules.Disable = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
