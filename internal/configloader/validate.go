package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/aethermark/pkg/config"
	"github.com/yaklabco/aethermark/pkg/markdown"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "options.max_nesting").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// referenceParser knows every registered rule name.
//
//nolint:gochecknoglobals // Lazily built, read-only after construction.
var referenceParser = sync.OnceValue(func() *markdown.Markdown {
	md, err := markdown.New(markdown.PresetDefault)
	if err != nil {
		panic(fmt.Sprintf("default preset: %v", err))
	}
	return md
})

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Preset != "" {
		if _, ok := markdown.LookupPreset(cfg.Preset); !ok {
			result.Errors = append(result.Errors, ValidationError{
				Field: "preset",
				Value: cfg.Preset,
				Message: fmt.Sprintf("unknown preset %q; must be one of: %s",
					cfg.Preset, strings.Join(markdown.PresetNames(), ", ")),
			})
		}
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, yaml", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateOptions(cfg.Options, result)
	validateRules(cfg.Rules, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateOptions(opts config.ParserOptions, result *ValidationResult) {
	if opts.MaxNesting != nil && *opts.MaxNesting <= 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "options.max_nesting",
			Value:   *opts.MaxNesting,
			Message: "max_nesting must be > 0",
		})
	}

	if opts.Quotes != nil && len(opts.Quotes) != 4 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "options.quotes",
			Value:   opts.Quotes,
			Message: fmt.Sprintf("quotes must list exactly 4 strings, got %d", len(opts.Quotes)),
		})
	}
}

// validateRules warns about unknown rule names and rules listed in both lists.
func validateRules(rules config.RulesConfig, result *ValidationResult) {
	md := referenceParser()

	check := func(field string, names []string) {
		for _, name := range names {
			if !md.HasRule(name) {
				result.Warnings = append(result.Warnings, ValidationError{
					Field:   field,
					Value:   name,
					Message: fmt.Sprintf("unknown rule %q; it will be ignored", name),
				})
			}
		}
	}
	check("rules.enable", rules.Enable)
	check("rules.disable", rules.Disable)

	for _, name := range rules.Enable {
		if slices.Contains(rules.Disable, name) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "rules",
				Value:   name,
				Message: fmt.Sprintf("rule %q is both enabled and disabled; disable wins", name),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in findings.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
