// Package markdown turns Markdown source into a flat stream of block tokens.
//
// A Markdown value owns one rule chain per stage. The core chain runs whole
// document passes (normalize, block, inline, text_join, ...); the block chain
// holds the grammar rules the block tokenizer tries on every line. Presets
// pick which rules are enabled and set the Options.
//
// A Markdown value is not safe for concurrent use. Create one per goroutine.
package markdown

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/aethermark/pkg/mdast"
	"github.com/yaklabco/aethermark/pkg/ruler"
)

// Markdown is the parser facade.
type Markdown struct {
	Options Options
	Core    *ParserCore
	Block   *ParserBlock
	Inline  InlineParser

	// Components are the rule lists of the last applied preset. The inline
	// lists are kept for inline parsers that honor them.
	Components Components

	logger *log.Logger
}

// Option configures a Markdown value in New.
type Option func(*Markdown)

// WithOptions replaces the preset's options. MaxNesting <= 0 keeps the preset value.
func WithOptions(opts Options) Option {
	return func(m *Markdown) {
		maxNesting := m.Options.MaxNesting
		m.Options = opts
		if opts.MaxNesting <= 0 {
			m.Options.MaxNesting = maxNesting
		}
	}
}

// WithMaxNesting overrides the nesting limit.
func WithMaxNesting(n int) Option {
	return func(m *Markdown) {
		if n > 0 {
			m.Options.MaxNesting = n
		}
	}
}

// WithLogger attaches a logger for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(m *Markdown) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithInlineParser replaces the default inline parser.
func WithInlineParser(p InlineParser) Option {
	return func(m *Markdown) {
		if p != nil {
			m.Inline = p
		}
	}
}

// New creates a parser configured with the named preset. An empty name
// selects the default preset.
func New(presetName string, opts ...Option) (*Markdown, error) {
	if presetName == "" {
		presetName = PresetDefault
	}

	m := &Markdown{
		Core:   NewParserCore(),
		Block:  NewParserBlock(),
		Inline: TextInlineParser{},
		logger: log.New(io.Discard),
	}

	// Attach the logger before configuring so preset selection is logged.
	for _, opt := range opts {
		opt(m)
	}

	if err := m.Configure(presetName); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Logger returns the attached logger.
func (m *Markdown) Logger() *log.Logger {
	return m.logger
}

// Set replaces the options wholesale.
func (m *Markdown) Set(opts Options) *Markdown {
	m.Options = opts
	return m
}

// Configure applies a built-in preset by name.
func (m *Markdown) Configure(presetName string) error {
	preset, ok := LookupPreset(presetName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, presetName)
	}
	return m.ConfigurePreset(preset)
}

// ConfigurePreset applies preset options and enables only the listed rules.
// A nil list enables every rule of that chain.
func (m *Markdown) ConfigurePreset(preset Preset) error {
	m.Options = preset.Options
	m.Components = preset.Components

	if err := enableOnlyOrAll(m.Core.Ruler, preset.Components.Core); err != nil {
		return fmt.Errorf("preset %q core rules: %w", preset.Name, err)
	}
	if err := enableOnlyOrAll(m.Block.Ruler, preset.Components.Block); err != nil {
		return fmt.Errorf("preset %q block rules: %w", preset.Name, err)
	}

	m.logger.Debug("preset applied",
		"preset", preset.Name,
		"max_nesting", m.Options.MaxNesting,
		"core", len(m.Core.Ruler.GetRules("")),
		"block", len(m.Block.Ruler.GetRules("")))

	return nil
}

func enableOnlyOrAll[T any](r *ruler.Ruler[T], names []string) error {
	if names == nil {
		_, err := r.Enable(r.Names(), false)
		return err
	}
	_, err := r.EnableOnly(names, false)
	return err
}

// Enable turns on the named rules in every chain. Names found in no chain
// fail with ruler.ErrUnknownRule unless ignoreInvalid is set.
func (m *Markdown) Enable(names []string, ignoreInvalid bool) error {
	return m.toggle(names, true, ignoreInvalid)
}

// Disable turns off the named rules in every chain. Names found in no chain
// fail with ruler.ErrUnknownRule unless ignoreInvalid is set.
func (m *Markdown) Disable(names []string, ignoreInvalid bool) error {
	return m.toggle(names, false, ignoreInvalid)
}

func (m *Markdown) toggle(names []string, enable, ignoreInvalid bool) error {
	coreToggle, blockToggle := m.Core.Ruler.Disable, m.Block.Ruler.Disable
	if enable {
		coreToggle, blockToggle = m.Core.Ruler.Enable, m.Block.Ruler.Enable
	}

	found := make(map[string]bool, len(names))
	for _, toggle := range []func([]string, bool) ([]string, error){coreToggle, blockToggle} {
		// Each chain only knows its own rules.
		done, _ := toggle(names, true)
		for _, name := range done {
			found[name] = true
		}
	}

	m.logger.Debug("rules toggled", "enable", enable, "rules", names)

	if ignoreInvalid {
		return nil
	}

	var errs []error
	for _, name := range names {
		if !found[name] {
			errs = append(errs, fmt.Errorf("%w: %s", ruler.ErrUnknownRule, name))
		}
	}
	return errors.Join(errs...)
}

// Use runs a plugin against m. Plugins typically register rules.
func (m *Markdown) Use(plugin func(*Markdown) error) error {
	if err := plugin(m); err != nil {
		return fmt.Errorf("%w: %w", ErrPlugin, err)
	}
	return nil
}

// Parse tokenizes src. env may be nil.
//
// A misconfigured block chain (for example one with the paragraph rule
// disabled) yields a *GrammarError and no tokens.
func (m *Markdown) Parse(src string, env *Env) ([]*mdast.Token, error) {
	return m.process(src, env, false)
}

// ParseInline tokenizes src as a single inline token, skipping block rules.
func (m *Markdown) ParseInline(src string, env *Env) ([]*mdast.Token, error) {
	return m.process(src, env, true)
}

func (m *Markdown) process(src string, env *Env, inlineMode bool) (tokens []*mdast.Token, err error) {
	if env == nil {
		env = NewEnv()
	}

	state := &StateCore{
		Src:        src,
		Env:        env,
		InlineMode: inlineMode,
		Md:         m,
	}

	defer func() {
		if err != nil {
			tokens = nil
			m.logger.Debug("parse failed", "err", err)
		}
	}()
	defer recoverGrammarError(&err)

	m.Core.Process(state)

	m.logger.Debug("parsed", "bytes", len(src), "tokens", len(state.Tokens), "inline", inlineMode)

	return state.Tokens, nil
}
