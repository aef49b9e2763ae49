package fencelang

import (
	"fmt"
	"slices"

	"github.com/yaklabco/aethermark/pkg/markdown"
	"github.com/yaklabco/aethermark/pkg/mdast"
)

// RuleName is the core rule registered by Plugin.
const RuleName = "fence_lang"

// EnvKey is the Env key holding a map of language to code block count.
const EnvKey = "fencelang.counts"

// Source tells where a language came from.
type Source string

// Language sources.
const (
	SourceInfo     Source = "info"
	SourceDetected Source = "detected"
)

// Annotation is stored in the Meta field of fence and code_block tokens.
type Annotation struct {
	Language string `json:"language" yaml:"language"`
	Source   Source `json:"source" yaml:"source"`
}

// Options tune the plugin.
type Options struct {
	// Detect enables content classification for blocks without an info string.
	Detect bool

	// IndentedCode also annotates indented code blocks (always detected).
	IndentedCode bool
}

// Plugin returns a markdown plugin that annotates code tokens with their
// language, running right after the block pass.
func Plugin(opts Options) func(*markdown.Markdown) error {
	return func(md *markdown.Markdown) error {
		rule := func(s *markdown.StateCore) {
			annotate(s, opts)
		}
		// Using the plugin again replaces the options in place.
		if slices.Contains(md.Core.Ruler.Names(), RuleName) {
			return md.Core.Ruler.At(RuleName, rule)
		}
		if err := md.Core.Ruler.After("block", RuleName, rule); err != nil {
			return fmt.Errorf("register %s: %w", RuleName, err)
		}
		return nil
	}
}

func annotate(s *markdown.StateCore, opts Options) {
	counts := map[string]int{}

	for _, tok := range s.Tokens {
		var ann Annotation

		switch tok.Type {
		case "fence":
			ann = annotateFence(tok, opts.Detect)
		case "code_block":
			if !opts.IndentedCode {
				continue
			}
			ann = Annotation{Language: Detect([]byte(tok.Content)), Source: SourceDetected}
		default:
			continue
		}

		if ann.Language == "" {
			continue
		}
		tok.Meta = ann
		counts[ann.Language]++
	}

	if s.Env != nil && len(counts) > 0 {
		s.Env.Set(EnvKey, counts)
	}
}

func annotateFence(tok *mdast.Token, detect bool) Annotation {
	if lang := FromInfo(tok.Info); lang != "" {
		return Annotation{Language: lang, Source: SourceInfo}
	}
	if !detect {
		return Annotation{}
	}
	return Annotation{Language: Detect([]byte(tok.Content)), Source: SourceDetected}
}

// LanguageOf returns the annotation of a token processed by the plugin.
func LanguageOf(tok *mdast.Token) (Annotation, bool) {
	ann, ok := tok.Meta.(Annotation)
	return ann, ok
}

// String formats the annotation as "lang=go (info)".
func (a Annotation) String() string {
	return "lang=" + a.Language + " (" + string(a.Source) + ")"
}
