package markdown

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the facade.
var (
	// ErrUnknownPreset indicates Configure was given a preset name that does not exist.
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrRuleDidNotAdvance indicates a block rule reported a match without consuming a line.
	ErrRuleDidNotAdvance = errors.New("block rule did not advance the line cursor")

	// ErrNoRuleMatched indicates no enabled block rule accepted a non-empty line.
	ErrNoRuleMatched = errors.New("no block rule matched")

	// ErrPlugin wraps errors returned from plugins passed to Use.
	ErrPlugin = errors.New("plugin failed")
)

// GrammarError reports a broken block grammar: a rule that matched without
// advancing, or a line no rule accepts. It is never caused by document content
// alone; a chain that keeps the paragraph rule enabled cannot produce one.
type GrammarError struct {
	// Line is the zero-based source line the tokenizer was positioned on.
	Line int

	// Rule names the offending rule when known.
	Rule string

	// Err is ErrRuleDidNotAdvance or ErrNoRuleMatched.
	Err error
}

func (e *GrammarError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("line %d: rule %q: %v", e.Line+1, e.Rule, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line+1, e.Err)
}

func (e *GrammarError) Unwrap() error {
	return e.Err
}

// recoverGrammarError converts a GrammarError panic raised by Tokenize into an
// error. Other panics are re-raised.
func recoverGrammarError(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if gerr, ok := r.(*GrammarError); ok {
		*errp = gerr
		return
	}
	panic(r)
}
