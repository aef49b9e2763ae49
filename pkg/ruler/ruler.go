// Package ruler provides an ordered, named, toggleable list of rule callbacks.
//
// A Ruler keeps one default chain holding every enabled rule plus any number of
// alternate chains that rules opt into by name. Active rule lists are compiled
// lazily and cached until the next mutation.
package ruler

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors for rule lookup failures.
var (
	// ErrRuleNotFound is returned when an anchor rule for At, Before or After is missing.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrUnknownRule is returned by Enable, Disable and EnableOnly for unknown names.
	ErrUnknownRule = errors.New("unknown rule")
)

// RuleOptions configures how a rule is registered.
type RuleOptions struct {
	// Alt lists the alternate chains this rule also belongs to.
	Alt []string
}

// rule is a single registered entry.
type rule[T any] struct {
	name    string
	enabled bool
	fn      T
	alt     []string
}

// Ruler is an ordered rule registry. It is not safe for concurrent mutation.
type Ruler[T any] struct {
	rules []rule[T]
	cache map[string][]T
}

// New creates an empty Ruler.
func New[T any]() *Ruler[T] {
	return &Ruler[T]{}
}

func (r *Ruler[T]) find(name string) int {
	for i := range r.rules {
		if r.rules[i].name == name {
			return i
		}
	}
	return -1
}

func (r *Ruler[T]) invalidate() {
	r.cache = nil
}

// compile rebuilds the chain cache. The empty chain name holds every enabled rule.
func (r *Ruler[T]) compile() {
	chains := []string{""}
	for _, rl := range r.rules {
		if !rl.enabled {
			continue
		}
		for _, alt := range rl.alt {
			if !slices.Contains(chains, alt) {
				chains = append(chains, alt)
			}
		}
	}

	r.cache = make(map[string][]T, len(chains))
	for _, chain := range chains {
		var fns []T
		for _, rl := range r.rules {
			if !rl.enabled {
				continue
			}
			if chain != "" && !slices.Contains(rl.alt, chain) {
				continue
			}
			fns = append(fns, rl.fn)
		}
		r.cache[chain] = fns
	}
}

func newRule[T any](name string, fn T, opts []RuleOptions) rule[T] {
	rl := rule[T]{name: name, enabled: true, fn: fn}
	if len(opts) > 0 {
		rl.alt = slices.Clone(opts[0].Alt)
	}
	return rl
}

// At replaces the callback and alt chains of an existing rule.
func (r *Ruler[T]) At(name string, fn T, opts ...RuleOptions) error {
	idx := r.find(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrRuleNotFound, name)
	}
	r.rules[idx].fn = fn
	r.rules[idx].alt = nil
	if len(opts) > 0 {
		r.rules[idx].alt = slices.Clone(opts[0].Alt)
	}
	r.invalidate()
	return nil
}

// Before inserts a new rule immediately before beforeName.
func (r *Ruler[T]) Before(beforeName, name string, fn T, opts ...RuleOptions) error {
	idx := r.find(beforeName)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrRuleNotFound, beforeName)
	}
	r.rules = slices.Insert(r.rules, idx, newRule(name, fn, opts))
	r.invalidate()
	return nil
}

// After inserts a new rule immediately after afterName.
func (r *Ruler[T]) After(afterName, name string, fn T, opts ...RuleOptions) error {
	idx := r.find(afterName)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrRuleNotFound, afterName)
	}
	r.rules = slices.Insert(r.rules, idx+1, newRule(name, fn, opts))
	r.invalidate()
	return nil
}

// Push appends a new rule to the end of the chain.
func (r *Ruler[T]) Push(name string, fn T, opts ...RuleOptions) {
	r.rules = append(r.rules, newRule(name, fn, opts))
	r.invalidate()
}

// Enable turns on the named rules and returns the names that were found.
// Unknown names fail with ErrUnknownRule unless ignoreInvalid is set.
func (r *Ruler[T]) Enable(names []string, ignoreInvalid bool) ([]string, error) {
	return r.toggle(names, true, ignoreInvalid)
}

// Disable turns off the named rules and returns the names that were found.
// Unknown names fail with ErrUnknownRule unless ignoreInvalid is set.
func (r *Ruler[T]) Disable(names []string, ignoreInvalid bool) ([]string, error) {
	return r.toggle(names, false, ignoreInvalid)
}

// EnableOnly disables every rule, then enables the named ones.
func (r *Ruler[T]) EnableOnly(names []string, ignoreInvalid bool) ([]string, error) {
	for i := range r.rules {
		r.rules[i].enabled = false
	}
	r.invalidate()
	return r.Enable(names, ignoreInvalid)
}

func (r *Ruler[T]) toggle(names []string, enabled, ignoreInvalid bool) ([]string, error) {
	defer r.invalidate()

	var found []string
	for _, name := range names {
		idx := r.find(name)
		if idx < 0 {
			if ignoreInvalid {
				continue
			}
			return found, fmt.Errorf("%w: %s", ErrUnknownRule, name)
		}
		r.rules[idx].enabled = enabled
		found = append(found, name)
	}
	return found, nil
}

// GetRules returns the enabled callbacks of a chain in registration order.
// The empty name selects the default chain. Unknown chains yield nil.
func (r *Ruler[T]) GetRules(chain string) []T {
	if r.cache == nil {
		r.compile()
	}
	return r.cache[chain]
}

// Names returns every registered rule name in order.
func (r *Ruler[T]) Names() []string {
	names := make([]string, len(r.rules))
	for i, rl := range r.rules {
		names[i] = rl.name
	}
	return names
}

// IsEnabled reports whether the named rule exists and is enabled.
func (r *Ruler[T]) IsEnabled(name string) bool {
	idx := r.find(name)
	return idx >= 0 && r.rules[idx].enabled
}

// AltChains returns the alternate chains of the named rule, or nil if unknown.
func (r *Ruler[T]) AltChains(name string) []string {
	idx := r.find(name)
	if idx < 0 {
		return nil
	}
	return slices.Clone(r.rules[idx].alt)
}
