package ruler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aethermark/pkg/ruler"
)

// Rules are plain strings here so chains can be compared directly.
func newChain(t *testing.T) *ruler.Ruler[string] {
	t.Helper()

	r := ruler.New[string]()
	r.Push("x", "fx")
	r.Push("y", "fy", ruler.RuleOptions{Alt: []string{"blockquote"}})
	return r
}

func TestPush(t *testing.T) {
	t.Parallel()

	r := ruler.New[string]()
	r.Push("x", "fx")

	assert.Equal(t, []string{"fx"}, r.GetRules(""))
	assert.Equal(t, []string{"x"}, r.Names())
	assert.True(t, r.IsEnabled("x"))
}

func TestAltChains(t *testing.T) {
	t.Parallel()

	r := newChain(t)

	assert.Equal(t, []string{"fx", "fy"}, r.GetRules(""))
	assert.Equal(t, []string{"fy"}, r.GetRules("blockquote"))
	assert.Nil(t, r.GetRules("paragraph"))
	assert.Equal(t, []string{"blockquote"}, r.AltChains("y"))
	assert.Nil(t, r.AltChains("missing"))
}

func TestDisable(t *testing.T) {
	t.Parallel()

	r := newChain(t)

	found, err := r.Disable([]string{"x"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, found)
	assert.Equal(t, []string{"fy"}, r.GetRules(""))
	assert.False(t, r.IsEnabled("x"))

	// A disabled rule drops out of its alt chains too.
	_, err = r.Disable([]string{"y"}, false)
	require.NoError(t, err)
	assert.Empty(t, r.GetRules("blockquote"))
}

func TestEnableOnly(t *testing.T) {
	t.Parallel()

	r := newChain(t)

	found, err := r.EnableOnly([]string{"x"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, found)
	assert.Equal(t, []string{"fx"}, r.GetRules(""))

	_, err = r.Enable([]string{"y"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"fx", "fy"}, r.GetRules(""))
}

func TestUnknownRule(t *testing.T) {
	t.Parallel()

	r := newChain(t)

	_, err := r.Enable([]string{"nope"}, false)
	require.ErrorIs(t, err, ruler.ErrUnknownRule)
	assert.Contains(t, err.Error(), "nope")

	_, err = r.Disable([]string{"x", "nope"}, false)
	require.ErrorIs(t, err, ruler.ErrUnknownRule)

	found, err := r.Enable([]string{"nope", "x"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, found)
}

func TestInsertAndReplace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(r *ruler.Ruler[string]) error
		want   []string
	}{
		{
			name: "before first",
			mutate: func(r *ruler.Ruler[string]) error {
				return r.Before("x", "w", "fw")
			},
			want: []string{"fw", "fx", "fy"},
		},
		{
			name: "after first",
			mutate: func(r *ruler.Ruler[string]) error {
				return r.After("x", "w", "fw")
			},
			want: []string{"fx", "fw", "fy"},
		},
		{
			name: "after last",
			mutate: func(r *ruler.Ruler[string]) error {
				return r.After("y", "w", "fw")
			},
			want: []string{"fx", "fy", "fw"},
		},
		{
			name: "replace",
			mutate: func(r *ruler.Ruler[string]) error {
				return r.At("x", "fx2")
			},
			want: []string{"fx2", "fy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newChain(t)
			// Prime the cache so the mutation has to invalidate it.
			_ = r.GetRules("")

			require.NoError(t, tt.mutate(r))
			assert.Equal(t, tt.want, r.GetRules(""))
		})
	}
}

func TestAnchorNotFound(t *testing.T) {
	t.Parallel()

	r := newChain(t)

	require.ErrorIs(t, r.At("missing", "f"), ruler.ErrRuleNotFound)
	require.ErrorIs(t, r.Before("missing", "w", "f"), ruler.ErrRuleNotFound)
	require.ErrorIs(t, r.After("missing", "w", "f"), ruler.ErrRuleNotFound)
	assert.Equal(t, []string{"x", "y"}, r.Names())
}

func TestAtReplacesAltChains(t *testing.T) {
	t.Parallel()

	r := newChain(t)

	require.NoError(t, r.At("y", "fy2"))
	assert.Nil(t, r.GetRules("blockquote"))

	require.NoError(t, r.At("x", "fx2", ruler.RuleOptions{Alt: []string{"list"}}))
	assert.Equal(t, []string{"fx2"}, r.GetRules("list"))
}
