package nestmap

import (
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	src := map[string]any{
		"a": map[string]any{"aa": 1},
		"b": 2,
		"c": map[string]any{"cc": map[string]any{"ccc": 3}},
		"n": nil,
	}
	m := mustWrap(t, src)
	require.False(t, m.IsLeaf(nil))

	v, err := m.Get(Address{"c", "cc", "ccc"})
	require.NoError(t, err)
	require.Equal(t, 3, v)

	cc, err := m.Get(Address{"c", "cc"})
	require.NoError(t, err)
	require.Equal(t, Address{"c", "cc"}, cc.(*Map).Address())
	require.True(t, cc.(*Map).IsLeaf(nil))

	n, err := m.Get("n")
	require.NoError(t, err)
	require.Nil(t, n)
	require.Equal(t, []any{"a", "b", "c", "n"}, slices.Collect(m.Keys()))
}

func TestWrapOrdered(t *testing.T) {
	src := yaml.MapSlice{
		{Key: "z", Value: 1},
		{Key: "a", Value: yaml.MapSlice{{Key: "y", Value: 2}, {Key: "b", Value: 3}}},
	}
	m := mustWrap(t, src)
	require.Equal(t, []any{"z", "a"}, slices.Collect(m.Keys()))
	a, _ := m.Get("a")
	require.Equal(t, []any{"y", "b"}, slices.Collect(a.(*Map).Keys()))
}

func TestWrapCopy(t *testing.T) {
	list := []any{1, []any{2}}
	src := map[string]any{"l": list}

	plain := mustWrap(t, src)
	shallow := mustWrap(t, src, ShallowCopy())
	deep := mustWrap(t, src, DeepCopy())

	list[0] = 10
	list[1].([]any)[0] = 20

	get := func(m *Map) []any {
		v, err := m.Get("l")
		require.NoError(t, err)
		return v.([]any)
	}
	require.Equal(t, 10, get(plain)[0])
	require.Equal(t, 1, get(shallow)[0])
	require.Equal(t, 20, get(shallow)[1].([]any)[0])
	require.Equal(t, 1, get(deep)[0])
	require.Equal(t, 2, get(deep)[1].([]any)[0])
}

func TestWrapOptions(t *testing.T) {
	_, err := Wrap(map[string]any{}, ShallowCopy(), DeepCopy())
	require.True(t, errors.Is(err, ErrConflictingOptions))

	_, err = Wrap(42)
	require.True(t, errors.Is(err, ErrInvalidType))

	double := func(v any) any {
		if i, ok := v.(int); ok {
			return 2 * i
		}
		return v
	}
	m := mustWrap(t, map[string]any{"a": map[string]any{"b": 2}, "c": "s"}, WithTransform(double))
	v, _ := m.Get(Address{"a", "b"})
	require.Equal(t, 4, v)
	v, _ = m.Get("c")
	require.Equal(t, "s", v)

	rec := &recorder{}
	m = mustWrap(t, map[string]any{"a": map[string]any{}}, WithFactory(func() *Map {
		return New(WithHooks(rec), WithName("made"))
	}))
	require.Equal(t, "made", m.Name())
	require.Len(t, rec.events, 2)
}

func TestWrapValue(t *testing.T) {
	inner := map[string]any{"x": 1}
	m := mustWrap(t, map[string]any{"v": Value{inner}})
	v, err := m.Get("v")
	require.NoError(t, err)
	require.Equal(t, inner, v)
	require.Equal(t, 0, len(slices.Collect(m.Containers())))
}

func TestWrapMap(t *testing.T) {
	m := mustWrap(t, map[string]any{"a": map[string]any{"b": 1}})
	w := mustWrap(t, m)
	require.True(t, m.Equal(w))
	a, _ := w.Get("a")
	ma, _ := m.Get("a")
	require.NotSame(t, a, ma)
}

func TestDeepCopyCycle(t *testing.T) {
	type node struct {
		Next *node
		V    []int
	}
	n := &node{V: []int{1}}
	n.Next = n
	c := deepCopy(n).(*node)
	require.NotSame(t, n, c)
	require.Same(t, c, c.Next)
	c.V[0] = 2
	require.Equal(t, 1, n.V[0])
}
