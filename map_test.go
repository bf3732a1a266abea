package nestmap

import (
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/nestmap/walk"
	"github.com/stretchr/testify/require"
)

func mustWrap(t *testing.T, src any, opts ...WrapOption) *Map {
	t.Helper()
	m, err := Wrap(src, opts...)
	require.NoError(t, err)
	return m
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		name string
		key  any
		val  any
	}{
		{name: "string", key: "a", val: 1},
		{name: "int key", key: 3, val: "three"},
		{name: "array key", key: [2]int{1, 2}, val: true},
		{name: "wrapped slice key", key: Key{"x"}, val: 1.5},
		{name: "struct key", key: struct{ A int }{1}, val: "s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			require.NoError(t, m.Set(tt.key, tt.val))
			got, err := m.Get(tt.key)
			require.NoError(t, err)
			require.Equal(t, tt.val, got)
			require.True(t, m.Has(tt.key))
			require.Equal(t, 1, m.Len())
		})
	}
}

func TestSetAddress(t *testing.T) {
	m := New()
	require.NoError(t, m.Set(Address{"a", "b", "c"}, 1))

	a, err := m.Get("a")
	require.NoError(t, err)
	ab, err := a.(*Map).Get("b")
	require.NoError(t, err)
	require.Equal(t, "b", ab.(*Map).Key())

	b, err := m.Get([]string{"a", "b"})
	require.NoError(t, err)
	require.Same(t, ab, b)
	require.False(t, a.(*Map).IsLeaf(nil))
	require.True(t, b.(*Map).IsLeaf(nil))
	require.False(t, b.(*Map).IsLeaf(walk.IsA[int]()))

	c, err := m.Get([]any{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, 1, c)

	bm := b.(*Map)
	require.Equal(t, Address{"a", "b"}, bm.Address())
	require.Equal(t, 2, bm.Depth())
	require.Same(t, m, bm.Root())
	require.Same(t, a, bm.Parent())
	require.Equal(t, Address{}, m.Address())
	require.Equal(t, 0, m.Depth())
	require.True(t, m.IsRoot())
}

func TestSetAddressOfLength1(t *testing.T) {
	m := New()
	require.NoError(t, m.Set([]string{"a"}, 1))
	got, err := m.Get("a")
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestTarget(t *testing.T) {
	m := New()
	require.NoError(t, m.Set(Address{"a", "x"}, 1))
	v, err := m.Get("a")
	require.NoError(t, err)
	a := v.(*Map)
	tests := []struct {
		key  any
		want Address
	}{
		{"b", Address{"a", "b"}},
		{Address{"b", "c"}, Address{"a", "b", "c"}},
		{Key{[2]string{"b", "c"}}, Address{"a", [2]string{"b", "c"}}},
	}
	for _, tt := range tests {
		ref, err := resolveKey(tt.key)
		require.NoError(t, err)
		require.Equal(t, tt.want, a.target(ref))
	}
}

func TestGetErrors(t *testing.T) {
	m := New()
	require.NoError(t, m.Set(Address{"a", "b"}, 1))
	require.NoError(t, m.Set("plain", map[string]any{"x": 2}))

	tests := []struct {
		name string
		key  any
		want error
	}{
		{name: "missing", key: "z", want: ErrKeyNotFound},
		{name: "missing deep", key: Address{"a", "z"}, want: ErrKeyNotFound},
		{name: "through leaf", key: Address{"a", "b", "c"}, want: ErrTypeMismatch},
		{name: "empty", key: Address{}, want: ErrEmptyAddress},
		{name: "unhashable", key: Address{"a", []int{1}}, want: ErrInvalidType},
		{name: "map key", key: New(), want: ErrInvalidType},
		{name: "unhashable key payload", key: Key{[]int{1}}, want: ErrInvalidType},
		{name: "map[string]any key", key: map[string]any{}, want: ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Get(tt.key)
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestGetThroughPlainMapping(t *testing.T) {
	m := New()
	require.NoError(t, m.Set("plain", map[string]any{"x": map[string]any{"y": 2}}))
	got, err := m.Get(Address{"plain", "x", "y"})
	require.NoError(t, err)
	require.Equal(t, 2, got)
}

func TestSetNilDeletes(t *testing.T) {
	m := New()
	require.NoError(t, m.Set(Address{"a", "b"}, 1))
	a, _ := m.Get("a")
	child := a.(*Map)

	require.NoError(t, m.Set("a", nil))
	require.False(t, m.Has("a"))
	require.True(t, child.IsRoot())
	require.Nil(t, child.Key())

	// absent keys stay absent, and no intermediates are created
	require.NoError(t, m.Set("a", nil))
	require.NoError(t, m.Set(Address{"x", "y", "z"}, nil))
	require.Equal(t, 0, m.Len())

	require.NoError(t, m.Set("n", Value{nil}))
	v, err := m.Get("n")
	require.NoError(t, err)
	require.Nil(t, v)
	require.True(t, m.Has("n"))
}

func TestSetNilMatchesDelete(t *testing.T) {
	build := func() *Map {
		return mustWrap(t, map[string]any{"a": map[string]any{"b": 1}, "c": 2})
	}
	for _, key := range []any{"a", "c", Address{"a", "b"}} {
		m1, m2 := build(), build()
		require.NoError(t, m1.Set(key, nil))
		require.NoError(t, m2.Delete(key))
		require.True(t, m1.Equal(m2), "%v: %s != %s", key, m1, m2)
	}
}

func TestDelete(t *testing.T) {
	m := New()
	require.NoError(t, m.Set(Address{"p", "c", "x"}, 1))
	p, _ := m.Get("p")
	pm := p.(*Map)
	c, _ := pm.Get("c")
	cm := c.(*Map)

	require.NoError(t, pm.Delete("c"))
	require.Nil(t, cm.Parent())
	require.Nil(t, cm.Key())
	require.True(t, cm.IsRoot())
	ok, err := pm.Contains(cm)
	require.NoError(t, err)
	require.False(t, ok)

	// the detached subtree stays usable
	x, err := cm.Get("x")
	require.NoError(t, err)
	require.Equal(t, 1, x)
	require.Equal(t, Address{}, cm.Address())

	err = pm.Delete("c")
	require.True(t, errors.Is(err, ErrKeyNotFound))

	require.NoError(t, m.Set(Address{"p", "q", "r"}, 2))
	require.NoError(t, m.Delete(Address{"p", "q", "r"}))
	require.True(t, m.Has(Address{"p", "q"}))
	require.False(t, m.Has(Address{"p", "q", "r"}))

	err = m.Delete(Address{"nope", "r"})
	require.True(t, errors.Is(err, ErrKeyNotFound))
	err = m.Delete(Address{})
	require.True(t, errors.Is(err, ErrEmptyAddress))
}

func TestOverwriteDetaches(t *testing.T) {
	m := New()
	require.NoError(t, m.Set(Address{"a", "b"}, 1))
	a, _ := m.Get("a")
	old := a.(*Map)

	require.NoError(t, m.Set("a", 5))
	require.True(t, old.IsRoot())
	require.Nil(t, old.Key())
	ok, _ := m.Contains(old)
	require.False(t, ok)

	repl := New()
	require.NoError(t, m.Set("a", repl))
	require.Same(t, m, repl.Parent())
	require.NoError(t, m.Set("a", New()))
	require.True(t, repl.IsRoot())
}

func TestOverwriteKeepsOrder(t *testing.T) {
	m := New()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, m.Set(k, 1))
	}
	require.NoError(t, m.Set("a", New()))
	require.NoError(t, m.Set("b", 2))
	require.Equal(t, []any{"a", "b", "c"}, slices.Collect(m.Keys()))

	require.NoError(t, m.Delete("a"))
	require.NoError(t, m.Set("a", 1))
	require.Equal(t, []any{"b", "c", "a"}, slices.Collect(m.Keys()))
}

func TestMoveBetweenParents(t *testing.T) {
	p1, p2 := New(), New()
	c := New()
	require.NoError(t, p1.Set("c", c))
	require.NoError(t, p2.Set("d", c))

	require.False(t, p1.Has("c"))
	require.Same(t, p2, c.Parent())
	require.Equal(t, "d", c.Key())
	ok, _ := p1.Contains(c)
	require.False(t, ok)
	ok, _ = p2.Contains(c)
	require.True(t, ok)

	// re-storing in place is a no-op
	require.NoError(t, p2.Set("d", c))
	require.Same(t, p2, c.Parent())
}

func TestCycle(t *testing.T) {
	m := New()
	require.NoError(t, m.Set(Address{"a", "b"}, 1))
	a, _ := m.Get("a")

	err := a.(*Map).Set("m", m)
	require.True(t, errors.Is(err, ErrCycle))
	err = m.Set("self", m)
	require.True(t, errors.Is(err, ErrCycle))
	err = a.(*Map).Set(Address{"x", "y"}, m)
	require.True(t, errors.Is(err, ErrCycle))
	require.False(t, a.(*Map).Has("x"))
}

func TestContains(t *testing.T) {
	m := mustWrap(t, map[string]any{"a": map[string]any{"b": 1}})
	tests := []struct {
		name string
		key  any
		want bool
		err  error
	}{
		{name: "top", key: "a", want: true},
		{name: "absent", key: "z"},
		{name: "address", key: Address{"a", "b"}, want: true},
		{name: "address missing", key: Address{"a", "z"}},
		{name: "address through leaf", key: Address{"a", "b", "c"}},
		{name: "empty", key: Address{}, err: ErrEmptyAddress},
		{name: "unhashable", key: []any{"a", map[string]int{}}, err: ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Contains(tt.key)
			if tt.err != nil {
				require.True(t, errors.Is(err, tt.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestContainsNode(t *testing.T) {
	m := mustWrap(t, map[string]any{"a": map[string]any{"b": map[string]any{}}})
	a, _ := m.Get("a")
	b, _ := m.Get(Address{"a", "b"})

	ok, _ := m.Contains(a)
	require.True(t, ok)
	ok, _ = a.(*Map).Contains(b)
	require.True(t, ok)
	ok, _ = m.Contains(b)
	require.False(t, ok)
	ok, _ = m.Contains(New())
	require.False(t, ok)
	ok, _ = m.Contains(m)
	require.False(t, ok)
}

func TestMissing(t *testing.T) {
	m := New()
	c, err := m.Missing(Address{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, Address{"a", "b"}, c.Address())

	again, err := m.Missing(Address{"a", "b"})
	require.NoError(t, err)
	require.Same(t, c, again)

	a, err := m.Missing("a")
	require.NoError(t, err)
	require.Same(t, c.Parent(), a)

	require.NoError(t, c.Set("leaf", 1))
	_, err = m.Missing(Address{"a", "b", "leaf", "x"})
	require.True(t, errors.Is(err, ErrTypeMismatch))
	_, err = c.Missing("leaf")
	require.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestSetThroughLeaf(t *testing.T) {
	m := New()
	require.NoError(t, m.Set("a", 1))
	err := m.Set(Address{"a", "b"}, 2)
	require.True(t, errors.Is(err, ErrTypeMismatch))
	v, _ := m.Get("a")
	require.Equal(t, 1, v)
}

func TestName(t *testing.T) {
	m := New()
	require.Nil(t, m.Name())
	c, err := m.Missing("child")
	require.NoError(t, err)
	require.Equal(t, "child", c.Name())
	require.NoError(t, c.SetName("kid"))
	require.Equal(t, "kid", c.Name())
	require.Equal(t, "child", c.Key())

	err = c.SetName(3)
	require.True(t, errors.Is(err, ErrInvalidType))

	named := New(WithName("top"))
	require.Equal(t, "top", named.Name())
}

func TestEqual(t *testing.T) {
	a := mustWrap(t, map[string]any{"x": map[string]any{"y": []any{1, 2}}, "z": 1.0})
	b := New()
	require.NoError(t, b.Set("z", 1.0))
	require.NoError(t, b.Set(Address{"x", "y"}, []any{1, 2}))
	b.Lock()
	require.NoError(t, b.SetName("other"))
	require.True(t, a.Equal(b))

	require.NoError(t, a.Set("z", 1))
	require.False(t, a.Equal(b))
	require.False(t, a.Equal(nil))
}

func TestString(t *testing.T) {
	m := New()
	require.NoError(t, m.Set(Address{"a", "b"}, 1))
	require.NoError(t, m.Set("c", "d"))
	require.Equal(t, `Map({"a": Map({"b": 1}), "c": "d"})`, m.String())
}

func TestClone(t *testing.T) {
	m := mustWrap(t, map[string]any{"a": map[string]any{"b": 1}, "c": 2})
	c := m.Clone()
	require.True(t, m.Equal(c))
	require.True(t, c.IsRoot())

	require.NoError(t, c.Set(Address{"a", "b"}, 3))
	v, _ := m.Get(Address{"a", "b"})
	require.Equal(t, 1, v)
	cb, _ := c.Get("a")
	require.Same(t, c, cb.(*Map).Parent())
}

func TestZeroValue(t *testing.T) {
	var m Map
	require.NoError(t, m.Set(Address{"a", "b"}, 1))
	if diff := cmp.Diff([]any{1}, slices.Collect(m.Values(walk.Deep(true)))); diff != "" {
		t.Error(diff)
	}
}
