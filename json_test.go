package nestmap

import (
	"math"
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func leaves(m *Map) map[string]any {
	res := map[string]any{}
	for a, v := range m.Leaves() {
		res[a.String()] = v
	}
	return res
}

func TestJSON(t *testing.T) {
	m := New()
	require.NoError(t, m.Set(Address{"z", "y"}, 1))
	require.NoError(t, m.Set("a", []any{"x", 2.5}))
	require.NoError(t, m.Set("n", Value{nil}))
	require.NoError(t, m.Set(3, true))

	d, err := json.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"z":{"y":1},"a":["x",2.5],"n":null,"3":true}`, string(d))
	require.Equal(t, `{"z":{"y":1},"a":["x",2.5],"n":null,"3":true}`, string(d))

	var back Map
	require.NoError(t, json.Unmarshal(d, &back))
	want := map[string]any{"z.y": 1, "a": []any{"x", 2.5}, "n": nil, "3": true}
	if diff := cmp.Diff(want, leaves(&back)); diff != "" {
		t.Errorf("leaves (-want +got):\n%s", diff)
	}
	z, _ := back.Get("z")
	require.Same(t, &back, z.(*Map).Parent())
}

func TestUnmarshalJSONNested(t *testing.T) {
	m := New()
	require.NoError(t, m.UnmarshalJSON([]byte(`{"a":{"b":{}},"l":[{"k":1}],"f":1.0,"big":1e3}`)))
	b, err := m.Get(Address{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, 0, b.(*Map).Len())
	l, _ := m.Get("l")
	require.Equal(t, []any{map[string]any{"k": 1}}, l)
	f, _ := m.Get("f")
	require.Equal(t, 1.0, f)
	big, _ := m.Get("big")
	require.Equal(t, 1000.0, big)

	err = m.UnmarshalJSON([]byte(`[1]`))
	require.True(t, errors.Is(err, ErrInvalidType))
	require.True(t, m.Has("a"))
}

func TestUnmarshalJSONReplaces(t *testing.T) {
	m := New()
	require.NoError(t, m.Set(Address{"old", "x"}, 1))
	old, _ := m.Get("old")
	require.NoError(t, m.UnmarshalJSON([]byte(`{"new":2}`)))
	require.False(t, m.Has("old"))
	require.True(t, old.(*Map).IsRoot())

	m.Lock()
	err := m.UnmarshalJSON([]byte(`{"x":1}`))
	require.True(t, errors.Is(err, ErrLocked))
}

func TestMarshalYAML(t *testing.T) {
	m := New()
	require.NoError(t, m.Set(Address{"b", "c"}, 1))
	require.NoError(t, m.Set("a", "s"))
	d, err := yaml.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, "b:\n  c: 1\na: s\n", string(d))
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := New()
	require.NoError(t, m.Set(Address{"a", "aa", "aaa"}, 0))
	require.NoError(t, m.Set("b", 1.0))
	require.NoError(t, m.Set(Address{"c", "cc"}, float32(2.5)))
	require.NoError(t, m.Set(Address{"c", 7}, uint8(3)))
	require.NoError(t, m.Set("nan", math.Inf(1)))
	require.NoError(t, m.Set("nil", Value{nil}))
	require.NoError(t, m.Set("list", []any{"x", 1.5}))
	_, err := m.Missing("empty")
	require.NoError(t, err)
	m.Lock()

	d, err := m.Snapshot()
	require.NoError(t, err)
	back, err := Restore(d)
	require.NoError(t, err)

	require.True(t, m.Equal(back), "%s != %s", m, back)
	require.False(t, back.Locked())
	cc, err := back.Get(Address{"c", "cc"})
	require.NoError(t, err)
	require.IsType(t, float32(0), cc)
	c, _ := back.Get("c")
	require.Equal(t, Address{"c"}, c.(*Map).Address())

	want := map[string]any{}
	for a, v := range m.Leaves() {
		want[a.String()] = v
	}
	if diff := cmp.Diff(want, leaves(back)); diff != "" {
		t.Errorf("leaves (-want +got):\n%s", diff)
	}
}

func TestSnapshotTypedValues(t *testing.T) {
	tests := []struct {
		name string
		key  any
		val  any
	}{
		{name: "int slice", key: "xs", val: []int{1, 2}},
		{name: "nil int slice", key: "xs", val: []int(nil)},
		{name: "empty int slice", key: "xs", val: []int{}},
		{name: "typed map", key: "p", val: map[string]int{"x": 1, "y": 2}},
		{name: "map of slices", key: "p", val: map[int][]float32{1: {0.5}, 2: nil}},
		{name: "any slice", key: "l", val: []any{uint16(3), []string{"a"}, nil, map[string]any{"k": int8(-1)}}},
		{name: "array", key: "arr", val: [3]bool{true, false, true}},
		{name: "byte slice", key: "raw", val: []byte("hi")},
		{name: "complex", key: "z", val: complex(1, -2)},
		{name: "array key", key: Key{[2]int{1, 2}}, val: "pair"},
		{name: "map with array keys", key: "m", val: map[[2]string]uint{{"a", "b"}: 7}},
		{name: "float key", key: 1.5, val: int64(-9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			require.NoError(t, m.Set(Address{"a", tt.key}, tt.val))
			d, err := m.Snapshot()
			require.NoError(t, err)
			back, err := Restore(d)
			require.NoError(t, err)
			got, err := back.Get(Address{"a", tt.key})
			require.NoError(t, err)
			require.IsType(t, tt.val, got)
			if diff := cmp.Diff(tt.val, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			require.True(t, m.Equal(back))
		})
	}
}

type celsius float64

func TestSnapshotErrors(t *testing.T) {
	for _, v := range []any{celsius(1), []celsius{1}, struct{}{}, New(), &struct{}{}, map[string]error{}} {
		m := New()
		require.NoError(t, m.Set(Address{"a", "b"}, []any{v}))
		_, err := m.Snapshot()
		require.True(t, errors.Is(err, ErrInvalidType), "%T: %v", v, err)
	}
	m := New()
	require.NoError(t, m.Set(Key{celsius(2)}, 1))
	_, err := m.Snapshot()
	require.True(t, errors.Is(err, ErrInvalidType))

	_, err = Restore([]byte(`{"entries":[{"p":-1,"k":{"t":"weird","v":1},"v":{"t":"nil"}}]}`))
	require.True(t, errors.Is(err, ErrInvalidType))

	_, err = Restore([]byte(`{"entries":[{"p":3,"k":{"t":"string","v":"a"},"v":{"t":"nil"}}]}`))
	require.True(t, errors.Is(err, ErrInvalidType))

	_, err = Restore([]byte(`{"entries":[{"p":-1,"k":{"t":"string","v":"a"},"v":{"t":"int8","v":300}}]}`))
	require.True(t, errors.Is(err, ErrInvalidType))

	_, err = Restore([]byte(`{"entries":[{"p":-1,"k":{"t":"string","v":"a"},"v":{"t":"[2]int","e":[{"t":"int","v":1}]}}]}`))
	require.True(t, errors.Is(err, ErrInvalidType))

	_, err = Restore([]byte(`not json`))
	require.Error(t, err)

	locked, err := Restore([]byte(`{"entries":[{"p":-1,"k":{"t":"string","v":"a"},"v":{"t":"int","v":1}}]}`), WithLock(true))
	require.NoError(t, err)
	require.True(t, locked.Locked())
	require.True(t, locked.Has("a"))
}

func TestParseType(t *testing.T) {
	for _, v := range []any{
		0, "", []int{}, [2][]string{}, map[string]any{}, map[[2]int][]map[string]uint8{}, []any{},
	} {
		rt := reflect.TypeOf(v)
		name, err := typeName(rt)
		require.NoError(t, err)
		got, err := parseType(name)
		require.NoError(t, err)
		require.Equal(t, rt, got)
	}
	for _, s := range []string{"map[[]int]string", "[x]int", "chan int", "map[int"} {
		_, err := parseType(s)
		require.True(t, errors.Is(err, ErrInvalidType), s)
	}
}
