package eval

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/nestmap"
	"github.com/signadot/nestmap/walk"
)

func testTree(t *testing.T) *nestmap.Map {
	t.Helper()
	m := nestmap.New()
	sets := []struct {
		key any
		val any
	}{
		{walk.Address{"a", "x"}, 1},
		{walk.Address{"a", "y"}, 5},
		{walk.Address{"a", "z"}, "five"},
		{"b", 10},
		{walk.Address{"c", "d", "e"}, true},
	}
	for _, s := range sets {
		if err := m.Set(s.key, s.val); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

func TestFilter(t *testing.T) {
	m := testTree(t)
	tests := []struct {
		src  string
		want []string
	}{
		{src: `true`, want: []string{"a.x", "a.y", "a.z", "b", "c.d.e"}},
		{src: `false`, want: nil},
		{src: `type(value) == "int" && value > 1`, want: []string{"a.y", "b"}},
		{src: `depth == 1`, want: []string{"b"}},
		{src: `depth > 2`, want: []string{"c.d.e"}},
		{src: `key == "z"`, want: []string{"a.z"}},
		{src: `path[0] == "a" && value != "five"`, want: []string{"a.x", "a.y"}},
		{src: `address startsWith "c."`, want: []string{"c.d.e"}},
		{src: `GetPath("b") == 10 && key == "x"`, want: []string{"a.x"}},
		{src: `GetPath("nope") == nil && depth == 1`, want: []string{"b"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p, err := Compile(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			ms, err := Filter(m, p)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, match := range ms {
				got = append(got, match.Address.String())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("-want +got:\n%s", diff)
			}
		})
	}
}

func TestFilterValues(t *testing.T) {
	m := testTree(t)
	p, err := Compile(`value == true`)
	if err != nil {
		t.Fatal(err)
	}
	ms, err := Filter(m, p)
	if err != nil {
		t.Fatal(err)
	}
	want := []Match{{Address: walk.Address{"c", "d", "e"}, Value: true}}
	if diff := cmp.Diff(want, ms); diff != "" {
		t.Errorf("-want +got:\n%s", diff)
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`key ==`, `"not a bool"`, `depth + 1`, `unknown > 1`} {
		_, err := Compile(src)
		if !errors.Is(err, ErrCompile) {
			t.Errorf("%s: expected compile error, got %v", src, err)
		}
	}
}

func TestFilterEvalError(t *testing.T) {
	m := testTree(t)
	p, err := Compile(`value > 1`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Filter(m, p)
	if !errors.Is(err, ErrEval) {
		t.Fatalf("expected eval error, got %v", err)
	}
}

func TestEnvGetPath(t *testing.T) {
	var env Env
	if v := env.GetPath("a"); v != nil {
		t.Errorf("expected nil without a root, got %v", v)
	}
	env = newEnv(testTree(t), walk.Address{"b"}, 10)
	if v := env.GetPath("a.y"); v != 5 {
		t.Errorf("got %v", v)
	}
	if env.Key != "b" || env.Depth != 1 || env.Address != "b" {
		t.Errorf("unexpected env %+v", env)
	}
}
