package nestmap

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

var leafOptions = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Equal reports whether m and o hold the same keys with equal values,
// regardless of order. Parent, name and lock state are ignored. Child
// nodes are compared level by level; leaves are compared with go-cmp.
func (m *Map) Equal(o *Map) bool {
	if m == nil || o == nil {
		return m == o
	}
	stack := [][2]*Map{{m, o}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a, b := top[0], top[1]
		if a == b {
			continue
		}
		if a.Len() != b.Len() {
			return false
		}
		for k, v := range a.All() {
			ov, ok := b.items[k]
			if !ok {
				return false
			}
			ac, aIsNode := v.(*Map)
			bc, bIsNode := ov.(*Map)
			switch {
			case aIsNode && bIsNode:
				stack = append(stack, [2]*Map{ac, bc})
			case aIsNode || bIsNode:
				return false
			case !cmp.Equal(v, ov, leafOptions...):
				return false
			}
		}
	}
	return true
}

// String renders m's contents, with children as nested dumps.
func (m *Map) String() string {
	var b strings.Builder
	m.dump(&b)
	return b.String()
}

func (m *Map) dump(b *strings.Builder) {
	b.WriteString("Map({")
	i := 0
	for k, v := range m.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		i++
		b.WriteString(repr(k))
		b.WriteString(": ")
		if c, ok := v.(*Map); ok {
			c.dump(b)
			continue
		}
		b.WriteString(repr(v))
	}
	b.WriteString("})")
}

func repr(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

// Clone returns a detached copy of m's tree. Leaves are shared.
func (m *Map) Clone() *Map {
	res := m.spawn()
	stack := []struct{ src, dst *Map }{{m, res}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for k, v := range top.src.All() {
			if c, ok := v.(*Map); ok {
				dc := c.spawn()
				dc.join(top.dst, k, func() { top.dst.store(k, dc, true) })
				stack = append(stack, struct{ src, dst *Map }{c, dc})
				continue
			}
			top.dst.store(k, v, true)
		}
	}
	return res
}
