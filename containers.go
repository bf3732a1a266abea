package nestmap

import (
	"iter"

	"github.com/signadot/nestmap/walk"
)

// IsLeaf reports whether no entry of m matches match. A nil match
// selects child *Map nodes.
func (m *Map) IsLeaf(match walk.Matcher) bool {
	if match == nil {
		match = walk.IsA[*Map]()
	}
	for _, v := range m.All() {
		if match(v) {
			return false
		}
	}
	return true
}

// Containers iterates the child nodes below m depth first, parents before
// their children. By default the walk is deep and excludes m; use
// walk.Inclusive, walk.Deep and walk.ContainerType to change that.
func (m *Map) Containers(opts ...walk.Option) iter.Seq[*Map] {
	opts = append([]walk.Option{
		walk.Inclusive(false),
		walk.ContainerType(walk.IsA[*Map]()),
	}, opts...)
	return func(yield func(*Map) bool) {
		for v := range walk.Containers(m, opts...) {
			c, ok := v.(*Map)
			if !ok {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Items iterates the entries of m. With walk.Deep it yields every leaf of
// the tree instead.
func (m *Map) Items(opts ...walk.Option) iter.Seq2[any, any] {
	return walk.Items(m, withMapContainers(opts)...)
}

func (m *Map) Values(opts ...walk.Option) iter.Seq[any] {
	return walk.Values(m, withMapContainers(opts)...)
}

func (m *Map) Keys(opts ...walk.Option) iter.Seq[any] {
	return walk.Keys(m, withMapContainers(opts)...)
}

// Leaves iterates every leaf of the tree with its address relative to m.
func (m *Map) Leaves(opts ...walk.Option) iter.Seq2[Address, any] {
	return walk.Leaves(m, withMapContainers(opts)...)
}

func withMapContainers(opts []walk.Option) []walk.Option {
	return append([]walk.Option{walk.ContainerType(walk.IsA[*Map]())}, opts...)
}
