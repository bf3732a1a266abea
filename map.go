package nestmap

import (
	"iter"
	"slices"

	"github.com/cockroachdb/errors"
)

type lockState int8

const (
	lockUnset lockState = iota
	lockOn
	lockOff
)

// Map is an insertion ordered mapping whose values are leaves or child
// *Map nodes. Every child knows its parent and the key it is stored
// under. The zero value is an empty, unlocked root.
//
// A Map is not safe for concurrent use; a tree must have a single writer.
type Map struct {
	parent *Map
	key    any
	lock   lockState
	name   *string
	hooks  Hooks

	keys  []any
	items map[any]any
}

type Option func(*Map)

// WithHooks installs the join/leave observer. Containers created by
// auto-vivification inherit it.
func WithHooks(h Hooks) Option {
	return func(m *Map) { m.hooks = h }
}

func WithName(name string) Option {
	return func(m *Map) { m.name = &name }
}

// WithLock sets the node's own lock flag.
func WithLock(v bool) Option {
	return func(m *Map) {
		if v {
			m.lock = lockOn
		} else {
			m.lock = lockOff
		}
	}
}

func New(opts ...Option) *Map {
	m := &Map{items: map[any]any{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// spawn creates an empty root sharing m's hooks.
func (m *Map) spawn() *Map {
	return &Map{items: map[any]any{}, hooks: m.hooks}
}

func (m *Map) Parent() *Map { return m.parent }

func (m *Map) Root() *Map {
	r := m
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Key returns the key under which m is stored in its parent, or nil for
// a root.
func (m *Map) Key() any { return m.key }

// Name returns the display name, which defaults to the key.
func (m *Map) Name() any {
	if m.name != nil {
		return *m.name
	}
	return m.key
}

func (m *Map) SetName(v any) error {
	s, ok := v.(string)
	if !ok {
		return errors.Wrapf(ErrInvalidType, "name must be a string, got %T", v)
	}
	m.name = &s
	return nil
}

func (m *Map) Depth() int {
	d := 0
	for n := m.parent; n != nil; n = n.parent {
		d++
	}
	return d
}

// Address returns the keys leading from the root to m.
func (m *Map) Address() Address {
	res := Address{}
	for n := m; n.parent != nil; n = n.parent {
		res = append(res, n.key)
	}
	slices.Reverse(res)
	return res
}

func (m *Map) IsRoot() bool { return m.parent == nil }

// Lock forbids adding or removing keys in m and in every descendant that
// does not set its own flag.
func (m *Map) Lock() { m.lock = lockOn }

// Unlock sets m's own flag to unlocked, overriding a locked ancestor.
func (m *Map) Unlock() { m.lock = lockOff }

// ClearLock drops m's own flag so that it inherits its parent's state.
func (m *Map) ClearLock() { m.lock = lockUnset }

// Locked reports the resolved lock state.
func (m *Map) Locked() bool {
	for n := m; n != nil; n = n.parent {
		switch n.lock {
		case lockOn:
			return true
		case lockOff:
			return false
		}
	}
	return false
}

func (m *Map) Len() int { return len(m.items) }

// All iterates the entries of m in insertion order.
func (m *Map) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, k := range m.keys {
			v, ok := m.items[k]
			if !ok {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

// Lookup is a single level lookup of a scalar key.
func (m *Map) Lookup(key any) (any, bool) {
	if !hashable(key) {
		return nil, false
	}
	v, ok := m.items[key]
	return v, ok
}

func (m *Map) store(k, v any, fresh bool) {
	if m.items == nil {
		m.items = map[any]any{}
	}
	if fresh {
		m.keys = append(m.keys, k)
	}
	m.items[k] = v
}

func (m *Map) unlink(k any) {
	delete(m.items, k)
	if i := slices.Index(m.keys, k); i != -1 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
}
