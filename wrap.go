package nestmap

import (
	"github.com/cockroachdb/errors"
	"github.com/signadot/nestmap/debug"
	"github.com/signadot/nestmap/walk"
)

type wrapConfig struct {
	factory   func() *Map
	shallow   bool
	deep      bool
	transform func(any) any
}

type WrapOption func(*wrapConfig)

// WithFactory sets the constructor used for every container Wrap builds.
func WithFactory(f func() *Map) WrapOption {
	return func(c *wrapConfig) { c.factory = f }
}

// ShallowCopy stores a shallow copy of each leaf.
func ShallowCopy() WrapOption {
	return func(c *wrapConfig) { c.shallow = true }
}

// DeepCopy stores a deep copy of each leaf.
func DeepCopy() WrapOption {
	return func(c *wrapConfig) { c.deep = true }
}

// WithTransform applies f to each leaf, after any copy.
func WithTransform(f func(any) any) WrapOption {
	return func(c *wrapConfig) { c.transform = f }
}

func (c *wrapConfig) leaf(v any) any {
	switch {
	case c.shallow:
		v = shallowCopy(v)
	case c.deep:
		v = deepCopy(v)
	}
	if c.transform != nil {
		v = c.transform(v)
	}
	return v
}

// Wrap rebuilds a nested mapping as a tree of *Map. Every value that is
// itself a mapping becomes a child container bound with Set semantics, so
// the result is addressable with multi-key Get. Other values are stored as
// leaves, nil included. A Value wrapper in the source is stored verbatim
// without being descended into.
//
// Plain Go maps are visited in sorted key order.
func Wrap(source any, opts ...WrapOption) (*Map, error) {
	c := &wrapConfig{}
	for _, opt := range opts {
		opt(c)
	}
	if c.shallow && c.deep {
		return nil, errors.Wrap(ErrConflictingOptions, "shallow and deep copy")
	}
	if c.factory == nil {
		c.factory = func() *Map { return New() }
	}
	src, ok := walk.AsMapping(source)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidType, "cannot wrap %T", source)
	}
	type pending struct {
		src walk.Mapping
		dst *Map
	}
	root := c.factory()
	stack := []pending{{src, root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for k, v := range top.src.All() {
			if _, ok := k.(*Map); ok || !hashable(k) {
				return nil, errors.Wrapf(ErrInvalidType, "invalid key type: %T", k)
			}
			if debug.Wrap() {
				debug.Logf("wrap %s (%T)\n", top.dst.Address().With(k), v)
			}
			if w, ok := v.(Value); ok {
				if err := top.dst.setOne(k, w.V, true); err != nil {
					return nil, err
				}
				continue
			}
			if sub, ok := walk.AsMapping(v); ok {
				child := c.factory()
				if err := top.dst.setOne(k, child, true); err != nil {
					return nil, err
				}
				stack = append(stack, pending{sub, child})
				continue
			}
			if err := top.dst.setOne(k, c.leaf(v), true); err != nil {
				return nil, err
			}
		}
	}
	return root, nil
}
