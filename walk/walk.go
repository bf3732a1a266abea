package walk

import (
	"iter"

	"github.com/signadot/nestmap/debug"
)

type entry struct {
	key, val any
}

type frame struct {
	ents []entry
	next int
	addr Address
}

func newFrame(m Mapping, addr Address) *frame {
	f := &frame{addr: addr, ents: make([]entry, 0, m.Len())}
	for k, v := range m.All() {
		f.ents = append(f.ents, entry{key: k, val: v})
	}
	return f
}

// visit walks root depth first in pre-order. fn receives every entry along
// with its address and the container mapping when the entry is one; it
// returns false to stop. Containers are descended into only when descend
// is set.
func visit(root Mapping, c *config, descend bool, fn func(addr Address, key, val any, sub Mapping) bool) {
	stack := []*frame{newFrame(root, Address{})}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.ents) {
			stack = stack[:len(stack)-1]
			continue
		}
		e := top.ents[top.next]
		top.next++
		addr := top.addr.With(e.key)
		sub, isContainer := c.asContainer(e.val)
		if !fn(addr, e.key, e.val, sub) {
			return
		}
		if isContainer && descend {
			stack = append(stack, newFrame(sub, addr))
		}
	}
}

// Items iterates the entries of root. Without Deep it is a single level
// iteration over every entry. With Deep it yields every leaf below root in
// depth first pre-order, skipping the containers themselves; with
// WithAddress the key position holds the leaf's full Address.
func Items(root Mapping, opts ...Option) iter.Seq2[any, any] {
	c := newConfig(config{}, opts)
	return func(yield func(any, any) bool) {
		if !c.deep {
			for k, v := range root.All() {
				if !c.keep(v) {
					continue
				}
				if !yield(k, v) {
					return
				}
			}
			return
		}
		visit(root, c, true, func(addr Address, key, val any, sub Mapping) bool {
			if sub != nil || !c.keep(val) {
				return true
			}
			if debug.Walk() {
				debug.Logf("walk leaf %s\n", addr)
			}
			if c.withAddress {
				return yield(addr, val)
			}
			return yield(key, val)
		})
	}
}

// Leaves iterates every leaf below root with its full address.
func Leaves(root Mapping, opts ...Option) iter.Seq2[Address, any] {
	opts = append(opts, Deep(true), WithAddress(true))
	return func(yield func(Address, any) bool) {
		for a, v := range Items(root, opts...) {
			if !yield(a.(Address), v) {
				return
			}
		}
	}
}

// Values projects Items onto values.
func Values(root Mapping, opts ...Option) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range Items(root, opts...) {
			if !yield(v) {
				return
			}
		}
	}
}

// Keys projects Items onto keys, or onto addresses under WithAddress.
func Keys(root Mapping, opts ...Option) iter.Seq[any] {
	return func(yield func(any) bool) {
		for k := range Items(root, opts...) {
			if !yield(k) {
				return
			}
		}
	}
}

// Containers iterates every container below root in depth first
// pre-order. Inclusive (the default) yields root first when it matches
// the container type. Deep(false) restricts the result to the first level.
func Containers(root Mapping, opts ...Option) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range ContainersAddr(root, opts...) {
			if !yield(v) {
				return
			}
		}
	}
}

// ContainersAddr is Containers paired with each container's address.
func ContainersAddr(root Mapping, opts ...Option) iter.Seq2[Address, any] {
	c := newConfig(config{deep: true, inclusive: true}, opts)
	return func(yield func(Address, any) bool) {
		if c.inclusive && c.container(root) {
			if !yield(Address{}, root) {
				return
			}
		}
		visit(root, c, c.deep, func(addr Address, _, val any, sub Mapping) bool {
			if sub == nil {
				return true
			}
			return yield(addr, val)
		})
	}
}

// Walk iterates every entry below root, containers and leaves alike, in
// depth first pre-order with its full address.
func Walk(root Mapping, opts ...Option) iter.Seq2[Address, any] {
	c := newConfig(config{deep: true}, opts)
	return func(yield func(Address, any) bool) {
		visit(root, c, c.deep, func(addr Address, _, val any, _ Mapping) bool {
			return yield(addr, val)
		})
	}
}
