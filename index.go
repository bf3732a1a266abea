package nestmap

import (
	"github.com/cockroachdb/errors"
	"github.com/signadot/nestmap/debug"
	"github.com/signadot/nestmap/walk"
)

// Get returns the value stored under key. key is a single token, a Key
// wrapper, or an address. Addresses may pass through plain mappings
// stored as leaves.
func (m *Map) Get(key any) (any, error) {
	ref, err := resolveKey(key)
	if err != nil {
		return nil, err
	}
	if !ref.isAddr {
		v, ok := m.items[ref.scalar]
		if !ok {
			return nil, errors.Wrapf(ErrKeyNotFound, "%v", ref.scalar)
		}
		return v, nil
	}
	return m.getAddr(ref.addr)
}

func (m *Map) getAddr(addr Address) (any, error) {
	if len(addr) == 0 {
		return nil, ErrEmptyAddress
	}
	var cur any = m
	for i, seg := range addr {
		mp, ok := walk.AsMapping(cur)
		if !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "%s holds %T, not a container", addr[:i], cur)
		}
		v, ok := mp.Lookup(seg)
		if !ok {
			return nil, errors.Wrapf(ErrKeyNotFound, "%v (at %s)", seg, addr[:i+1])
		}
		cur = v
	}
	return cur, nil
}

// Set stores value under key, creating intermediate containers along an
// address. A nil value deletes an existing entry; wrap it in Value to
// store a nil leaf. On error the tree is left unchanged.
func (m *Map) Set(key, value any) error {
	ref, err := resolveKey(key)
	if err != nil {
		return err
	}
	verbatim := false
	if v, ok := value.(Value); ok {
		value, verbatim = v.V, true
	}
	if debug.Set() {
		debug.Logf("set %s = %v\n", m.target(ref), value)
	}
	if !ref.isAddr {
		return m.setOne(ref.scalar, value, verbatim)
	}
	return m.setAddr(ref.addr, value, verbatim)
}

func (m *Map) setOne(k, v any, verbatim bool) error {
	old, exists := m.items[k]
	if v == nil && !verbatim {
		if !exists {
			return nil
		}
		return m.deleteOne(k)
	}
	if !exists && m.Locked() {
		return errors.Wrapf(ErrLocked, "cannot add key %v", k)
	}
	child, isChild := v.(*Map)
	if isChild {
		if child == old {
			return nil
		}
		if err := m.canAdopt(child); err != nil {
			return err
		}
		if p := child.parent; p != nil {
			ck := child.key
			child.leave(func() { p.unlink(ck) })
		}
	}
	if oc, ok := old.(*Map); ok {
		oc.leave(func() { delete(m.items, k) })
	}
	if isChild {
		child.join(m, k, func() { m.store(k, child, !exists) })
		return nil
	}
	m.store(k, v, !exists)
	return nil
}

func (m *Map) setAddr(addr Address, v any, verbatim bool) error {
	if len(addr) == 0 {
		return ErrEmptyAddress
	}
	last := len(addr) - 1
	if v == nil && !verbatim {
		p, err := m.nodeAt(addr[:last])
		if errors.Is(err, ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return p.setOne(addr[last], nil, false)
	}
	node, i, err := m.locate(addr[:last])
	if err != nil {
		return err
	}
	if i < last {
		if node.Locked() {
			return errors.Wrapf(ErrLocked, "cannot add key %v", addr[i])
		}
		if child, ok := v.(*Map); ok {
			if err := node.canAdopt(child); err != nil {
				return err
			}
		}
		node = node.vivify(addr[i:last])
	}
	return node.setOne(addr[last], v, verbatim)
}

// Delete removes the entry under key, detaching it when it is a child.
func (m *Map) Delete(key any) error {
	ref, err := resolveKey(key)
	if err != nil {
		return err
	}
	if !ref.isAddr {
		return m.deleteOne(ref.scalar)
	}
	if len(ref.addr) == 0 {
		return ErrEmptyAddress
	}
	last := len(ref.addr) - 1
	p, err := m.nodeAt(ref.addr[:last])
	if err != nil {
		return err
	}
	return p.deleteOne(ref.addr[last])
}

func (m *Map) deleteOne(k any) error {
	v, ok := m.items[k]
	if !ok {
		return errors.Wrapf(ErrKeyNotFound, "%v", k)
	}
	if m.Locked() {
		return errors.Wrapf(ErrLocked, "cannot delete key %v", k)
	}
	if c, ok := v.(*Map); ok {
		c.leave(func() { m.unlink(k) })
		return nil
	}
	m.unlink(k)
	return nil
}

// Contains reports whether key is present. A *Map argument tests node
// containment: it holds iff the node's parent is m. An address is
// followed like Get and yields false at the first missing step.
func (m *Map) Contains(key any) (bool, error) {
	if c, ok := key.(*Map); ok {
		return c != nil && c.parent == m, nil
	}
	ref, err := resolveKey(key)
	if err != nil {
		return false, err
	}
	if !ref.isAddr {
		_, ok := m.items[ref.scalar]
		return ok, nil
	}
	if len(ref.addr) == 0 {
		return false, ErrEmptyAddress
	}
	_, err = m.getAddr(ref.addr)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrKeyNotFound), errors.Is(err, ErrTypeMismatch):
		return false, nil
	default:
		return false, err
	}
}

// Has is Contains with errors reported as absence.
func (m *Map) Has(key any) bool {
	ok, err := m.Contains(key)
	return err == nil && ok
}

// Missing returns the container under key, creating it and any missing
// intermediates when m is not locked.
func (m *Map) Missing(key any) (*Map, error) {
	ref, err := resolveKey(key)
	if err != nil {
		return nil, err
	}
	addr := ref.address()
	if len(addr) == 0 {
		return nil, ErrEmptyAddress
	}
	node, i, err := m.locate(addr)
	if err != nil {
		return nil, err
	}
	if i == len(addr) {
		return node, nil
	}
	if node.Locked() {
		return nil, errors.Wrapf(ErrLocked, "missing key %v", addr[i])
	}
	return node.vivify(addr[i:]), nil
}

// locate follows addr through existing child containers. It returns the
// deepest node reached and the index of the first segment that is absent,
// or len(addr) when the whole address exists.
func (m *Map) locate(addr Address) (*Map, int, error) {
	cur := m
	for i, seg := range addr {
		v, ok := cur.items[seg]
		if !ok {
			return cur, i, nil
		}
		c, ok := v.(*Map)
		if !ok {
			return nil, 0, errors.Wrapf(ErrTypeMismatch, "%s holds a %T leaf", addr[:i+1], v)
		}
		cur = c
	}
	return cur, len(addr), nil
}

func (m *Map) nodeAt(addr Address) (*Map, error) {
	node, i, err := m.locate(addr)
	if err != nil {
		return nil, err
	}
	if i < len(addr) {
		return nil, errors.Wrapf(ErrKeyNotFound, "%v (at %s)", addr[i], addr[:i+1])
	}
	return node, nil
}

// vivify creates a chain of empty containers below m, one per segment,
// and returns the deepest. The caller has checked m is unlocked and that
// segs[0] is absent.
func (m *Map) vivify(segs Address) *Map {
	cur := m
	for _, seg := range segs {
		c := cur.spawn()
		c.join(cur, seg, func() { cur.store(seg, c, true) })
		cur = c
	}
	return cur
}

// canAdopt checks that c may be stored in m.
func (m *Map) canAdopt(c *Map) error {
	for n := m; n != nil; n = n.parent {
		if n == c {
			return errors.Wrapf(ErrCycle, "cannot store %s below itself", c.Address())
		}
	}
	if p := c.parent; p != nil && p.Locked() {
		return errors.Wrapf(ErrLocked, "cannot move %v out of its parent", c.key)
	}
	return nil
}
