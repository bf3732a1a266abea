package walk

import "github.com/cockroachdb/errors"

// Resolve returns the value found by following addr from root.
func Resolve(root any, addr Address) (any, error) {
	if len(addr) == 0 {
		return nil, ErrEmptyAddress
	}
	cur := root
	for i, seg := range addr {
		m, ok := AsMapping(cur)
		if !ok {
			if i == 0 {
				return nil, errors.Wrapf(ErrInvalidRoot, "root is %T", root)
			}
			return nil, errors.Wrapf(ErrInvalidRoot, "value at %s is %T", addr[:i], cur)
		}
		v, ok := m.Lookup(seg)
		if !ok {
			return nil, errors.Wrapf(ErrKeyNotFound, "%v (at %s)", seg, addr[:i+1])
		}
		cur = v
	}
	return cur, nil
}
