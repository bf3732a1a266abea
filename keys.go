package nestmap

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/signadot/nestmap/walk"
)

// Address is an ordered key sequence locating a value from a root.
type Address = walk.Address

// Key marks its payload as a single atomic key, so that a slice or array
// can be used as a key instead of being read as an address.
type Key struct {
	V any
}

// Value marks its payload to be stored verbatim. Setting Value{nil} stores
// a nil leaf where a bare nil would delete the entry.
type Value struct {
	V any
}

// keyRef is a key resolved at the API boundary: either a scalar token or
// an address of two or more (or zero) segments.
type keyRef struct {
	scalar any
	addr   Address
	isAddr bool
}

func (r keyRef) address() Address {
	if r.isAddr {
		return r.addr
	}
	return Address{r.scalar}
}

// target is the address of ref from the root of m's tree.
func (m *Map) target(ref keyRef) Address {
	return append(m.Address(), ref.address()...)
}

func resolveKey(key any) (keyRef, error) {
	switch k := key.(type) {
	case Key:
		if !hashable(k.V) {
			return keyRef{}, errors.Wrapf(ErrInvalidType, "invalid key type: %T", k.V)
		}
		return keyRef{scalar: k.V}, nil
	case *Map:
		return keyRef{}, errors.Wrapf(ErrInvalidType, "invalid key type: %T", key)
	case Address:
		return addrRef(k)
	case []any:
		return addrRef(Address(k))
	case []string:
		a := make(Address, len(k))
		for i := range k {
			a[i] = k[i]
		}
		return addrRef(a)
	}
	rv := reflect.ValueOf(key)
	if rv.Kind() == reflect.Slice {
		a := make(Address, rv.Len())
		for i := range a {
			a[i] = rv.Index(i).Interface()
		}
		return addrRef(a)
	}
	if !hashable(key) {
		return keyRef{}, errors.Wrapf(ErrInvalidType, "invalid key type: %T", key)
	}
	return keyRef{scalar: key}, nil
}

func addrRef(a Address) (keyRef, error) {
	res := make(Address, len(a))
	for i, seg := range a {
		if k, ok := seg.(Key); ok {
			seg = k.V
		}
		if _, ok := seg.(*Map); ok || !hashable(seg) {
			return keyRef{}, errors.Wrapf(ErrInvalidType, "invalid key type at segment %d: %T", i, seg)
		}
		res[i] = seg
	}
	if len(res) == 1 {
		return keyRef{scalar: res[0]}, nil
	}
	return keyRef{addr: res, isAddr: true}, nil
}

func hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}
