package walk

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"

	"github.com/goccy/go-yaml"
)

// Mapping is a keyed container the walker can descend into.
type Mapping interface {
	Len() int
	All() iter.Seq2[any, any]
	Lookup(key any) (any, bool)
}

// Named is implemented by mappings that expose a display name.
type Named interface {
	Name() any
}

// Matcher reports whether a value belongs to some class of values.
type Matcher func(v any) bool

// IsA returns a Matcher accepting values whose dynamic type is T, or which
// implement T when T is an interface type.
func IsA[T any]() Matcher {
	return func(v any) bool {
		_, ok := v.(T)
		return ok
	}
}

// IsMapping is the default container Matcher: it accepts anything
// AsMapping can adapt.
func IsMapping(v any) bool {
	_, ok := AsMapping(v)
	return ok
}

// AsMapping adapts v to a Mapping.
func AsMapping(v any) (Mapping, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case Mapping:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, false
		}
		return x, true
	case map[string]any:
		return stringMap(x), true
	case yaml.MapSlice:
		return mapSlice(x), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		return reflectMap{rv}, true
	}
	return nil, false
}

// FromMap adapts a plain string keyed map.
func FromMap(m map[string]any) Mapping {
	return stringMap(m)
}

type stringMap map[string]any

func (m stringMap) Len() int { return len(m) }

func (m stringMap) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}

func (m stringMap) Lookup(key any) (any, bool) {
	s, ok := key.(string)
	if !ok {
		return nil, false
	}
	v, ok := m[s]
	return v, ok
}

type mapSlice yaml.MapSlice

func (m mapSlice) Len() int { return len(m) }

func (m mapSlice) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, item := range m {
			if !yield(item.Key, item.Value) {
				return
			}
		}
	}
}

func (m mapSlice) Lookup(key any) (any, bool) {
	for _, item := range m {
		if item.Key == key {
			return item.Value, true
		}
	}
	return nil, false
}

type reflectMap struct {
	v reflect.Value
}

func (m reflectMap) Len() int { return m.v.Len() }

func (m reflectMap) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		keys := m.v.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		})
		for _, k := range keys {
			if !yield(k.Interface(), m.v.MapIndex(k).Interface()) {
				return
			}
		}
	}
}

func (m reflectMap) Lookup(key any) (any, bool) {
	if key == nil {
		return nil, false
	}
	kv := reflect.ValueOf(key)
	kt := m.v.Type().Key()
	if !kv.Type().AssignableTo(kt) {
		if !kv.Type().ConvertibleTo(kt) || kv.Kind() != kt.Kind() {
			return nil, false
		}
		kv = kv.Convert(kt)
	}
	v := m.v.MapIndex(kv)
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}
