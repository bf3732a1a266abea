package nestmap

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
)

// snapshot is a flat list of entries. Each entry names the entry of the
// node holding it, or -1 for the root; node entries precede their own
// entries.
type snapshot struct {
	Entries []snapEntry `json:"entries"`
}

type snapEntry struct {
	P int        `json:"p"`
	K snapValue  `json:"k"`
	V *snapValue `json:"v,omitempty"`
}

// snapValue is a value tagged with its Go type. Scalars are held in V,
// slice and array elements in E, map pairs in M.
type snapValue struct {
	T   string          `json:"t"`
	V   json.RawMessage `json:"v,omitempty"`
	E   []snapValue     `json:"e,omitempty"`
	M   []snapPair      `json:"m,omitempty"`
	Nil bool            `json:"nil,omitempty"`
}

type snapPair struct {
	K snapValue `json:"k"`
	V snapValue `json:"v"`
}

// Snapshot serializes the key/value structure of m. Keys and leaves must
// be built from the predeclared types: booleans, strings, numbers, and
// slices, arrays and maps of them, any included. They come back from
// Restore with their exact types. Other values fail with ErrInvalidType.
// Parent, name and lock state are not recorded.
func (m *Map) Snapshot() ([]byte, error) {
	var ents []snapEntry
	type pending struct {
		node *Map
		idx  int
	}
	stack := []pending{{m, -1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for k, v := range top.node.All() {
			ks, err := snapValueOf(reflect.ValueOf(k))
			if err != nil {
				return nil, errors.Wrapf(err, "key %v at %s", k, top.node.Address())
			}
			e := snapEntry{P: top.idx, K: ks}
			if c, ok := v.(*Map); ok {
				ents = append(ents, e)
				stack = append(stack, pending{c, len(ents) - 1})
				continue
			}
			vs, err := snapValueOf(reflect.ValueOf(v))
			if err != nil {
				return nil, errors.Wrapf(err, "at %s", top.node.Address().With(k))
			}
			e.V = &vs
			ents = append(ents, e)
		}
	}
	return json.Marshal(snapshot{Entries: ents})
}

var anyType = reflect.TypeFor[any]()

var basicTypes = map[string]reflect.Type{
	"bool":       reflect.TypeFor[bool](),
	"string":     reflect.TypeFor[string](),
	"int":        reflect.TypeFor[int](),
	"int8":       reflect.TypeFor[int8](),
	"int16":      reflect.TypeFor[int16](),
	"int32":      reflect.TypeFor[int32](),
	"int64":      reflect.TypeFor[int64](),
	"uint":       reflect.TypeFor[uint](),
	"uint8":      reflect.TypeFor[uint8](),
	"uint16":     reflect.TypeFor[uint16](),
	"uint32":     reflect.TypeFor[uint32](),
	"uint64":     reflect.TypeFor[uint64](),
	"float32":    reflect.TypeFor[float32](),
	"float64":    reflect.TypeFor[float64](),
	"complex64":  reflect.TypeFor[complex64](),
	"complex128": reflect.TypeFor[complex128](),
}

// typeName returns the name Restore parses back into t.
func typeName(t reflect.Type) (string, error) {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if _, err := typeName(t.Elem()); err != nil {
			return "", err
		}
	case reflect.Map:
		if _, err := typeName(t.Key()); err != nil {
			return "", err
		}
		if _, err := typeName(t.Elem()); err != nil {
			return "", err
		}
	default:
		if t == anyType {
			return t.String(), nil
		}
		if basicTypes[t.String()] != t {
			return "", errors.Wrapf(ErrInvalidType, "cannot snapshot %s", t)
		}
		return t.String(), nil
	}
	if t.Name() != "" {
		return "", errors.Wrapf(ErrInvalidType, "cannot snapshot named type %s", t)
	}
	return t.String(), nil
}

func snapValueOf(rv reflect.Value) (snapValue, error) {
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return snapValue{T: "nil"}, nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return snapValue{T: "nil"}, nil
	}
	t, err := typeName(rv.Type())
	if err != nil {
		return snapValue{}, err
	}
	res := snapValue{T: t}
	var x any
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		if rv.IsNil() {
			res.Nil = true
			return res, nil
		}
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		res.E = make([]snapValue, rv.Len())
		for i := range res.E {
			if res.E[i], err = snapValueOf(rv.Index(i)); err != nil {
				return snapValue{}, err
			}
		}
		return res, nil
	case reflect.Map:
		res.M = make([]snapPair, 0, rv.Len())
		it := rv.MapRange()
		for it.Next() {
			k, err := snapValueOf(it.Key())
			if err != nil {
				return snapValue{}, err
			}
			v, err := snapValueOf(it.Value())
			if err != nil {
				return snapValue{}, err
			}
			res.M = append(res.M, snapPair{K: k, V: v})
		}
		return res, nil
	case reflect.Bool:
		x = rv.Bool()
	case reflect.String:
		x = rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		x = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		x = rv.Uint()
	case reflect.Float32, reflect.Float64:
		x = strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())
	case reflect.Complex64, reflect.Complex128:
		x = strconv.FormatComplex(rv.Complex(), 'g', -1, rv.Type().Bits())
	}
	if res.V, err = json.Marshal(x); err != nil {
		return snapValue{}, err
	}
	return res, nil
}

// Restore rebuilds a tree from the output of Snapshot. Nodes are recreated
// top down with Missing and leaves stored with Set, so parents and keys
// are derived exactly as for a fresh assignment.
func Restore(data []byte, opts ...Option) (*Map, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "decoding snapshot")
	}
	root := New(opts...)
	lock := root.lock
	root.lock = lockUnset
	defer func() { root.lock = lock }()
	nodes := make([]*Map, len(s.Entries))
	for i, e := range s.Entries {
		parent := root
		if e.P != -1 {
			if e.P < 0 || e.P >= i || nodes[e.P] == nil {
				return nil, errors.Wrapf(ErrInvalidType, "entry %d has invalid parent %d", i, e.P)
			}
			parent = nodes[e.P]
		}
		k, err := restoreValue(e.K)
		if err != nil {
			return nil, err
		}
		if e.V == nil {
			if nodes[i], err = parent.Missing(Key{k}); err != nil {
				return nil, err
			}
			continue
		}
		v, err := restoreValue(*e.V)
		if err != nil {
			return nil, err
		}
		if err := parent.Set(Key{k}, Value{v}); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func restoreValue(s snapValue) (any, error) {
	if s.T == "nil" {
		return nil, nil
	}
	t, err := parseType(s.T)
	if err != nil {
		return nil, err
	}
	rv, err := buildValue(t, s)
	if err != nil {
		return nil, err
	}
	return rv.Interface(), nil
}

// element restores s into a value assignable to t.
func element(t reflect.Type, s snapValue) (reflect.Value, error) {
	x, err := restoreValue(s)
	if err != nil {
		return reflect.Value{}, err
	}
	if x == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(x)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, errors.Wrapf(ErrInvalidType, "cannot use %s as %s", rv.Type(), t)
	}
	return rv, nil
}

func buildValue(t reflect.Type, s snapValue) (reflect.Value, error) {
	rv := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Slice, reflect.Map:
		if s.Nil {
			return rv, nil
		}
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if t.Kind() == reflect.Slice {
			rv = reflect.MakeSlice(t, len(s.E), len(s.E))
		} else if len(s.E) != t.Len() {
			return reflect.Value{}, errors.Wrapf(ErrInvalidType, "%s holds %d elements", t, len(s.E))
		}
		for i, es := range s.E {
			ev, err := element(t.Elem(), es)
			if err != nil {
				return reflect.Value{}, err
			}
			rv.Index(i).Set(ev)
		}
	case reflect.Map:
		rv = reflect.MakeMapWithSize(t, len(s.M))
		for _, p := range s.M {
			kv, err := element(t.Key(), p.K)
			if err != nil {
				return reflect.Value{}, err
			}
			vv, err := element(t.Elem(), p.V)
			if err != nil {
				return reflect.Value{}, err
			}
			rv.SetMapIndex(kv, vv)
		}
	case reflect.Bool:
		var b bool
		if err := json.Unmarshal(s.V, &b); err != nil {
			return reflect.Value{}, err
		}
		rv.SetBool(b)
	case reflect.String:
		var str string
		if err := json.Unmarshal(s.V, &str); err != nil {
			return reflect.Value{}, err
		}
		rv.SetString(str)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		if err := json.Unmarshal(s.V, &n); err != nil {
			return reflect.Value{}, err
		}
		if rv.OverflowInt(n) {
			return reflect.Value{}, errors.Wrapf(ErrInvalidType, "%d overflows %s", n, t)
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var n uint64
		if err := json.Unmarshal(s.V, &n); err != nil {
			return reflect.Value{}, err
		}
		if rv.OverflowUint(n) {
			return reflect.Value{}, errors.Wrapf(ErrInvalidType, "%d overflows %s", n, t)
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		var str string
		if err := json.Unmarshal(s.V, &str); err != nil {
			return reflect.Value{}, err
		}
		f, err := strconv.ParseFloat(str, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		rv.SetFloat(f)
	case reflect.Complex64, reflect.Complex128:
		var str string
		if err := json.Unmarshal(s.V, &str); err != nil {
			return reflect.Value{}, err
		}
		c, err := strconv.ParseComplex(str, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		rv.SetComplex(c)
	default:
		return reflect.Value{}, errors.Wrapf(ErrInvalidType, "cannot restore %s", t)
	}
	return rv, nil
}

// parseType reads back a name produced by typeName.
func parseType(s string) (reflect.Type, error) {
	if t, ok := basicTypes[s]; ok {
		return t, nil
	}
	switch {
	case s == anyType.String():
		return anyType, nil
	case strings.HasPrefix(s, "[]"):
		elem, err := parseType(s[2:])
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	case strings.HasPrefix(s, "["):
		i := strings.IndexByte(s, ']')
		if i == -1 {
			break
		}
		n, err := strconv.Atoi(s[1:i])
		if err != nil || n < 0 {
			break
		}
		elem, err := parseType(s[i+1:])
		if err != nil {
			return nil, err
		}
		return reflect.ArrayOf(n, elem), nil
	case strings.HasPrefix(s, "map["):
		j := closingBracket(s, len("map"))
		if j == -1 {
			break
		}
		key, err := parseType(s[len("map["):j])
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			break
		}
		elem, err := parseType(s[j+1:])
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(key, elem), nil
	}
	return nil, errors.Wrapf(ErrInvalidType, "unknown snapshot type %q", s)
}

// closingBracket returns the index of the bracket closing the one at open.
func closingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
