package nestmap

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
)

// MarshalJSON encodes m as a JSON object in insertion order. Keys that are
// not strings are written in their fmt form.
func (m *Map) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := m.encodeJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *Map) encodeJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	i := 0
	for k, v := range m.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		kd, err := json.Marshal(keyString(k))
		if err != nil {
			return err
		}
		buf.Write(kd)
		buf.WriteByte(':')
		if c, ok := v.(*Map); ok {
			if err := c.encodeJSON(buf); err != nil {
				return err
			}
			continue
		}
		vd, err := json.Marshal(v)
		if err != nil {
			return errors.Wrapf(err, "encoding %s", m.Address().With(k))
		}
		buf.Write(vd)
	}
	buf.WriteByte('}')
	return nil
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// UnmarshalJSON replaces the contents of m with a JSON object. Nested
// objects become child nodes; objects inside arrays stay plain
// map[string]any. Integral numbers decode to int, others to float64, and
// null is kept as a nil leaf.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.Wrapf(ErrInvalidType, "expected a JSON object, got %v", tok)
	}
	tmp := m.spawn()
	if err := decodeEntries(dec, tmp); err != nil {
		return err
	}
	return m.replace(tmp)
}

// replace moves the entries of src into m, detaching m's current
// children first.
func (m *Map) replace(src *Map) error {
	if m.Locked() {
		return errors.Wrap(ErrLocked, "cannot replace contents")
	}
	for _, k := range append([]any(nil), m.keys...) {
		if err := m.deleteOne(k); err != nil {
			return err
		}
	}
	for _, k := range append([]any(nil), src.keys...) {
		if err := m.setOne(k, src.items[k], true); err != nil {
			return err
		}
	}
	return nil
}

func decodeEntries(dec *json.Decoder, m *Map) error {
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		k, ok := kt.(string)
		if !ok {
			return errors.Newf("expected object key, got %v", kt)
		}
		vt, err := dec.Token()
		if err != nil {
			return err
		}
		v, err := decodeValue(dec, vt, m)
		if err != nil {
			return err
		}
		if err := m.setOne(k, v, true); err != nil {
			return err
		}
	}
	_, err := dec.Token()
	return err
}

// decodeValue finishes decoding the value starting with tok. Objects
// become children of parent, or plain maps when parent is nil.
func decodeValue(dec *json.Decoder, tok json.Token, parent *Map) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			if parent != nil {
				c := parent.spawn()
				return c, decodeEntries(dec, c)
			}
			obj := map[string]any{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				vt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				v, err := decodeValue(dec, vt, nil)
				if err != nil {
					return nil, err
				}
				obj[fmt.Sprint(kt)] = v
			}
			_, err := dec.Token()
			return obj, err
		case '[':
			list := []any{}
			for dec.More() {
				vt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				v, err := decodeValue(dec, vt, nil)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			_, err := dec.Token()
			return list, err
		}
		return nil, errors.Newf("unexpected delimiter %v", t)
	case json.Number:
		return number(t), nil
	default:
		return t, nil
	}
}

func number(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return string(n)
}
