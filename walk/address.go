package walk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Address is an ordered key sequence locating a value from a root mapping.
type Address []any

// String renders the address as dot separated segments. Segments that are
// not plain text, or that contain separators, are quoted.
//
// Examples:
//   - root → ""
//   - ["a", "b"] → "a.b"
//   - ["a.b", 1] → "\"a.b\".1"
func (a Address) String() string {
	var b strings.Builder
	for i, seg := range a {
		if i > 0 {
			b.WriteByte('.')
		}
		s, ok := seg.(string)
		if !ok {
			s = fmt.Sprint(seg)
		}
		if s == "" || strings.ContainsAny(s, ".\"\\ ") {
			s = strconv.Quote(s)
		}
		b.WriteString(s)
	}
	return b.String()
}

// Equal reports whether a and o hold the same segments.
func (a Address) Equal(o Address) bool {
	if len(a) != len(o) {
		return false
	}
	for i := range a {
		if a[i] != o[i] {
			return false
		}
	}
	return true
}

// With returns a copy of a extended by key.
func (a Address) With(key any) Address {
	res := make(Address, len(a)+1)
	copy(res, a)
	res[len(a)] = key
	return res
}

// ParseAddress parses the text form produced by Address.String. All
// segments are returned as strings.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, nil
	}
	res := Address{}
	for {
		seg, rest, err := parseSegment(s)
		if err != nil {
			return nil, err
		}
		res = append(res, seg)
		if rest == "" {
			return res, nil
		}
		if rest[0] != '.' {
			return nil, errors.Newf("expected '.' at %q", rest)
		}
		s = rest[1:]
	}
}

func parseSegment(frag string) (seg, rest string, err error) {
	if len(frag) == 0 {
		return "", "", errors.New("expected segment at end of string")
	}
	if frag[0] != '"' {
		i := strings.IndexByte(frag, '.')
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	for i := 1; i < len(frag); i++ {
		switch c := frag[i]; {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			seg, err := strconv.Unquote(frag[:i+1])
			if err != nil {
				return "", "", err
			}
			return seg, frag[i+1:], nil
		}
	}
	return "", "", errors.New("end of string scanning for '\"'")
}
