package mergeop

import (
	"github.com/cockroachdb/errors"
	"github.com/signadot/nestmap"
	"github.com/signadot/nestmap/debug"
	"github.com/signadot/nestmap/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

var ErrPatch = errors.New("patch error")

// JSONPatch applies the RFC 6902 operation list in patch to m.
func JSONPatch(m *nestmap.Map, patch []byte, opts ...parse.ParseOption) (*nestmap.Map, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode json patch"), ErrPatch)
	}
	return apply(m, opts, func(doc []byte) ([]byte, error) {
		return ops.Apply(doc)
	})
}

// MergePatch applies the RFC 7386 merge patch in patch to m.
func MergePatch(m *nestmap.Map, patch []byte, opts ...parse.ParseOption) (*nestmap.Map, error) {
	return apply(m, opts, func(doc []byte) ([]byte, error) {
		return jsonpatch.MergePatch(doc, patch)
	})
}

// CreateMergePatch returns the merge patch turning from into to.
func CreateMergePatch(from, to *nestmap.Map) ([]byte, error) {
	a, err := from.MarshalJSON()
	if err != nil {
		return nil, err
	}
	b, err := to.MarshalJSON()
	if err != nil {
		return nil, err
	}
	p, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, errors.Mark(err, ErrPatch)
	}
	return p, nil
}

func apply(m *nestmap.Map, opts []parse.ParseOption, fn func([]byte) ([]byte, error)) (*nestmap.Map, error) {
	doc, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if debug.Set() {
		debug.Logf("patching %s\n", doc)
	}
	out, err := fn(doc)
	if err != nil {
		return nil, errors.Mark(err, ErrPatch)
	}
	opts = append(opts[:len(opts):len(opts)], parse.ParseJSON())
	return parse.Parse(out, opts...)
}
