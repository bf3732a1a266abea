package parse

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-yaml"
	"github.com/signadot/nestmap"
	"github.com/signadot/nestmap/debug"
	"github.com/signadot/nestmap/format"
)

func Parse(d []byte, opts ...ParseOption) (*nestmap.Map, error) {
	pOpts := &parseOpts{format: format.YAMLFormat}
	for _, f := range opts {
		f(pOpts)
	}
	var (
		res *nestmap.Map
		err error
	)
	switch pOpts.format {
	case format.JSONFormat:
		res = nestmap.New(pOpts.mapOpts...)
		if err := res.UnmarshalJSON(d); err != nil {
			if errors.Is(err, nestmap.ErrInvalidType) {
				return nil, errors.Wrapf(ErrNotMapping, "%v", err)
			}
			return nil, errors.Mark(err, ErrParse)
		}
	default:
		res, err = parseYAML(d, pOpts)
		if err != nil {
			return nil, err
		}
	}
	if pOpts.lock {
		res.Lock()
	}
	return res, nil
}

func parseYAML(d []byte, opts *parseOpts) (*nestmap.Map, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, errors.Mark(err, ErrParse)
	}
	if debug.Parse() {
		debug.Logf("parsed yaml document %T\n", v)
	}
	switch v.(type) {
	case nil:
		return nestmap.New(opts.mapOpts...), nil
	case yaml.MapSlice:
	default:
		return nil, errors.Wrapf(ErrNotMapping, "got %T", v)
	}
	return nestmap.Wrap(normalizeKeys(v.(yaml.MapSlice)),
		nestmap.WithFactory(func() *nestmap.Map { return nestmap.New(opts.mapOpts...) }),
		nestmap.WithTransform(normalize))
}

func normalizeKeys(ms yaml.MapSlice) yaml.MapSlice {
	for i := range ms {
		ms[i].Key = normalizeInt(ms[i].Key)
		if sub, ok := ms[i].Value.(yaml.MapSlice); ok {
			ms[i].Value = normalizeKeys(sub)
		}
	}
	return ms
}

func normalizeInt(v any) any {
	switch x := v.(type) {
	case uint64:
		if x <= math.MaxInt {
			return int(x)
		}
	case int64:
		if x >= math.MinInt && x <= math.MaxInt {
			return int(x)
		}
	}
	return v
}

// normalize converts decoded YAML scalars and lists to the shapes the
// JSON decoder produces.
func normalize(v any) any {
	switch x := v.(type) {
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = normalize(x[i])
		}
		return res
	case yaml.MapSlice:
		res := make(map[string]any, len(x))
		for _, item := range x {
			res[fmt.Sprint(item.Key)] = normalize(item.Value)
		}
		return res
	}
	return normalizeInt(v)
}
