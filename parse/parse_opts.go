package parse

import (
	"github.com/signadot/nestmap"
	"github.com/signadot/nestmap/format"
)

type parseOpts struct {
	format  format.Format
	mapOpts []nestmap.Option
	lock    bool
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// MapOptions are applied to every container the parser creates.
func MapOptions(opts ...nestmap.Option) ParseOption {
	return func(o *parseOpts) { o.mapOpts = append(o.mapOpts, opts...) }
}

// Lock locks the root of the parsed tree once it is built.
func Lock(v bool) ParseOption {
	return func(o *parseOpts) { o.lock = v }
}
