package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/nestmap/encode"
	"github.com/signadot/nestmap/format"
	"github.com/signadot/nestmap/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='output with color'"`
	Indent int  `cli:"name=indent desc='indentation width'"`
	Lock   bool `cli:"name=lock desc='lock parsed documents'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) ioFormat(explicit *format.Format) format.Format {
	var fmat format.Format
	switch {
	case cfg.Y:
		fmat = format.YAMLFormat
	case cfg.J:
		fmat = format.JSONFormat
	}
	if explicit != nil {
		fmat = *explicit
	}
	return fmat
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{
		parse.ParseFormat(cfg.ioFormat(cfg.InFormat)),
		parse.Lock(cfg.Lock),
	}
}

// parseOptsFor is parseOpts with the input format guessed from the file
// suffix when no format flag was given.
func (cfg *MainConfig) parseOptsFor(path string) []parse.ParseOption {
	res := cfg.parseOpts()
	if cfg.J || cfg.Y || cfg.InFormat != nil || path == "-" {
		return res
	}
	return append(res, parse.ParseFormat(format.FromPath(path)))
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.ioFormat(cfg.OutFormat)),
	}
	if cfg.Indent > 0 {
		res = append(res, encode.Indent(cfg.Indent))
	}
	if cfg.colors(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	Leaves bool `cli:"name=l aliases=leaves desc='show leaves'"`
	View   *cli.Command
}

type CatConfig struct {
	*MainConfig

	Cat *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type FlatConfig struct {
	*MainConfig

	Addr    bool `cli:"name=a aliases=address desc='show full addresses'"`
	Shallow bool `cli:"name=s aliases=shallow desc='only the first level'"`

	Flat *cli.Command
}

type ContainersConfig struct {
	*MainConfig

	Exclusive bool `cli:"name=x desc='exclude the root'"`
	Shallow   bool `cli:"name=s aliases=shallow desc='only the first level'"`

	Containers *cli.Command
}

type FilterConfig struct {
	*MainConfig

	Values bool `cli:"name=v desc='only print values'"`
	Filter *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=m aliases=merge desc='apply an RFC 7386 merge patch'"`
	Make  bool `cli:"name=make desc='print the merge patch turning the first file into the second'"`

	Patch *cli.Command
}

type SnapshotConfig struct {
	*MainConfig
	Restore bool `cli:"name=r aliases=restore desc='restore snapshots and encode them'"`

	Snapshot *cli.Command
}
