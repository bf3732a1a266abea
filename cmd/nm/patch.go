package main

import (
	"fmt"

	"github.com/signadot/nestmap"
	"github.com/signadot/nestmap/format"
	"github.com/signadot/nestmap/mergeop"
	"github.com/signadot/nestmap/parse"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Make {
		return makePatch(cfg, cc, args)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	p, err := getPatch(cfg, cc, args[0])
	if err != nil {
		return err
	}
	apply := mergeop.JSONPatch
	if cfg.Merge {
		apply = mergeop.MergePatch
	}
	opts := cfg.encOpts(cc.Out)
	return eachDoc(cfg.MainConfig, cc, args[1:], func(i int, m *nestmap.Map) error {
		res, err := apply(m, p, parse.Lock(cfg.Lock))
		if err != nil {
			return fmt.Errorf("error patching document %d: %w", i, err)
		}
		if err := writeSep(cc.Out, i); err != nil {
			return err
		}
		return writeDoc(cc.Out, res, opts)
	})
}

// getPatch reads a patch file, converting yaml patches to json.
func getPatch(cfg *PatchConfig, cc *cli.Context, path string) ([]byte, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	f := format.FromPath(path)
	if cfg.InFormat != nil {
		f = *cfg.InFormat
	}
	if f.IsJSON() {
		return d, nil
	}
	j, err := yaml.YAMLToJSON(d)
	if err != nil {
		return nil, fmt.Errorf("error converting patch %s to json: %w", path, err)
	}
	return j, nil
}

func makePatch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: patch -make requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getObjFile(cc, args[0], cfg.parseOptsFor(args[0])...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getObjFile(cc, args[1], cfg.parseOptsFor(args[1])...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	p, err := mergeop.CreateMergePatch(a, b)
	if err != nil {
		return err
	}
	res, err := parse.Parse(p, parse.ParseJSON())
	if err != nil {
		return err
	}
	return writeDoc(cc.Out, res, cfg.encOpts(cc.Out))
}
