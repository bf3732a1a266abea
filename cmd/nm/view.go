package main

import (
	"github.com/signadot/nestmap"
	"github.com/signadot/nestmap/asciitree"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := []asciitree.Option{
		asciitree.Leaves(cfg.Leaves),
		asciitree.Colors(cfg.colors(cc.Out)),
		asciitree.ContainerOf[*nestmap.Map](),
	}
	return eachDoc(cfg.MainConfig, cc, args, func(i int, m *nestmap.Map) error {
		if err := writeSep(cc.Out, i); err != nil {
			return err
		}
		return asciitree.Print(cc.Out, m, opts...)
	})
}
