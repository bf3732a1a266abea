package main

import (
	"fmt"

	"github.com/signadot/nestmap"
	"github.com/signadot/nestmap/eval"
	"github.com/signadot/nestmap/walk"

	"github.com/scott-cotton/cli"
)

func filter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: filter requires an expression", cli.ErrUsage)
	}
	prg, err := eval.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return eachDoc(cfg.MainConfig, cc, args[1:], func(i int, m *nestmap.Map) error {
		if err := writeSep(cc.Out, i); err != nil {
			return err
		}
		ms, err := eval.Filter(m, prg, walk.ContainerType(walk.IsA[*nestmap.Map]()))
		if err != nil {
			return err
		}
		for _, match := range ms {
			if cfg.Values {
				_, err = fmt.Fprintln(cc.Out, inline(match.Value))
			} else {
				_, err = fmt.Fprintf(cc.Out, "%s = %s\n", match.Address, inline(match.Value))
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}
