package main

import (
	"fmt"

	"github.com/signadot/nestmap"
	"github.com/signadot/nestmap/walk"

	"github.com/scott-cotton/cli"
)

func flat(cfg *FlatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Flat.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := []walk.Option{walk.Deep(!cfg.Shallow), walk.WithAddress(cfg.Addr)}
	return eachDoc(cfg.MainConfig, cc, args, func(i int, m *nestmap.Map) error {
		if err := writeSep(cc.Out, i); err != nil {
			return err
		}
		for k, v := range m.Items(opts...) {
			if a, ok := k.(walk.Address); ok {
				k = a.String()
			}
			if _, err := fmt.Fprintf(cc.Out, "%v = %s\n", k, inline(v)); err != nil {
				return err
			}
		}
		return nil
	})
}
