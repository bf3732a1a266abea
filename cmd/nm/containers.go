package main

import (
	"fmt"

	"github.com/signadot/nestmap"
	"github.com/signadot/nestmap/walk"

	"github.com/scott-cotton/cli"
)

func containers(cfg *ContainersConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Containers.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := []walk.Option{walk.Inclusive(!cfg.Exclusive), walk.Deep(!cfg.Shallow)}
	return eachDoc(cfg.MainConfig, cc, args, func(i int, m *nestmap.Map) error {
		if err := writeSep(cc.Out, i); err != nil {
			return err
		}
		for c := range m.Containers(opts...) {
			label := c.Address().String()
			if c.IsRoot() {
				label = "."
			}
			if _, err := fmt.Fprintf(cc.Out, "%s (%d)\n", label, c.Len()); err != nil {
				return err
			}
		}
		return nil
	})
}
