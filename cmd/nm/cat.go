package main

import (
	"fmt"
	"io"

	"github.com/signadot/nestmap"
	"github.com/signadot/nestmap/encode"

	"github.com/scott-cotton/cli"
)

func cat(cfg *CatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cat.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	return eachDoc(cfg.MainConfig, cc, args, func(i int, m *nestmap.Map) error {
		if err := writeSep(cc.Out, i); err != nil {
			return err
		}
		if err := writeDoc(cc.Out, m, opts); err != nil {
			return fmt.Errorf("error encoding document %d: %w", i, err)
		}
		return nil
	})
}

func writeDoc(w io.Writer, m *nestmap.Map, opts []encode.EncodeOption) error {
	return encode.Encode(m, w, opts...)
}
