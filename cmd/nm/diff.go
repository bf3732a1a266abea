package main

import (
	"fmt"
	"io"

	"github.com/signadot/nestmap/libdiff"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getObjFile(cc, args[0], cfg.parseOptsFor(args[0])...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getObjFile(cc, args[1], cfg.parseOptsFor(args[1])...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	changes := libdiff.Diff(a, b)
	if len(changes) == 0 {
		return nil
	}
	if cfg.Reverse {
		changes = libdiff.Reverse(changes)
	}
	if err := writeChanges(cc.Out, changes, cfg.colors(cc.Out)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

func writeChanges(w io.Writer, changes []libdiff.Change, colors bool) error {
	if !colors {
		return libdiff.Format(w, changes)
	}
	ins := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	ins.EnableColor()
	del.EnableColor()
	for _, c := range changes {
		p := del
		if c.Op == libdiff.Insert {
			p = ins
		}
		if _, err := fmt.Fprintln(w, p.Sprint(c.String())); err != nil {
			return err
		}
	}
	return nil
}
