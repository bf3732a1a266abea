package main

import (
	"fmt"
	"io"

	"github.com/signadot/nestmap"
	"github.com/signadot/nestmap/encode"
	"github.com/signadot/nestmap/walk"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, an address", cli.ErrUsage)
	}
	addr, err := walk.ParseAddress(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if len(addr) == 0 {
		return fmt.Errorf("%w: invalid address \"\"", cli.ErrUsage)
	}
	return eachDoc(cfg.MainConfig, cc, args[1:], func(i int, m *nestmap.Map) error {
		v, err := m.Get(addr)
		if err != nil {
			return fmt.Errorf("error getting %s: %w", addr, err)
		}
		if err := writeSep(cc.Out, i); err != nil {
			return err
		}
		return writeValue(cfg.MainConfig, cc.Out, v)
	})
}

// writeValue encodes containers like documents and anything else as a
// single json or yaml value.
func writeValue(cfg *MainConfig, w io.Writer, v any) error {
	if m, ok := v.(*nestmap.Map); ok {
		return encode.Encode(m, w, cfg.encOpts(w)...)
	}
	var (
		d   []byte
		err error
	)
	if cfg.ioFormat(cfg.OutFormat).IsJSON() {
		d, err = json.Marshal(v)
		d = append(d, '\n')
	} else {
		d, err = yaml.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("error encoding %T: %w", v, err)
	}
	_, err = w.Write(d)
	return err
}

// inline renders v on one line.
func inline(v any) string {
	if m, ok := v.(*nestmap.Map); ok {
		d, err := m.MarshalJSON()
		if err == nil {
			return string(d)
		}
	}
	d, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(d)
}
