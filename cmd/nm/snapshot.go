package main

import (
	"bytes"
	"fmt"

	"github.com/signadot/nestmap"

	"github.com/scott-cotton/cli"
)

func snapshot(cfg *SnapshotConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Snapshot.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Restore {
		return restore(cfg, cc, args)
	}
	return eachDoc(cfg.MainConfig, cc, args, func(i int, m *nestmap.Map) error {
		d, err := m.Snapshot()
		if err != nil {
			return fmt.Errorf("error taking snapshot of document %d: %w", i, err)
		}
		_, err = cc.Out.Write(append(d, '\n'))
		return err
	})
}

// restore reads snapshots, one per line.
func restore(cfg *SnapshotConfig, cc *cli.Context, files []string) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	opts := cfg.encOpts(cc.Out)
	i := 0
	for _, file := range files {
		d, err := readFile(cc, file)
		if err != nil {
			return err
		}
		for _, ln := range bytes.Split(d, []byte("\n")) {
			if len(bytes.TrimSpace(ln)) == 0 {
				continue
			}
			m, err := nestmap.Restore(ln)
			if err != nil {
				return fmt.Errorf("error restoring snapshot %d of %s: %w", i, file, err)
			}
			if cfg.Lock {
				m.Lock()
			}
			if err := writeSep(cc.Out, i); err != nil {
				return err
			}
			if err := writeDoc(cc.Out, m, opts); err != nil {
				return err
			}
			theLog.Debug("restored snapshot", "file", file, "index", i, "entries", m.Len())
			i++
		}
	}
	return nil
}
