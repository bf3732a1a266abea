package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/nestmap"
	"github.com/signadot/nestmap/parse"

	"github.com/scott-cotton/cli"
)

var docSep = []byte("\n---\n")

func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", path, err)
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*nestmap.Map, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, opts...)
}

// eachDoc calls fn on every document of every file, or of stdin when
// there are no files.
func eachDoc(cfg *MainConfig, cc *cli.Context, files []string, fn func(i int, m *nestmap.Map) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	i := 0
	for _, file := range files {
		d, err := readFile(cc, file)
		if err != nil {
			return err
		}
		for _, doc := range bytes.Split(d, docSep) {
			m, err := parse.Parse(doc, cfg.parseOptsFor(file)...)
			if err != nil {
				return fmt.Errorf("error decoding document %d of %s: %w", i, file, err)
			}
			if err := fn(i, m); err != nil {
				return fmt.Errorf("error processing %s: %w", file, err)
			}
			i++
		}
	}
	return nil
}

func writeSep(w io.Writer, i int) error {
	if i == 0 {
		return nil
	}
	_, err := w.Write([]byte("---\n"))
	return err
}
