package encode

import (
	"bytes"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/lexer"
	"github.com/signadot/nestmap"
	"github.com/signadot/nestmap/format"
)

type EncState struct {
	indent int
	format format.Format
	colors *Colors
}

// Encode writes m to w followed by a newline. YAML output keeps the
// insertion order of every container.
func Encode(m *nestmap.Map, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	var (
		d   []byte
		err error
	)
	switch es.format {
	case format.JSONFormat:
		d, err = json.MarshalIndent(m, "", strings.Repeat(" ", es.indent))
		if err != nil {
			return errors.Wrap(err, "encoding json")
		}
		d = append(d, '\n')
	default:
		d, err = yaml.MarshalWithOptions(m.MapSlice(), yaml.Indent(es.indent))
		if err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		if m.Len() == 0 {
			d = []byte("{}\n")
		}
		if es.colors != nil {
			s := es.colors.printer().PrintTokens(lexer.Tokenize(string(d)))
			d = []byte(strings.TrimRight(s, "\n") + "\n")
		}
	}
	_, err = w.Write(d)
	return err
}

func MustString(m *nestmap.Map, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(m, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
