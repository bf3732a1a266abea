package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/nestmap/walk"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Insert Op = iota + 1
	Delete
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return "?"
	}
}

// Change is a leaf, or an empty container, present on only one side.
type Change struct {
	Op      Op
	Address walk.Address
	Value   any
}

func (c Change) String() string {
	return c.Op.String() + " " + line(c.Address, c.Value)
}

type entry struct {
	addr walk.Address
	val  any
}

// Diff returns the changes turning from into to, in document order.
func Diff(from, to walk.Mapping) []Change {
	fromText, fromIdx := flatten(from)
	toText, toIdx := flatten(to)

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToRunes(fromText, toText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(a, b, false), lines)

	var res []Change
	for _, d := range diffs {
		var (
			op  Op
			idx map[string]entry
		)
		switch d.Type {
		case diffpatch.DiffInsert:
			op, idx = Insert, toIdx
		case diffpatch.DiffDelete:
			op, idx = Delete, fromIdx
		default:
			continue
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			e := idx[ln]
			res = append(res, Change{Op: op, Address: e.addr, Value: e.val})
		}
	}
	return res
}

// Reverse returns the changes turning to back into from.
func Reverse(changes []Change) []Change {
	res := make([]Change, len(changes))
	for i, c := range changes {
		switch c.Op {
		case Insert:
			c.Op = Delete
		case Delete:
			c.Op = Insert
		}
		res[i] = c
	}
	return res
}

// Format writes one "+" or "-" line per change.
func Format(w io.Writer, changes []Change) error {
	for _, c := range changes {
		if _, err := io.WriteString(w, c.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func flatten(m walk.Mapping) (string, map[string]entry) {
	var b strings.Builder
	idx := map[string]entry{}
	add := func(a walk.Address, v any) {
		ln := line(a, v) + "\n"
		idx[ln] = entry{addr: a, val: v}
		b.WriteString(ln)
	}
	for a, v := range walk.Walk(m) {
		if sub, ok := walk.AsMapping(v); ok && sub.Len() > 0 {
			continue
		}
		add(a, v)
	}
	return b.String(), idx
}

func line(a walk.Address, v any) string {
	if sub, ok := walk.AsMapping(v); ok && sub.Len() == 0 {
		return a.String() + " = {}"
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%s = %q (string)", a, s)
	}
	return fmt.Sprintf("%s = %v (%T)", a, v, v)
}
