package asciitree

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/signadot/nestmap/walk"
	"github.com/xlab/treeprint"
)

var ErrNotMapping = errors.New("not a mapping")

type config struct {
	colors    *bool
	leaves    bool
	container walk.Matcher
	err       error
}

type Option func(*config)

// Colors forces colored output on or off. By default output is colored
// when writing to a terminal.
func Colors(v bool) Option {
	return func(c *config) { c.colors = &v }
}

// Leaves includes leaf entries, rendered as "key: value".
func Leaves(v bool) Option {
	return func(c *config) { c.leaves = v }
}

// ContainerOf restricts the rendered containers to values of type T,
// which must be a mapping type.
func ContainerOf[T any]() Option {
	return func(c *config) {
		t := reflect.TypeFor[T]()
		if !isMappingType(t) {
			c.err = errors.Wrapf(ErrNotMapping, "container type %s", t)
			return
		}
		c.container = walk.IsA[T]()
	}
}

var mappingType = reflect.TypeFor[walk.Mapping]()

func isMappingType(t reflect.Type) bool {
	return t.Kind() == reflect.Map ||
		t == reflect.TypeFor[yaml.MapSlice]() ||
		t.Implements(mappingType)
}

// Print renders the containers below root as an indented tree.
func Print(w io.Writer, root any, opts ...Option) error {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.err != nil {
		return c.err
	}
	if _, ok := walk.AsMapping(root); !ok {
		return errors.Wrapf(ErrNotMapping, "cannot print %T", root)
	}
	wOpts := []walk.Option{walk.WithLeaves(c.leaves)}
	if c.container != nil {
		wOpts = append(wOpts, walk.ContainerType(c.container))
	}
	tree, err := walk.ExportTree(root, wOpts...)
	if err != nil {
		return err
	}
	p := newPalette(useColors(c, w))
	out := treeprint.NewWithRoot(p.branch(tree.Label))
	type pending struct {
		src *walk.Tree
		dst treeprint.Tree
	}
	stack := []pending{{tree, out}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, ch := range top.src.Children {
			if ch.Leaf {
				top.dst.AddNode(p.leaf(ch.Label, ch.Value))
				continue
			}
			stack = append(stack, pending{ch, top.dst.AddBranch(p.branch(ch.Label))})
		}
	}
	_, err = io.WriteString(w, out.String())
	return err
}

func useColors(c *config, w io.Writer) bool {
	if c.colors != nil {
		return *c.colors
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type palette struct {
	branchC, keyC, valueC *color.Color
}

func newPalette(on bool) *palette {
	p := &palette{
		branchC: color.New(color.FgHiCyan, color.Bold),
		keyC:    color.New(color.FgCyan),
		valueC:  color.New(color.FgHiGreen),
	}
	for _, c := range []*color.Color{p.branchC, p.keyC, p.valueC} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) branch(label string) string {
	return p.branchC.Sprint(label)
}

func (p *palette) leaf(label string, v any) string {
	return p.keyC.Sprint(label) + ": " + p.valueC.Sprint(fmt.Sprint(v))
}
