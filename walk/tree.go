package walk

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"
)

// Tree is a label keyed export of a nested mapping, used for rendering.
type Tree struct {
	Label    string
	Key      any
	Value    any
	Leaf     bool
	Children []*Tree
}

// ExportTree builds a Tree of the containers below root. Labels come from
// a node's Name when it implements Named and has one, otherwise from its
// type name. WithLeaves includes leaf entries as childless nodes labelled
// with their key.
func ExportTree(root any, opts ...Option) (*Tree, error) {
	m, ok := AsMapping(root)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidRoot, "cannot export %T", root)
	}
	c := newConfig(config{deep: true}, opts)
	res := &Tree{Label: label(root)}
	stack := []*Tree{res}
	visit(m, c, true, func(addr Address, key, val any, sub Mapping) bool {
		depth := len(addr)
		parent := stack[depth-1]
		if sub == nil {
			if c.leaves && c.keep(val) {
				parent.Children = append(parent.Children, &Tree{
					Label: fmt.Sprint(key),
					Key:   key,
					Value: val,
					Leaf:  true,
				})
			}
			return true
		}
		node := &Tree{Label: label(val), Key: key}
		parent.Children = append(parent.Children, node)
		stack = append(stack[:depth], node)
		return true
	})
	return res, nil
}

func label(v any) string {
	if n, ok := v.(Named); ok {
		if name := n.Name(); name != nil {
			return fmt.Sprint(name)
		}
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}
