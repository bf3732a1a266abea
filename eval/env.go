package eval

import (
	"github.com/signadot/nestmap/walk"
)

// Env is the environment an expression is evaluated against, one leaf at
// a time.
type Env struct {
	Key     any    `expr:"key"`
	Value   any    `expr:"value"`
	Address string `expr:"address"`
	Path    []any  `expr:"path"`
	Depth   int    `expr:"depth"`

	root walk.Mapping
}

func newEnv(root walk.Mapping, addr walk.Address, v any) Env {
	env := Env{
		Value:   v,
		Address: addr.String(),
		Path:    []any(addr),
		Depth:   len(addr),
		root:    root,
	}
	if len(addr) != 0 {
		env.Key = addr[len(addr)-1]
	}
	return env
}

// GetPath returns the value at the dotted address path from the root of
// the tree being filtered, or nil if there is none.
func (e Env) GetPath(path string) any {
	if e.root == nil {
		return nil
	}
	addr, err := walk.ParseAddress(path)
	if err != nil {
		return nil
	}
	v, err := walk.Resolve(e.root, addr)
	if err != nil {
		return nil
	}
	return v
}
