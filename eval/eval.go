package eval

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/nestmap/walk"
)

var (
	ErrCompile = errors.New("compile error")
	ErrEval    = errors.New("eval error")
)

// Program is a compiled predicate.
type Program struct {
	src string
	prg *vm.Program
}

func (p *Program) String() string {
	return p.src
}

// Match is a leaf for which a Program held.
type Match struct {
	Address walk.Address
	Value   any
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(Env{}),
		expr.AsBool(),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

// Compile compiles src, which must evaluate to a bool.
func Compile(src string) (*Program, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "compiling %q", src), ErrCompile)
	}
	return &Program{src: src, prg: prg}, nil
}

// Eval runs p against env.
func (p *Program) Eval(env Env) (bool, error) {
	res, err := expr.Run(p.prg, env)
	if err != nil {
		return false, errors.Mark(err, ErrEval)
	}
	b, ok := res.(bool)
	if !ok {
		return false, errors.Wrapf(ErrEval, "%q returned %T", p.src, res)
	}
	return b, nil
}

// Filter returns the leaves of root for which p holds, in walk order.
// Evaluation stops at the first error.
func Filter(root walk.Mapping, p *Program, opts ...walk.Option) ([]Match, error) {
	var res []Match
	for addr, v := range walk.Leaves(root, opts...) {
		ok, err := p.Eval(newEnv(root, addr, v))
		if err != nil {
			return nil, errors.Wrapf(err, "at %q", addr.String())
		}
		if ok {
			res = append(res, Match{Address: addr, Value: v})
		}
	}
	return res, nil
}
