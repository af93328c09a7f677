package seq

import (
	"fmt"

	ectotx "github.com/shouya/ecto-tx"
)

// ClauseError is the fault raised when else-clauses exist but none of them
// matches the mismatched value.
type ClauseError struct {
	Value any
}

func (e *ClauseError) Error() string {
	return fmt.Sprintf("no else clause matched %v", e.Value)
}

// Env is a lexically-scoped environment for evaluating expression trees.
type Env struct {
	vars   map[string]any
	parent *Env
}

// NewEnv creates an environment with the given initial bindings.
func NewEnv(vars map[string]any) *Env {
	if vars == nil {
		vars = map[string]any{}
	}
	return &Env{vars: vars}
}

func (e *Env) child(vars Bindings) *Env {
	m := make(map[string]any, len(vars))
	for k, v := range vars {
		m[k] = v
	}
	return &Env{vars: m, parent: e}
}

func (e *Env) lookup(name string) (any, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Build evaluates a desugared expression into an executable Effect. The
// expression must be the Effect(ctx -> ...) form Desugar produces.
func Build(e Expr) (ectotx.Effect[any], error) {
	return BuildIn(e, NewEnv(nil))
}

// BuildIn is Build with explicit outer bindings, for sequences that
// reference caller-supplied names.
func BuildIn(e Expr, env *Env) (ectotx.Effect[any], error) {
	v, mis := eval(e, env)
	if mis != nil {
		return ectotx.Effect[any]{}, fmt.Errorf("expression is not a desugared block")
	}
	eff, ok := v.(ectotx.Effect[any])
	if !ok {
		return ectotx.Effect[any]{}, fmt.Errorf("expression evaluates to %T, not an effect", v)
	}
	return eff, nil
}

// mismatch is the non-local signal of a bind-chain link whose pattern did
// not match; it carries the mismatched value up to the nearest else wrapper
// or to the block boundary.
type mismatch struct {
	value any
}

// eval interprets an expression. Mismatches propagate as the second return
// value; programming errors (unbound names, non-boolean conditions,
// ill-shaped blocks) fault.
func eval(e Expr, env *Env) (any, *mismatch) {
	switch x := e.(type) {
	case *Lit:
		return x.Value, nil

	case *Var:
		v, ok := env.lookup(x.Name)
		if !ok {
			panic(ectotx.NewFault(fmt.Errorf("unbound name %q", x.Name)))
		}
		return v, nil

	case *Call:
		args := make([]any, len(x.Args))
		for i, a := range x.Args {
			v, mis := eval(a, env)
			if mis != nil {
				return nil, mis
			}
			args[i] = v
		}
		return x.Fn(args...), nil

	case *If:
		cv, mis := eval(x.Cond, env)
		if mis != nil {
			return nil, mis
		}
		cond, ok := cv.(bool)
		if !ok {
			panic(ectotx.NewFault(fmt.Errorf("condition evaluates to %T, not bool", cv)))
		}
		if cond {
			return eval(x.Then, env)
		}
		if x.Else == nil {
			return nil, nil
		}
		return eval(x.Else, env)

	case *SuccessOf:
		v, mis := eval(x.Arg, env)
		if mis != nil {
			return nil, mis
		}
		return ectotx.Success[any](v), nil

	case *FailureOf:
		v, mis := eval(x.Arg, env)
		if mis != nil {
			return nil, mis
		}
		return ectotx.Failure[any](v), nil

	case *EffectExpr:
		return ectotx.New(func(tc ectotx.Context) ectotx.Outcome[any] {
			inner := env.child(Bindings{x.CtxName: tc})
			v, mis := eval(x.Body, inner)
			if mis != nil {
				return surfaceMismatch(mis.value)
			}
			o, ok := v.(ectotx.Outcome[any])
			if !ok {
				panic(ectotx.NewFault(fmt.Errorf("sequence result is %T, not an outcome", v)))
			}
			return o
		}), nil

	case *RunExpr:
		tc := contextVar(env, x.CtxName)
		v, mis := eval(x.Arg, env)
		if mis != nil {
			return nil, mis
		}
		return ectotx.RunValue(tc, v), nil

	case *MatchExpr:
		sv, mis := eval(x.Scrut, env)
		if mis != nil {
			return nil, mis
		}
		bound, ok := x.Pat.Match(sv)
		if !ok {
			return nil, &mismatch{value: sv}
		}
		if x.Then == nil {
			// Empty continuation: the matched value passes through.
			return sv, nil
		}
		return eval(x.Then, env.child(bound))

	case *LetExpr:
		v, mis := eval(x.Bound, env)
		if mis != nil {
			return nil, mis
		}
		return eval(x.Body, env.child(Bindings{x.Name: v}))

	case *ElseExpr:
		v, mis := eval(x.Body, env)
		if mis == nil {
			return v, nil
		}
		for _, c := range x.Clauses {
			bound, ok := c.Pat.Match(mis.value)
			if !ok {
				continue
			}
			scope := env.child(bound)
			if c.Guard != nil {
				gv, gmis := eval(c.Guard, scope)
				if gmis != nil {
					return nil, gmis
				}
				pass, isBool := gv.(bool)
				if !isBool {
					panic(ectotx.NewFault(fmt.Errorf("guard evaluates to %T, not bool", gv)))
				}
				if !pass {
					continue
				}
			}
			return eval(c.Result, scope)
		}
		panic(ectotx.NewFault(&ClauseError{Value: mis.value}))

	default:
		panic(ectotx.NewFault(fmt.Errorf("unknown expression type %T", e)))
	}
}

// surfaceMismatch turns a mismatched value that escaped the whole chain
// into the block's outcome: an outcome value stands as-is, anything else
// becomes a failure payload.
func surfaceMismatch(v any) ectotx.Outcome[any] {
	if o, ok := v.(ectotx.Outcome[any]); ok {
		return o
	}
	return ectotx.Failure[any](v)
}

func contextVar(env *Env, name string) ectotx.Context {
	v, ok := env.lookup(name)
	if !ok {
		panic(ectotx.NewFault(fmt.Errorf("context %q is not in scope", name)))
	}
	tc, ok := v.(ectotx.Context)
	if !ok {
		panic(ectotx.NewFault(fmt.Errorf("name %q is bound to %T, not a context", name, v)))
	}
	return tc
}
