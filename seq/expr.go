package seq

import (
	"fmt"
	"strings"
)

// Expr is a node of the expression tree the desugarer produces and
// consumes. The tree is plain data: deterministic to build, printable, and
// comparable structurally. Eval interprets it against an environment.
type Expr interface {
	expr()
	String() string
}

// Lit is a literal value, including literal Outcome markers and Effects.
type Lit struct {
	Value any
}

// Var references a bound name: a Let binding, a pattern binder, or the
// ambient context variable.
type Var struct {
	Name string
}

// Call applies a host function to evaluated arguments, in order. Name is
// used for printing only.
type Call struct {
	Name string
	Fn   func(args ...any) any
	Args []Expr
}

// If is a conditional. Else may be nil (a single-branch conditional); the
// desugarer gives it an implicit Success(nil) arm when it is the right-hand
// side of a bind statement.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

// SuccessOf evaluates its argument and wraps it as a success outcome.
type SuccessOf struct {
	Arg Expr
}

// FailureOf evaluates its argument and wraps it as a failure outcome.
type FailureOf struct {
	Arg Expr
}

// EffectExpr is the desugared block: Effect(ctx -> body). Evaluating it
// yields an Effect whose run binds the context variable and interprets the
// body.
type EffectExpr struct {
	CtxName string
	Body    Expr
}

// RunExpr routes an expression through run(ctx, ·): the expression's value
// is executed as an effect against the ambient context.
type RunExpr struct {
	CtxName string
	Arg     Expr
}

// MatchExpr is one link of the desugared bind chain: evaluate the
// scrutinee, match it against the pattern, and on a match continue with
// Then under the pattern's bindings. A nil Then is the empty continuation:
// identity pass-through of the matched value. A mismatch stops the chain
// and surfaces the scrutinee's value.
type MatchExpr struct {
	Scrut Expr
	Pat   Pattern
	Then  Expr
}

// LetExpr is a plain binding: Bound is evaluated eagerly, not routed
// through the context, and Body continues with the name bound.
type LetExpr struct {
	Name  string
	Bound Expr
	Body  Expr
}

// Clause is one else-clause: pattern, optional guard (nil means always),
// and result expression.
type Clause struct {
	Pat    Pattern
	Guard  Expr
	Result Expr
}

// ElseExpr attaches else-clauses to a bind chain. Clauses are tried in
// order against the mismatched value, only when a mismatch actually occurs.
type ElseExpr struct {
	Body    Expr
	Clauses []Clause
}

func (*Lit) expr()        {}
func (*Var) expr()        {}
func (*Call) expr()       {}
func (*If) expr()         {}
func (*SuccessOf) expr()  {}
func (*FailureOf) expr()  {}
func (*EffectExpr) expr() {}
func (*RunExpr) expr()    {}
func (*MatchExpr) expr()  {}
func (*LetExpr) expr()    {}
func (*ElseExpr) expr()   {}

func (e *Lit) String() string { return fmt.Sprintf("%v", e.Value) }
func (e *Var) String() string { return e.Name }

func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
}

func (e *If) String() string {
	if e.Else == nil {
		return fmt.Sprintf("if %s then %s", e.Cond, e.Then)
	}
	return fmt.Sprintf("if %s then %s else %s", e.Cond, e.Then, e.Else)
}

func (e *SuccessOf) String() string { return fmt.Sprintf("Success(%s)", e.Arg) }
func (e *FailureOf) String() string { return fmt.Sprintf("Failure(%s)", e.Arg) }

func (e *EffectExpr) String() string {
	return fmt.Sprintf("Effect(%s -> %s)", e.CtxName, e.Body)
}

func (e *RunExpr) String() string {
	return fmt.Sprintf("run(%s, %s)", e.CtxName, e.Arg)
}

func (e *MatchExpr) String() string {
	if e.Then == nil {
		return fmt.Sprintf("match %s { %s }", e.Scrut, e.Pat)
	}
	return fmt.Sprintf("match %s { %s -> %s }", e.Scrut, e.Pat, e.Then)
}

func (e *LetExpr) String() string {
	return fmt.Sprintf("let %s = %s in %s", e.Name, e.Bound, e.Body)
}

func (c Clause) String() string {
	if c.Guard == nil {
		return fmt.Sprintf("%s -> %s", c.Pat, c.Result)
	}
	return fmt.Sprintf("%s when %s -> %s", c.Pat, c.Guard, c.Result)
}

func (e *ElseExpr) String() string {
	clauses := make([]string, len(e.Clauses))
	for i, c := range e.Clauses {
		clauses[i] = c.String()
	}
	return fmt.Sprintf("%s else { %s }", e.Body, strings.Join(clauses, "; "))
}
