package seq

import (
	"fmt"

	ectotx "github.com/shouya/ecto-tx"
)

// Desugar rewrites a direct-style statement sequence into a nested
// composition expression:
//
//  1. The whole block becomes Effect(ctx -> expansion).
//  2. Every non-final bind statement's expression is routed through
//     run(ctx, ·); its pattern is left untouched. Plain bindings stay
//     unchanged and execute eagerly.
//  3. The transformed statements chain as an ordered pattern-match
//     sequence: the moment one fails to match, the chain stops and the
//     mismatched or failed value becomes the result (or routes to an
//     else-clause).
//  4. The final expression and every else-clause result are also routed
//     through run(ctx, ·), so a tail may itself produce an effect and still
//     execute against the shared context.
//  5. Else-clauses keep their patterns and guards verbatim; only their
//     result expressions are rewritten.
//  6. A single-branch conditional on the right-hand side of a bind
//     statement gets an implicit else arm yielding Success(nil), so a false
//     condition contributes a harmless success.
//  7. ctxName names the ambient context variable so inner code may use it
//     directly; when empty, a hygienic fresh name is generated that cannot
//     collide with caller-visible identifiers.
//
// The transform is pure and deterministic: equal inputs produce equal
// trees.
func Desugar(stmts Sequence, clauses []Clause, ctxName string) (Expr, error) {
	if len(stmts) == 0 {
		return nil, fmt.Errorf("empty sequence")
	}
	for i, s := range stmts {
		if _, ok := s.(*ExprStmt); ok && i != len(stmts)-1 {
			return nil, fmt.Errorf("statement %d: expression statement before the end of the sequence", i)
		}
	}
	if _, ok := stmts[len(stmts)-1].(*LetStmt); ok {
		return nil, fmt.Errorf("sequence cannot end with a plain binding")
	}

	if ctxName == "" {
		ctxName = freshName(stmts, clauses)
	}

	body := desugarStmts(stmts, ctxName)

	if len(clauses) > 0 {
		rewritten := make([]Clause, len(clauses))
		for i, c := range clauses {
			rewritten[i] = Clause{
				Pat:    c.Pat,
				Guard:  c.Guard,
				Result: &RunExpr{CtxName: ctxName, Arg: c.Result},
			}
		}
		body = &ElseExpr{Body: body, Clauses: rewritten}
	}

	return &EffectExpr{CtxName: ctxName, Body: body}, nil
}

// desugarStmts chains the statements front to back. A sequence ending in a
// bind statement gets the empty continuation: identity pass-through of the
// matched value.
func desugarStmts(stmts []Stmt, ctxName string) Expr {
	head, rest := stmts[0], stmts[1:]
	switch s := head.(type) {
	case *ExprStmt:
		// A length-one sequence still routes its only expression through
		// run; it is never returned raw.
		return &RunExpr{CtxName: ctxName, Arg: s.Expr}
	case *LetStmt:
		return &LetExpr{Name: s.Name, Bound: s.Expr, Body: desugarStmts(rest, ctxName)}
	case *BindStmt:
		link := &MatchExpr{
			Scrut: &RunExpr{CtxName: ctxName, Arg: completeConditional(s.Expr)},
			Pat:   s.Pat,
		}
		if len(rest) > 0 {
			link.Then = desugarStmts(rest, ctxName)
		}
		return link
	default:
		panic(fmt.Sprintf("unknown statement type %T", head))
	}
}

// completeConditional gives a single-branch conditional an implicit else
// arm yielding a successful no-value outcome. Only the top level of a bind
// right-hand side is considered; nested conditionals are ordinary values.
func completeConditional(e Expr) Expr {
	ifx, ok := e.(*If)
	if !ok || ifx.Else != nil {
		return e
	}
	return &If{
		Cond: ifx.Cond,
		Then: ifx.Then,
		Else: &Lit{Value: ectotx.Success[any](nil)},
	}
}
