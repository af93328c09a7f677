package seq

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// freshName generates a hygienic name for the ambient context variable:
// deterministic for a given sequence (so desugaring is reproducible) and
// guaranteed not to collide with any identifier the sequence mentions.
func freshName(stmts Sequence, clauses []Clause) string {
	h := xxhash.New()
	for _, s := range stmts {
		_, _ = h.WriteString(s.String())
	}
	for _, c := range clauses {
		_, _ = h.WriteString(c.String())
	}

	used := map[string]struct{}{}
	for _, s := range stmts {
		collectStmtIdents(s, used)
	}
	for _, c := range clauses {
		collectClauseIdents(c, used)
	}

	base := fmt.Sprintf("tx_%06x", h.Sum64()&0xffffff)
	name := base
	for i := 1; ; i++ {
		if _, taken := used[name]; !taken {
			return name
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
}

func collectStmtIdents(s Stmt, used map[string]struct{}) {
	switch x := s.(type) {
	case *BindStmt:
		collectPatternIdents(x.Pat, used)
		collectExprIdents(x.Expr, used)
	case *LetStmt:
		used[x.Name] = struct{}{}
		collectExprIdents(x.Expr, used)
	case *ExprStmt:
		collectExprIdents(x.Expr, used)
	}
}

func collectClauseIdents(c Clause, used map[string]struct{}) {
	collectPatternIdents(c.Pat, used)
	if c.Guard != nil {
		collectExprIdents(c.Guard, used)
	}
	collectExprIdents(c.Result, used)
}

func collectPatternIdents(p Pattern, used map[string]struct{}) {
	for _, name := range p.binders() {
		used[name] = struct{}{}
	}
}

func collectExprIdents(e Expr, used map[string]struct{}) {
	switch x := e.(type) {
	case *Var:
		used[x.Name] = struct{}{}
	case *Call:
		for _, a := range x.Args {
			collectExprIdents(a, used)
		}
	case *If:
		collectExprIdents(x.Cond, used)
		collectExprIdents(x.Then, used)
		if x.Else != nil {
			collectExprIdents(x.Else, used)
		}
	case *SuccessOf:
		collectExprIdents(x.Arg, used)
	case *FailureOf:
		collectExprIdents(x.Arg, used)
	case *EffectExpr:
		used[x.CtxName] = struct{}{}
		collectExprIdents(x.Body, used)
	case *RunExpr:
		used[x.CtxName] = struct{}{}
		collectExprIdents(x.Arg, used)
	case *MatchExpr:
		collectExprIdents(x.Scrut, used)
		collectPatternIdents(x.Pat, used)
		if x.Then != nil {
			collectExprIdents(x.Then, used)
		}
	case *LetExpr:
		used[x.Name] = struct{}{}
		collectExprIdents(x.Bound, used)
		collectExprIdents(x.Body, used)
	case *ElseExpr:
		collectExprIdents(x.Body, used)
		for _, c := range x.Clauses {
			collectClauseIdents(c, used)
		}
	}
}
