package seq

import "fmt"

// Stmt is one statement of a direct-style sequence.
type Stmt interface {
	stmt()
	String() string
}

// BindStmt runs Expr as an effect against the ambient context and matches
// the outcome against Pat.
type BindStmt struct {
	Pat  Pattern
	Expr Expr
}

// LetStmt is a plain binding, evaluated eagerly and never routed through
// the context.
type LetStmt struct {
	Name string
	Expr Expr
}

// ExprStmt is the sequence's final expression.
type ExprStmt struct {
	Expr Expr
}

func (*BindStmt) stmt() {}
func (*LetStmt) stmt()  {}
func (*ExprStmt) stmt() {}

func (s *BindStmt) String() string { return fmt.Sprintf("%s <- %s", s.Pat, s.Expr) }
func (s *LetStmt) String() string  { return fmt.Sprintf("%s = %s", s.Name, s.Expr) }
func (s *ExprStmt) String() string { return s.Expr.String() }

// Bind constructs a bind statement.
func Bind(pat Pattern, e Expr) Stmt { return &BindStmt{Pat: pat, Expr: e} }

// Let constructs a plain binding.
func Let(name string, e Expr) Stmt { return &LetStmt{Name: name, Expr: e} }

// Final constructs the sequence's final expression statement.
func Final(e Expr) Stmt { return &ExprStmt{Expr: e} }

// Sequence is an ordered statement sequence meant to read as one flat
// block.
type Sequence []Stmt
