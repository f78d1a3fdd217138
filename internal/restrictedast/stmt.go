package restrictedast

import "github.com/wharflab/bashrs/internal/diag"

// Stmt is any restricted-source statement.
type Stmt interface {
	Node
	stmtNode()
}

// Let is `let name: Type = expr;` or `let name = expr;` (type inferred by
// the lowering/typecheck stage when omitted).
type Let struct {
	Name string
	Type Type // TypeVoid means "not annotated, infer"
	Value Expr
	Sp    diag.Span
}

func (l *Let) Span() diag.Span { return l.Sp }
func (l *Let) stmtNode()       {}

// ExprStmt is a bare expression used for its side effect (a function
// call) or, if it is the final statement of a non-void function, as the
// returned value (spec §4.6 "Function with return type").
type ExprStmt struct {
	Value Expr
	Sp    diag.Span
}

func (e *ExprStmt) Span() diag.Span { return e.Sp }
func (e *ExprStmt) stmtNode()       {}

// Return is `return expr;` or a bare `return;` in a void function.
type Return struct {
	Value Expr // nil for a bare return
	Sp    diag.Span
}

func (r *Return) Span() diag.Span { return r.Sp }
func (r *Return) stmtNode()       {}

// If is `if cond { then } [else { else }]`. Else is nil when absent.
type If struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	Sp   diag.Span
}

func (i *If) Span() diag.Span { return i.Sp }
func (i *If) stmtNode()       {}

// For is `for name in range { body }`.
type For struct {
	Var   string
	Range *RangeExpr
	Body  []Stmt
	Sp    diag.Span
}

func (f *For) Span() diag.Span { return f.Sp }
func (f *For) stmtNode()       {}
