// Package bashast defines the typed bash AST that every rule, the
// purifier, and the suppression engine operate over. Rule authors never
// see mvdan.cc/sh/v3/syntax directly — internal/bashparser walks mvdan's
// parse tree once and produces these node types, exactly as the teacher
// repo's internal/shell package walks syntax.Node to pull out command
// names without leaking BuildKit/mvdan types into rule code.
//
// Every node carries a Span (internal/diag) and supports Clone, which
// performs a full structural copy with no aliasing — required by the
// purifier's "rewrite never mutates in place" invariant.
package bashast

import "github.com/wharflab/bashrs/internal/diag"

// Node is implemented by every statement and expression type.
type Node interface {
	Span() diag.Span
	Clone() Node
}

// File is the root of a parsed script: a sequence of top-level
// statements plus the raw shebang line, if any.
type File struct {
	Shebang    string
	Statements []Stmt
	Sp         diag.Span
}

func (f *File) Span() diag.Span { return f.Sp }
func (f *File) Clone() Node {
	clone := &File{Shebang: f.Shebang, Sp: f.Sp}
	for _, s := range f.Statements {
		clone.Statements = append(clone.Statements, s.Clone().(Stmt))
	}
	return clone
}

// Stmt is any bash statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is any bash expression node.
type Expr interface {
	Node
	exprNode()
}

func cloneStmts(in []Stmt) []Stmt {
	if in == nil {
		return nil
	}
	out := make([]Stmt, len(in))
	for i, s := range in {
		out[i] = s.Clone().(Stmt)
	}
	return out
}

func cloneExprs(in []Expr) []Expr {
	if in == nil {
		return nil
	}
	out := make([]Expr, len(in))
	for i, e := range in {
		out[i] = e.Clone().(Expr)
	}
	return out
}
