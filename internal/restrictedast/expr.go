package restrictedast

import "github.com/wharflab/bashrs/internal/diag"

// Expr is any restricted-source expression.
type Expr interface {
	Node
	exprNode()
}

// BinOp enumerates the binary operators the restricted language
// supports; the lowering (internal/ir) maps each to a ShellValue
// arithmetic node or, for comparisons, to an arithmetic 0/1 result
// (spec §4.6 "Comparison ops").
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd // logical &&
	OpOr  // logical ||
)

var binOpSymbols = map[BinOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^", OpShl: "<<", OpShr: ">>",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpAnd: "&&", OpOr: "||",
}

func (o BinOp) String() string {
	if s, ok := binOpSymbols[o]; ok {
		return s
	}
	return "?"
}

// IsComparison reports whether op yields a boolean (0/1) result rather
// than a numeric one.
func (o BinOp) IsComparison() bool {
	switch o {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	default:
		return false
	}
}

// IntLit is an integer literal, e.g. `42`.
type IntLit struct {
	Value int64
	Sp    diag.Span
}

func (i *IntLit) Span() diag.Span { return i.Sp }
func (i *IntLit) exprNode()       {}

// StringLit is a string literal, e.g. `"hello"`.
type StringLit struct {
	Value string
	Sp    diag.Span
}

func (s *StringLit) Span() diag.Span { return s.Sp }
func (s *StringLit) exprNode()       {}

// BoolLit is `true`/`false`.
type BoolLit struct {
	Value bool
	Sp    diag.Span
}

func (b *BoolLit) Span() diag.Span { return b.Sp }
func (b *BoolLit) exprNode()       {}

// VarRef is a bare identifier reference.
type VarRef struct {
	Name string
	Sp   diag.Span
}

func (v *VarRef) Span() diag.Span { return v.Sp }
func (v *VarRef) exprNode()       {}

// BinaryOp is `left op right`.
type BinaryOp struct {
	Op    BinOp
	Left  Expr
	Right Expr
	Sp    diag.Span
}

func (b *BinaryOp) Span() diag.Span { return b.Sp }
func (b *BinaryOp) exprNode()       {}

// Call is `name(args...)`.
type Call struct {
	Name string
	Args []Expr
	Sp   diag.Span
}

func (c *Call) Span() diag.Span { return c.Sp }
func (c *Call) exprNode()       {}

// RangeExpr is `start..end` (exclusive) or `start..=end` (inclusive),
// spec §4.6 "Ranges".
type RangeExpr struct {
	Start     Expr
	End       Expr
	Inclusive bool
	Sp        diag.Span
}

func (r *RangeExpr) Span() diag.Span { return r.Sp }
func (r *RangeExpr) exprNode()       {}
