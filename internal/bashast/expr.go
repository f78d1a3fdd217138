package bashast

import "github.com/wharflab/bashrs/internal/diag"

// StringLit is a literal word, possibly quoted; Quoted records whether it
// was written with single or double quotes so the purifier and emitter
// can decide whether to re-quote it.
type StringLit struct {
	Value  string
	Quoted bool
	Sp     diag.Span
}

func (s *StringLit) Span() diag.Span { return s.Sp }
func (s *StringLit) exprNode()       {}
func (s *StringLit) Clone() Node {
	clone := *s
	return &clone
}

// VariableRef is a bare `$name` or `${name}` reference.
type VariableRef struct {
	Name string
	Sp   diag.Span
}

func (v *VariableRef) Span() diag.Span { return v.Sp }
func (v *VariableRef) exprNode()       {}
func (v *VariableRef) Clone() Node {
	clone := *v
	return &clone
}

// ParameterExpansion is `${name OP word}` (e.g. `${DIR:-/tmp}`,
// `${var//a/b}`, `${var:?msg}`).
type ParameterExpansion struct {
	Name string
	Op   string
	Word Expr
	Sp   diag.Span
}

func (p *ParameterExpansion) Span() diag.Span { return p.Sp }
func (p *ParameterExpansion) exprNode()       {}
func (p *ParameterExpansion) Clone() Node {
	clone := &ParameterExpansion{Name: p.Name, Op: p.Op, Sp: p.Sp}
	if p.Word != nil {
		clone.Word = p.Word.Clone().(Expr)
	}
	return clone
}

// CommandSub is `$(command)` or the deprecated `` `command` `` form;
// Backtick records which so the purifier/emitter can normalize to $().
type CommandSub struct {
	Body     []Stmt
	Backtick bool
	Sp       diag.Span
}

func (c *CommandSub) Span() diag.Span { return c.Sp }
func (c *CommandSub) exprNode()       {}
func (c *CommandSub) Clone() Node {
	return &CommandSub{Body: cloneStmts(c.Body), Backtick: c.Backtick, Sp: c.Sp}
}

// ArithOp enumerates supported arithmetic/comparison operators inside
// `$((...))` and restricted-source binary expressions.
type ArithOp int

const (
	OpAdd ArithOp = iota
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
)

var arithOpSymbols = map[ArithOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^", OpShl: "<<", OpShr: ">>",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
}

func (o ArithOp) String() string {
	if s, ok := arithOpSymbols[o]; ok {
		return s
	}
	return "?"
}

// Arithmetic is `$((left OP right))`.
type Arithmetic struct {
	Op    ArithOp
	Left  Expr
	Right Expr
	Sp    diag.Span
}

func (a *Arithmetic) Span() diag.Span { return a.Sp }
func (a *Arithmetic) exprNode()       {}
func (a *Arithmetic) Clone() Node {
	clone := &Arithmetic{Op: a.Op, Sp: a.Sp}
	if a.Left != nil {
		clone.Left = a.Left.Clone().(Expr)
	}
	if a.Right != nil {
		clone.Right = a.Right.Clone().(Expr)
	}
	return clone
}

// TestOp enumerates `[ ... ]`/`[[ ... ]]` test operators this AST models
// explicitly (enough for idempotency/purification analysis; anything
// else is carried as an opaque StringLit operand).
type TestOp int

const (
	TestFileExists TestOp = iota // -e
	TestDirExists                // -d
	TestFileRegular               // -f
	TestStringNonEmpty            // -n
	TestStringEmpty                // -z
	TestStringEq                  // =, ==
	TestStringNe                  // !=
)

// TestExpression is `[ OP operand ]` / `[[ operand OP operand ]]`.
type TestExpression struct {
	Op       TestOp
	Operand  Expr
	Operand2 Expr // set for binary ops (TestStringEq/TestStringNe)
	Sp       diag.Span
}

func (t *TestExpression) Span() diag.Span { return t.Sp }
func (t *TestExpression) exprNode()       {}
func (t *TestExpression) Clone() Node {
	clone := &TestExpression{Op: t.Op, Sp: t.Sp}
	if t.Operand != nil {
		clone.Operand = t.Operand.Clone().(Expr)
	}
	if t.Operand2 != nil {
		clone.Operand2 = t.Operand2.Clone().(Expr)
	}
	return clone
}

// Concatenation is the juxtaposition of several expression parts forming
// one word, e.g. `"${DIR}"/lib` or `prefix$var`.
type Concatenation struct {
	Parts []Expr
	Sp    diag.Span
}

func (c *Concatenation) Span() diag.Span { return c.Sp }
func (c *Concatenation) exprNode()       {}
func (c *Concatenation) Clone() Node {
	return &Concatenation{Parts: cloneExprs(c.Parts), Sp: c.Sp}
}
