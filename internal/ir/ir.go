// Package ir defines the Shell IR (spec §4.6, §3 Data Model): the
// dialect-agnostic intermediate representation that sits between the
// restricted-source AST (internal/restrictedast) and emitted shell text
// (internal/emit). Node shapes follow internal/bashast's conventions
// (every node carries a diag.Span) even though IR nodes, once lowered,
// are never rewritten in place the way bashast is by internal/purify —
// the IR is a one-shot product of Lower.
package ir

import "github.com/wharflab/bashrs/internal/diag"

// Node is implemented by every ShellStmt and ShellValue.
type Node interface {
	Span() diag.Span
}

// ShellStmt is the IR's statement sum type (spec §4.6: "ShellIR sum type:
// Let/Exec/If/Sequence/Noop").
type ShellStmt interface {
	Node
	shellStmtNode()
}

// Let binds Name to Value. Echo marks the binding as the final
// expression of a non-void function (spec §4.6 "Function with return
// type": the emitter turns an Echo-marked Let's value into a command
// substitution-friendly `echo` at the tail of the function body, rather
// than assigning to a variable that nothing reads).
type Let struct {
	Name  string
	Value ShellValue
	Echo  bool
	Sp    diag.Span
}

func (l *Let) Span() diag.Span { return l.Sp }
func (l *Let) shellStmtNode()  {}

// Exec runs an external or builtin command. RequiresHelpers names the
// runtime helper functions (spec §4.6 "Command effects", e.g.
// "rash_download_verified") the emitter must prepend for this call to
// work, and Effect classifies what kind of observable effect the command
// has so a purifier/scoring pass run after lowering can reason about it
// without re-parsing shell text.
type Effect int

const (
	EffectNone Effect = iota
	EffectFilesystem
	EffectNetwork
	EffectPackageInstall
)

type Exec struct {
	Command         string
	Args            []ShellValue
	Effect          Effect
	RequiresHelpers []string
	Sp              diag.Span
}

func (e *Exec) Span() diag.Span { return e.Sp }
func (e *Exec) shellStmtNode()  {}

// If is `if Cond; then Then; else Else; fi`. Cond is itself a ShellStmt
// (its exit status is the test) rather than a boolean ShellValue, since
// POSIX shell conditionals branch on exit codes, not on expression
// values.
type If struct {
	Cond ShellStmt
	Then []ShellStmt
	Else []ShellStmt
	Sp   diag.Span
}

func (i *If) Span() diag.Span { return i.Sp }
func (i *If) shellStmtNode()  {}

// For is `for Var in $(seq ...); do Body; done` — the lowered form of a
// restricted-source range loop (spec §4.6 "for v in range").
type For struct {
	Var  string
	Seq  *SeqCall
	Body []ShellStmt
	Sp   diag.Span
}

func (f *For) Span() diag.Span { return f.Sp }
func (f *For) shellStmtNode()  {}

// SeqCall is the `seq Start End` command substitution a range lowers to.
type SeqCall struct {
	Start ShellValue
	End   ShellValue
	Sp    diag.Span
}

func (s *SeqCall) Span() diag.Span { return s.Sp }

// Sequence groups several statements that must execute in order with no
// implicit branching between them (a restricted-source block).
type Sequence struct {
	Stmts []ShellStmt
	Sp    diag.Span
}

func (s *Sequence) Span() diag.Span { return s.Sp }
func (s *Sequence) shellStmtNode()  {}

// Noop lowers an empty restricted-source block; the emitter renders it as
// `:` (the POSIX no-op builtin) rather than omitting it, so an empty
// `if`/`for` body still parses as valid shell.
type Noop struct {
	Sp diag.Span
}

func (n *Noop) Span() diag.Span { return n.Sp }
func (n *Noop) shellStmtNode()  {}

// ShellValue is the IR's expression sum type (spec §4.6: "ShellValue
// variants: String/Variable/Arithmetic/CommandSub/Concat").
type ShellValue interface {
	Node
	shellValueNode()
}

// String is a literal value in its decimal/text form (spec §4.6:
// "Integer literals become ShellValue::String with decimal form").
type String struct {
	Value string
	Sp    diag.Span
}

func (s *String) Span() diag.Span { return s.Sp }
func (s *String) shellValueNode() {}

// Variable is a reference to a shell variable by name (without the `$`
// sigil; the emitter adds dialect-appropriate quoting).
type Variable struct {
	Name string
	Sp   diag.Span
}

func (v *Variable) Span() diag.Span { return v.Sp }
func (v *Variable) shellValueNode() {}

// ArithOp mirrors restrictedast.BinOp for the operators POSIX arithmetic
// expansion supports.
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithMod
	ArithBitAnd
	ArithBitOr
	ArithBitXor
	ArithShl
	ArithShr
	ArithEq
	ArithNe
	ArithLt
	ArithLe
	ArithGt
	ArithGe
)

// Arithmetic is `$((Left Op Right))`. Comparison operators are lowered
// here too (spec §4.6: "lowered as arithmetic for integer operands and
// yield 0/1, matching POSIX arithmetic semantics").
type Arithmetic struct {
	Op    ArithOp
	Left  ShellValue
	Right ShellValue
	Sp    diag.Span
}

func (a *Arithmetic) Span() diag.Span { return a.Sp }
func (a *Arithmetic) shellValueNode() {}

// CommandSub is `$(Body...)`.
type CommandSub struct {
	Body []ShellStmt
	Sp   diag.Span
}

func (c *CommandSub) Span() diag.Span { return c.Sp }
func (c *CommandSub) shellValueNode() {}

// Concat joins several values into one word with no separator, the IR
// form of string interpolation/juxtaposition.
type Concat struct {
	Parts []ShellValue
	Sp    diag.Span
}

func (c *Concat) Span() diag.Span { return c.Sp }
func (c *Concat) shellValueNode() {}

// Program is the lowered form of a restrictedast.Program: one Sequence
// per function, keyed by name, plus the entry point to invoke.
type Program struct {
	Functions map[string][]ShellStmt
	Entry     string
}
