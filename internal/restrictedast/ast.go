// Package restrictedast defines the typed AST for the restricted source
// language that internal/ir lowers to Shell IR (spec §4.6, §3 Data
// Model). The language is a small, Rust-like subset: typed functions,
// let-bindings, integer/string/bool literals, binary operators, ranges,
// and calls — enough to express install-script logic without giving the
// transpiler anything it can't prove safe to lower.
//
// Node shapes mirror internal/bashast's style in that every node carries
// a diag.Span; unlike bashast nodes they have no Clone method, since the
// restricted-source AST is produced once per parse and never rewritten
// in place (there is no restricted-source purifier; purification only
// ever applies to bash output).
package restrictedast

import "github.com/wharflab/bashrs/internal/diag"

// Type enumerates the restricted language's type system (spec §4.6:
// "Integer literals become ShellValue::String with decimal form" implies
// integers are a first-class type distinct from str).
type Type int

const (
	TypeI32 Type = iota
	TypeU32
	TypeStr
	TypeBool
	TypeVoid
)

func (t Type) String() string {
	switch t {
	case TypeI32:
		return "i32"
	case TypeU32:
		return "u32"
	case TypeStr:
		return "str"
	case TypeBool:
		return "bool"
	case TypeVoid:
		return "void"
	default:
		return "?"
	}
}

// ParseType maps a type keyword to a Type; ok is false for unrecognized
// keywords.
func ParseType(s string) (Type, bool) {
	switch s {
	case "i32":
		return TypeI32, true
	case "u32":
		return TypeU32, true
	case "str":
		return TypeStr, true
	case "bool":
		return TypeBool, true
	case "void":
		return TypeVoid, true
	default:
		return TypeVoid, false
	}
}

// Node is implemented by every AST type.
type Node interface {
	Span() diag.Span
}

// Param is one function parameter.
type Param struct {
	Name string
	Type Type
	Sp   diag.Span
}

// Function is `fn name(params) -> ReturnType { body }`. ReturnType is
// TypeVoid when the source omits `-> T`.
type Function struct {
	Name       string
	Params     []Param
	ReturnType Type
	Body       []Stmt
	Sp         diag.Span
}

func (f *Function) Span() diag.Span { return f.Sp }

// Program is the parse result: the full set of top-level functions in
// source order. It does not record which one is the entry point
// (conventionally "main"); FindFunction looks a function up by name.
type Program struct {
	Functions []*Function
	Sp        diag.Span
}

func (p *Program) Span() diag.Span { return p.Sp }

// FindFunction returns the function named name, or nil.
func (p *Program) FindFunction(name string) *Function {
	for _, f := range p.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}
