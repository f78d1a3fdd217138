package emit

import (
	"fmt"
	"strings"

	"github.com/wharflab/bashrs/internal/ir"
)

func (e *emitter) emitStmt(stmt ir.ShellStmt) {
	switch s := stmt.(type) {
	case *ir.Let:
		e.emitLet(s)
	case *ir.Exec:
		e.writeLine(e.renderExec(s))
	case *ir.If:
		e.emitIf(s)
	case *ir.For:
		e.emitFor(s)
	case *ir.Sequence:
		for _, inner := range s.Stmts {
			e.emitStmt(inner)
		}
	case *ir.Noop:
		e.writeLine(":")
	default:
		e.writeLine(fmt.Sprintf(": # unsupported IR statement %T", stmt))
	}
}

func (e *emitter) emitLet(l *ir.Let) {
	val := e.renderValue(l.Value)
	if l.Echo {
		e.writeLine(fmt.Sprintf("echo %s", val))
		return
	}
	if l.Name == "_" {
		// expression-statement for side effect only; the value itself,
		// if it is a CommandSub, already ran the command.
		if _, isSub := l.Value.(*ir.CommandSub); isSub {
			e.writeLine(strings.TrimPrefix(strings.TrimSuffix(val, `"`), `"$(`))
			return
		}
		e.writeLine(fmt.Sprintf(": %s", val))
		return
	}
	e.writeLine(fmt.Sprintf("%s=%s", l.Name, val))
}

func (e *emitter) emitIf(i *ir.If) {
	condExec, ok := i.Cond.(*ir.Exec)
	if !ok {
		e.writeLine(": # unsupported condition form")
		return
	}
	e.writeLine(fmt.Sprintf("if %s; then", e.renderExec(condExec)))
	e.indent++
	if len(i.Then) == 0 {
		e.writeLine(":")
	}
	for _, s := range i.Then {
		e.emitStmt(s)
	}
	e.indent--
	if len(i.Else) > 0 {
		e.writeLine("else")
		e.indent++
		for _, s := range i.Else {
			e.emitStmt(s)
		}
		e.indent--
	}
	e.writeLine("fi")
}

func (e *emitter) emitFor(f *ir.For) {
	start := e.renderValue(f.Seq.Start)
	end := e.renderValue(f.Seq.End)
	e.writeLine(fmt.Sprintf("for %s in $(seq %s %s); do", f.Var, stripQuotes(start), stripQuotes(end)))
	e.indent++
	if len(f.Body) == 0 {
		e.writeLine(":")
	}
	for _, s := range f.Body {
		e.emitStmt(s)
	}
	e.indent--
	e.writeLine("done")
}

// renderExec renders a command invocation. Every argument is rendered
// through renderValue, which double-quotes every variable expansion
// (spec §4.7 "no SC2086"); helper-requiring commands are rewritten to
// call the corresponding wrapper function instead of the raw tool.
func (e *emitter) renderExec(x *ir.Exec) string {
	cmd := x.Command
	if len(x.RequiresHelpers) > 0 {
		cmd = x.RequiresHelpers[0]
	}
	parts := make([]string, 0, len(x.Args)+1)
	parts = append(parts, cmd)
	for _, a := range x.Args {
		parts = append(parts, e.renderValue(a))
	}
	return strings.Join(parts, " ")
}

// renderValue renders a ShellValue as a shell word. Variable references
// are always double-quoted; arithmetic and command substitutions use
// $((...)) and $(...) respectively (spec §4.7).
func (e *emitter) renderValue(v ir.ShellValue) string {
	switch val := v.(type) {
	case *ir.String:
		return quoteLiteral(val.Value)

	case *ir.Variable:
		return fmt.Sprintf("\"$%s\"", val.Name)

	case *ir.Arithmetic:
		return fmt.Sprintf("\"$((%s %s %s))\"",
			stripQuotes(e.renderValue(val.Left)), arithOpSymbol(val.Op), stripQuotes(e.renderValue(val.Right)))

	case *ir.CommandSub:
		sub := &emitter{cfg: e.cfg, helpers: e.helpers, tmpCount: e.tmpCount}
		for _, s := range val.Body {
			sub.emitStmt(s)
		}
		e.tmpCount = sub.tmpCount
		rendered := strings.TrimSuffix(sub.buf.String(), "\n")
		return fmt.Sprintf("\"$(%s)\"", rendered)

	case *ir.Concat:
		var sb strings.Builder
		for _, p := range val.Parts {
			sb.WriteString(stripQuotes(e.renderValue(p)))
		}
		return fmt.Sprintf("\"%s\"", sb.String())

	default:
		return `""`
	}
}

func quoteLiteral(s string) string {
	return fmt.Sprintf("%q", s)
}

// stripQuotes removes one layer of surrounding double quotes, used when
// composing a rendered value into a larger double-quoted context (e.g.
// inside $((...)) or $(...), where nested quoting would be wrong).
func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func arithOpSymbol(op ir.ArithOp) string {
	switch op {
	case ir.ArithAdd:
		return "+"
	case ir.ArithSub:
		return "-"
	case ir.ArithMul:
		return "*"
	case ir.ArithDiv:
		return "/"
	case ir.ArithMod:
		return "%"
	case ir.ArithBitAnd:
		return "&"
	case ir.ArithBitOr:
		return "|"
	case ir.ArithBitXor:
		return "^"
	case ir.ArithShl:
		return "<<"
	case ir.ArithShr:
		return ">>"
	case ir.ArithEq:
		return "=="
	case ir.ArithNe:
		return "!="
	case ir.ArithLt:
		return "<"
	case ir.ArithLe:
		return "<="
	case ir.ArithGt:
		return ">"
	case ir.ArithGe:
		return ">="
	default:
		return "?"
	}
}
