package ir

import (
	"fmt"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/restrictedast"
)

// commandEffects maps command names to their effect and required runtime
// helpers (spec §4.6 "Command
// effects": "records required runtime helpers (e.g. rash_download_verified)
// so the emitter can prepend them").
var commandEffects = map[string]struct {
	effect  Effect
	helpers []string
}{
	"curl":    {EffectNetwork, []string{"rash_download_verified"}},
	"wget":    {EffectNetwork, []string{"rash_download_verified"}},
	"tar":     {EffectFilesystem, nil},
	"unzip":   {EffectFilesystem, nil},
	"mkdir":   {EffectFilesystem, nil},
	"rm":      {EffectFilesystem, nil},
	"cp":      {EffectFilesystem, nil},
	"mv":      {EffectFilesystem, nil},
	"apt-get": {EffectPackageInstall, []string{"rash_checksum_compare"}},
	"apt":     {EffectPackageInstall, []string{"rash_checksum_compare"}},
	"yum":     {EffectPackageInstall, []string{"rash_checksum_compare"}},
	"dnf":     {EffectPackageInstall, []string{"rash_checksum_compare"}},
	"apk":     {EffectPackageInstall, []string{"rash_checksum_compare"}},
	"brew":    {EffectPackageInstall, nil},
}

// Lower is a total function (spec §4.6 "The lowering is a total function
// over the restricted AST") over every construct the restricted-source
// parser accepts; any construct it cannot translate returns a
// diag.KindUnsupportedConstruct error naming the construct and span
// (spec §4.6 "Error reporting", §7 UnsupportedConstruct), never a panic.
func Lower(prog *restrictedast.Program) (*Program, error) {
	out := &Program{Functions: map[string][]ShellStmt{}}
	for _, fn := range prog.Functions {
		stmts, err := lowerFunctionBody(fn)
		if err != nil {
			return nil, err
		}
		out.Functions[fn.Name] = stmts
	}
	if prog.FindFunction("main") != nil {
		out.Entry = "main"
	} else if len(prog.Functions) > 0 {
		out.Entry = prog.Functions[0].Name
	}
	return out, nil
}

// lowerFunctionBody lowers fn.Body, applying the "echo result" rule to
// the last statement when it is an expression statement and fn has a
// non-void return type (spec §4.6 "Function with return type": "exactly
// the final statement that is an expression").
func lowerFunctionBody(fn *restrictedast.Function) ([]ShellStmt, error) {
	out := make([]ShellStmt, 0, len(fn.Body))
	for i, stmt := range fn.Body {
		isLast := i == len(fn.Body)-1
		_, isExpr := stmt.(*restrictedast.ExprStmt)
		echoResult := isLast && isExpr && fn.ReturnType != restrictedast.TypeVoid

		lowered, err := lowerStmt(stmt, echoResult)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered...)
	}
	return out, nil
}

func lowerStmt(stmt restrictedast.Stmt, echoResult bool) ([]ShellStmt, error) {
	switch s := stmt.(type) {
	case *restrictedast.Let:
		v, err := lowerExpr(s.Value)
		if err != nil {
			return nil, err
		}
		return []ShellStmt{&Let{Name: s.Name, Value: v, Sp: s.Sp}}, nil

	case *restrictedast.ExprStmt:
		return lowerExprStmt(s, echoResult)

	case *restrictedast.Return:
		if s.Value == nil {
			return []ShellStmt{&Noop{Sp: s.Sp}}, nil
		}
		v, err := lowerExpr(s.Value)
		if err != nil {
			return nil, err
		}
		return []ShellStmt{&Let{Name: "__return", Value: v, Echo: true, Sp: s.Sp}}, nil

	case *restrictedast.If:
		cond, err := lowerCondition(s.Cond)
		if err != nil {
			return nil, err
		}
		thenBody, err := lowerBlock(s.Then, echoResult)
		if err != nil {
			return nil, err
		}
		elseBody, err := lowerBlock(s.Else, echoResult)
		if err != nil {
			return nil, err
		}
		return []ShellStmt{&If{Cond: cond, Then: thenBody, Else: elseBody, Sp: s.Sp}}, nil

	case *restrictedast.For:
		start, err := lowerExpr(s.Range.Start)
		if err != nil {
			return nil, err
		}
		end, err := lowerExpr(s.Range.End)
		if err != nil {
			return nil, err
		}
		// a..b (exclusive) lowers to seq a (b-1); a..=b (inclusive) lowers
		// to seq a b (spec §4.6 "Ranges").
		if !s.Range.Inclusive {
			end = &Arithmetic{Op: ArithSub, Left: end, Right: &String{Value: "1", Sp: s.Range.End.Span()}, Sp: s.Range.End.Span()}
		}
		body, err := lowerBlock(s.Body, false)
		if err != nil {
			return nil, err
		}
		return []ShellStmt{&For{
			Var:  s.Var,
			Seq:  &SeqCall{Start: start, End: end, Sp: s.Range.Sp},
			Body: body,
			Sp:   s.Sp,
		}}, nil

	default:
		return nil, diag.NewError(diag.KindUnsupportedConstruct, stmt.Span(),
			fmt.Sprintf("unsupported restricted-source statement %T", stmt))
	}
}

func lowerBlock(stmts []restrictedast.Stmt, echoLast bool) ([]ShellStmt, error) {
	if len(stmts) == 0 {
		return nil, nil
	}
	out := make([]ShellStmt, 0, len(stmts))
	for i, stmt := range stmts {
		isLast := i == len(stmts)-1
		_, isExpr := stmt.(*restrictedast.ExprStmt)
		lowered, err := lowerStmt(stmt, echoLast && isLast && isExpr)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered...)
	}
	return out, nil
}

// lowerCondition lowers an If condition expression into the ShellStmt a
// POSIX `if` branches on: an Exec of `test VALUE != 0`, the same form for
// a comparison (VALUE is then its 0/1 arithmetic result) and for any
// other expression.
func lowerCondition(cond restrictedast.Expr) (ShellStmt, error) {
	v, err := lowerExpr(cond)
	if err != nil {
		return nil, err
	}
	return &Exec{
		Command: "test",
		Args:    []ShellValue{v, &String{Value: "!=", Sp: cond.Span()}, &String{Value: "0", Sp: cond.Span()}},
		Sp:      cond.Span(),
	}, nil
}

func lowerExprStmt(s *restrictedast.ExprStmt, echoResult bool) ([]ShellStmt, error) {
	if call, ok := s.Value.(*restrictedast.Call); ok {
		return lowerCall(call, echoResult)
	}
	v, err := lowerExpr(s.Value)
	if err != nil {
		return nil, err
	}
	if echoResult {
		return []ShellStmt{&Exec{Command: "echo", Args: []ShellValue{v}, Sp: s.Sp}}, nil
	}
	return []ShellStmt{&Let{Name: "_", Value: v, Sp: s.Sp}}, nil
}

func lowerCall(call *restrictedast.Call, echoResult bool) ([]ShellStmt, error) {
	args := make([]ShellValue, 0, len(call.Args))
	for _, a := range call.Args {
		v, err := lowerExpr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	exec := &Exec{Command: call.Name, Args: args, Sp: call.Sp}
	if eff, ok := commandEffects[call.Name]; ok {
		exec.Effect = eff.effect
		exec.RequiresHelpers = eff.helpers
	}
	if echoResult {
		return []ShellStmt{&Exec{Command: "echo", Args: []ShellValue{&CommandSub{Body: []ShellStmt{exec}, Sp: call.Sp}}, Sp: call.Sp}}, nil
	}
	return []ShellStmt{exec}, nil
}

var restrictedToArith = map[restrictedast.BinOp]ArithOp{
	restrictedast.OpAdd: ArithAdd, restrictedast.OpSub: ArithSub, restrictedast.OpMul: ArithMul,
	restrictedast.OpDiv: ArithDiv, restrictedast.OpMod: ArithMod,
	restrictedast.OpBitAnd: ArithBitAnd, restrictedast.OpBitOr: ArithBitOr, restrictedast.OpBitXor: ArithBitXor,
	restrictedast.OpShl: ArithShl, restrictedast.OpShr: ArithShr,
	restrictedast.OpEq: ArithEq, restrictedast.OpNe: ArithNe,
	restrictedast.OpLt: ArithLt, restrictedast.OpLe: ArithLe,
	restrictedast.OpGt: ArithGt, restrictedast.OpGe: ArithGe,
}

func lowerExpr(expr restrictedast.Expr) (ShellValue, error) {
	switch e := expr.(type) {
	case *restrictedast.IntLit:
		return &String{Value: fmt.Sprintf("%d", e.Value), Sp: e.Sp}, nil

	case *restrictedast.StringLit:
		return &String{Value: e.Value, Sp: e.Sp}, nil

	case *restrictedast.BoolLit:
		if e.Value {
			return &String{Value: "1", Sp: e.Sp}, nil
		}
		return &String{Value: "0", Sp: e.Sp}, nil

	case *restrictedast.VarRef:
		return &Variable{Name: e.Name, Sp: e.Sp}, nil

	case *restrictedast.BinaryOp:
		left, err := lowerExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := lowerExpr(e.Right)
		if err != nil {
			return nil, err
		}
		op, ok := restrictedToArith[e.Op]
		if !ok {
			return nil, diag.NewError(diag.KindUnsupportedConstruct, e.Sp,
				fmt.Sprintf("unsupported binary operator %s", e.Op))
		}
		return &Arithmetic{Op: op, Left: left, Right: right, Sp: e.Sp}, nil

	case *restrictedast.Call:
		stmts, err := lowerCall(e, false)
		if err != nil {
			return nil, err
		}
		return &CommandSub{Body: stmts, Sp: e.Sp}, nil

	default:
		return nil, diag.NewError(diag.KindUnsupportedConstruct, expr.Span(),
			fmt.Sprintf("unsupported restricted-source expression %T", expr))
	}
}
