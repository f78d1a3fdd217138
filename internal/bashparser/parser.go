// Package bashparser converts a mvdan.cc/sh/v3/syntax parse tree into our
// own internal/bashast node types. This is the one place in the module
// that imports mvdan.cc/sh/v3/syntax — every rule, the purifier, and the
// suppression engine operate over bashast only, the same split the
// teacher repo draws between internal/shell (mvdan-aware) and
// internal/rules (mvdan-unaware).
package bashparser

import (
	"bytes"
	"fmt"

	"mvdan.cc/sh/v3/syntax"

	"github.com/wharflab/bashrs/internal/bashast"
	"github.com/wharflab/bashrs/internal/diag"
)

// Parse tokenizes and converts source into a *bashast.File. On a syntax
// error it returns a *bashast.File that carries only the shebang and a
// span over the whole source, with no statements (nothing parsed before
// the failure is kept), alongside a *diag.CoreError wrapping
// diag.KindParseError whose span is always 1:1, not the failing position.
func Parse(source []byte) (*bashast.File, error) {
	parser := syntax.NewParser(syntax.KeepComments(true))
	f, err := parser.Parse(bytes.NewReader(source), "")
	if err != nil {
		lines := bytes.Count(source, []byte{'\n'}) + 1
		return &bashast.File{
			Shebang:    shebangOf(source),
			Statements: nil,
			Sp:         diag.NewSpan(1, 1, lines, 1),
		}, diag.NewError(diag.KindParseError, diag.NewSpan(1, 1, 1, 1), err.Error())
	}

	c := &converter{}
	stmts := c.convertStmts(f.Stmts)
	sp := diag.NewSpan(1, 1, maxLine(source), 1)
	return &bashast.File{Shebang: shebangOf(source), Statements: stmts, Sp: sp}, nil
}

func shebangOf(source []byte) string {
	nl := bytes.IndexByte(source, '\n')
	var first []byte
	if nl < 0 {
		first = source
	} else {
		first = source[:nl]
	}
	if bytes.HasPrefix(first, []byte("#!")) {
		return string(bytes.TrimSpace(first))
	}
	return ""
}

func maxLine(source []byte) int {
	return bytes.Count(source, []byte{'\n'}) + 1
}

type converter struct{}

func posSpan(p syntax.Pos, end syntax.Pos) diag.Span {
	return diag.NewSpan(int(p.Line()), int(p.Col()), int(end.Line()), int(end.Col()))
}

func (c *converter) convertStmts(in []*syntax.Stmt) []bashast.Stmt {
	var out []bashast.Stmt
	for _, s := range in {
		if len(s.Comments) > 0 {
			for _, cm := range s.Comments {
				out = append(out, &bashast.Comment{
					Text: "#" + cm.Text,
					Sp:   posSpan(cm.Pos(), cm.End()),
				})
			}
		}
		if node := c.convertStmt(s); node != nil {
			if s.Negated {
				node = &bashast.Negated{Body: node, Sp: posSpan(s.Pos(), s.End())}
			}
			out = append(out, node)
		}
	}
	return out
}

func (c *converter) convertStmt(s *syntax.Stmt) bashast.Stmt {
	return c.convertCmd(s.Cmd, s)
}

func (c *converter) convertCmd(cmd syntax.Command, s *syntax.Stmt) bashast.Stmt {
	sp := posSpan(s.Pos(), s.End())
	switch n := cmd.(type) {
	case *syntax.CallExpr:
		return c.convertCallExpr(n, sp)
	case *syntax.BinaryCmd:
		left := c.convertStmt(n.X)
		right := c.convertStmt(n.Y)
		switch n.Op {
		case syntax.AndStmt:
			return &bashast.AndList{Left: left, Right: right, Sp: sp}
		case syntax.OrStmt:
			return &bashast.OrList{Left: left, Right: right, Sp: sp}
		case syntax.Pipe, syntax.PipeAll:
			return &bashast.Pipeline{Stages: []bashast.Stmt{left, right}, Sp: sp}
		}
		return &bashast.Pipeline{Stages: []bashast.Stmt{left, right}, Sp: sp}
	case *syntax.Block:
		return &bashast.BraceGroup{Body: c.convertStmts(n.Stmts), Sp: sp}
	case *syntax.Subshell:
		return &bashast.Subshell{Body: c.convertStmts(n.Stmts), Sp: sp}
	case *syntax.FuncDecl:
		var body []bashast.Stmt
		if blk, ok := n.Body.Cmd.(*syntax.Block); ok {
			body = c.convertStmts(blk.Stmts)
		} else {
			body = []bashast.Stmt{c.convertStmt(n.Body)}
		}
		return &bashast.Function{Name: n.Name.Value, Body: body, Sp: sp}
	case *syntax.IfClause:
		return c.convertIf(n, sp)
	case *syntax.WhileClause:
		cond := c.wrapStmts(n.Cond, sp)
		body := c.convertStmts(n.Do)
		if n.Until {
			return &bashast.Until{Cond: cond, Body: body, Sp: sp}
		}
		return &bashast.While{Cond: cond, Body: body, Sp: sp}
	case *syntax.ForClause:
		return c.convertFor(n, sp)
	case *syntax.CaseClause:
		return c.convertCase(n, sp)
	default:
		return &bashast.Comment{Text: fmt.Sprintf("# unsupported construct: %T", cmd), Sp: sp}
	}
}

func (c *converter) wrapStmts(stmts []*syntax.Stmt, sp diag.Span) bashast.Stmt {
	converted := c.convertStmts(stmts)
	if len(converted) == 1 {
		return converted[0]
	}
	return &bashast.BraceGroup{Body: converted, Sp: sp}
}

func (c *converter) convertIf(n *syntax.IfClause, sp diag.Span) bashast.Stmt {
	cond := c.wrapStmts(n.Cond, sp)
	then := c.convertStmts(n.Then)
	var els []bashast.Stmt
	if n.Else != nil {
		els = []bashast.Stmt{c.convertIf(n.Else, posSpan(n.Else.Pos(), n.Else.End()))}
	}
	return &bashast.If{Cond: cond, Then: then, Else: els, Sp: sp}
}

func (c *converter) convertFor(n *syntax.ForClause, sp diag.Span) bashast.Stmt {
	body := c.convertStmts(n.Do)
	if wc, ok := n.Loop.(*syntax.WordIter); ok {
		var items []bashast.Expr
		for _, w := range wc.Items {
			items = append(items, c.convertWord(w))
		}
		return &bashast.For{Var: wc.Name.Value, Items: items, Body: body, Sp: sp}
	}
	if cs, ok := n.Loop.(*syntax.CStyleLoop); ok {
		var init, cond, post bashast.Expr
		if cs.Init != nil {
			init = c.convertArithmExpr(cs.Init)
		}
		if cs.Cond != nil {
			cond = c.convertArithmExpr(cs.Cond)
		}
		if cs.Post != nil {
			post = c.convertArithmExpr(cs.Post)
		}
		return &bashast.ForCStyle{Init: init, Cond: cond, Post: post, Body: body, Sp: sp}
	}
	return &bashast.For{Body: body, Sp: sp}
}

func (c *converter) convertCase(n *syntax.CaseClause, sp diag.Span) bashast.Stmt {
	word := c.convertWord(n.Word)
	var clauses []bashast.CaseClause
	for _, item := range n.Items {
		var patterns []string
		for _, p := range item.Patterns {
			patterns = append(patterns, wordLiteral(p))
		}
		clauses = append(clauses, bashast.CaseClause{
			Patterns: patterns,
			Body:     c.convertStmts(item.Stmts),
		})
	}
	return &bashast.Case{Word: word, Clauses: clauses, Sp: sp}
}

func (c *converter) convertCallExpr(n *syntax.CallExpr, sp diag.Span) bashast.Stmt {
	if len(n.Args) == 0 {
		for _, a := range n.Assigns {
			return c.convertAssign(a, sp)
		}
		return &bashast.Command{Sp: sp}
	}
	name := wordLiteral(n.Args[0])
	var args []bashast.Expr
	for _, w := range n.Args[1:] {
		args = append(args, c.convertWord(w))
	}
	if len(n.Assigns) == 1 && len(n.Args) == 0 {
		return c.convertAssign(n.Assigns[0], sp)
	}
	return &bashast.Command{Name: name, Args: args, Sp: sp}
}

func (c *converter) convertAssign(a *syntax.Assign, sp diag.Span) bashast.Stmt {
	var val bashast.Expr
	if a.Value != nil {
		val = c.convertWord(a.Value)
	}
	return &bashast.Assignment{Name: a.Name.Value, Value: val, Append: a.Append, Sp: sp}
}

// convertWord converts a syntax.Word (a sequence of parts) into a single
// Expr: the converted part itself if there is exactly one part, a
// Concatenation otherwise.
func (c *converter) convertWord(w *syntax.Word) bashast.Expr {
	if w == nil {
		return &bashast.StringLit{Sp: diag.Span{}}
	}
	sp := posSpan(w.Pos(), w.End())
	if len(w.Parts) == 1 {
		return c.convertWordPart(w.Parts[0])
	}
	var parts []bashast.Expr
	for _, p := range w.Parts {
		parts = append(parts, c.convertWordPart(p))
	}
	return &bashast.Concatenation{Parts: parts, Sp: sp}
}

func (c *converter) convertWordPart(p syntax.WordPart) bashast.Expr {
	sp := posSpan(p.Pos(), p.End())
	switch n := p.(type) {
	case *syntax.Lit:
		return &bashast.StringLit{Value: n.Value, Sp: sp}
	case *syntax.SglQuoted:
		return &bashast.StringLit{Value: n.Value, Quoted: true, Sp: sp}
	case *syntax.DblQuoted:
		var parts []bashast.Expr
		for _, inner := range n.Parts {
			parts = append(parts, c.convertWordPart(inner))
		}
		if len(parts) == 1 {
			if sl, ok := parts[0].(*bashast.StringLit); ok {
				sl.Quoted = true
				return sl
			}
		}
		return &bashast.Concatenation{Parts: parts, Sp: sp}
	case *syntax.ParamExp:
		return c.convertParamExp(n, sp)
	case *syntax.CmdSubst:
		return &bashast.CommandSub{Body: c.convertStmts(n.Stmts), Backtick: n.Backquotes, Sp: sp}
	case *syntax.ArithmExp:
		return c.convertArithmExpr(n.X)
	default:
		return &bashast.StringLit{Value: "", Sp: sp}
	}
}

func (c *converter) convertParamExp(n *syntax.ParamExp, sp diag.Span) bashast.Expr {
	if n.Param == nil {
		return &bashast.StringLit{Sp: sp}
	}
	name := n.Param.Value
	if n.Exp == nil {
		return &bashast.VariableRef{Name: name, Sp: sp}
	}
	var op string
	switch n.Exp.Op {
	case syntax.AlternateUnset, syntax.AlternateUnsetOrNull:
		op = ":+"
	case syntax.DefaultUnset, syntax.DefaultUnsetOrNull:
		op = ":-"
	case syntax.ErrorUnset, syntax.ErrorUnsetOrNull:
		op = ":?"
	case syntax.AssignUnset, syntax.AssignUnsetOrNull:
		op = ":="
	case syntax.RemSmallSuffix, syntax.RemLargeSuffix:
		op = "%"
	case syntax.RemSmallPrefix, syntax.RemLargePrefix:
		op = "#"
	default:
		op = "//"
	}
	var word bashast.Expr
	if n.Exp.Word != nil {
		word = c.convertWord(n.Exp.Word)
	}
	return &bashast.ParameterExpansion{Name: name, Op: op, Word: word, Sp: sp}
}

func (c *converter) convertArithmExpr(e syntax.ArithmExpr) bashast.Expr {
	if e == nil {
		return nil
	}
	sp := posSpan(e.Pos(), e.End())
	switch n := e.(type) {
	case *syntax.Word:
		return c.convertWord(n)
	case *syntax.BinaryArithm:
		op, ok := arithOp(n.Op)
		if !ok {
			return &bashast.StringLit{Sp: sp}
		}
		return &bashast.Arithmetic{
			Op:    op,
			Left:  c.convertArithmExpr(n.X),
			Right: c.convertArithmExpr(n.Y),
			Sp:    sp,
		}
	case *syntax.ParenArithm:
		return c.convertArithmExpr(n.X)
	default:
		return &bashast.StringLit{Sp: sp}
	}
}

func arithOp(op syntax.BinAritOperator) (bashast.ArithOp, bool) {
	switch op {
	case syntax.Add:
		return bashast.OpAdd, true
	case syntax.Sub:
		return bashast.OpSub, true
	case syntax.Mul:
		return bashast.OpMul, true
	case syntax.Quo:
		return bashast.OpDiv, true
	case syntax.Rem:
		return bashast.OpMod, true
	case syntax.And:
		return bashast.OpBitAnd, true
	case syntax.Or:
		return bashast.OpBitOr, true
	case syntax.Xor:
		return bashast.OpBitXor, true
	case syntax.Shl:
		return bashast.OpShl, true
	case syntax.Shr:
		return bashast.OpShr, true
	case syntax.Eql:
		return bashast.OpEq, true
	case syntax.Neq:
		return bashast.OpNe, true
	case syntax.Lss:
		return bashast.OpLt, true
	case syntax.Leq:
		return bashast.OpLe, true
	case syntax.Gtr:
		return bashast.OpGt, true
	case syntax.Geq:
		return bashast.OpGe, true
	default:
		return 0, false
	}
}

func wordLiteral(w *syntax.Word) string {
	if w == nil {
		return ""
	}
	var buf bytes.Buffer
	for _, p := range w.Parts {
		switch n := p.(type) {
		case *syntax.Lit:
			buf.WriteString(n.Value)
		case *syntax.SglQuoted:
			buf.WriteString(n.Value)
		}
	}
	return buf.String()
}
