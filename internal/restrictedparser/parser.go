package restrictedparser

import (
	"fmt"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/restrictedast"
)

// Parse lexes and parses source into a restrictedast.Program. On a syntax
// error it returns a diag.CoreError wrapping diag.KindParseError with a span
// at the offending token, matching §7's ParseError contract for the core.
func Parse(source []byte) (*restrictedast.Program, error) {
	p := &parser{lex: newLexer(string(source))}
	p.advance()
	return p.parseProgram()
}

type parser struct {
	lex *lexer
	cur token
}

func (p *parser) advance() {
	p.cur = p.lex.next()
}

func (p *parser) span() diag.Span {
	return diag.Point(p.cur.line, p.cur.col)
}

func (p *parser) errorf(format string, args ...any) error {
	return diag.NewError(diag.KindParseError, p.span(), fmt.Sprintf(format, args...))
}

func (p *parser) expectPunct(text string) error {
	if p.cur.kind != tokPunct || p.cur.text != text {
		return p.errorf("expected %q, got %q", text, p.cur.text)
	}
	p.advance()
	return nil
}

func (p *parser) expectKeyword(text string) error {
	if p.cur.kind != tokKeyword || p.cur.text != text {
		return p.errorf("expected keyword %q, got %q", text, p.cur.text)
	}
	p.advance()
	return nil
}

func (p *parser) atPunct(text string) bool {
	return p.cur.kind == tokPunct && p.cur.text == text
}

func (p *parser) atKeyword(text string) bool {
	return p.cur.kind == tokKeyword && p.cur.text == text
}

func (p *parser) parseProgram() (*restrictedast.Program, error) {
	startLine, startCol := p.cur.line, p.cur.col
	prog := &restrictedast.Program{}
	for p.cur.kind != tokEOF {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}
	prog.Sp = diag.NewSpan(startLine, startCol, p.cur.line, p.cur.col)
	return prog, nil
}

func (p *parser) parseFunction() (*restrictedast.Function, error) {
	startLine, startCol := p.cur.line, p.cur.col
	if err := p.expectKeyword("fn"); err != nil {
		return nil, err
	}
	if p.cur.kind != tokIdent {
		return nil, p.errorf("expected function name, got %q", p.cur.text)
	}
	name := p.cur.text
	p.advance()

	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []restrictedast.Param
	for !p.atPunct(")") {
		if p.cur.kind != tokIdent {
			return nil, p.errorf("expected parameter name, got %q", p.cur.text)
		}
		pname := p.cur.text
		psp := p.span()
		p.advance()
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		ptyp, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		params = append(params, restrictedast.Param{Name: pname, Type: ptyp, Sp: psp})
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	retType := restrictedast.TypeVoid
	if p.atPunct("->") {
		p.advance()
		t, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		retType = t
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &restrictedast.Function{
		Name:       name,
		Params:     params,
		ReturnType: retType,
		Body:       body,
		Sp:         diag.NewSpan(startLine, startCol, p.cur.line, p.cur.col),
	}, nil
}

func (p *parser) parseTypeName() (restrictedast.Type, error) {
	if p.cur.kind != tokKeyword {
		return restrictedast.TypeVoid, p.errorf("expected a type, got %q", p.cur.text)
	}
	t, ok := restrictedast.ParseType(p.cur.text)
	if !ok {
		return restrictedast.TypeVoid, p.errorf("unknown type %q", p.cur.text)
	}
	p.advance()
	return t, nil
}

func (p *parser) parseBlock() ([]restrictedast.Stmt, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var stmts []restrictedast.Stmt
	for !p.atPunct("}") {
		if p.cur.kind == tokEOF {
			return nil, p.errorf("unterminated block")
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) parseStmt() (restrictedast.Stmt, error) {
	switch {
	case p.atKeyword("let"):
		return p.parseLet()
	case p.atKeyword("if"):
		return p.parseIf()
	case p.atKeyword("for"):
		return p.parseFor()
	case p.atKeyword("return"):
		return p.parseReturn()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseLet() (restrictedast.Stmt, error) {
	startLine, startCol := p.cur.line, p.cur.col
	if err := p.expectKeyword("let"); err != nil {
		return nil, err
	}
	if p.cur.kind != tokIdent {
		return nil, p.errorf("expected variable name, got %q", p.cur.text)
	}
	name := p.cur.text
	p.advance()

	typ := restrictedast.TypeVoid
	if p.atPunct(":") {
		p.advance()
		t, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		typ = t
	}

	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &restrictedast.Let{
		Name: name, Type: typ, Value: value,
		Sp: diag.NewSpan(startLine, startCol, p.cur.line, p.cur.col),
	}, nil
}

func (p *parser) parseIf() (restrictedast.Stmt, error) {
	startLine, startCol := p.cur.line, p.cur.col
	if err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	thenBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBody []restrictedast.Stmt
	if p.atKeyword("else") {
		p.advance()
		if p.atKeyword("if") {
			elseIf, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			elseBody = []restrictedast.Stmt{elseIf}
		} else {
			elseBody, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
	}
	return &restrictedast.If{
		Cond: cond, Then: thenBody, Else: elseBody,
		Sp: diag.NewSpan(startLine, startCol, p.cur.line, p.cur.col),
	}, nil
}

func (p *parser) parseFor() (restrictedast.Stmt, error) {
	startLine, startCol := p.cur.line, p.cur.col
	if err := p.expectKeyword("for"); err != nil {
		return nil, err
	}
	if p.cur.kind != tokIdent {
		return nil, p.errorf("expected loop variable, got %q", p.cur.text)
	}
	name := p.cur.text
	p.advance()
	if err := p.expectKeyword("in"); err != nil {
		return nil, err
	}
	rangeStart, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	inclusive := false
	var rangeEnd restrictedast.Expr
	if p.atPunct("..") || p.atPunct("..=") {
		inclusive = p.cur.text == "..="
		p.advance()
		rangeEnd, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	} else {
		return nil, p.errorf("expected a range (a..b or a..=b) in for loop, got %q", p.cur.text)
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	rng := &restrictedast.RangeExpr{
		Start: rangeStart, End: rangeEnd, Inclusive: inclusive,
		Sp: diag.NewSpan(rangeStart.Span().StartLine, rangeStart.Span().StartCol, rangeEnd.Span().EndLine, rangeEnd.Span().EndCol),
	}
	return &restrictedast.For{
		Var: name, Range: rng, Body: body,
		Sp: diag.NewSpan(startLine, startCol, p.cur.line, p.cur.col),
	}, nil
}

func (p *parser) parseReturn() (restrictedast.Stmt, error) {
	startLine, startCol := p.cur.line, p.cur.col
	if err := p.expectKeyword("return"); err != nil {
		return nil, err
	}
	var value restrictedast.Expr
	if !p.atPunct(";") {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &restrictedast.Return{
		Value: value, Sp: diag.NewSpan(startLine, startCol, p.cur.line, p.cur.col),
	}, nil
}

func (p *parser) parseExprStmt() (restrictedast.Stmt, error) {
	startLine, startCol := p.cur.line, p.cur.col
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &restrictedast.ExprStmt{
		Value: value, Sp: diag.NewSpan(startLine, startCol, p.cur.line, p.cur.col),
	}, nil
}

// Operator precedence, lowest to highest; used by parseBinary's climbing.
var precedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3,
	"<": 4, "<=": 4, ">": 4, ">=": 4,
	"|": 5, "^": 5,
	"&": 6,
	"<<": 7, ">>": 7,
	"+": 8, "-": 8,
	"*": 9, "/": 9, "%": 9,
}

var punctToOp = map[string]restrictedast.BinOp{
	"+": restrictedast.OpAdd, "-": restrictedast.OpSub, "*": restrictedast.OpMul,
	"/": restrictedast.OpDiv, "%": restrictedast.OpMod,
	"&": restrictedast.OpBitAnd, "|": restrictedast.OpBitOr, "^": restrictedast.OpBitXor,
	"<<": restrictedast.OpShl, ">>": restrictedast.OpShr,
	"==": restrictedast.OpEq, "!=": restrictedast.OpNe,
	"<": restrictedast.OpLt, "<=": restrictedast.OpLe,
	">": restrictedast.OpGt, ">=": restrictedast.OpGe,
	"&&": restrictedast.OpAnd, "||": restrictedast.OpOr,
}

func (p *parser) parseExpr() (restrictedast.Expr, error) {
	return p.parseBinary(0)
}

func (p *parser) parseBinary(minPrec int) (restrictedast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPunct {
		prec, ok := precedence[p.cur.text]
		if !ok || prec < minPrec {
			break
		}
		op := punctToOp[p.cur.text]
		p.advance()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &restrictedast.BinaryOp{
			Op: op, Left: left, Right: right,
			Sp: diag.NewSpan(left.Span().StartLine, left.Span().StartCol, right.Span().EndLine, right.Span().EndCol),
		}
	}
	return left, nil
}

func (p *parser) parseUnary() (restrictedast.Expr, error) {
	if p.atPunct("(") {
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (restrictedast.Expr, error) {
	sp := p.span()
	switch {
	case p.cur.kind == tokInt:
		v := p.cur.intValue
		p.advance()
		return &restrictedast.IntLit{Value: v, Sp: sp}, nil

	case p.cur.kind == tokString:
		v := p.cur.text
		p.advance()
		return &restrictedast.StringLit{Value: v, Sp: sp}, nil

	case p.atKeyword("true"):
		p.advance()
		return &restrictedast.BoolLit{Value: true, Sp: sp}, nil

	case p.atKeyword("false"):
		p.advance()
		return &restrictedast.BoolLit{Value: false, Sp: sp}, nil

	case p.cur.kind == tokIdent:
		name := p.cur.text
		p.advance()
		if p.atPunct("(") {
			p.advance()
			var args []restrictedast.Expr
			for !p.atPunct(")") {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.atPunct(",") {
					p.advance()
					continue
				}
				break
			}
			endSp := p.span()
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return &restrictedast.Call{
				Name: name, Args: args,
				Sp: diag.NewSpan(sp.StartLine, sp.StartCol, endSp.EndLine, endSp.EndCol),
			}, nil
		}
		return &restrictedast.VarRef{Name: name, Sp: sp}, nil

	default:
		return nil, p.errorf("unexpected token %q", p.cur.text)
	}
}
