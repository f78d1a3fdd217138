// Package restrictedparser is a hand-rolled recursive-descent parser for
// the restricted source language (spec §4.6), grounded on the general
// shape of internal/bashparser (wrap a lower-level tokenizer, build our
// own AST, preserve spans for every node) even though the restricted
// language has no existing Go tokenizer to wrap — unlike bash, which
// reuses mvdan.cc/sh/v3/syntax, there is no off-the-shelf Rust-subset
// lexer in the example corpus, so the lexer below is written directly in
// the teacher's idiom: a single forward-scanning pass producing a flat
// token stream with 1-indexed line/column positions.
package restrictedparser

import (
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokString
	tokKeyword
	tokPunct
)

type token struct {
	kind       tokenKind
	text       string
	line, col  int
	intValue   int64
}

var keywords = map[string]bool{
	"fn": true, "let": true, "if": true, "else": true, "for": true,
	"in": true, "return": true, "true": true, "false": true,
	"i32": true, "u32": true, "str": true, "bool": true, "void": true,
}

type lexer struct {
	src        string
	pos        int
	line, col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *lexer) skipTrivia() {
	for l.pos < len(l.src) {
		switch {
		case l.peekByte() == ' ' || l.peekByte() == '\t' || l.peekByte() == '\r' || l.peekByte() == '\n':
			l.advance()
		case l.peekByte() == '/' && l.peekByteAt(1) == '/':
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// next returns the next token, or a tokEOF token once the input is
// exhausted. It never returns an error: unrecognized bytes become
// single-character tokPunct tokens, and the parser reports them as
// syntax errors with a span pointing at the offending token.
func (l *lexer) next() token {
	l.skipTrivia()
	startLine, startCol := l.line, l.col
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: startLine, col: startCol}
	}

	b := l.peekByte()
	switch {
	case isIdentStart(b):
		start := l.pos
		for l.pos < len(l.src) && isIdentCont(l.peekByte()) {
			l.advance()
		}
		text := l.src[start:l.pos]
		kind := tokIdent
		if keywords[text] {
			kind = tokKeyword
		}
		return token{kind: kind, text: text, line: startLine, col: startCol}

	case isDigit(b):
		start := l.pos
		for l.pos < len(l.src) && isDigit(l.peekByte()) {
			l.advance()
		}
		text := l.src[start:l.pos]
		var v int64
		for _, r := range text {
			v = v*10 + int64(r-'0')
		}
		return token{kind: tokInt, text: text, intValue: v, line: startLine, col: startCol}

	case b == '"':
		l.advance()
		var sb strings.Builder
		for l.pos < len(l.src) && l.peekByte() != '"' {
			c := l.advance()
			if c == '\\' && l.pos < len(l.src) {
				esc := l.advance()
				switch esc {
				case 'n':
					sb.WriteByte('\n')
				case 't':
					sb.WriteByte('\t')
				case '"', '\\':
					sb.WriteByte(esc)
				default:
					sb.WriteByte(esc)
				}
				continue
			}
			sb.WriteByte(c)
		}
		if l.pos < len(l.src) {
			l.advance() // closing quote
		}
		return token{kind: tokString, text: sb.String(), line: startLine, col: startCol}

	default:
		return l.lexPunct(startLine, startCol)
	}
}

func (l *lexer) lexPunct(startLine, startCol int) token {
	two := l.src[l.pos:min(l.pos+2, len(l.src))]
	three := l.src[l.pos:min(l.pos+3, len(l.src))]
	switch three {
	case "..=":
		l.advance()
		l.advance()
		l.advance()
		return token{kind: tokPunct, text: "..=", line: startLine, col: startCol}
	}
	switch two {
	case "->", "==", "!=", "<=", ">=", "&&", "||", "<<", ">>", "..":
		l.advance()
		l.advance()
		return token{kind: tokPunct, text: two, line: startLine, col: startCol}
	}
	c := l.advance()
	r, _ := utf8.DecodeRuneInString(string(c))
	return token{kind: tokPunct, text: string(r), line: startLine, col: startCol}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
