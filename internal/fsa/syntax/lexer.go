package syntax

import (
	"unicode/utf8"
)

type tokenType int

const (
	tEOF    tokenType = iota
	tChar             // literal rune
	tLParen           // (
	tRParen           // )
	tStar             // *
	tUnion            // |
)

func (t tokenType) String() string {
	switch t {
	case tEOF:
		return "end of pattern"
	case tChar:
		return "literal"
	case tLParen:
		return "'('"
	case tRParen:
		return "')'"
	case tStar:
		return "'*'"
	case tUnion:
		return "'|'"
	}
	return "unknown token"
}

type token struct {
	typ tokenType
	ch  rune // for tChar
	pos int  // byte offset in the pattern
}

type lexer struct {
	input string
	pos   int
}

func newLexer(s string) *lexer { return &lexer{input: s} }

func (l *lexer) next() token {
	start := l.pos
	if l.pos >= len(l.input) {
		return token{typ: tEOF, pos: start}
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	switch r {
	case '(':
		return token{typ: tLParen, pos: start}
	case ')':
		return token{typ: tRParen, pos: start}
	case '*':
		return token{typ: tStar, pos: start}
	case '|':
		return token{typ: tUnion, pos: start}
	case '\\':
		if l.pos >= len(l.input) {
			// trailing backslash is itself
			return token{typ: tChar, ch: r, pos: start}
		}
		r2, s2 := utf8.DecodeRuneInString(l.input[l.pos:])
		l.pos += s2
		return token{typ: tChar, ch: r2, pos: start}
	default:
		return token{typ: tChar, ch: r, pos: start}
	}
}
