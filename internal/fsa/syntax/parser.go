// Package syntax reads the textual notation for fsa patterns: runes stand
// for themselves, juxtaposition concatenates, '|' alternates, postfix '*'
// repeats and parentheses group. A backslash makes the next rune literal.
package syntax

import (
	"fmt"

	"lindenmayer/internal/fsa"
)

// Error is a syntax error at byte Offset of the pattern.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("pattern offset %d: %s", e.Offset, e.Msg)
}

// Parse reads src into an untagged pattern.
func Parse[V comparable](src string) (fsa.Pattern[rune, V], error) {
	p := newParser[V](src)
	if p.look.typ == tEOF {
		return nil, &Error{Offset: 0, Msg: "empty pattern"}
	}
	node, err := p.parseExpr(1)
	if err != nil {
		return nil, err
	}
	if p.look.typ != tEOF {
		return nil, &Error{Offset: p.look.pos, Msg: fmt.Sprintf("unexpected %v", p.look.typ)}
	}
	return node, nil
}

// ParseTagged reads src and tags the whole pattern with v.
func ParseTagged[V comparable](src string, v V) (fsa.Pattern[rune, V], error) {
	node, err := Parse[V](src)
	if err != nil {
		return nil, err
	}
	if _, tagged := node.Accept(); tagged {
		return nil, &Error{Offset: 0, Msg: "pattern already tagged"}
	}
	return fsa.WithTag[rune, V](node, fsa.Accept(v)), nil
}

// MustParseTagged is like ParseTagged but panics on error.
func MustParseTagged[V comparable](src string, v V) fsa.Pattern[rune, V] {
	node, err := ParseTagged(src, v)
	if err != nil {
		panic(err)
	}
	return node
}

type parser[V comparable] struct {
	lex  *lexer
	look token
}

func newParser[V comparable](src string) *parser[V] {
	p := &parser[V]{lex: newLexer(src)}
	p.look = p.lex.next()
	return p
}

func (p *parser[V]) scan() { p.look = p.lex.next() }

func precedence(t tokenType) int {
	switch t {
	case tUnion:
		return 1
	case tChar, tLParen:
		return 2 // implicit concatenation
	default:
		return 0
	}
}

// parseExpr is a Pratt loop over the two infix operators; '*' binds
// tighter than both and is handled as a suffix of every operand.
func (p *parser[V]) parseExpr(minPrec int) (fsa.Pattern[rune, V], error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	for precedence(p.look.typ) >= minPrec {
		prec := precedence(p.look.typ)
		union := p.look.typ == tUnion
		if union {
			p.scan()
		}
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = join(union, left, right)
	}
	return left, nil
}

func (p *parser[V]) parseOperand() (fsa.Pattern[rune, V], error) {
	var node fsa.Pattern[rune, V]
	switch p.look.typ {
	case tChar:
		node = fsa.Literal[rune, V]{Symbol: p.look.ch}
		p.scan()
	case tLParen:
		open := p.look.pos
		p.scan()
		inner, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		if p.look.typ != tRParen {
			return nil, &Error{Offset: open, Msg: "unmatched '('"}
		}
		p.scan()
		node = inner
	default:
		return nil, &Error{Offset: p.look.pos, Msg: fmt.Sprintf("unexpected %v", p.look.typ)}
	}

	for p.look.typ == tStar {
		node = fsa.Repetition[rune, V]{Child: node}
		p.scan()
	}
	return node, nil
}

// join combines two operands under one n-ary node. Operands built by the
// same operator are flattened into it; grouping does not change what a
// concatenation or alternation matches.
func join[V comparable](union bool, left, right fsa.Pattern[rune, V]) fsa.Pattern[rune, V] {
	var children []fsa.Pattern[rune, V]
	for _, n := range []fsa.Pattern[rune, V]{left, right} {
		switch x := n.(type) {
		case fsa.Concat[rune, V]:
			if !union {
				children = append(children, x.Children...)
				continue
			}
		case fsa.Alternation[rune, V]:
			if union {
				children = append(children, x.Children...)
				continue
			}
		}
		children = append(children, n)
	}
	if union {
		return fsa.Alternation[rune, V]{Children: children}
	}
	return fsa.Concat[rune, V]{Children: children}
}
