package graph

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ParseInto parses the textual graph representation into g, mutating it
// in place. The grammar is a comma-separated attribute list; a nested
// attribute is followed by its own parenthesized list, and a colon before
// the parenthesized list narrows the subgraph to a subtype:
//
//	username, address(city, street), department(name, employees(username))
//	pets, animals:Dog(breed), animals:Cat(indoor)
//
// Whitespace between tokens is insignificant. Empty text leaves the graph
// unchanged. Errors carry the byte offset of the offending character;
// mutations committed before the error point are kept.
func ParseInto(g Mutable, text string) error {
	p := &parser{lex: lexer{src: text}}
	if err := p.advance(); err != nil {
		return err
	}
	if p.tok.kind == tokenEOF {
		return nil
	}
	if err := p.attrList(g); err != nil {
		return err
	}
	if p.tok.kind != tokenEOF {
		return NewInvalidGraphError(p.tok.pos, fmt.Sprintf("unexpected %q after attribute list", p.tok.text), nil)
	}
	return nil
}

type tokenKind uint8

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenComma
	tokenLParen
	tokenRParen
	tokenColon
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer produces a flat token stream over the graph text in a single
// left-to-right scan.
type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	if l.pos >= len(l.src) {
		return token{kind: tokenEOF, pos: l.pos}, nil
	}
	start := l.pos
	r, size := utf8.DecodeRuneInString(l.src[start:])
	switch r {
	case ',':
		l.pos += size
		return token{kind: tokenComma, text: ",", pos: start}, nil
	case '(':
		l.pos += size
		return token{kind: tokenLParen, text: "(", pos: start}, nil
	case ')':
		l.pos += size
		return token{kind: tokenRParen, text: ")", pos: start}, nil
	case ':':
		l.pos += size
		return token{kind: tokenColon, text: ":", pos: start}, nil
	}
	if !identStart(r) {
		return token{}, NewInvalidGraphError(start, fmt.Sprintf("unexpected character %q", r), nil)
	}
	l.pos += size
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !identPart(r) {
			break
		}
		l.pos += size
	}
	return token{kind: tokenIdent, text: l.src[start:l.pos], pos: start}, nil
}

func identStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func identPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// attrList := attrNode (',' attrNode)*
func (p *parser) attrList(g Mutable) error {
	for {
		if err := p.attrNode(g); err != nil {
			return err
		}
		if p.tok.kind != tokenComma {
			return nil
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
}

// attrNode := attrName ( '(' attrList ')' )?
// attrName := identifier | identifier ':' typeName
func (p *parser) attrNode(g Mutable) error {
	if p.tok.kind != tokenIdent {
		return NewInvalidGraphError(p.tok.pos, "expected attribute name", nil)
	}
	name, pos := p.tok.text, p.tok.pos
	if err := p.advance(); err != nil {
		return err
	}

	var treat string
	if p.tok.kind == tokenColon {
		if err := p.advance(); err != nil {
			return err
		}
		if p.tok.kind != tokenIdent {
			return NewInvalidGraphError(p.tok.pos, "expected type name after ':'", nil)
		}
		treat = p.tok.text
		if err := p.advance(); err != nil {
			return err
		}
	}

	if p.tok.kind != tokenLParen {
		// Leaf inclusion. Narrowing only applies to nested subgraphs.
		if treat != "" {
			return NewInvalidGraphError(pos, fmt.Sprintf("narrowed attribute %q requires a parenthesized attribute list", name), nil)
		}
		if err := g.AddAttribute(name); err != nil {
			return NewInvalidGraphError(pos, fmt.Sprintf("invalid attribute %q", name), err)
		}
		return nil
	}

	sub, err := g.SubGraphTreat(name, treat)
	if err != nil {
		return NewInvalidGraphError(pos, fmt.Sprintf("invalid attribute %q", name), err)
	}
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.attrList(sub); err != nil {
		return err
	}
	if p.tok.kind != tokenRParen {
		return NewInvalidGraphError(p.tok.pos, "expected ')'", nil)
	}
	return p.advance()
}
