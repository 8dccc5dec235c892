package spec

import (
	"io"

	verr "github.com/cfgkit/cfgkit/error"
)

// EpsilonMarker is the spelling that denotes the empty alternative in a
// grammar description, e.g. `opt -> a | e`.
const EpsilonMarker = "e"

// EndMarker is the reserved end-of-input terminal. It must not appear in a
// grammar description and is appended to input sentences automatically.
const EndMarker = "$"

type RootNode struct {
	Productions []*ProductionNode
}

type ProductionNode struct {
	LHS          string
	Alternatives []*AlternativeNode
	Pos          Position
}

type AlternativeNode struct {
	// Elements holds the symbol names of the alternative in order.
	// An empty slice represents the empty (epsilon) alternative.
	Elements []string
}

func Parse(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			retErr = err.(error)
			return
		}
	}()
	return p.parseRoot(), nil
}

// raiseSyntaxError aborts parsing with the position of the token that broke
// the syntax. parse catches the panic and turns it into the return error.
func (p *parser) raiseSyntaxError(synErr *SyntaxError) {
	var pos Position
	switch {
	case p.peekedTok != nil:
		pos = p.peekedTok.pos
	case p.lastTok != nil:
		pos = p.lastTok.pos
	}
	panic(&verr.SpecError{
		Cause: synErr,
		Row:   pos.Row,
		Col:   pos.Col,
	})
}

func (p *parser) parseRoot() *RootNode {
	prod := p.parseProduction()
	if prod == nil {
		p.raiseSyntaxError(synErrNoProduction)
	}
	root := &RootNode{
		Productions: []*ProductionNode{prod},
	}
	for {
		prod := p.parseProduction()
		if prod == nil {
			break
		}
		root.Productions = append(root.Productions, prod)
	}
	return root
}

func (p *parser) parseProduction() *ProductionNode {
	for p.consume(tokenKindNewline) {
	}
	if p.consume(tokenKindEOF) {
		return nil
	}
	if !p.consume(tokenKindID) {
		p.raiseSyntaxError(synErrNoProductionName)
	}
	lhs := p.lastTok.text
	pos := p.lastTok.pos
	if !p.consume(tokenKindArrow) {
		p.raiseSyntaxError(synErrNoArrow)
	}
	alt := p.parseAlternative()
	alts := []*AlternativeNode{alt}
	for {
		if !p.consume(tokenKindOr) {
			break
		}
		alt := p.parseAlternative()
		alts = append(alts, alt)
	}
	if !p.consume(tokenKindNewline) && !p.consume(tokenKindEOF) {
		p.raiseSyntaxError(synErrNoNewline)
	}
	return &ProductionNode{
		LHS:          lhs,
		Alternatives: alts,
		Pos:          pos,
	}
}

func (p *parser) parseAlternative() *AlternativeNode {
	elems := []string{}
	for p.consume(tokenKindID) {
		elems = append(elems, p.lastTok.text)
	}
	if len(elems) == 0 {
		p.raiseSyntaxError(synErrEmptyAlternative)
	}
	for _, elem := range elems {
		if elem == EpsilonMarker && len(elems) > 1 {
			p.raiseSyntaxError(synErrEpsilonNotAlone)
		}
	}
	if elems[0] == EpsilonMarker {
		elems = []string{}
	}
	return &AlternativeNode{
		Elements: elems,
	}
}

func (p *parser) consume(expected tokenKind) bool {
	var tok *token
	var err error
	if p.peekedTok != nil {
		tok = p.peekedTok
		p.peekedTok = nil
	} else {
		tok, err = p.lex.next()
		if err != nil {
			panic(err)
		}
	}
	p.lastTok = tok
	if tok.kind == tokenKindInvalid {
		p.raiseSyntaxError(synErrInvalidToken)
	}
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}
