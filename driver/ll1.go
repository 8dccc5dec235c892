package driver

import (
	"fmt"

	"github.com/cfgkit/cfgkit/spec"
)

// LL1Parser is a predictive parser over the prediction table of an LL(1)
// grammar. The symbol stack holds RHS encodings directly: terminal numbers
// positive, non-terminal numbers negated.
type LL1Parser struct {
	gram     *spec.CompiledGrammar
	toks     TokenStream
	symStack []int
	synErr   *SyntaxError
}

func NewLL1Parser(gram *spec.CompiledGrammar, toks TokenStream) (*LL1Parser, error) {
	if !gram.IsLL1() {
		return nil, fmt.Errorf("grammar %v is not LL(1)", gram.Name)
	}

	return &LL1Parser{
		gram: gram,
		toks: toks,
	}, nil
}

// Parse runs the predictive loop and reports whether the input belongs to
// the language. A false result leaves the rejection recorded in SyntaxError.
// The error return is reserved for failures of the token source itself.
func (p *LL1Parser) Parse() (bool, error) {
	p.push(p.gram.Symbols.StartSymbol * -1)
	tok, err := p.toks.Next()
	if err != nil {
		return false, err
	}

	for len(p.symStack) > 0 {
		top := p.top()
		if top > 0 { // terminal
			if !tok.EOF && top == tok.Terminal {
				p.pop()
				tok, err = p.toks.Next()
				if err != nil {
					return false, err
				}
				continue
			}
			p.raiseSyntaxError(tok, []int{top})
			return false, nil
		}

		// non-terminal
		nonTerm := top * -1
		prod := p.gram.LL1.Lookup(nonTerm, tok.Terminal)
		if prod == 0 {
			p.raiseSyntaxError(tok, p.lookaheadTerminals(nonTerm))
			return false, nil
		}
		p.pop()
		rhs := p.gram.Productions.RHSSymbols[prod]
		for i := len(rhs) - 1; i >= 0; i-- {
			p.push(rhs[i])
		}
	}

	if !tok.EOF {
		p.raiseSyntaxError(tok, []int{p.gram.Symbols.EOFSymbol})
		return false, nil
	}
	return true, nil
}

func (p *LL1Parser) SyntaxError() *SyntaxError {
	return p.synErr
}

func (p *LL1Parser) raiseSyntaxError(tok *Token, expected []int) {
	terms := make([]string, 0, len(expected))
	for _, term := range expected {
		terms = append(terms, p.gram.Symbols.Terminals[term])
	}
	p.synErr = &SyntaxError{
		Row:               tok.Row,
		Col:               tok.Col,
		Message:           "unexpected token",
		Token:             tok,
		ExpectedTerminals: terms,
	}
}

// lookaheadTerminals lists the terminals the prediction table accepts for a
// non-terminal.
func (p *LL1Parser) lookaheadTerminals(nonTerm int) []int {
	var terms []int
	for term := 1; term < p.gram.Symbols.TerminalCount; term++ {
		if p.gram.LL1.Lookup(nonTerm, term) != 0 {
			terms = append(terms, term)
		}
	}
	return terms
}

func (p *LL1Parser) top() int {
	return p.symStack[len(p.symStack)-1]
}

func (p *LL1Parser) push(sym int) {
	p.symStack = append(p.symStack, sym)
}

func (p *LL1Parser) pop() {
	p.symStack = p.symStack[:len(p.symStack)-1]
}
