package driver

import (
	"fmt"

	"github.com/cfgkit/cfgkit/spec"
)

// SLRParser is a shift-reduce parser over the ACTION and GOTO tables of an
// SLR(1) grammar.
type SLRParser struct {
	gram       *spec.CompiledGrammar
	toks       TokenStream
	stateStack []int
	synErr     *SyntaxError
}

func NewSLRParser(gram *spec.CompiledGrammar, toks TokenStream) (*SLRParser, error) {
	if !gram.IsSLR1() {
		return nil, fmt.Errorf("grammar %v is not SLR(1)", gram.Name)
	}

	return &SLRParser{
		gram: gram,
		toks: toks,
	}, nil
}

// Parse runs the shift-reduce loop and reports whether the input belongs to
// the language. Acceptance is a reduce by the augmented start production,
// which the tables only allow on the end marker.
func (p *SLRParser) Parse() (bool, error) {
	p.push(p.gram.SLR.InitialState)
	tok, err := p.toks.Next()
	if err != nil {
		return false, err
	}

	for {
		act := p.gram.SLR.LookupAction(p.top(), tok.Terminal)
		switch {
		case act < 0: // shift
			p.push(act * -1)
			tok, err = p.toks.Next()
			if err != nil {
				return false, err
			}
		case act > 0: // reduce
			prod := act
			if prod == p.gram.Productions.StartProduction {
				return true, nil
			}
			n := len(p.gram.Productions.RHSSymbols[prod])
			// The stack must retain the initial state under the handle.
			// Popping deeper means the tables are corrupt, not that the
			// input is bad.
			if len(p.stateStack)-n < 1 {
				return false, fmt.Errorf("state stack underflow on reduction by production %v: depth %v, handle %v", prod, len(p.stateStack), n)
			}
			p.pop(n)
			lhs := p.gram.Productions.LHSSymbols[prod]
			nextState := p.gram.SLR.LookupGoTo(p.top(), lhs)
			if nextState == 0 {
				return false, fmt.Errorf("GOTO is not defined for state %v and non-terminal %v", p.top(), p.gram.Symbols.NonTerminals[lhs])
			}
			p.push(nextState)
		default: // reject
			p.raiseSyntaxError(tok)
			return false, nil
		}
	}
}

func (p *SLRParser) SyntaxError() *SyntaxError {
	return p.synErr
}

func (p *SLRParser) raiseSyntaxError(tok *Token) {
	p.synErr = &SyntaxError{
		Row:               tok.Row,
		Col:               tok.Col,
		Message:           "unexpected token",
		Token:             tok,
		ExpectedTerminals: p.searchLookahead(p.top()),
	}
}

// searchLookahead lists the terminals the ACTION table accepts in a state.
func (p *SLRParser) searchLookahead(state int) []string {
	var terms []string
	for term := 1; term < p.gram.Symbols.TerminalCount; term++ {
		if p.gram.SLR.LookupAction(state, term) == 0 {
			continue
		}
		terms = append(terms, p.gram.Symbols.Terminals[term])
	}
	return terms
}

func (p *SLRParser) top() int {
	return p.stateStack[len(p.stateStack)-1]
}

func (p *SLRParser) push(state int) {
	p.stateStack = append(p.stateStack, state)
}

func (p *SLRParser) pop(n int) {
	p.stateStack = p.stateStack[:len(p.stateStack)-n]
}
