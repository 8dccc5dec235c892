package driver

import (
	"fmt"

	"github.com/cfgkit/cfgkit/spec"
)

type Method string

const (
	// MethodAuto prefers the LL(1) driver and falls back to SLR(1).
	MethodAuto = Method("auto")
	MethodLL1  = Method("ll1")
	MethodSLR1 = Method("slr1")
)

// Recognizer answers membership queries against a compiled grammar. It binds
// a sentence lexer and one of the drivers; the lexical specification is
// compiled once and shared by all sentences.
type Recognizer struct {
	gram   *spec.CompiledGrammar
	lexer  *SentenceLexer
	method Method
}

func NewRecognizer(gram *spec.CompiledGrammar, method Method) (*Recognizer, error) {
	switch method {
	case MethodAuto:
		switch {
		case gram.IsLL1():
			method = MethodLL1
		case gram.IsSLR1():
			method = MethodSLR1
		default:
			return nil, fmt.Errorf("grammar %v is neither LL(1) nor SLR(1)", gram.Name)
		}
	case MethodLL1:
		if !gram.IsLL1() {
			return nil, fmt.Errorf("grammar %v is not LL(1)", gram.Name)
		}
	case MethodSLR1:
		if !gram.IsSLR1() {
			return nil, fmt.Errorf("grammar %v is not SLR(1)", gram.Name)
		}
	default:
		return nil, fmt.Errorf("invalid method: %v", method)
	}

	lexer, err := NewSentenceLexer(gram.Symbols)
	if err != nil {
		return nil, err
	}

	return &Recognizer{
		gram:   gram,
		lexer:  lexer,
		method: method,
	}, nil
}

func (r *Recognizer) Method() Method {
	return r.method
}

// Recognize reports whether a sentence belongs to the grammar's language.
// The returned SyntaxError is nil on acceptance.
func (r *Recognizer) Recognize(sentence string) (bool, *SyntaxError, error) {
	toks, err := r.lexer.LexString(sentence)
	if err != nil {
		return false, nil, err
	}

	if r.method == MethodLL1 {
		p, err := NewLL1Parser(r.gram, toks)
		if err != nil {
			return false, nil, err
		}
		accepted, err := p.Parse()
		if err != nil {
			return false, nil, err
		}
		return accepted, p.SyntaxError(), nil
	}

	p, err := NewSLRParser(r.gram, toks)
	if err != nil {
		return false, nil, err
	}
	accepted, err := p.Parse()
	if err != nil {
		return false, nil, err
	}
	return accepted, p.SyntaxError(), nil
}
