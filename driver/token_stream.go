package driver

import (
	"fmt"
	"io"
	"strings"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"

	"github.com/cfgkit/cfgkit/spec"
)

// Token is one terminal of an input sentence. The end marker appears as a
// token whose EOF flag is set; it is generated both for an explicit end
// marker in the text and for the end of the source.
type Token struct {
	// Terminal is the terminal number the token matched. It is 0 when the
	// token is invalid.
	Terminal int
	Text     string
	Row      int
	Col      int
	EOF      bool
	Invalid  bool
}

type TokenStream interface {
	Next() (*Token, error)
}

// SentenceLexer tokenizes sentences against the terminal spellings of a
// compiled grammar. The spellings are escaped and compiled into a lexical
// specification once, at construction; lexing follows maximal munch, so a
// spelling that prefixes another never shadows it.
type SentenceLexer struct {
	symbols   *spec.Symbols
	clspec    *mlspec.CompiledLexSpec
	kind2Term []int
	skipKinds []bool
}

const whiteSpaceKind = "white_space"

func NewSentenceLexer(symbols *spec.Symbols) (*SentenceLexer, error) {
	entries := []*mlspec.LexEntry{
		{
			Kind:    whiteSpaceKind,
			Pattern: mlspec.LexPattern(`[\u{0009}\u{0020}]+`),
		},
	}
	kindToTerminal := map[string]int{}
	for term := 1; term < len(symbols.Terminals); term++ {
		kind := fmt.Sprintf("t%v", term)
		entries = append(entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(kind),
			Pattern: mlspec.LexPattern(mlspec.EscapePattern(symbols.Terminals[term])),
		})
		kindToTerminal[kind] = term
	}

	lexSpec := &mlspec.LexSpec{
		Name:    "sentence",
		Entries: entries,
	}
	clspec, err, cErrs := mlcompiler.Compile(lexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			for _, cErr := range cErrs {
				fmt.Fprintf(&b, "\n%v: %v", cErr.Kind, cErr.Cause)
			}
			return nil, fmt.Errorf("failed to compile the terminal spellings:%v", b.String())
		}
		return nil, err
	}

	kind2Term := make([]int, len(clspec.KindNames))
	skipKinds := make([]bool, len(clspec.KindNames))
	for id, name := range clspec.KindNames {
		if name == mlspec.LexKindNameNil {
			continue
		}
		if name.String() == whiteSpaceKind {
			skipKinds[id] = true
			continue
		}
		term, ok := kindToTerminal[name.String()]
		if !ok {
			return nil, fmt.Errorf("a lexical kind has no terminal: %v", name)
		}
		kind2Term[id] = term
	}

	return &SentenceLexer{
		symbols:   symbols,
		clspec:    clspec,
		kind2Term: kind2Term,
		skipKinds: skipKinds,
	}, nil
}

func (l *SentenceLexer) Lex(src io.Reader) (TokenStream, error) {
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(l.clspec), src)
	if err != nil {
		return nil, err
	}
	return &sentenceTokenStream{
		lex:         lex,
		kind2Term:   l.kind2Term,
		skipKinds:   l.skipKinds,
		eofTerminal: l.symbols.EOFSymbol,
	}, nil
}

func (l *SentenceLexer) LexString(sentence string) (TokenStream, error) {
	return l.Lex(strings.NewReader(sentence))
}

type sentenceTokenStream struct {
	lex         *mldriver.Lexer
	kind2Term   []int
	skipKinds   []bool
	eofTerminal int
	done        bool
}

func (s *sentenceTokenStream) Next() (*Token, error) {
	if s.done {
		return &Token{Terminal: s.eofTerminal, EOF: true}, nil
	}
	for {
		tok, err := s.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			s.done = true
			return &Token{
				Terminal: s.eofTerminal,
				Row:      tok.Row,
				Col:      tok.Col,
				EOF:      true,
			}, nil
		}
		if tok.Invalid {
			return &Token{
				Text:    string(tok.Lexeme),
				Row:     tok.Row,
				Col:     tok.Col,
				Invalid: true,
			}, nil
		}
		if s.skipKinds[tok.KindID] {
			continue
		}
		term := s.kind2Term[tok.KindID]
		if term == s.eofTerminal {
			// An explicit end marker ends the sentence.
			s.done = true
			return &Token{
				Terminal: term,
				Text:     string(tok.Lexeme),
				Row:      tok.Row,
				Col:      tok.Col,
				EOF:      true,
			}, nil
		}
		return &Token{
			Terminal: term,
			Text:     string(tok.Lexeme),
			Row:      tok.Row,
			Col:      tok.Col,
		}, nil
	}
}
