package driver

import (
	"testing"

	"github.com/cfgkit/cfgkit/spec"
)

func testSymbols() *spec.Symbols {
	return &spec.Symbols{
		Terminals: []string{
			"",
			spec.EndMarker,
			"id",
			"+",
			"++",
		},
		TerminalCount: 5,
		NonTerminals: []string{
			"",
			"expr'",
			"expr",
		},
		NonTerminalCount: 3,
		EOFSymbol:        1,
		StartSymbol:      1,
	}
}

func TestSentenceLexer(t *testing.T) {
	lexer, err := NewSentenceLexer(testSymbols())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption  string
		sentence string
		tokens   []*Token
	}{
		{
			caption:  "terminals are matched by their spellings",
			sentence: "id + id",
			tokens: []*Token{
				{Terminal: 2, Text: "id"},
				{Terminal: 3, Text: "+"},
				{Terminal: 2, Text: "id"},
				{Terminal: 1, EOF: true},
			},
		},
		{
			caption:  "lexing follows maximal munch",
			sentence: "id++id+id",
			tokens: []*Token{
				{Terminal: 2, Text: "id"},
				{Terminal: 4, Text: "++"},
				{Terminal: 2, Text: "id"},
				{Terminal: 3, Text: "+"},
				{Terminal: 2, Text: "id"},
				{Terminal: 1, EOF: true},
			},
		},
		{
			caption:  "an explicit end marker ends the sentence",
			sentence: "id $ id",
			tokens: []*Token{
				{Terminal: 2, Text: "id"},
				{Terminal: 1, EOF: true},
				{Terminal: 1, EOF: true},
			},
		},
		{
			caption:  "a character no spelling matches is an invalid token",
			sentence: "id ? id",
			tokens: []*Token{
				{Terminal: 2, Text: "id"},
				{Terminal: 0, Text: "?", Invalid: true},
			},
		},
		{
			caption:  "white space alone is an empty sentence",
			sentence: " \t ",
			tokens: []*Token{
				{Terminal: 1, EOF: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			toks, err := lexer.LexString(tt.sentence)
			if err != nil {
				t.Fatal(err)
			}
			for _, eTok := range tt.tokens {
				tok, err := toks.Next()
				if err != nil {
					t.Fatal(err)
				}
				if tok.Terminal != eTok.Terminal || tok.EOF != eTok.EOF || tok.Invalid != eTok.Invalid {
					t.Fatalf("unexpected token; want: %+v, got: %+v", eTok, tok)
				}
				if !tok.EOF && tok.Text != eTok.Text {
					t.Fatalf("unexpected token text; want: %v, got: %v", eTok.Text, tok.Text)
				}
			}
		})
	}
}

func TestSentenceLexer_StreamKeepsReportingEOF(t *testing.T) {
	lexer, err := NewSentenceLexer(testSymbols())
	if err != nil {
		t.Fatal(err)
	}
	toks, err := lexer.LexString("id")
	if err != nil {
		t.Fatal(err)
	}
	if tok, err := toks.Next(); err != nil || tok.Terminal != 2 {
		t.Fatalf("unexpected first token: %+v, %v", tok, err)
	}
	for i := 0; i < 3; i++ {
		tok, err := toks.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !tok.EOF || tok.Terminal != 1 {
			t.Fatalf("the stream must keep reporting EOF; got: %+v", tok)
		}
	}
}
