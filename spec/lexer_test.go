package spec

import (
	"strings"
	"testing"
)

func TestLexer_Next(t *testing.T) {
	id := func(text string, row, col int) *token {
		return newIDToken(text, newPosition(row, col))
	}
	sym := func(kind tokenKind, row, col int) *token {
		return newSymbolToken(kind, newPosition(row, col))
	}

	tests := []struct {
		caption string
		src     string
		tokens  []*token
	}{
		{
			caption: "a production with alternatives and a comment",
			src:     "expr -> expr + term | term # sum\n",
			tokens: []*token{
				id("expr", 1, 1),
				sym(tokenKindArrow, 1, 6),
				id("expr", 1, 9),
				id("+", 1, 14),
				id("term", 1, 16),
				sym(tokenKindOr, 1, 21),
				id("term", 1, 23),
				sym(tokenKindNewline, 1, 33),
				newEOFToken(),
			},
		},
		{
			caption: "the lexer counts rows and columns from 1",
			src:     "a\nb",
			tokens: []*token{
				id("a", 1, 1),
				sym(tokenKindNewline, 1, 2),
				id("b", 2, 1),
				newEOFToken(),
			},
		},
		{
			caption: "a comment runs to the end of the line",
			src:     "# nothing here\nx -> y",
			tokens: []*token{
				sym(tokenKindNewline, 1, 15),
				id("x", 2, 1),
				sym(tokenKindArrow, 2, 3),
				id("y", 2, 6),
				newEOFToken(),
			},
		},
		{
			caption: "an identifier is any run of non-separator characters",
			src:     "E' -> ( E ) | id",
			tokens: []*token{
				id("E'", 1, 1),
				sym(tokenKindArrow, 1, 4),
				id("(", 1, 7),
				id("E", 1, 9),
				id(")", 1, 11),
				sym(tokenKindOr, 1, 13),
				id("id", 1, 15),
				newEOFToken(),
			},
		},
		{
			caption: "the empty source yields only EOF",
			src:     "",
			tokens: []*token{
				newEOFToken(),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			l, err := newLexer(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			for _, eTok := range tt.tokens {
				tok, err := l.next()
				if err != nil {
					t.Fatal(err)
				}
				testToken(t, eTok, tok)
				if tok.kind == tokenKindEOF {
					break
				}
			}
		})
	}
}

func testToken(t *testing.T, expected, actual *token) {
	t.Helper()
	if actual.kind != expected.kind || actual.text != expected.text {
		t.Fatalf("unexpected token; want: %+v, got: %+v", expected, actual)
	}
	if expected.kind != tokenKindEOF && actual.pos != expected.pos {
		t.Fatalf("unexpected position; want: %+v, got: %+v", expected.pos, actual.pos)
	}
}
