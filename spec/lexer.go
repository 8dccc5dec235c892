package spec

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindID      = tokenKind("id")
	tokenKindArrow   = tokenKind("->")
	tokenKindOr      = tokenKind("|")
	tokenKindNewline = tokenKind("newline")
	tokenKindEOF     = tokenKind("eof")
	tokenKindInvalid = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newIDToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindID,
		text: text,
		pos:  pos,
	}
}

func newEOFToken() *token {
	return &token{
		kind: tokenKindEOF,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

// The description format is line oriented, so the lexer reports newlines and
// the parser uses them as production terminators. An identifier is any run of
// characters that cannot be confused with the punctuation of the format.
var lexSpec = &mlspec.LexSpec{
	Name: "grammar_description",
	Entries: []*mlspec.LexEntry{
		{
			Kind:    mlspec.LexKindName("white_space"),
			Pattern: mlspec.LexPattern(`[\u{0009}\u{0020}]+`),
		},
		{
			Kind:    mlspec.LexKindName("newline"),
			Pattern: mlspec.LexPattern(`\u{000A}|\u{000D}\u{000A}`),
		},
		{
			Kind:    mlspec.LexKindName("line_comment"),
			Pattern: mlspec.LexPattern(`#[^\u{000A}\u{000D}]*`),
		},
		{
			Kind:    mlspec.LexKindName("arrow"),
			Pattern: mlspec.LexPattern(`->`),
		},
		{
			Kind:    mlspec.LexKindName("or"),
			Pattern: mlspec.LexPattern(`\|`),
		},
		{
			Kind:    mlspec.LexKindName("identifier"),
			Pattern: mlspec.LexPattern(`[^\u{0009}\u{000A}\u{000D}\u{0020}|#]+`),
		},
	},
}

var (
	compileLexSpecOnce sync.Once
	compiledLexSpec    *mlspec.CompiledLexSpec
	compileLexSpecErr  error
)

func compileLexSpec() (*mlspec.CompiledLexSpec, error) {
	compileLexSpecOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(lexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				fmt.Fprintf(&b, "%v: %v", cErrs[0].Kind, cErrs[0].Cause)
				for _, cErr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n%v: %v", cErr.Kind, cErr.Cause)
				}
				compileLexSpecErr = fmt.Errorf("failed to compile the lexical specification:\n%v", b.String())
				return
			}
			compileLexSpecErr = err
			return
		}
		compiledLexSpec = clspec
	})
	return compiledLexSpec, compileLexSpecErr
}

type lexer struct {
	s *mlspec.CompiledLexSpec
	d *mldriver.Lexer
}

func newLexer(src io.Reader) (*lexer, error) {
	clspec, err := compileLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(clspec), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: clspec,
		d: d,
	}, nil
}

func (l *lexer) next() (*token, error) {
	for {
		tok, err := l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
		}
		if tok.EOF {
			return newEOFToken(), nil
		}

		switch l.s.KindNames[tok.KindID].String() {
		case "white_space":
			continue
		case "line_comment":
			continue
		case "newline":
			return newSymbolToken(tokenKindNewline, newPosition(tok.Row+1, tok.Col+1)), nil
		case "arrow":
			return newSymbolToken(tokenKindArrow, newPosition(tok.Row+1, tok.Col+1)), nil
		case "or":
			return newSymbolToken(tokenKindOr, newPosition(tok.Row+1, tok.Col+1)), nil
		case "identifier":
			return newIDToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
		default:
			return newInvalidToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
		}
	}
}
