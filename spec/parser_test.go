package spec

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/cfgkit/cfgkit/error"
)

func TestParse(t *testing.T) {
	prod := func(lhs string, alts ...*AlternativeNode) *ProductionNode {
		return &ProductionNode{
			LHS:          lhs,
			Alternatives: alts,
		}
	}
	alt := func(elems ...string) *AlternativeNode {
		return &AlternativeNode{
			Elements: elems,
		}
	}
	eps := func() *AlternativeNode {
		return &AlternativeNode{
			Elements: []string{},
		}
	}

	tests := []struct {
		caption string
		src     string
		ast     *RootNode
		synErr  *SyntaxError
	}{
		{
			caption: "a grammar can contain multiple productions",
			src: `
expr -> expr + term | term
term -> term * factor | factor
factor -> ( expr ) | id
`,
			ast: &RootNode{
				Productions: []*ProductionNode{
					prod("expr", alt("expr", "+", "term"), alt("term")),
					prod("term", alt("term", "*", "factor"), alt("factor")),
					prod("factor", alt("(", "expr", ")"), alt("id")),
				},
			},
		},
		{
			caption: "the last production does not need a trailing newline",
			src:     `s -> a`,
			ast: &RootNode{
				Productions: []*ProductionNode{
					prod("s", alt("a")),
				},
			},
		},
		{
			caption: "a lone epsilon marker denotes the empty alternative",
			src:     `opt -> a | e`,
			ast: &RootNode{
				Productions: []*ProductionNode{
					prod("opt", alt("a"), eps()),
				},
			},
		},
		{
			caption: "blank lines and comment lines between productions are skipped",
			src: `
s -> a b

# a comment line
a -> x
`,
			ast: &RootNode{
				Productions: []*ProductionNode{
					prod("s", alt("a", "b")),
					prod("a", alt("x")),
				},
			},
		},
		{
			caption: "a grammar must contain at least one production",
			src:     ``,
			synErr:  synErrNoProduction,
		},
		{
			caption: "a grammar that is only comments contains no production",
			src: `
# nothing
# at all
`,
			synErr: synErrNoProduction,
		},
		{
			caption: "a production needs an arrow after its name",
			src:     `s a b`,
			synErr:  synErrNoArrow,
		},
		{
			caption: "an alternative must not be empty",
			src: `s ->
`,
			synErr: synErrEmptyAlternative,
		},
		{
			caption: "an alternative following the or symbol must not be empty",
			src:     `s -> a |`,
			synErr:  synErrEmptyAlternative,
		},
		{
			caption: "the epsilon marker must form an alternative on its own",
			src:     `s -> e a`,
			synErr:  synErrEpsilonNotAlone,
		},
		{
			caption: "the epsilon marker must not follow other elements",
			src:     `s -> a e`,
			synErr:  synErrEpsilonNotAlone,
		},
		{
			caption: "a production must start with its name",
			src:     `-> a`,
			synErr:  synErrNoProductionName,
		},
		{
			caption: "a production ends at a newline",
			src:     `s -> a -> b`,
			synErr:  synErrNoNewline,
		},
		{
			caption: "a production name alone is not a production",
			src: `s
`,
			synErr: synErrNoArrow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			root, err := Parse(strings.NewReader(tt.src))
			if tt.synErr != nil {
				if root != nil {
					t.Fatalf("nil AST expected; got: %+v", root)
				}
				specErr := &verr.SpecError{}
				if !errors.As(err, &specErr) {
					t.Fatalf("a spec error expected; got: %v", err)
				}
				if specErr.Cause != tt.synErr {
					t.Fatalf("unexpected cause; want: %v, got: %v", tt.synErr, specErr.Cause)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			testRootNode(t, tt.ast, root)
		})
	}
}

func TestParse_Position(t *testing.T) {
	src := `
s -> a
a -> x | y
`
	root, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Productions) != 2 {
		t.Fatalf("2 productions expected; got: %v", len(root.Productions))
	}
	if pos := root.Productions[0].Pos; pos.Row != 2 || pos.Col != 1 {
		t.Errorf("unexpected position of the first production: %+v", pos)
	}
	if pos := root.Productions[1].Pos; pos.Row != 3 || pos.Col != 1 {
		t.Errorf("unexpected position of the second production: %+v", pos)
	}
}

func testRootNode(t *testing.T, expected, actual *RootNode) {
	t.Helper()
	if len(actual.Productions) != len(expected.Productions) {
		t.Fatalf("unexpected number of productions; want: %v, got: %v", len(expected.Productions), len(actual.Productions))
	}
	for i, eProd := range expected.Productions {
		aProd := actual.Productions[i]
		if aProd.LHS != eProd.LHS {
			t.Fatalf("unexpected LHS; want: %v, got: %v", eProd.LHS, aProd.LHS)
		}
		if len(aProd.Alternatives) != len(eProd.Alternatives) {
			t.Fatalf("unexpected number of alternatives of %v; want: %v, got: %v", eProd.LHS, len(eProd.Alternatives), len(aProd.Alternatives))
		}
		for j, eAlt := range eProd.Alternatives {
			aAlt := aProd.Alternatives[j]
			if len(aAlt.Elements) != len(eAlt.Elements) {
				t.Fatalf("unexpected alternative of %v; want: %+v, got: %+v", eProd.LHS, eAlt.Elements, aAlt.Elements)
			}
			for k, eElem := range eAlt.Elements {
				if aAlt.Elements[k] != eElem {
					t.Fatalf("unexpected alternative of %v; want: %+v, got: %+v", eProd.LHS, eAlt.Elements, aAlt.Elements)
				}
			}
		}
	}
}
