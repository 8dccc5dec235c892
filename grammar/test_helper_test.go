package grammar

import (
	"strings"
	"testing"

	"github.com/cfgkit/cfgkit/spec"
)

func genGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	var b GrammarBuilder
	gram, err := b.Build("test", ast)
	if err != nil {
		t.Fatal(err)
	}
	return gram
}

type testSymbolGenerator func(text string) symbol

func newTestSymbolGenerator(t *testing.T, symTab *symbolTable) testSymbolGenerator {
	return func(text string) symbol {
		t.Helper()

		sym, ok := symTab.toSymbol(text)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

// findProduction fetches the n-th production of an LHS in declaration order.
// Productions must come from the set, not be rebuilt, because identity is
// the number the set assigned.
func findProduction(t *testing.T, gram *Grammar, lhs string, n int) *production {
	t.Helper()

	lhsSym, ok := gram.symbolTable.toSymbol(lhs)
	if !ok {
		t.Fatalf("a symbol was not found; symbol: %v", lhs)
	}
	prods, ok := gram.productionSet.findByLHS(lhsSym)
	if !ok {
		t.Fatalf("a production was not found; LHS: %v", lhs)
	}
	if n >= len(prods) {
		t.Fatalf("LHS %v has only %v productions", lhs, len(prods))
	}
	return prods[n]
}
