package grammar

import (
	"testing"
)

func TestCompile(t *testing.T) {
	t.Run("a predictive grammar is in both classes", func(t *testing.T) {
		gram := genGrammar(t, `E -> T Ep
Ep -> + T Ep | e
T -> F Tp
Tp -> * F Tp | e
F -> ( E ) | id
`)
		cg, err := Compile(gram)
		if err != nil {
			t.Fatal(err)
		}
		if cg.Name != "test" {
			t.Errorf("name: want test, got %v", cg.Name)
		}
		if !cg.IsLL1() {
			t.Error("the grammar must be LL(1)")
		}
		if !cg.IsSLR1() {
			t.Error("the grammar must be SLR(1)")
		}
		if len(cg.Report.LL1Conflicts) != 0 {
			t.Errorf("unexpected LL(1) conflicts: %+v", cg.Report.LL1Conflicts)
		}

		if cg.Symbols.Terminals[cg.Symbols.EOFSymbol] != "$" {
			t.Errorf("the end marker must be terminal %v: %v", cg.Symbols.EOFSymbol, cg.Symbols.Terminals)
		}
		if cg.Symbols.NonTerminals[cg.Symbols.StartSymbol] != "E" {
			t.Errorf("start symbol: want E, got %v", cg.Symbols.NonTerminals[cg.Symbols.StartSymbol])
		}

		// The augmented start production derives the user start symbol.
		start := cg.Productions.StartProduction
		rhs := cg.Productions.RHSSymbols[start]
		if len(rhs) != 1 || rhs[0] != -cg.Symbols.StartSymbol {
			t.Errorf("start production RHS: want [%v], got %v", -cg.Symbols.StartSymbol, rhs)
		}

		for _, nt := range cg.Report.NonTerminals {
			if nt == nil {
				continue
			}
			switch nt.Name {
			case "E":
				if nt.Nullable {
					t.Error("E must not be nullable")
				}
				assertStrings(t, "First(E)", nt.First, []string{"(", "id"})
				assertStrings(t, "Follow(E)", nt.Follow, []string{"$", ")"})
			case "Ep":
				if !nt.Nullable {
					t.Error("Ep must be nullable")
				}
				assertStrings(t, "First(Ep)", nt.First, []string{"+"})
				assertStrings(t, "Follow(Ep)", nt.Follow, []string{"$", ")"})
			case "F":
				assertStrings(t, "First(F)", nt.First, []string{"(", "id"})
				assertStrings(t, "Follow(F)", nt.Follow, []string{"$", ")", "*", "+"})
			}
		}
	})

	t.Run("a left-recursive grammar is SLR(1) only", func(t *testing.T) {
		gram := genGrammar(t, `S -> S + id | id
`)
		cg, err := Compile(gram)
		if err != nil {
			t.Fatal(err)
		}
		if cg.IsLL1() {
			t.Error("a left-recursive grammar must not be LL(1)")
		}
		if !cg.IsSLR1() {
			t.Error("the grammar must be SLR(1)")
		}
		if len(cg.Report.LL1Conflicts) == 0 {
			t.Error("the report must record the LL(1) conflicts")
		}
	})

	t.Run("an ambiguous grammar is in neither class", func(t *testing.T) {
		gram := genGrammar(t, `S -> S S | a
`)
		cg, err := Compile(gram)
		if err != nil {
			t.Fatal(err)
		}
		if cg.IsLL1() || cg.IsSLR1() {
			t.Error("an ambiguous grammar must be in neither class")
		}

		conflicted := 0
		for _, s := range cg.Report.States {
			conflicted += len(s.SRConflict)
		}
		if conflicted == 0 {
			t.Error("the report must record the shift/reduce conflicts")
		}
	})

	t.Run("a grammar of the empty sentence compiles", func(t *testing.T) {
		gram := genGrammar(t, `s -> e
`)
		cg, err := Compile(gram)
		if err != nil {
			t.Fatal(err)
		}
		if !cg.IsLL1() {
			t.Error("the grammar must be LL(1)")
		}
		if !cg.IsSLR1() {
			t.Error("the grammar must be SLR(1)")
		}
		// The end marker is the only terminal.
		assertStrings(t, "terminals", cg.Symbols.Terminals, []string{"", "$"})
		if prod := cg.LL1.Lookup(cg.Symbols.StartSymbol, cg.Symbols.EOFSymbol); prod == 0 {
			t.Error("the table must predict the empty alternative on the end marker")
		}
	})

	t.Run("compiling the same grammar twice yields identical tables", func(t *testing.T) {
		src := `E -> T Ep
Ep -> + T Ep | e
T -> F Tp
Tp -> * F Tp | e
F -> ( E ) | id
`
		cg1, err := Compile(genGrammar(t, src))
		if err != nil {
			t.Fatal(err)
		}
		cg2, err := Compile(genGrammar(t, src))
		if err != nil {
			t.Fatal(err)
		}
		assertInts(t, "LL(1) entries", cg1.LL1.Entries, cg2.LL1.Entries)
		assertInts(t, "ACTION", cg1.SLR.Action, cg2.SLR.Action)
		assertInts(t, "GOTO", cg1.SLR.GoTo, cg2.SLR.GoTo)
		if cg1.SLR.InitialState != cg2.SLR.InitialState {
			t.Errorf("initial state: %v, %v", cg1.SLR.InitialState, cg2.SLR.InitialState)
		}
	})

	t.Run("production texts are rendered for the report", func(t *testing.T) {
		gram := genGrammar(t, `s -> a b | e
`)
		cg, err := Compile(gram)
		if err != nil {
			t.Fatal(err)
		}
		texts := map[string]struct{}{}
		for _, p := range cg.Report.Productions {
			if p == nil {
				continue
			}
			texts[p.Text] = struct{}{}
		}
		for _, want := range []string{"s' -> s", "s -> a b", "s -> ε"} {
			if _, ok := texts[want]; !ok {
				t.Errorf("production text %q was not found in %v", want, texts)
			}
		}
	})
}

func assertInts(t *testing.T, label string, got, want []int) {
	t.Helper()

	if len(got) != len(want) {
		t.Errorf("%v: want %v, got %v", label, want, got)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%v: want %v, got %v", label, want, got)
			return
		}
	}
}

func assertStrings(t *testing.T, label string, got, want []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Errorf("%v: want %v, got %v", label, want, got)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%v: want %v, got %v", label, want, got)
			return
		}
	}
}
