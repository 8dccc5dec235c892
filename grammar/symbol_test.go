package grammar

import (
	"testing"
)

func TestSymbol(t *testing.T) {
	symTab := newSymbolTable("$")

	startSym, err := symTab.registerStartSymbol("expr'")
	if err != nil {
		t.Fatal(err)
	}
	ntSym, err := symTab.registerNonTerminalSymbol("expr")
	if err != nil {
		t.Fatal(err)
	}
	termSym, err := symTab.registerTerminalSymbol("id")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption       string
		sym           symbol
		isNonTerminal bool
		isTerminal    bool
		isStart       bool
		isEOF         bool
		text          string
	}{
		{caption: "start symbol", sym: startSym, isNonTerminal: true, isStart: true, text: "expr'"},
		{caption: "non-terminal symbol", sym: ntSym, isNonTerminal: true, text: "expr"},
		{caption: "terminal symbol", sym: termSym, isTerminal: true, text: "id"},
		{caption: "end marker", sym: symbolEOF, isTerminal: true, isEOF: true, text: "$"},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if tt.sym.isNonTerminal() != tt.isNonTerminal {
				t.Errorf("isNonTerminal: want %v", tt.isNonTerminal)
			}
			if tt.sym.isTerminal() != tt.isTerminal {
				t.Errorf("isTerminal: want %v", tt.isTerminal)
			}
			if tt.sym.isStart() != tt.isStart {
				t.Errorf("isStart: want %v", tt.isStart)
			}
			if tt.sym.isEOF() != tt.isEOF {
				t.Errorf("isEOF: want %v", tt.isEOF)
			}

			text, ok := symTab.toText(tt.sym)
			if !ok || text != tt.text {
				t.Errorf("toText: want %v, got %v", tt.text, text)
			}
			sym, ok := symTab.toSymbol(tt.text)
			if !ok || sym != tt.sym {
				t.Errorf("toSymbol: want %v, got %v", tt.sym, sym)
			}
		})
	}

	t.Run("registration is idempotent per spelling", func(t *testing.T) {
		again, err := symTab.registerTerminalSymbol("id")
		if err != nil {
			t.Fatal(err)
		}
		if again != termSym {
			t.Errorf("re-registering a spelling must return the same symbol: %v, %v", termSym, again)
		}
	})

	t.Run("terminal numbering starts right after the end marker", func(t *testing.T) {
		if symbolEOF.num() != terminalNumMin-1 && termSym.num() != terminalNumMin {
			t.Errorf("unexpected terminal numbering: eof %v, id %v", symbolEOF.num(), termSym.num())
		}
		texts := symTab.terminalTexts()
		if texts[termSym.num().Int()] != "id" {
			t.Errorf("terminal texts are not indexed by number: %v", texts)
		}
	})
}
