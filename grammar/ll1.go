package grammar

import "sort"

type ll1Conflict struct {
	nonTermSym symbol
	termSym    symbol
	prod1      productionNum
	prod2      productionNum
}

// ll1Table is the prediction table. Rows are non-terminal numbers and columns
// are terminal numbers; the end marker occupies a regular column. An entry of
// productionNumNil means the pair rejects.
type ll1Table struct {
	entries      []productionNum
	nonTermCount int
	termCount    int
}

func (t *ll1Table) lookup(nonTerm symbol, term symbol) productionNum {
	return t.entries[nonTerm.num().Int()*t.termCount+term.num().Int()]
}

type ll1TableBuilder struct {
	prods  *productionSet
	first  *firstSet
	follow *followSet
	symTab *symbolTable

	conflicts []*ll1Conflict
}

// build fills the prediction table per the standard LL(1) rule: a production
// A -> α claims cell (A, a) for every terminal a in First(α), and every cell
// (A, b) with b in Follow(A) when α is nullable. A contested cell makes the
// grammar non-LL(1); the cell keeps its first-written entry and every
// conflict is recorded, leaving the caller to withhold the table.
func (b *ll1TableBuilder) build() (*ll1Table, error) {
	termTexts := b.symTab.terminalTexts()
	nonTermTexts, err := b.symTab.nonTerminalTexts()
	if err != nil {
		return nil, err
	}
	tab := &ll1Table{
		entries:      make([]productionNum, len(nonTermTexts)*len(termTexts)),
		nonTermCount: len(nonTermTexts),
		termCount:    len(termTexts),
	}

	for _, prod := range b.prods.getAllProductions() {
		if prod.lhs.isStart() {
			continue
		}

		fst, err := b.first.find(prod, 0)
		if err != nil {
			return nil, err
		}
		for _, sym := range sortSymbols(fst.symbols) {
			b.write(tab, prod.lhs, sym, prod.num)
		}
		if fst.empty {
			flw, err := b.follow.find(prod.lhs)
			if err != nil {
				return nil, err
			}
			for _, sym := range sortSymbols(flw.symbols) {
				b.write(tab, prod.lhs, sym, prod.num)
			}
			if flw.eof {
				b.write(tab, prod.lhs, symbolEOF, prod.num)
			}
		}
	}

	return tab, nil
}

func (b *ll1TableBuilder) hasConflict() bool {
	return len(b.conflicts) > 0
}

func (b *ll1TableBuilder) write(tab *ll1Table, nonTerm symbol, term symbol, prod productionNum) {
	idx := nonTerm.num().Int()*tab.termCount + term.num().Int()
	existing := tab.entries[idx]
	if existing != productionNumNil && existing != prod {
		b.conflicts = append(b.conflicts, &ll1Conflict{
			nonTermSym: nonTerm,
			termSym:    term,
			prod1:      existing,
			prod2:      prod,
		})
		return
	}
	tab.entries[idx] = prod
}

func sortSymbols(syms map[symbol]struct{}) []symbol {
	sorted := make([]symbol, 0, len(syms))
	for sym := range syms {
		sorted = append(sorted, sym)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].num() < sorted[j].num()
	})
	return sorted
}
