package grammar

import (
	"fmt"
	"sort"

	"github.com/cfgkit/cfgkit/spec"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Compile analyzes a grammar and produces its portable form: the symbol and
// production encodings, the LL(1) and SLR(1) tables when the grammar is in
// the class, and a report covering First/Follow sets, the LR(0) automaton,
// and every conflict found.
func Compile(gram *Grammar) (*spec.CompiledGrammar, error) {
	prods := gram.productionSet
	symTab := gram.symbolTable

	first, err := genFirstSet(prods)
	if err != nil {
		return nil, err
	}
	follow, err := genFollowSet(prods, first)
	if err != nil {
		return nil, err
	}

	termTexts := symTab.terminalTexts()
	nonTermTexts, err := symTab.nonTerminalTexts()
	if err != nil {
		return nil, err
	}

	lb := &ll1TableBuilder{
		prods:  prods,
		first:  first,
		follow: follow,
		symTab: symTab,
	}
	ll1Tab, err := lb.build()
	if err != nil {
		return nil, err
	}

	automaton, err := genLR0Automaton(prods, gram.augmentedStartSymbol)
	if err != nil {
		return nil, err
	}

	sb := &slrTableBuilder{
		automaton:    automaton,
		prods:        prods,
		follow:       follow,
		termCount:    len(termTexts),
		nonTermCount: len(nonTermTexts),
	}
	slrTab, err := sb.build()
	if err != nil {
		return nil, err
	}

	report, err := genReport(gram, first, follow, lb, sb, slrTab)
	if err != nil {
		return nil, err
	}

	cg := &spec.CompiledGrammar{
		Name: gram.name,
		Symbols: &spec.Symbols{
			Terminals:        termTexts,
			TerminalCount:    len(termTexts),
			NonTerminals:     nonTermTexts,
			NonTerminalCount: len(nonTermTexts),
			EOFSymbol:        symbolEOF.num().Int(),
			StartSymbol:      gram.startSymbol.num().Int(),
		},
		Productions: genProductionTables(prods),
		Report:      report,
	}

	if !lb.hasConflict() {
		entries := make([]int, len(ll1Tab.entries))
		for i, e := range ll1Tab.entries {
			entries[i] = e.Int()
		}
		cg.LL1 = &spec.LL1Table{
			Entries:          entries,
			NonTerminalCount: ll1Tab.nonTermCount,
			TerminalCount:    ll1Tab.termCount,
		}
	}

	if !sb.hasConflict() {
		action := make([]int, len(slrTab.actionTable))
		for i, e := range slrTab.actionTable {
			action[i] = int(e)
		}
		goTo := make([]int, len(slrTab.goToTable))
		for i, e := range slrTab.goToTable {
			goTo[i] = int(e)
		}
		cg.SLR = &spec.SLRTables{
			Action:           action,
			GoTo:             goTo,
			StateCount:       slrTab.stateCount,
			InitialState:     slrTab.initialState.Int(),
			TerminalCount:    slrTab.termCount,
			NonTerminalCount: slrTab.nonTermCount,
		}
	}

	return cg, nil
}

func genProductionTables(prods *productionSet) *spec.Productions {
	all := prods.getAllProductions()
	lhs := make([]int, len(all)+1)
	rhs := make([][]int, len(all)+1)
	for _, p := range all {
		lhs[p.num.Int()] = p.lhs.num().Int()
		elems := make([]int, len(p.rhs))
		for i, e := range p.rhs {
			if e.isTerminal() {
				elems[i] = e.num().Int()
			} else {
				elems[i] = e.num().Int() * -1
			}
		}
		rhs[p.num.Int()] = elems
	}
	return &spec.Productions{
		LHSSymbols:      lhs,
		RHSSymbols:      rhs,
		StartProduction: productionNumStart.Int(),
	}
}

func genReport(gram *Grammar, first *firstSet, follow *followSet, lb *ll1TableBuilder, sb *slrTableBuilder, slrTab *slrTable) (*spec.Report, error) {
	symTab := gram.symbolTable
	prods := gram.productionSet

	var terms []*spec.Terminal
	{
		termSyms := symTab.terminalSymbols()
		terms = make([]*spec.Terminal, len(termSyms)+1)
		for _, sym := range termSyms {
			name, ok := symTab.toText(sym)
			if !ok {
				return nil, fmt.Errorf("failed to generate terminals: symbol not found: %v", sym)
			}
			terms[sym.num()] = &spec.Terminal{
				Number: sym.num().Int(),
				Name:   name,
			}
		}
	}

	var nonTerms []*spec.NonTerminal
	{
		nonTermSyms := symTab.nonTerminalSymbols()
		nonTerms = make([]*spec.NonTerminal, len(nonTermSyms)+1)
		for _, sym := range nonTermSyms {
			name, ok := symTab.toText(sym)
			if !ok {
				return nil, fmt.Errorf("failed to generate non-terminals: symbol not found: %v", sym)
			}

			fst := first.findBySymbol(sym)
			if fst == nil {
				return nil, fmt.Errorf("failed to generate non-terminals: FIRST entry not found: %v", name)
			}
			flw, err := follow.find(sym)
			if err != nil {
				return nil, err
			}

			nonTerms[sym.num()] = &spec.NonTerminal{
				Number:   sym.num().Int(),
				Name:     name,
				Nullable: fst.empty,
				First:    sortedSymbolNames(symTab, fst.symbols, false),
				Follow:   sortedSymbolNames(symTab, flw.symbols, flw.eof),
			}
		}
	}

	var prodDescs []*spec.Production
	{
		all := prods.getAllProductions()
		prodDescs = make([]*spec.Production, len(all)+1)
		for _, p := range all {
			rhs := make([]int, len(p.rhs))
			for i, e := range p.rhs {
				if e.isTerminal() {
					rhs[i] = e.num().Int()
				} else {
					rhs[i] = e.num().Int() * -1
				}
			}
			prodDescs[p.num.Int()] = &spec.Production{
				Number: p.num.Int(),
				LHS:    p.lhs.num().Int(),
				RHS:    rhs,
				Text:   p.describe(symTab),
			}
		}
	}

	states, err := genStateReport(gram, sb, slrTab)
	if err != nil {
		return nil, err
	}

	var ll1Conflicts []*spec.LL1Conflict
	for _, c := range lb.conflicts {
		ll1Conflicts = append(ll1Conflicts, &spec.LL1Conflict{
			NonTerminal: c.nonTermSym.num().Int(),
			Terminal:    c.termSym.num().Int(),
			Production1: c.prod1.Int(),
			Production2: c.prod2.Int(),
		})
	}

	return &spec.Report{
		Terminals:    terms,
		NonTerminals: nonTerms,
		Productions:  prodDescs,
		States:       states,
		LL1Conflicts: ll1Conflicts,
	}, nil
}

// sortedSymbolNames renders a symbol set as spellings in lexical order. The
// end marker participates like any other name when eof is set.
func sortedSymbolNames(symTab *symbolTable, syms map[symbol]struct{}, eof bool) []string {
	set := treeset.NewWith(utils.StringComparator)
	for sym := range syms {
		if name, ok := symTab.toText(sym); ok {
			set.Add(name)
		}
	}
	if eof {
		if name, ok := symTab.toText(symbolEOF); ok {
			set.Add(name)
		}
	}
	names := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		names = append(names, v.(string))
	}
	return names
}

func genStateReport(gram *Grammar, sb *slrTableBuilder, slrTab *slrTable) ([]*spec.State, error) {
	symTab := gram.symbolTable
	automaton := sb.automaton

	srConflicts := map[stateNum][]*shiftReduceConflict{}
	for _, c := range sb.srConflicts {
		srConflicts[c.state] = append(srConflicts[c.state], c)
	}
	rrConflicts := map[stateNum][]*reduceReduceConflict{}
	for _, c := range sb.rrConflicts {
		rrConflicts[c.state] = append(rrConflicts[c.state], c)
	}

	states := make([]*spec.State, len(automaton.states))
	for _, s := range automaton.states {
		kernel := make([]*spec.Item, len(s.items))
		for i, item := range s.items {
			kernel[i] = &spec.Item{
				Production: item.prod.Int(),
				Dot:        item.dot,
			}
		}
		sort.Slice(kernel, func(i, j int) bool {
			if kernel[i].Production != kernel[j].Production {
				return kernel[i].Production < kernel[j].Production
			}
			return kernel[i].Dot < kernel[j].Dot
		})

		var shift []*spec.Transition
		var reduce []*spec.Reduce
		var goTo []*spec.Transition
	TERMINALS_LOOP:
		for _, t := range symTab.terminalSymbols() {
			act, next, prod := slrTab.getAction(s.num, t)
			switch act {
			case actionTypeShift:
				shift = append(shift, &spec.Transition{
					Symbol: t.num().Int(),
					State:  next.Int(),
				})
			case actionTypeReduce:
				for _, r := range reduce {
					if r.Production == prod.Int() {
						r.LookAhead = append(r.LookAhead, t.num().Int())
						continue TERMINALS_LOOP
					}
				}
				reduce = append(reduce, &spec.Reduce{
					LookAhead:  []int{t.num().Int()},
					Production: prod.Int(),
				})
			}
		}
		for _, n := range symTab.nonTerminalSymbols() {
			next, ok := slrTab.getGoTo(s.num, n)
			if !ok {
				continue
			}
			goTo = append(goTo, &spec.Transition{
				Symbol: n.num().Int(),
				State:  next.Int(),
			})
		}
		sort.Slice(shift, func(i, j int) bool {
			return shift[i].State < shift[j].State
		})
		sort.Slice(reduce, func(i, j int) bool {
			return reduce[i].Production < reduce[j].Production
		})
		sort.Slice(goTo, func(i, j int) bool {
			return goTo[i].State < goTo[j].State
		})

		var sr []*spec.SRConflict
		for _, c := range srConflicts[s.num] {
			sr = append(sr, &spec.SRConflict{
				Symbol:     c.sym.num().Int(),
				State:      c.nextState.Int(),
				Production: c.prodNum.Int(),
			})
		}
		sort.Slice(sr, func(i, j int) bool {
			return sr[i].Symbol < sr[j].Symbol
		})

		var rr []*spec.RRConflict
		for _, c := range rrConflicts[s.num] {
			rr = append(rr, &spec.RRConflict{
				Symbol:      c.sym.num().Int(),
				Production1: c.prodNum1.Int(),
				Production2: c.prodNum2.Int(),
			})
		}
		sort.Slice(rr, func(i, j int) bool {
			return rr[i].Symbol < rr[j].Symbol
		})

		states[s.num.Int()] = &spec.State{
			Number:     s.num.Int(),
			Kernel:     kernel,
			Shift:      shift,
			Reduce:     reduce,
			GoTo:       goTo,
			SRConflict: sr,
			RRConflict: rr,
		}
	}

	return states, nil
}
