package grammar

import "fmt"

type actionEntry int

const actionEntryEmpty = actionEntry(0)

func newShiftActionEntry(state stateNum) actionEntry {
	return actionEntry(state * -1)
}

func newReduceActionEntry(prod productionNum) actionEntry {
	return actionEntry(prod)
}

func (e actionEntry) isEmpty() bool {
	return e == actionEntryEmpty
}

type actionType int

const (
	actionTypeError actionType = iota
	actionTypeShift
	actionTypeReduce
)

func (e actionEntry) describe() (actionType, stateNum, productionNum) {
	if e == actionEntryEmpty {
		return actionTypeError, stateNumInitial, productionNumNil
	}
	if e < 0 {
		return actionTypeShift, stateNum(e * -1), productionNumNil
	}
	return actionTypeReduce, stateNumInitial, productionNum(e)
}

type goToEntry uint

const goToEntryEmpty = goToEntry(0)

func newGoToEntry(state stateNum) goToEntry {
	return goToEntry(state)
}

func (e goToEntry) describe() (stateNum, bool) {
	if e == goToEntryEmpty {
		return stateNumInitial, false
	}
	return stateNum(e), true
}

type shiftReduceConflict struct {
	state     stateNum
	sym       symbol
	nextState stateNum
	prodNum   productionNum
}

type reduceReduceConflict struct {
	state    stateNum
	sym      symbol
	prodNum1 productionNum
	prodNum2 productionNum
}

// slrTable is the ACTION and GOTO pair. ACTION rows are state numbers and
// columns are terminal numbers; the end marker occupies a regular column.
// A shift is stored negated, a reduce positive, and 0 rejects. GOTO rows are
// state numbers and columns non-terminal numbers; 0 rejects, which never
// collides with a real transition because state 0 has no incoming edge.
type slrTable struct {
	actionTable  []actionEntry
	goToTable    []goToEntry
	stateCount   int
	termCount    int
	nonTermCount int
	initialState stateNum
}

func (t *slrTable) getAction(state stateNum, term symbol) (actionType, stateNum, productionNum) {
	return t.actionTable[state.Int()*t.termCount+term.num().Int()].describe()
}

func (t *slrTable) getGoTo(state stateNum, nonTerm symbol) (stateNum, bool) {
	return t.goToTable[state.Int()*t.nonTermCount+nonTerm.num().Int()].describe()
}

func (t *slrTable) readAction(row int, col int) actionEntry {
	return t.actionTable[row*t.termCount+col]
}

func (t *slrTable) writeAction(row int, col int, act actionEntry) {
	t.actionTable[row*t.termCount+col] = act
}

func (t *slrTable) writeGoTo(state stateNum, sym symbol, nextState stateNum) {
	t.goToTable[state.Int()*t.nonTermCount+sym.num().Int()] = newGoToEntry(nextState)
}

type slrTableBuilder struct {
	automaton    *lr0Automaton
	prods        *productionSet
	follow       *followSet
	termCount    int
	nonTermCount int

	srConflicts []*shiftReduceConflict
	rrConflicts []*reduceReduceConflict
}

// build fills ACTION and GOTO from the LR(0) automaton, restricting each
// reduce action to the Follow set of the reduced production's LHS. Conflicts
// are recorded, never resolved; a contested cell keeps its first-written
// entry so the report stays readable, and the caller withholds the table
// when hasConflict reports true.
func (b *slrTableBuilder) build() (*slrTable, error) {
	initialState := b.automaton.states[b.automaton.initialState]
	tab := &slrTable{
		actionTable:  make([]actionEntry, len(b.automaton.states)*b.termCount),
		goToTable:    make([]goToEntry, len(b.automaton.states)*b.nonTermCount),
		stateCount:   len(b.automaton.states),
		termCount:    b.termCount,
		nonTermCount: b.nonTermCount,
		initialState: initialState.num,
	}

	for _, state := range b.automaton.states {
		for sym, kID := range state.next {
			nextState := b.automaton.states[kID]
			if sym.isTerminal() {
				b.writeShiftAction(tab, state.num, sym, nextState.num)
			} else {
				tab.writeGoTo(state.num, sym, nextState.num)
			}
		}

		for prodNum := range state.reducible {
			prod, ok := b.prods.findByNum(prodNum)
			if !ok {
				return nil, fmt.Errorf("reducible production not found: %v", prodNum)
			}

			flw, err := b.follow.find(prod.lhs)
			if err != nil {
				return nil, err
			}
			for _, a := range sortSymbols(flw.symbols) {
				b.writeReduceAction(tab, state.num, a, prodNum)
			}
			if flw.eof {
				b.writeReduceAction(tab, state.num, symbolEOF, prodNum)
			}
		}
	}

	return tab, nil
}

func (b *slrTableBuilder) hasConflict() bool {
	return len(b.srConflicts) > 0 || len(b.rrConflicts) > 0
}

func (b *slrTableBuilder) writeShiftAction(tab *slrTable, state stateNum, sym symbol, nextState stateNum) {
	act := tab.readAction(state.Int(), sym.num().Int())
	if !act.isEmpty() {
		ty, _, p := act.describe()
		if ty == actionTypeReduce {
			b.srConflicts = append(b.srConflicts, &shiftReduceConflict{
				state:     state,
				sym:       sym,
				nextState: nextState,
				prodNum:   p,
			})
			return
		}
	}
	tab.writeAction(state.Int(), sym.num().Int(), newShiftActionEntry(nextState))
}

func (b *slrTableBuilder) writeReduceAction(tab *slrTable, state stateNum, sym symbol, prod productionNum) {
	act := tab.readAction(state.Int(), sym.num().Int())
	if !act.isEmpty() {
		ty, s, p := act.describe()
		switch ty {
		case actionTypeReduce:
			if p == prod {
				return
			}
			b.rrConflicts = append(b.rrConflicts, &reduceReduceConflict{
				state:    state,
				sym:      sym,
				prodNum1: p,
				prodNum2: prod,
			})
		case actionTypeShift:
			b.srConflicts = append(b.srConflicts, &shiftReduceConflict{
				state:     state,
				sym:       sym,
				nextState: s,
				prodNum:   prod,
			})
		}
		return
	}
	tab.writeAction(state.Int(), sym.num().Int(), newReduceActionEntry(prod))
}
