package spec

// CompiledGrammar is the portable result of analyzing a grammar. The LL1 and
// SLR fields are nil when the grammar is outside the respective class; the
// conflicts that disqualified it are listed in the report.
type CompiledGrammar struct {
	Name        string       `json:"name"`
	Symbols     *Symbols     `json:"symbols"`
	Productions *Productions `json:"productions"`
	LL1         *LL1Table    `json:"ll1"`
	SLR         *SLRTables   `json:"slr"`
	Report      *Report      `json:"report"`
}

func (g *CompiledGrammar) IsLL1() bool {
	return g.LL1 != nil
}

func (g *CompiledGrammar) IsSLR1() bool {
	return g.SLR != nil
}

// Symbols maps between symbol numbers and their spellings. Terminal number 1
// is always the end marker. Non-terminal number 1 is the augmented start
// symbol, which appears in no exposed table; the user's start symbol is
// StartSymbol.
type Symbols struct {
	Terminals        []string `json:"terminals"`
	TerminalCount    int      `json:"terminal_count"`
	NonTerminals     []string `json:"non_terminals"`
	NonTerminalCount int      `json:"non_terminal_count"`
	EOFSymbol        int      `json:"eof_symbol"`
	StartSymbol      int      `json:"start_symbol"`
}

// Productions lists every production by number. Production number 1 is the
// augmented start production. RHS symbols are encoded as terminal numbers
// (positive) and negated non-terminal numbers (negative).
type Productions struct {
	LHSSymbols      []int   `json:"lhs_symbols"`
	RHSSymbols      [][]int `json:"rhs_symbols"`
	StartProduction int     `json:"start_production"`
}

// LL1Table maps (non-terminal number, terminal number) to the production to
// predict. An entry of 0 means reject.
type LL1Table struct {
	Entries          []int `json:"entries"`
	NonTerminalCount int   `json:"non_terminal_count"`
	TerminalCount    int   `json:"terminal_count"`
}

func (t *LL1Table) Lookup(nonTerminal int, terminal int) int {
	return t.Entries[nonTerminal*t.TerminalCount+terminal]
}

// SLRTables holds the ACTION and GOTO tables. An ACTION entry is a shift when
// negative (the negated target state), a reduce when positive (the production
// number) and a reject when 0. A GOTO entry of 0 means reject; state 0 is
// never the target of a transition, so the encoding is unambiguous.
type SLRTables struct {
	Action           []int `json:"action"`
	GoTo             []int `json:"goto"`
	StateCount       int   `json:"state_count"`
	InitialState     int   `json:"initial_state"`
	TerminalCount    int   `json:"terminal_count"`
	NonTerminalCount int   `json:"non_terminal_count"`
}

func (t *SLRTables) LookupAction(state int, terminal int) int {
	return t.Action[state*t.TerminalCount+terminal]
}

func (t *SLRTables) LookupGoTo(state int, nonTerminal int) int {
	return t.GoTo[state*t.NonTerminalCount+nonTerminal]
}

type Report struct {
	Terminals    []*Terminal    `json:"terminals"`
	NonTerminals []*NonTerminal `json:"non_terminals"`
	Productions  []*Production  `json:"productions"`
	States       []*State       `json:"states"`
	LL1Conflicts []*LL1Conflict `json:"ll1_conflicts"`
}

type Terminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type NonTerminal struct {
	Number   int      `json:"number"`
	Name     string   `json:"name"`
	Nullable bool     `json:"nullable"`
	First    []string `json:"first"`
	Follow   []string `json:"follow"`
}

type Production struct {
	Number int    `json:"number"`
	LHS    int    `json:"lhs"`
	RHS    []int  `json:"rhs"`
	Text   string `json:"text"`
}

type State struct {
	Number     int           `json:"number"`
	Kernel     []*Item       `json:"kernel"`
	Shift      []*Transition `json:"shift"`
	Reduce     []*Reduce     `json:"reduce"`
	GoTo       []*Transition `json:"goto"`
	SRConflict []*SRConflict `json:"sr_conflict,omitempty"`
	RRConflict []*RRConflict `json:"rr_conflict,omitempty"`
}

type Item struct {
	Production int `json:"production"`
	Dot        int `json:"dot"`
}

type Transition struct {
	Symbol int `json:"symbol"`
	State  int `json:"state"`
}

type Reduce struct {
	LookAhead  []int `json:"look_ahead"`
	Production int   `json:"production"`
}

type SRConflict struct {
	Symbol     int `json:"symbol"`
	State      int `json:"state"`
	Production int `json:"production"`
}

type RRConflict struct {
	Symbol      int `json:"symbol"`
	Production1 int `json:"production1"`
	Production2 int `json:"production2"`
}

type LL1Conflict struct {
	NonTerminal int `json:"non_terminal"`
	Terminal    int `json:"terminal"`
	Production1 int `json:"production1"`
	Production2 int `json:"production2"`
}
