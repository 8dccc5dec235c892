package grammar

import (
	"fmt"
	"strings"
)

type productionNum uint16

const (
	productionNumNil   = productionNum(0)
	productionNumStart = productionNum(1)
	productionNumMin   = productionNum(2)
)

func (n productionNum) Int() int {
	return int(n)
}

// production is identified by its number alone. Two alternatives with the
// same LHS and RHS are distinct productions; a grammar repeating an
// alternative is genuinely ambiguous and the table builders must see both.
type production struct {
	num    productionNum
	lhs    symbol
	rhs    []symbol
	rhsLen int
}

func newProduction(lhs symbol, rhs []symbol) (*production, error) {
	if lhs.isNil() {
		return nil, fmt.Errorf("LHS must be a non-nil symbol; RHS: %v", rhs)
	}
	for _, sym := range rhs {
		if sym.isNil() {
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	return &production{
		lhs:    lhs,
		rhs:    rhs,
		rhsLen: len(rhs),
	}, nil
}

func (p *production) isEmpty() bool {
	return p.rhsLen == 0
}

func (p *production) describe(symTab *symbolTable) string {
	var b strings.Builder
	lhsText, ok := symTab.toText(p.lhs)
	if !ok {
		lhsText = p.lhs.String()
	}
	fmt.Fprintf(&b, "%v ->", lhsText)
	if p.isEmpty() {
		fmt.Fprintf(&b, " ε")
		return b.String()
	}
	for _, sym := range p.rhs {
		symText, ok := symTab.toText(sym)
		if !ok {
			symText = sym.String()
		}
		fmt.Fprintf(&b, " %v", symText)
	}
	return b.String()
}

type productionSet struct {
	lhs2Prods map[symbol][]*production
	num2Prod  map[productionNum]*production
	ordered   []*production
	num       productionNum
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[symbol][]*production{},
		num2Prod:  map[productionNum]*production{},
		num:       productionNumMin,
	}
}

func (ps *productionSet) append(prod *production) {
	if prod.lhs.isStart() {
		prod.num = productionNumStart
	} else {
		prod.num = ps.num
		ps.num++
	}

	ps.lhs2Prods[prod.lhs] = append(ps.lhs2Prods[prod.lhs], prod)
	ps.num2Prod[prod.num] = prod
	ps.ordered = append(ps.ordered, prod)
}

func (ps *productionSet) findByNum(num productionNum) (*production, bool) {
	prod, ok := ps.num2Prod[num]
	return prod, ok
}

func (ps *productionSet) findByLHS(lhs symbol) ([]*production, bool) {
	if lhs.isNil() {
		return nil, false
	}

	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

// getAllProductions returns every production in registration order, the
// augmented start production first.
func (ps *productionSet) getAllProductions() []*production {
	return ps.ordered
}

func (ps *productionSet) count() int {
	return len(ps.ordered)
}
