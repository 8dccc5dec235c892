package grammar

import (
	verr "github.com/cfgkit/cfgkit/error"
	"github.com/cfgkit/cfgkit/spec"
)

// Grammar is a context-free grammar in symbol-encoded form. The start symbol
// is the LHS of the first production in the description, and the grammar is
// augmented with an extra start production S' -> S before table construction.
type Grammar struct {
	name                 string
	symbolTable          *symbolTable
	productionSet        *productionSet
	augmentedStartSymbol symbol
	startSymbol          symbol
}

func (g *Grammar) Name() string {
	return g.name
}

type GrammarBuilder struct {
	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build(name string, root *spec.RootNode) (*Grammar, error) {
	b.errs = nil

	if len(root.Productions) == 0 {
		b.errs = append(b.errs, &verr.SpecError{
			Cause: semErrNoProduction,
		})
		return nil, b.errs
	}

	symTab, err := b.genSymbolTable(root)
	if err != nil {
		return nil, err
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	prods, err := b.genProductionSet(symTab, root)
	if err != nil {
		return nil, err
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	startText := root.Productions[0].LHS
	startSym, _ := symTab.toSymbol(startText)

	return &Grammar{
		name:                 name,
		symbolTable:          symTab,
		productionSet:        prods,
		augmentedStartSymbol: symbolStart,
		startSymbol:          startSym,
	}, nil
}

// genSymbolTable registers every symbol of the grammar. A name is a
// non-terminal when it appears on the left-hand side of some production,
// whatever its spelling; every other name in a right-hand side is a terminal.
func (b *GrammarBuilder) genSymbolTable(root *spec.RootNode) (*symbolTable, error) {
	symTab := newSymbolTable(spec.EndMarker)

	lhsNames := map[string]struct{}{}
	allNames := map[string]struct{}{}
	for _, prod := range root.Productions {
		lhsNames[prod.LHS] = struct{}{}
		allNames[prod.LHS] = struct{}{}
		for _, alt := range prod.Alternatives {
			for _, elem := range alt.Elements {
				allNames[elem] = struct{}{}
			}
		}
	}

	// The generated name must not collide with any user symbol, terminals
	// included, or the colliding spelling would resolve to the start symbol.
	startName := root.Productions[0].LHS + "'"
	for {
		if _, ok := allNames[startName]; !ok {
			break
		}
		startName += "'"
	}
	_, err := symTab.registerStartSymbol(startName)
	if err != nil {
		return nil, err
	}

	for _, prod := range root.Productions {
		if prod.LHS == spec.EndMarker || prod.LHS == spec.EpsilonMarker {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedName,
				Detail: prod.LHS,
				Row:    prod.Pos.Row,
				Col:    prod.Pos.Col,
			})
			continue
		}
		_, err := symTab.registerNonTerminalSymbol(prod.LHS)
		if err != nil {
			return nil, err
		}
	}

	for _, prod := range root.Productions {
		for _, alt := range prod.Alternatives {
			for _, elem := range alt.Elements {
				if elem == spec.EndMarker {
					b.errs = append(b.errs, &verr.SpecError{
						Cause:  semErrReservedSymbol,
						Detail: elem,
						Row:    prod.Pos.Row,
						Col:    prod.Pos.Col,
					})
					continue
				}
				if _, ok := lhsNames[elem]; ok {
					continue
				}
				_, err := symTab.registerTerminalSymbol(elem)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	return symTab, nil
}

func (b *GrammarBuilder) genProductionSet(symTab *symbolTable, root *spec.RootNode) (*productionSet, error) {
	prods := newProductionSet()

	startSym, _ := symTab.toSymbol(root.Productions[0].LHS)
	augProd, err := newProduction(symbolStart, []symbol{startSym})
	if err != nil {
		return nil, err
	}
	prods.append(augProd)

	for _, prodNode := range root.Productions {
		lhsSym, ok := symTab.toSymbol(prodNode.LHS)
		if !ok {
			// The LHS failed symbol registration. The error is already
			// recorded, so just skip its alternatives.
			continue
		}
		for _, alt := range prodNode.Alternatives {
			rhs := make([]symbol, 0, len(alt.Elements))
			broken := false
			for _, elem := range alt.Elements {
				sym, ok := symTab.toSymbol(elem)
				if !ok {
					broken = true
					break
				}
				rhs = append(rhs, sym)
			}
			if broken {
				continue
			}
			prod, err := newProduction(lhsSym, rhs)
			if err != nil {
				return nil, err
			}
			prods.append(prod)
		}
	}

	return prods, nil
}
