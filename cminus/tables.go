package cminus

import (
	"fmt"
	"io"
	"os"
)

// LoadTables loads a grammar and its FIRST and FOLLOW sets, validates that
// every nonterminal has both sets, and builds the transition-diagram graph.
func LoadTables(grammarR, firstR, followR io.Reader) (*Grammar, *TDGraph, *SymbolSets, *SymbolSets, error) {
	grammar, err := LoadGrammar(grammarR)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	firsts, err := LoadSymbolSets(firstR)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load FIRST sets: %w", err)
	}
	follows, err := LoadSymbolSets(followR)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load FOLLOW sets: %w", err)
	}
	for _, nt := range grammar.Order {
		if !firsts.Has(nt) {
			return nil, nil, nil, nil, fmt.Errorf("nonterminal %s has no FIRST set", nt)
		}
		if !follows.Has(nt) {
			return nil, nil, nil, nil, fmt.Errorf("nonterminal %s has no FOLLOW set", nt)
		}
	}
	graph, err := BuildTDGraph(grammar)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return grammar, graph, firsts, follows, nil
}

// LoadTableFiles loads the grammar assets from disk paths.
func LoadTableFiles(grammarPath, firstPath, followPath string) (*Grammar, *TDGraph, *SymbolSets, *SymbolSets, error) {
	gf, err := os.Open(grammarPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("open grammar: %w", err)
	}
	defer gf.Close()
	ff, err := os.Open(firstPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("open FIRST sets: %w", err)
	}
	defer ff.Close()
	wf, err := os.Open(followPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("open FOLLOW sets: %w", err)
	}
	defer wf.Close()
	return LoadTables(gf, ff, wf)
}
