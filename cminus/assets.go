package cminus

import (
	"bytes"
	_ "embed"
)

// The default grammar assets. On-disk files with the same layout override
// them through Options.

//go:embed assets/grammar.txt
var defaultGrammar []byte

//go:embed assets/first.txt
var defaultFirst []byte

//go:embed assets/follow.txt
var defaultFollow []byte

// LoadDefaultTables loads the embedded grammar, FIRST and FOLLOW sets and
// builds the transition-diagram graph.
func LoadDefaultTables() (*Grammar, *TDGraph, *SymbolSets, *SymbolSets, error) {
	return LoadTables(bytes.NewReader(defaultGrammar), bytes.NewReader(defaultFirst), bytes.NewReader(defaultFollow))
}
