package cminus

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Grammar is the loaded production set together with the terminal and
// nonterminal partitions. Alternatives keep their file order; the parser
// tries them in that order, which is what resolves the dangling else.
type Grammar struct {
	// Productions maps each nonterminal to its alternatives. Symbols
	// starting with "#" are action markers, not grammar symbols.
	Productions map[string][][]string
	// Order lists the nonterminals in declaration order.
	Order []string

	nonterminals map[string]bool
	terminals    map[string]bool
}

// LoadGrammar reads productions of the form "LHS -> rhs1 | rhs2 | ...".
// A symbol is a terminal iff it appears in some right-hand side and is
// never a left-hand side (and is not an action marker).
func LoadGrammar(r io.Reader) (*Grammar, error) {
	g := &Grammar{
		Productions:  make(map[string][][]string),
		nonterminals: make(map[string]bool),
		terminals:    make(map[string]bool),
	}

	seen := make(map[string]bool)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lhs, rhs, found := strings.Cut(line, "->")
		if !found {
			return nil, fmt.Errorf("grammar line without \"->\": %q", line)
		}
		lhs = strings.TrimSpace(lhs)
		if lhs == "" || isActionMarker(lhs) {
			return nil, fmt.Errorf("invalid grammar left-hand side in %q", line)
		}
		if !g.nonterminals[lhs] {
			g.nonterminals[lhs] = true
			g.Order = append(g.Order, lhs)
		}
		for _, alt := range strings.Split(rhs, "|") {
			symbols := strings.Fields(alt)
			if len(symbols) == 0 {
				return nil, fmt.Errorf("empty alternative for %s", lhs)
			}
			real := 0
			for _, sym := range symbols {
				if isActionMarker(sym) {
					if _, err := parseAction(sym); err != nil {
						return nil, fmt.Errorf("production %s: %w", lhs, err)
					}
					continue
				}
				real++
				seen[sym] = true
			}
			if real == 0 {
				return nil, fmt.Errorf("production %s has an alternative with only action markers", lhs)
			}
			g.Productions[lhs] = append(g.Productions[lhs], symbols)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	if len(g.Productions) == 0 {
		return nil, fmt.Errorf("grammar is empty")
	}

	for sym := range seen {
		if !g.nonterminals[sym] && !strings.EqualFold(sym, "EPSILON") {
			g.terminals[sym] = true
		}
	}
	return g, nil
}

// IsTerminal reports whether symbol is a terminal of the grammar.
func (g *Grammar) IsTerminal(symbol string) bool {
	return g.terminals[symbol]
}

// IsNonterminal reports whether symbol has productions.
func (g *Grammar) IsNonterminal(symbol string) bool {
	return g.nonterminals[symbol]
}

// SymbolSets holds the FIRST or FOLLOW sets, one entry per nonterminal.
type SymbolSets struct {
	sets map[string][]string
}

// LoadSymbolSets reads one line per nonterminal: "NAME tok1 tok2 ...".
func LoadSymbolSets(r io.Reader) (*SymbolSets, error) {
	s := &SymbolSets{sets: make(map[string][]string)}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		s.sets[fields[0]] = fields[1:]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read symbol sets: %w", err)
	}
	return s, nil
}

// Contains reports whether the named set holds the symbol. Terminals are
// compared case-insensitively, matching the parser's lookahead comparison.
func (s *SymbolSets) Contains(name, symbol string) bool {
	for _, tok := range s.sets[name] {
		if strings.EqualFold(tok, symbol) {
			return true
		}
	}
	return false
}

// HasEpsilon reports whether the named set contains the EPSILON
// pseudo-terminal, i.e. the nonterminal is nullable.
func (s *SymbolSets) HasEpsilon(name string) bool {
	return s.Contains(name, "EPSILON")
}

// Has reports whether a set with the given name was loaded.
func (s *SymbolSets) Has(name string) bool {
	_, ok := s.sets[name]
	return ok
}
