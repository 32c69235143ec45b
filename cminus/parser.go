package cminus

import "strings"

// ActionHandler receives the semantic actions the parser encounters on
// transition-diagram edges, together with the lookahead token they fired
// on. CodeGen is the production implementation; the parser owns no
// knowledge of code generation beyond this surface.
type ActionHandler interface {
	Apply(a Action, tok Token)
}

// Parser walks one transition diagram per nonterminal, consuming a single
// lookahead token, emitting the parse tree, recording syntax errors with
// panic-mode recovery, and firing semantic actions.
//
// Create a Parser through NewParser.
type Parser struct {
	grammar *Grammar
	graph   *TDGraph
	firsts  *SymbolSets
	follows *SymbolSets

	scanner *Scanner
	errs    *SyntaxErrorLog
	actions ActionHandler

	curToken  Token
	curSymbol string

	root       *ParseTreeNode
	eofErrored bool
}

// NewParser wires the parser to its collaborators. The action handler may
// be nil, in which case edge actions are skipped (front-end-only parses).
func NewParser(grammar *Grammar, graph *TDGraph, firsts, follows *SymbolSets, scanner *Scanner, errs *SyntaxErrorLog, actions ActionHandler) *Parser {
	return &Parser{
		grammar: grammar,
		graph:   graph,
		firsts:  firsts,
		follows: follows,
		scanner: scanner,
		errs:    errs,
		actions: actions,
	}
}

// StartSymbol is the root nonterminal of the grammar.
const StartSymbol = "Program"

// Parse consumes the whole token stream and returns the parse-tree root.
// Syntax errors are recorded in the log; the tree always completes with
// whatever structure recovery produced.
func (p *Parser) Parse() *ParseTreeNode {
	p.advance()
	p.root = NewParseTreeNode(StartSymbol)
	p.parseNonterminal(StartSymbol, p.root)
	return p.root
}

// Tree returns the root of the last parse.
func (p *Parser) Tree() *ParseTreeNode {
	return p.root
}

// advance pulls the next parser-visible token and derives the grammar
// symbol it is matched under: the lexeme for keywords and symbols, the
// class name for identifiers and numbers, "$" at end of input.
func (p *Parser) advance() {
	p.curToken = p.scanner.NextToken()
	p.curSymbol = tokenToSymbol(p.curToken)
}

func tokenToSymbol(tok Token) string {
	switch tok.Class {
	case ClassKeyword, ClassSymbol:
		return tok.Lexeme
	default:
		return tok.Class.String()
	}
}

// leaf renders the lookahead as a parse-tree leaf.
func (p *Parser) leaf() *ParseTreeNode {
	if p.curSymbol == "$" {
		return NewParseTreeNode("$")
	}
	return NewParseTreeNode(p.curToken.String() + " ")
}

func (p *Parser) fire(actions []Action) {
	if p.actions == nil {
		return
	}
	for _, a := range actions {
		p.actions.Apply(a, p.curToken)
	}
}

func (p *Parser) errorLine() int {
	if p.curToken.Line > 0 {
		return p.curToken.Line
	}
	return p.scanner.Line()
}

func (p *Parser) reportEOF() {
	if !p.eofErrored {
		p.eofErrored = true
		p.errs.Add(p.errorLine(), "Unexpected EOF")
	}
}

// edgeMatch decides whether the lookahead selects an edge: epsilon edges
// match on FOLLOW of the current nonterminal, terminal edges on equality,
// nonterminal edges on FIRST (or FOLLOW when nullable).
func (p *Parser) edgeMatch(e TDEdge, nonterminal string) bool {
	if e.IsEpsilon() {
		return p.follows.Contains(nonterminal, p.curSymbol)
	}
	if p.grammar.IsTerminal(e.Label) {
		return strings.EqualFold(e.Label, p.curSymbol)
	}
	if p.firsts.Contains(e.Label, p.curSymbol) {
		return true
	}
	return p.firsts.HasEpsilon(e.Label) && p.follows.Contains(e.Label, p.curSymbol)
}

// traverse fires the edge's actions and matches its symbol, descending for
// nonterminals and consuming input for terminals. Returns the destination
// node.
func (p *Parser) traverse(e TDEdge, parent *ParseTreeNode) *TDNode {
	p.fire(e.OnEnter)
	switch {
	case e.IsEpsilon():
		parent.Add(NewParseTreeNode("epsilon"))
	case p.grammar.IsTerminal(e.Label):
		p.fire(e.OnExit)
		parent.Add(p.leaf())
		p.advance()
	default:
		child := NewParseTreeNode(e.Label)
		parent.Add(child)
		p.parseNonterminal(e.Label, child)
		p.fire(e.OnExit)
	}
	return p.graph.Node(e.Dest)
}

// parseNonterminal runs one transition diagram to completion. The return
// value reports whether the diagram was entered at all; a false return
// lets the caller continue past a "missing" nonterminal.
func (p *Parser) parseNonterminal(nonterminal string, parent *ParseTreeNode) bool {
	entry := p.graph.FirstNode(nonterminal)
	if entry < 0 {
		return true
	}
	cur := p.graph.Node(entry)

	// Alternative selection: pick the edge the lookahead belongs to.
	if len(cur.Edges) > 1 {
		progressed := false
		for _, e := range cur.Edges {
			if p.edgeMatch(e, nonterminal) {
				cur = p.traverse(e, parent)
				progressed = true
				break
			}
		}
		if !progressed {
			switch {
			case p.curSymbol == "$":
				p.reportEOF()
				return true
			case !p.follows.Contains(nonterminal, p.curSymbol):
				p.errs.Add(p.errorLine(), "illegal "+p.curSymbol)
				p.advance()
			default:
				p.errs.Add(p.errorLine(), "missing "+nonterminal)
				return false
			}
		}
	}

	// Chain walk: consume the remaining edges of the chosen alternative
	// one at a time, recovering on mismatches.
	for {
		if cur.IsAccept {
			return true
		}
		if len(cur.Edges) == 0 {
			return true
		}
		e := cur.Edges[0]
		if p.edgeMatch(e, nonterminal) {
			cur = p.traverse(e, parent)
			continue
		}
		switch {
		case p.curSymbol == "$":
			p.reportEOF()
			return true
		case p.grammar.IsTerminal(e.Label) && !p.follows.Contains(nonterminal, p.curSymbol):
			p.errs.Add(p.errorLine(), "illegal "+p.curSymbol)
			p.advance()
		case !p.grammar.IsTerminal(e.Label) && !e.IsEpsilon() && !p.follows.Contains(e.Label, p.curSymbol):
			p.errs.Add(p.errorLine(), "illegal "+p.curSymbol)
			p.advance()
		default:
			p.errs.Add(p.errorLine(), "missing "+e.Label)
			cur = p.graph.Node(e.Dest)
		}
	}
}
