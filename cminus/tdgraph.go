package cminus

import (
	"fmt"
	"strings"
)

// EpsilonLabel is the pseudo-label of an edge matched against FOLLOW
// instead of consuming input.
const EpsilonLabel = "EPSILON"

// TDEdge is one labelled edge of a transition diagram. The label is a
// terminal, a nonterminal, or EpsilonLabel. OnEnter actions fire when the
// edge is chosen; OnExit actions fire after the edge's symbol has been
// fully matched.
type TDEdge struct {
	Label   string
	Dest    int
	OnEnter []Action
	OnExit  []Action
}

// IsEpsilon reports whether the edge is the epsilon pseudo-edge.
func (e TDEdge) IsEpsilon() bool {
	return strings.EqualFold(e.Label, EpsilonLabel)
}

// TDNode is one node of a transition diagram. The first node of each
// nonterminal carries one outgoing edge per alternative; chain nodes carry
// exactly one. A node is accepting when the edge leading into it completed
// an alternative.
type TDNode struct {
	ID          int
	Nonterminal string
	IsAccept    bool
	Edges       []TDEdge
}

// TDGraph holds every transition diagram, nodes in one arena indexed by id.
//
// Build a TDGraph through BuildTDGraph.
type TDGraph struct {
	nodes []*TDNode
	first map[string]int
}

func newTDGraph() *TDGraph {
	return &TDGraph{first: make(map[string]int)}
}

func (g *TDGraph) addNode(nonterminal string, isAccept bool) int {
	id := len(g.nodes)
	g.nodes = append(g.nodes, &TDNode{ID: id, Nonterminal: nonterminal, IsAccept: isAccept})
	if _, ok := g.first[nonterminal]; !ok {
		g.first[nonterminal] = id
	}
	return id
}

// Node returns the node with the given id.
func (g *TDGraph) Node(id int) *TDNode {
	return g.nodes[id]
}

// FirstNode returns the entry node id of a nonterminal's diagram, or -1.
func (g *TDGraph) FirstNode(nonterminal string) int {
	if id, ok := g.first[nonterminal]; ok {
		return id
	}
	return -1
}

// BuildTDGraph turns the loaded grammar into one transition diagram per
// nonterminal. Action markers along an alternative attach to the next real
// edge as OnEnter; trailing markers attach to the last real edge as OnExit.
// The node reached by the last real edge of each alternative is accepting.
func BuildTDGraph(g *Grammar) (*TDGraph, error) {
	graph := newTDGraph()
	for _, nt := range g.Order {
		entry := graph.addNode(nt, false)
		for _, alt := range g.Productions[nt] {
			last := lastRealIndex(alt)
			cur := entry
			var pending []Action
			var lastEdge *TDEdge
			for i, sym := range alt {
				if isActionMarker(sym) {
					a, err := parseAction(sym)
					if err != nil {
						return nil, fmt.Errorf("production %s: %w", nt, err)
					}
					pending = append(pending, a)
					continue
				}
				next := graph.addNode(nt, i == last)
				node := graph.Node(cur)
				node.Edges = append(node.Edges, TDEdge{
					Label:   sym,
					Dest:    next,
					OnEnter: pending,
				})
				lastEdge = &node.Edges[len(node.Edges)-1]
				pending = nil
				cur = next
			}
			if len(pending) > 0 {
				lastEdge.OnExit = pending
			}
		}
	}
	return graph, nil
}

func lastRealIndex(alt []string) int {
	for i := len(alt) - 1; i >= 0; i-- {
		if !isActionMarker(alt[i]) {
			return i
		}
	}
	return -1
}
