package cminus

import (
	"io"
	"strings"
)

// ParseTreeNode is one node of the parse tree. Interior nodes are labelled
// with nonterminal names; leaves with "(CLASS, lexeme) ", "epsilon", or
// "$".
type ParseTreeNode struct {
	Label    string
	Children []*ParseTreeNode
}

// NewParseTreeNode returns a leafless node with the given label.
func NewParseTreeNode(label string) *ParseTreeNode {
	return &ParseTreeNode{Label: label}
}

// Add appends a child.
func (n *ParseTreeNode) Add(child *ParseTreeNode) {
	n.Children = append(n.Children, child)
}

// Lines renders the subtree with box-drawing joints. The root line carries
// no joint and its children no continuation prefix.
func (n *ParseTreeNode) Lines() []string {
	return n.lines("", true, true)
}

func (n *ParseTreeNode) lines(prefix string, isLast, isRoot bool) []string {
	joint := "└── "
	if !isLast {
		joint = "├── "
	}
	childPrefix := prefix
	if isRoot {
		joint = ""
	} else if isLast {
		childPrefix = prefix + "    "
	} else {
		childPrefix = prefix + "│   "
	}
	out := []string{prefix + joint + n.Label}
	for i, child := range n.Children {
		out = append(out, child.lines(childPrefix, i == len(n.Children)-1, false)...)
	}
	return out
}

// Write renders the tree to w.
func (n *ParseTreeNode) Write(w io.Writer) error {
	_, err := io.WriteString(w, strings.Join(n.Lines(), "\n"))
	return err
}
