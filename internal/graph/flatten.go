// Package graph projects the visible part of a tree into the flat node and
// link lists consumed by the force simulation.
package graph

import (
	"sync/atomic"

	"github.com/ziadkadry99/forcetree/internal/tree"
)

// Link connects a node to one of its visible children.
type Link struct {
	Source *tree.Node
	Target *tree.Node
}

// FlatGraph is the result of one render pass. It has no identity beyond the pass.
type FlatGraph struct {
	Nodes []*tree.Node
	Links []Link
}

// Sequence hands out node ids. Ids are never reused, even after the node
// drops out of view.
type Sequence struct {
	last atomic.Int64
}

// Next returns the next unused id, starting at 1.
func (s *Sequence) Next() int {
	return int(s.last.Add(1))
}

// Last returns the most recently issued id.
func (s *Sequence) Last() int {
	return int(s.last.Load())
}

// Flatten walks root post-order through visible children only, assigns ids
// to nodes that lack one, and emits a link for every visible parent/child pair.
func Flatten(root *tree.Node, seq *Sequence) FlatGraph {
	var g FlatGraph
	if root == nil {
		return g
	}

	var recurse func(n *tree.Node)
	recurse = func(n *tree.Node) {
		for _, c := range n.Children() {
			recurse(c)
		}
		if n.ID == 0 {
			n.ID = seq.Next()
		}
		g.Nodes = append(g.Nodes, n)
	}
	recurse(root)

	for _, n := range g.Nodes {
		for _, c := range n.Children() {
			g.Links = append(g.Links, Link{Source: n, Target: c})
		}
	}
	return g
}

// ByID indexes the graph's nodes by id.
func (g FlatGraph) ByID() map[int]*tree.Node {
	m := make(map[int]*tree.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		m[n.ID] = n
	}
	return m
}
