package graph

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/ziadkadry99/forcetree/internal/tree"
)

// Reachable reports whether target lies in the subtree of root, following
// both visible and hidden children.
func Reachable(root, target *tree.Node) bool {
	if root == nil || target == nil {
		return false
	}
	if root == target {
		return true
	}

	g := simple.NewDirectedGraph()
	index := make(map[*tree.Node]int64)
	var nextID int64
	idOf := func(n *tree.Node) int64 {
		if id, ok := index[n]; ok {
			return id
		}
		id := nextID
		nextID++
		index[n] = id
		g.AddNode(simple.Node(id))
		return id
	}

	tree.Walk(root, func(n *tree.Node) bool {
		from := idOf(n)
		for _, c := range n.AllChildren() {
			to := idOf(c)
			g.SetEdge(g.NewEdge(simple.Node(from), simple.Node(to)))
		}
		return true
	})

	to, ok := index[target]
	if !ok {
		return false
	}
	return topo.PathExistsIn(g, simple.Node(index[root]), simple.Node(to))
}
