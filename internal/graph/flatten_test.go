package graph

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/ziadkadry99/forcetree/internal/tree"
)

func scenarioTree() *tree.Node {
	root := tree.NewBranch("All", tree.NewLeaf("A", 10), tree.NewLeaf("B", 30))
	root.Top = true
	return root
}

func TestFlattenScenario(t *testing.T) {
	var seq Sequence
	root := scenarioTree()

	g := Flatten(root, &seq)
	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(g.Nodes))
	}
	if len(g.Links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(g.Links))
	}

	// Post-order: children before parent.
	names := []string{g.Nodes[0].Name, g.Nodes[1].Name, g.Nodes[2].Name}
	want := []string{"A", "B", "All"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("node[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if root.ID != 3 {
		t.Errorf("root id = %d, want 3", root.ID)
	}
	for _, l := range g.Links {
		if l.Source != root {
			t.Errorf("link source = %q, want All", l.Source.Name)
		}
	}
}

func TestFlattenCollapsedRoot(t *testing.T) {
	var seq Sequence
	root := scenarioTree()
	Flatten(root, &seq)

	tree.Toggle(root)
	if len(root.HiddenChildren()) != 2 {
		t.Fatalf("expected 2 hidden children, got %d", len(root.HiddenChildren()))
	}
	g := Flatten(root, &seq)
	if len(g.Nodes) != 1 || len(g.Links) != 0 {
		t.Errorf("collapsed root: got %d nodes, %d links; want 1, 0", len(g.Nodes), len(g.Links))
	}
}

func TestFlattenKeepsIDsAcrossCycles(t *testing.T) {
	var seq Sequence
	root := scenarioTree()
	first := Flatten(root, &seq).ByID()

	tree.Toggle(root)
	Flatten(root, &seq)
	tree.Toggle(root)
	second := Flatten(root, &seq).ByID()

	for id, n := range first {
		if second[id] != n {
			t.Errorf("id %d moved from %q to %v", id, n.Name, second[id])
		}
	}
	if seq.Last() != 3 {
		t.Errorf("sequence advanced to %d; ids should not be reissued", seq.Last())
	}
}

func TestFlattenNewNodesGetFreshIDs(t *testing.T) {
	var seq Sequence
	a := scenarioTree()
	Flatten(a, &seq)
	b := scenarioTree()
	g := Flatten(b, &seq)
	for _, n := range g.Nodes {
		if n.ID <= 3 {
			t.Errorf("node %q reused id %d", n.Name, n.ID)
		}
	}
}

func TestReachable(t *testing.T) {
	inner := tree.NewBranch("C", tree.NewLeaf("C1", 1))
	root := tree.NewBranch("All", tree.NewLeaf("A", 1), inner)
	tree.Toggle(inner)

	if !Reachable(root, inner.AllChildren()[0]) {
		t.Error("hidden descendant should be reachable")
	}
	if !Reachable(root, root) {
		t.Error("root reaches itself")
	}
	if Reachable(inner, root) {
		t.Error("ancestor must not be reachable from a subtree")
	}
	if Reachable(root, tree.NewLeaf("stray", 1)) {
		t.Error("unrelated node should not be reachable")
	}
}

func genTree(t *rapid.T, depth int) *tree.Node {
	if depth == 0 || rapid.Bool().Draw(t, "leaf") {
		return tree.NewLeaf("l", rapid.Float64Range(0, 100).Draw(t, "v"))
	}
	kids := make([]*tree.Node, rapid.IntRange(1, 3).Draw(t, "n"))
	for i := range kids {
		kids[i] = genTree(t, depth-1)
	}
	return tree.NewBranch("b", kids...)
}

func TestFlattenPropertyUniqueIDs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var seq Sequence
		root := genTree(t, 4)
		seen := make(map[*tree.Node]int)

		steps := rapid.IntRange(1, 8).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			g := Flatten(root, &seq)
			ids := make(map[int]bool)
			for _, n := range g.Nodes {
				if n.ID == 0 {
					t.Fatal("flattened node without id")
				}
				if ids[n.ID] {
					t.Fatalf("duplicate id %d in one pass", n.ID)
				}
				ids[n.ID] = true
				if prev, ok := seen[n]; ok && prev != n.ID {
					t.Fatalf("node id changed from %d to %d", prev, n.ID)
				}
				seen[n] = n.ID
			}
			if len(g.Links) != len(g.Nodes)-1 {
				t.Fatalf("a visible tree of %d nodes has %d links", len(g.Nodes), len(g.Links))
			}

			var branches []*tree.Node
			tree.Walk(root, func(n *tree.Node) bool {
				if !n.IsLeaf() {
					branches = append(branches, n)
				}
				return true
			})
			if len(branches) > 0 {
				tree.Toggle(rapid.SampledFrom(branches).Draw(t, "toggle"))
			}
		}

		byID := make(map[int]*tree.Node)
		for n, id := range seen {
			if other, ok := byID[id]; ok && other != n {
				t.Fatalf("id %d shared by two nodes", id)
			}
			byID[id] = n
		}
	})
}
