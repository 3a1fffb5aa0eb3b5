package aggregate

import (
	"errors"
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/ziadkadry99/forcetree/internal/graph"
	"github.com/ziadkadry99/forcetree/internal/tree"
)

func TestScenarioMean(t *testing.T) {
	root := tree.NewBranch("All", tree.NewLeaf("A", 10), tree.NewLeaf("B", 30))
	c := NewCalculator(DefaultOptions())

	got, err := c.Of(root)
	if err != nil {
		t.Fatalf("Of: %v", err)
	}
	if got != 20 {
		t.Errorf("aggregate(All) = %v, want 20", got)
	}
}

func TestMeanOfMeans(t *testing.T) {
	// Mean of child aggregates, not of all leaves: (2 + mean(4, 8)) / 2 = 4.
	root := tree.NewBranch("r",
		tree.NewLeaf("a", 2),
		tree.NewBranch("b", tree.NewLeaf("b1", 4), tree.NewLeaf("b2", 8)),
	)
	c := NewCalculator(DefaultOptions())
	got, _ := c.Of(root)
	if got != 4 {
		t.Errorf("got %v, want 4", got)
	}
}

func TestCollapsedNodes(t *testing.T) {
	mk := func() *tree.Node {
		n := tree.NewBranch("c", tree.NewLeaf("x", 600), tree.NewLeaf("y", 1200))
		tree.Toggle(n)
		return n
	}

	withHidden := NewCalculator(DefaultOptions())
	v, err := withHidden.Of(mk())
	if err != nil || v != 900 {
		t.Errorf("IncludeHidden: got %v, %v; want 900", v, err)
	}

	opts := DefaultOptions()
	opts.IncludeHidden = false
	visibleOnly := NewCalculator(opts)
	v, err = visibleOnly.Of(mk())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(v) {
		t.Errorf("visible-only aggregate of collapsed node = %v, want NaN", v)
	}
	if r := visibleOnly.Radius(v); r != DefaultRadius {
		t.Errorf("NaN radius = %v, want default %v", r, DefaultRadius)
	}
}

func TestRadius(t *testing.T) {
	c := NewCalculator(Options{})
	tests := []struct {
		avg  float64
		want float64
	}{
		{3000, 10},
		{300, DefaultRadius},
		{0, DefaultRadius},
		{math.NaN(), DefaultRadius},
		{math.Inf(1), DefaultRadius},
	}
	for _, tt := range tests {
		if got := c.Radius(tt.avg); got != tt.want {
			t.Errorf("Radius(%v) = %v, want %v", tt.avg, got, tt.want)
		}
	}
}

func TestMissingLeafValue(t *testing.T) {
	root := tree.NewBranch("r", tree.NewBranch("empty"))
	c := NewCalculator(DefaultOptions())
	_, err := c.Of(root)
	if !errors.Is(err, ErrMissingLeafValue) {
		t.Errorf("expected ErrMissingLeafValue, got %v", err)
	}
}

func TestDecorateAndReset(t *testing.T) {
	var seq graph.Sequence
	root := tree.NewBranch("All", tree.NewLeaf("A", 3000), tree.NewLeaf("B", 9000))
	c := NewCalculator(DefaultOptions())

	if err := c.Decorate(graph.Flatten(root, &seq)); err != nil {
		t.Fatal(err)
	}
	if root.Average != 6000 || root.Radius != 20 {
		t.Errorf("root decorated as avg=%v r=%v", root.Average, root.Radius)
	}

	*root.Children()[0].Value = 0
	c.Reset()
	if err := c.Decorate(graph.Flatten(root, &seq)); err != nil {
		t.Fatal(err)
	}
	if root.Average != 4500 {
		t.Errorf("after reset avg = %v, want 4500", root.Average)
	}
}

func TestPropertyLeafAndMean(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var build func(depth int) *tree.Node
		build = func(depth int) *tree.Node {
			if depth == 0 || rapid.Bool().Draw(t, "leaf") {
				return tree.NewLeaf("l", rapid.Float64Range(-1e6, 1e6).Draw(t, "v"))
			}
			kids := make([]*tree.Node, rapid.IntRange(1, 4).Draw(t, "n"))
			for i := range kids {
				kids[i] = build(depth - 1)
			}
			return tree.NewBranch("b", kids...)
		}
		root := build(4)
		c := NewCalculator(DefaultOptions())

		tree.Walk(root, func(n *tree.Node) bool {
			got, err := c.Of(n)
			if err != nil {
				t.Fatalf("Of: %v", err)
			}
			if n.IsLeaf() {
				if got != *n.Value {
					t.Fatalf("leaf aggregate %v != value %v", got, *n.Value)
				}
				return true
			}
			var sum float64
			for _, k := range n.Children() {
				kv, _ := c.Of(k)
				sum += kv
			}
			want := sum / float64(len(n.Children()))
			if math.Abs(got-want) > 1e-6*math.Max(1, math.Abs(want)) {
				t.Fatalf("internal aggregate %v, want mean %v", got, want)
			}
			return true
		})
	})
}
