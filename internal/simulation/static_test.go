package simulation

import (
	"testing"

	"github.com/ziadkadry99/forcetree/internal/render"
)

func TestStaticPlacesEveryNode(t *testing.T) {
	s := NewStatic()
	s.Configure(Params{LinkDistance: 100, Width: 400, Height: 400})
	s.SetNodesAndLinks(
		[]render.NodeView{{ID: 1}, {ID: 2}, {ID: 3}},
		[]render.LinkView{{Source: 3, Target: 1}, {Source: 3, Target: 2}},
	)

	store := NewPositions()
	ticks := 0
	s.OnTick(func(p []Position) {
		ticks++
		store.Apply(p)
	})
	s.Start()

	if ticks != 1 {
		t.Fatalf("expected one tick, got %d", ticks)
	}
	root, ok := store.Get(3)
	if !ok || root.X != 200 || root.Y != 200 {
		t.Errorf("root position = %+v, want center", root)
	}
	for _, id := range []int{1, 2} {
		p, ok := store.Get(id)
		if !ok {
			t.Fatalf("node %d not placed", id)
		}
		if p == root {
			t.Errorf("child %d placed on top of root", id)
		}
	}
	if len(store.Snapshot()) != 3 {
		t.Errorf("snapshot has %d positions, want 3", len(store.Snapshot()))
	}
}

func TestStaticEmpty(t *testing.T) {
	s := NewStatic()
	called := false
	s.OnTick(func(p []Position) {
		called = true
		if len(p) != 0 {
			t.Errorf("expected no positions, got %d", len(p))
		}
	})
	s.Start()
	if !called {
		t.Error("tick callback not called")
	}
}
