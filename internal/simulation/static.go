package simulation

import (
	"math"

	"github.com/ziadkadry99/forcetree/internal/render"
)

// Static is an Adapter for offline rendering. Instead of running physics it
// places nodes on concentric rings by depth and fires a single tick on Start.
type Static struct {
	params Params
	nodes  []render.NodeView
	links  []render.LinkView
	ticks  []func([]Position)
}

// NewStatic returns a Static adapter with default params.
func NewStatic() *Static {
	return &Static{params: DefaultParams()}
}

func (s *Static) Configure(p Params) { s.params = p }

func (s *Static) SetNodesAndLinks(nodes []render.NodeView, links []render.LinkView) {
	s.nodes = nodes
	s.links = links
}

func (s *Static) OnTick(fn func([]Position)) { s.ticks = append(s.ticks, fn) }

// Params returns the current configuration.
func (s *Static) Params() Params { return s.params }

// Start computes positions and delivers them to every tick callback.
func (s *Static) Start() {
	pos := s.place()
	for _, fn := range s.ticks {
		fn(pos)
	}
}

func (s *Static) place() []Position {
	if len(s.nodes) == 0 {
		return nil
	}

	parent := make(map[int]int, len(s.links))
	children := make(map[int][]int, len(s.nodes))
	for _, l := range s.links {
		parent[l.Target] = l.Source
		children[l.Source] = append(children[l.Source], l.Target)
	}

	// Roots are nodes with no incoming link; normally exactly one.
	var queue []int
	depth := make(map[int]int, len(s.nodes))
	for _, n := range s.nodes {
		if _, ok := parent[n.ID]; !ok {
			queue = append(queue, n.ID)
			depth[n.ID] = 0
		}
	}

	rings := make(map[int][]int)
	maxDepth := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		d := depth[id]
		rings[d] = append(rings[d], id)
		maxDepth = max(maxDepth, d)
		for _, c := range children[id] {
			depth[c] = d + 1
			queue = append(queue, c)
		}
	}

	cx, cy := float64(s.params.Width)/2, float64(s.params.Height)/2
	step := s.params.LinkDistance
	if maxDepth > 0 {
		fit := math.Min(cx, cy) * 0.9 / float64(maxDepth)
		step = math.Min(step, fit)
	}

	out := make([]Position, 0, len(s.nodes))
	for d := 0; d <= maxDepth; d++ {
		ring := rings[d]
		r := step * float64(d)
		for i, id := range ring {
			if d == 0 && len(ring) == 1 {
				out = append(out, Position{ID: id, X: cx, Y: cy})
				continue
			}
			if d == 0 {
				r = step / 2
			}
			a := 2 * math.Pi * float64(i) / float64(len(ring))
			out = append(out, Position{ID: id, X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
		}
	}
	return out
}
