package render

import "slices"

// Diff is the keyed join of one frame against the previous one. Node keys
// are node ids; link keys are target ids (each node has at most one parent).
type Diff struct {
	Enter     []int `json:"enter"`
	Update    []int `json:"update"`
	Exit      []int `json:"exit"`
	LinkEnter []int `json:"link_enter"`
	LinkExit  []int `json:"link_exit"`
}

// Binder remembers which keys are currently bound to visuals.
type Binder struct {
	nodes map[int]bool
	links map[int]bool
	order []int
}

// NewBinder returns a binder with nothing bound.
func NewBinder() *Binder {
	return &Binder{nodes: make(map[int]bool), links: make(map[int]bool)}
}

// Bind joins f against the bound set, records the result on f.Diff and
// makes f's keys the new bound set.
func (b *Binder) Bind(f *Frame) Diff {
	var d Diff

	nextNodes := make(map[int]bool, len(f.Nodes))
	for _, n := range f.Nodes {
		nextNodes[n.ID] = true
		if b.nodes[n.ID] {
			d.Update = append(d.Update, n.ID)
		} else {
			d.Enter = append(d.Enter, n.ID)
		}
	}
	for _, id := range b.order {
		if !nextNodes[id] {
			d.Exit = append(d.Exit, id)
		}
	}

	nextLinks := make(map[int]bool, len(f.Links))
	for _, l := range f.Links {
		nextLinks[l.Target] = true
		if !b.links[l.Target] {
			d.LinkEnter = append(d.LinkEnter, l.Target)
		}
	}
	for target := range b.links {
		if !nextLinks[target] {
			d.LinkExit = append(d.LinkExit, target)
		}
	}
	slices.Sort(d.LinkExit)

	b.nodes = nextNodes
	b.links = nextLinks
	b.order = b.order[:0]
	for _, n := range f.Nodes {
		b.order = append(b.order, n.ID)
	}

	f.Diff = d
	return d
}
