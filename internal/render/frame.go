// Package render holds the view models handed to the drawing surface and
// the keyed binder that diffs them between passes.
package render

import (
	"math"

	"github.com/ziadkadry99/forcetree/internal/colordomain"
	"github.com/ziadkadry99/forcetree/internal/graph"
	"github.com/ziadkadry99/forcetree/internal/tree"
)

// NodeView is one circle + label on the drawing surface.
type NodeView struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Radius  float64  `json:"radius"`
	Color   string   `json:"color"`
	State   string   `json:"state"`
	Top     bool     `json:"top,omitempty"`
	Focused bool     `json:"focused,omitempty"`
	Average *float64 `json:"average,omitempty"` // nil when the node has no data
}

// LinkView is a line between two node ids.
type LinkView struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// Frame is everything the surface needs to draw one pass.
type Frame struct {
	Nodes  []NodeView `json:"nodes"`
	Links  []LinkView `json:"links"`
	Focus  string     `json:"focus,omitempty"`
	RootID int        `json:"root_id"`
	Bounds Bounds     `json:"bounds"`
	Diff   Diff       `json:"diff"`
}

// Bounds is the color domain in effect for a frame.
type Bounds struct {
	General    colordomain.Bounds `json:"general"`
	BranchRoot colordomain.Bounds `json:"branch_root"`
}

// BuildFrame converts a decorated flat graph into view models.
func BuildFrame(g graph.FlatGraph, root *tree.Node, focus string, colors *colordomain.Tracker) Frame {
	f := Frame{
		Nodes: make([]NodeView, 0, len(g.Nodes)),
		Links: make([]LinkView, 0, len(g.Links)),
		Focus: focus,
	}
	if root != nil {
		f.RootID = root.ID
	}
	if colors != nil {
		f.Bounds = Bounds{General: colors.General, BranchRoot: colors.BranchRoot}
	}

	for _, n := range g.Nodes {
		nv := NodeView{
			ID:      n.ID,
			Name:    n.Name,
			Radius:  n.Radius,
			State:   n.State().String(),
			Top:     n.Top,
			Focused: focus != "" && n.Name == focus,
		}
		if colors != nil {
			nv.Color = colors.ColorOf(n)
		}
		if avg := n.Average; !math.IsNaN(avg) && !math.IsInf(avg, 0) {
			nv.Average = &avg
		}
		f.Nodes = append(f.Nodes, nv)
	}
	for _, l := range g.Links {
		f.Links = append(f.Links, LinkView{Source: l.Source.ID, Target: l.Target.ID})
	}
	return f
}
