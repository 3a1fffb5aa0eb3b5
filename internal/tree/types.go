package tree

import "math"

// State is the visibility state of a node. It is decided once when the node
// is built and only changes through Toggle.
type State int

const (
	// Leaf nodes have no children and never transition.
	Leaf State = iota
	// Expanded nodes show their children.
	Expanded
	// Collapsed nodes keep their children hidden.
	Collapsed
)

func (s State) String() string {
	switch s {
	case Expanded:
		return "expanded"
	case Collapsed:
		return "collapsed"
	default:
		return "leaf"
	}
}

// Node is one entity of the hierarchical dataset. The controller mutates it
// in place; the flattener assigns ID lazily.
type Node struct {
	ID    int // 0 until the first flatten that visits the node
	Name  string
	Value *float64 // leaf value, required on leaves
	Top   bool     // eligible for drill-down focus

	// Recomputed on every render pass.
	Radius  float64
	Average float64

	state State
	kids  []*Node
}

// NewLeaf returns a leaf carrying value.
func NewLeaf(name string, value float64) *Node {
	return &Node{Name: name, Value: &value, Average: math.NaN()}
}

// NewBranch returns an expanded node with the given children. With no
// children the node is a leaf without a value.
func NewBranch(name string, children ...*Node) *Node {
	n := &Node{Name: name, Average: math.NaN()}
	if len(children) > 0 {
		n.state = Expanded
		n.kids = children
	}
	return n
}

// State reports the node's current visibility state.
func (n *Node) State() State { return n.state }

// IsLeaf reports whether the node never had children.
func (n *Node) IsLeaf() bool { return n.state == Leaf }

// Children returns the visible children, or nil unless expanded.
func (n *Node) Children() []*Node {
	if n.state != Expanded {
		return nil
	}
	return n.kids
}

// HiddenChildren returns the hidden children, or nil unless collapsed.
func (n *Node) HiddenChildren() []*Node {
	if n.state != Collapsed {
		return nil
	}
	return n.kids
}

// AllChildren returns the children regardless of visibility.
func (n *Node) AllChildren() []*Node { return n.kids }

// Toggle swaps a node between Expanded and Collapsed. Leaves are left alone.
// Calling Toggle twice restores the original partition.
func Toggle(n *Node) {
	switch n.state {
	case Expanded:
		n.state = Collapsed
	case Collapsed:
		n.state = Expanded
	}
}

// Collapse hides n's children if it is expanded.
func Collapse(n *Node) {
	if n.state == Expanded {
		n.state = Collapsed
	}
}

// Walk visits n and every descendant, visible or hidden, in pre-order.
// Returning false from fn stops descent into that node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.kids {
		Walk(c, fn)
	}
}

// Find returns the first node (pre-order, hidden included) with the given id.
func Find(root *Node, id int) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id && id != 0 {
			found = n
			return false
		}
		return true
	})
	return found
}

// Clone deep-copies the tree, keeping states and assigned ids.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		ID:      n.ID,
		Name:    n.Name,
		Top:     n.Top,
		Radius:  n.Radius,
		Average: n.Average,
		state:   n.state,
	}
	if n.Value != nil {
		v := *n.Value
		c.Value = &v
	}
	if len(n.kids) > 0 {
		c.kids = make([]*Node, len(n.kids))
		for i, k := range n.kids {
			c.kids[i] = Clone(k)
		}
	}
	return c
}
