package view

import (
	"fmt"

	"github.com/ziadkadry99/forcetree/internal/render"
	"github.com/ziadkadry99/forcetree/internal/tree"
)

// Gesture describes the pointer interaction that produced a click. The drag
// collaborator sets Consumed when the pointer moved a node; it is cleared on
// every pointer-up.
type Gesture struct {
	Consumed bool `json:"consumed"`
}

// Outcome is what a click did.
type Outcome string

const (
	OutcomeIgnored      Outcome = "ignored"
	OutcomeToggled      Outcome = "toggled"
	OutcomeFocusEntered Outcome = "focus_entered"
	OutcomeFocusExited  Outcome = "focus_exited"
)

// Reasons a click is ignored.
const (
	ReasonSentinel = "sentinel"
	ReasonDrag     = "drag"
	ReasonBusy     = "busy"
)

// ClickResult reports a click's outcome and, unless ignored, the new frame.
type ClickResult struct {
	Outcome  Outcome       `json:"outcome"`
	Reason   string        `json:"reason,omitempty"`
	NodeID   int           `json:"node_id"`
	NodeName string        `json:"node_name"`
	Focus    string        `json:"focus,omitempty"`
	Frame    *render.Frame `json:"-"`
}

// OnNodeClick handles a click on the visible node id. A click that arrives
// while a pipeline pass is running is dropped rather than queued; readers
// holding the lock only delay it.
func (c *Controller) OnNodeClick(id int, g Gesture) (ClickResult, error) {
	res := ClickResult{NodeID: id}
	if c.updating.Load() {
		res.Outcome, res.Reason = OutcomeIgnored, ReasonBusy
		return res, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.visible[id]
	if !ok {
		if hidden := tree.Find(c.dataset, id); hidden != nil {
			res.NodeName = hidden.Name
			return res, fmt.Errorf("%w: %d (%q is not visible)", ErrUnknownNode, id, hidden.Name)
		}
		return res, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	res.NodeName = n.Name
	res.Focus = c.focus.ActiveFocusName

	if n.Name == c.opts.SentinelName {
		res.Outcome, res.Reason = OutcomeIgnored, ReasonSentinel
		return res, nil
	}
	if g.Consumed {
		res.Outcome, res.Reason = OutcomeIgnored, ReasonDrag
		return res, nil
	}

	res.Outcome = OutcomeToggled
	switch {
	case n.State() == tree.Collapsed && n.Top:
		c.enterFocus(n)
		res.Outcome = OutcomeFocusEntered
	case c.focus.ActiveFocusName != "" && n.Name == c.focus.ActiveFocusName:
		c.exitFocus()
		res.Outcome = OutcomeFocusExited
	}

	tree.Toggle(n)

	frame, err := c.update()
	if err != nil {
		return res, err
	}
	res.Focus = c.focus.ActiveFocusName
	res.Frame = &frame
	return res, nil
}

func (c *Controller) enterFocus(n *tree.Node) {
	c.stack = append(c.stack, focusEntry{root: c.focus.RenderedRoot, name: c.focus.ActiveFocusName})
	c.focus.OriginalRoot = c.focus.RenderedRoot
	c.focus.RenderedRoot = n
	c.focus.ActiveFocusName = n.Name
	c.closeAll = false
}

// exitFocus restores the root that was rendered before the current focus.
func (c *Controller) exitFocus() {
	if len(c.stack) == 0 {
		c.focus.ActiveFocusName = ""
		return
	}
	prev := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]

	c.focus.RenderedRoot = prev.root
	c.focus.ActiveFocusName = prev.name
	c.focus.OriginalRoot = nil
	if len(c.stack) > 0 {
		c.focus.OriginalRoot = c.stack[len(c.stack)-1].root
	}
}
