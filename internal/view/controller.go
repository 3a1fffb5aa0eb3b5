// Package view owns the state of one diagram: which subtrees are expanded,
// which node is drilled into, and the color domain seen so far. Every
// structural change re-runs the full pipeline (flatten, aggregate, color,
// bind, simulate).
package view

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ziadkadry99/forcetree/internal/aggregate"
	"github.com/ziadkadry99/forcetree/internal/colordomain"
	"github.com/ziadkadry99/forcetree/internal/graph"
	"github.com/ziadkadry99/forcetree/internal/render"
	"github.com/ziadkadry99/forcetree/internal/simulation"
	"github.com/ziadkadry99/forcetree/internal/tree"
)

var (
	// ErrUnknownNode is returned for a click on an id that is not currently visible.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnreachableRoot is returned when the drill-down root has left the dataset.
	ErrUnreachableRoot = errors.New("rendered root is not reachable from the dataset root")
)

// DefaultSentinelName is the name of the dataset root that ignores clicks.
const DefaultSentinelName = "All"

// Options is the immutable configuration of a Controller.
type Options struct {
	SentinelName        string
	CloseAllOnLoad      bool
	ResetBoundsOnReload bool
	Aggregate           aggregate.Options
	Palette             colordomain.Palette
	Simulation          simulation.Params
}

// DefaultOptions returns the stock view settings.
func DefaultOptions() Options {
	return Options{
		SentinelName: DefaultSentinelName,
		Aggregate:    aggregate.DefaultOptions(),
		Palette:      colordomain.DefaultPalette(),
		Simulation:   simulation.DefaultParams(),
	}
}

// FocusState is the drill-down part of the view.
type FocusState struct {
	RenderedRoot    *tree.Node
	OriginalRoot    *tree.Node
	ActiveFocusName string
}

type focusEntry struct {
	root *tree.Node
	name string
}

// Controller is the expand/collapse state machine for one view. All methods
// are safe for concurrent use; each pipeline run is atomic.
type Controller struct {
	mu       sync.Mutex
	updating atomic.Bool // set while a pipeline pass runs

	opts     Options
	ids      graph.Sequence
	dataset  *tree.Node
	focus    FocusState
	stack    []focusEntry
	closeAll bool

	calc   *aggregate.Calculator
	colors *colordomain.Tracker
	binder *render.Binder
	sim    simulation.Adapter
	params simulation.Params

	visible map[int]*tree.Node
	frame   render.Frame
}

// New returns a controller over root. It does not render; call Update.
// A nil adapter falls back to simulation.NewStatic.
func New(root *tree.Node, sim simulation.Adapter, opts Options) *Controller {
	if opts.SentinelName == "" {
		opts.SentinelName = DefaultSentinelName
	}
	if opts.Palette.Mode == "" {
		opts.Palette.Mode = colordomain.ModeAggregate
	}
	if sim == nil {
		sim = simulation.NewStatic()
	}
	c := &Controller{
		opts:     opts,
		dataset:  root,
		focus:    FocusState{RenderedRoot: root},
		closeAll: opts.CloseAllOnLoad,
		calc:     aggregate.NewCalculator(opts.Aggregate),
		colors:   colordomain.NewTracker(opts.Palette),
		binder:   render.NewBinder(),
		sim:      sim,
		params:   opts.Simulation,
		visible:  make(map[int]*tree.Node),
	}
	sim.Configure(c.params)
	return c
}

// Update re-runs the pipeline against the current rendered root.
func (c *Controller) Update() (render.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.update()
}

// Reload swaps in a new dataset. Focus is dropped and ids keep counting;
// color bounds reset only when ResetBoundsOnReload is set.
func (c *Controller) Reload(root *tree.Node) (render.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dataset = root
	c.focus = FocusState{RenderedRoot: root}
	c.stack = nil
	c.closeAll = c.opts.CloseAllOnLoad
	if c.opts.ResetBoundsOnReload {
		c.colors.Reset()
	}
	return c.update()
}

// Resize propagates new surface dimensions to the simulation.
func (c *Controller) Resize(width, height int) simulation.Params {
	c.mu.Lock()
	defer c.mu.Unlock()

	if width > 0 {
		c.params.Width = width
	}
	if height > 0 {
		c.params.Height = height
	}
	c.sim.Configure(c.params)
	return c.params
}

// Focus returns a copy of the drill-down state.
func (c *Controller) Focus() FocusState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focus
}

// Frame returns the frame produced by the last pass.
func (c *Controller) Frame() render.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// Params returns the current simulation parameters.
func (c *Controller) Params() simulation.Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// Bounds returns the current color domain.
func (c *Controller) Bounds() render.Bounds {
	c.mu.Lock()
	defer c.mu.Unlock()
	return render.Bounds{General: c.colors.General, BranchRoot: c.colors.BranchRoot}
}

// Node returns the visible node with the given id.
func (c *Controller) Node(id int) (*tree.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.visible[id]
	return n, ok
}

func (c *Controller) update() (render.Frame, error) {
	c.updating.Store(true)
	defer c.updating.Store(false)

	root := c.focus.RenderedRoot
	if root == nil {
		return render.Frame{}, fmt.Errorf("no dataset loaded")
	}
	if root != c.dataset && !graph.Reachable(c.dataset, root) {
		return render.Frame{}, fmt.Errorf("%w: %q", ErrUnreachableRoot, root.Name)
	}

	c.calc.Reset()
	if c.closeAll {
		if err := c.autoCollapse(root); err != nil {
			return render.Frame{}, err
		}
		c.calc.Reset()
	}

	g := graph.Flatten(root, &c.ids)
	if err := c.calc.Decorate(g); err != nil {
		return render.Frame{}, fmt.Errorf("computing aggregates: %w", err)
	}
	for _, n := range g.Nodes {
		c.colors.Observe(n)
	}

	frame := render.BuildFrame(g, root, c.focus.ActiveFocusName, c.colors)
	c.binder.Bind(&frame)

	c.sim.SetNodesAndLinks(frame.Nodes, frame.Links)
	c.sim.Start()

	c.visible = g.ByID()
	c.frame = frame
	return frame, nil
}

// autoCollapse leaves every visible branch-root below root collapsed, after
// recording the aggregate it has when expanded.
func (c *Controller) autoCollapse(root *tree.Node) error {
	var visit func(n *tree.Node) error
	visit = func(n *tree.Node) error {
		if n != root && n.Top && !n.IsLeaf() {
			wasCollapsed := n.State() == tree.Collapsed
			if wasCollapsed {
				tree.Toggle(n)
			}
			avg, err := c.calc.Of(n)
			if err != nil {
				return fmt.Errorf("computing aggregates: %w", err)
			}
			n.Average = avg
			c.colors.Observe(n)
			tree.Toggle(n)
			return nil
		}
		for _, k := range n.Children() {
			if err := visit(k); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(root)
}
