// Package aggregate computes the bottom-up mean of leaf values that drives
// node radius and color.
package aggregate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ziadkadry99/forcetree/internal/graph"
	"github.com/ziadkadry99/forcetree/internal/tree"
)

// ErrMissingLeafValue is returned when a leaf carries no value.
var ErrMissingLeafValue = errors.New("leaf has no value")

const (
	// DefaultScale divides an aggregate to give its radius.
	DefaultScale = 300.0
	// DefaultRadius is the smallest radius drawn, and the radius of nodes without data.
	DefaultRadius = 4.5
)

// Options controls the radius scale and how collapsed nodes are averaged.
type Options struct {
	Scale         float64 // radius = aggregate / Scale
	DefaultRadius float64 // floor, and the radius for nodes with no data
	IncludeHidden bool    // average hidden children of collapsed nodes
}

// DefaultOptions matches the stock view.
func DefaultOptions() Options {
	return Options{Scale: DefaultScale, DefaultRadius: DefaultRadius, IncludeHidden: true}
}

// Calculator evaluates aggregates. Results are memoized for a single pass
// only; call Reset before each pass.
type Calculator struct {
	opts Options
	memo map[*tree.Node]float64
}

// NewCalculator returns a Calculator with opts, filling zero fields with defaults.
func NewCalculator(opts Options) *Calculator {
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.DefaultRadius <= 0 {
		opts.DefaultRadius = DefaultRadius
	}
	return &Calculator{opts: opts, memo: make(map[*tree.Node]float64)}
}

// Reset drops memoized values. Structure may have changed since the last pass.
func (c *Calculator) Reset() {
	clear(c.memo)
}

// Of returns the leaf value of a leaf, or the mean of its children's
// aggregates. A node with no children to average yields NaN.
func (c *Calculator) Of(n *tree.Node) (float64, error) {
	if v, ok := c.memo[n]; ok {
		return v, nil
	}

	var v float64
	if n.IsLeaf() {
		if n.Value == nil {
			return math.NaN(), fmt.Errorf("%w: %q", ErrMissingLeafValue, n.Name)
		}
		v = *n.Value
	} else {
		kids := n.Children()
		if len(kids) == 0 && c.opts.IncludeHidden {
			kids = n.HiddenChildren()
		}
		vals := make([]float64, 0, len(kids))
		for _, k := range kids {
			kv, err := c.Of(k)
			if err != nil {
				return math.NaN(), err
			}
			vals = append(vals, kv)
		}
		if len(vals) == 0 {
			v = math.NaN()
		} else {
			v = stat.Mean(vals, nil)
		}
	}

	c.memo[n] = v
	return v, nil
}

// Radius maps an aggregate to a circle radius.
func (c *Calculator) Radius(avg float64) float64 {
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		return c.opts.DefaultRadius
	}
	return math.Max(avg/c.opts.Scale, c.opts.DefaultRadius)
}

// Decorate sets Average and Radius on every node of g.
func (c *Calculator) Decorate(g graph.FlatGraph) error {
	for _, n := range g.Nodes {
		avg, err := c.Of(n)
		if err != nil {
			return err
		}
		n.Average = avg
		n.Radius = c.Radius(avg)
	}
	return nil
}
