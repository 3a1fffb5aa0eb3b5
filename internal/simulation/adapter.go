// Package simulation defines the contract with the force-layout engine.
// The engine owns positions; the view only pushes nodes and links into it.
package simulation

import (
	"sync"

	"github.com/ziadkadry99/forcetree/internal/render"
)

// Params configures the force layout.
type Params struct {
	LinkDistance float64 `json:"link_distance"`
	Charge       float64 `json:"charge"`
	Gravity      float64 `json:"gravity"`
	LinkStrength float64 `json:"link_strength"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
}

// DefaultParams are the stock force settings.
func DefaultParams() Params {
	return Params{
		LinkDistance: 130,
		Charge:       -500,
		Gravity:      0.1,
		LinkStrength: 1,
		Width:        960,
		Height:       600,
	}
}

// Position is a node's location after a tick.
type Position struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Adapter is the force-layout engine as seen by the view. Ticks only carry
// positions; they never change graph structure.
type Adapter interface {
	Configure(p Params)
	SetNodesAndLinks(nodes []render.NodeView, links []render.LinkView)
	Start()
	OnTick(fn func([]Position))
}

// Positions stores the latest position per node id. It is written from tick
// callbacks and read by snapshot rendering.
type Positions struct {
	mu sync.RWMutex
	m  map[int]Position
}

// NewPositions returns an empty store.
func NewPositions() *Positions {
	return &Positions{m: make(map[int]Position)}
}

// Apply records a batch of tick positions.
func (p *Positions) Apply(batch []Position) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pos := range batch {
		p.m[pos.ID] = pos
	}
}

// Get returns the stored position for id.
func (p *Positions) Get(id int) (Position, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pos, ok := p.m[id]
	return pos, ok
}

// Snapshot copies the store.
func (p *Positions) Snapshot() map[int]Position {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[int]Position, len(p.m))
	for k, v := range p.m {
		out[k] = v
	}
	return out
}
