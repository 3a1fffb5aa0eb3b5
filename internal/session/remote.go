package session

import (
	"slices"
	"sync"

	"github.com/ziadkadry99/forcetree/internal/render"
	"github.com/ziadkadry99/forcetree/internal/simulation"
)

// remoteSim is the browser's force simulation seen through the websocket.
// Configure and Start become messages; tick messages from the browser are
// fanned out to OnTick callbacks.
type remoteSim struct {
	send func(serverMessage)

	mu    sync.Mutex
	nodes []render.NodeView
	links []render.LinkView
	ticks []func([]simulation.Position)
}

func newRemoteSim(send func(serverMessage)) *remoteSim {
	return &remoteSim{send: send}
}

func (r *remoteSim) Configure(p simulation.Params) {
	r.send(serverMessage{Type: MsgConfigure, Params: &p})
}

func (r *remoteSim) SetNodesAndLinks(nodes []render.NodeView, links []render.LinkView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes, r.links = nodes, links
}

// Start hands the current nodes and links to the browser, which reheats its
// simulation.
func (r *remoteSim) Start() {
	r.mu.Lock()
	msg := serverMessage{Type: MsgSimulate, Nodes: r.nodes, Links: r.links}
	r.mu.Unlock()
	r.send(msg)
}

func (r *remoteSim) OnTick(fn func([]simulation.Position)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, fn)
}

// tick delivers browser positions to every registered callback.
func (r *remoteSim) tick(batch []simulation.Position) {
	r.mu.Lock()
	fns := slices.Clone(r.ticks)
	r.mu.Unlock()

	for _, fn := range fns {
		fn(batch)
	}
}
