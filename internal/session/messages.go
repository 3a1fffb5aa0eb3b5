package session

import (
	"github.com/ziadkadry99/forcetree/internal/render"
	"github.com/ziadkadry99/forcetree/internal/simulation"
	"github.com/ziadkadry99/forcetree/internal/view"
)

// Message types sent by the browser.
const (
	MsgClick  = "click"
	MsgResize = "resize"
	MsgTick   = "tick"
)

// Message types sent by the server.
const (
	MsgConfigure = "configure"
	MsgSimulate  = "simulate"
	MsgFrame     = "frame"
	MsgResult    = "result"
	MsgError     = "error"
)

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type      string                `json:"type"`
	ID        int                   `json:"id,omitempty"`
	Consumed  bool                  `json:"consumed,omitempty"`
	Width     int                   `json:"width,omitempty"`
	Height    int                   `json:"height,omitempty"`
	Positions []simulation.Position `json:"positions,omitempty"`
}

// serverMessage is the outgoing WebSocket message format.
type serverMessage struct {
	Type      string             `json:"type"`
	SessionID string             `json:"session_id"`
	Params    *simulation.Params `json:"params,omitempty"`
	Nodes     []render.NodeView  `json:"nodes,omitempty"`
	Links     []render.LinkView  `json:"links,omitempty"`
	Frame     *render.Frame      `json:"frame,omitempty"`
	Result    *view.ClickResult  `json:"result,omitempty"`
	Content   string             `json:"content,omitempty"`
}
