// Package session serves live views over websockets. Each connection owns a
// view.Controller over its own copy of the dataset; the browser is the
// drawing surface and runs the force simulation.
package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/forcetree/internal/journal"
	"github.com/ziadkadry99/forcetree/internal/metrics"
	"github.com/ziadkadry99/forcetree/internal/render"
	"github.com/ziadkadry99/forcetree/internal/simulation"
	"github.com/ziadkadry99/forcetree/internal/snapshot"
	"github.com/ziadkadry99/forcetree/internal/tree"
	"github.com/ziadkadry99/forcetree/internal/view"
)

const writeWait = 10 * time.Second

// Session is one connected live view.
type Session struct {
	ID         string
	RemoteAddr string
	Opened     time.Time

	conn    *websocket.Conn
	writeMu sync.Mutex

	ctrl      *view.Controller
	remote    *remoteSim
	positions *simulation.Positions
	journal   *journal.Store
	metrics   *metrics.Metrics
}

// Info is the public summary of a session.
type Info struct {
	ID         string    `json:"id"`
	RemoteAddr string    `json:"remote_addr"`
	Opened     time.Time `json:"opened"`
	Focus      string    `json:"focus,omitempty"`
	Nodes      int       `json:"nodes"`
	Placed     int       `json:"placed"`
}

func newSession(id string, conn *websocket.Conn, root *tree.Node, opts view.Options, store *journal.Store) *Session {
	s := &Session{
		ID:        id,
		Opened:    time.Now().UTC(),
		conn:      conn,
		positions: simulation.NewPositions(),
		journal:   store,
	}
	if conn != nil {
		s.RemoteAddr = conn.RemoteAddr().String()
	}
	s.remote = newRemoteSim(s.send)
	s.remote.OnTick(s.positions.Apply)
	s.ctrl = view.New(root, s.remote, opts)
	return s
}

// Controller returns the session's view controller.
func (s *Session) Controller() *view.Controller { return s.ctrl }

// Info summarizes the session.
func (s *Session) Info() Info {
	f := s.ctrl.Frame()
	return Info{
		ID:         s.ID,
		RemoteAddr: s.RemoteAddr,
		Opened:     s.Opened,
		Focus:      f.Focus,
		Nodes:      len(f.Nodes),
		Placed:     len(s.positions.Snapshot()),
	}
}

// start renders the first frame.
func (s *Session) start() error {
	frame, err := s.ctrl.Update()
	if err != nil {
		return err
	}
	s.sendFrame(frame)
	return nil
}

// serve runs the read loop until the connection closes.
func (s *Session) serve() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session: %s read: %v", s.ID, err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError("invalid message format")
			continue
		}

		switch msg.Type {
		case MsgClick:
			s.handleClick(msg)
		case MsgResize:
			p := s.ctrl.Resize(msg.Width, msg.Height)
			s.record(journal.Entry{Event: journal.EventResize, Detail: fmt.Sprintf("%dx%d", p.Width, p.Height)})
		case MsgTick:
			s.remote.tick(msg.Positions)
		default:
			s.sendError("unknown message type: " + msg.Type)
		}
	}
}

func (s *Session) handleClick(msg clientMessage) {
	started := time.Now()
	res, err := s.ctrl.OnNodeClick(msg.ID, view.Gesture{Consumed: msg.Consumed})

	entry := journal.Entry{
		Event:    journal.EventClick,
		NodeID:   msg.ID,
		NodeName: res.NodeName,
		Outcome:  string(res.Outcome),
		Reason:   res.Reason,
		Focus:    res.Focus,
	}
	if err != nil {
		entry.Outcome = "error"
		entry.Detail = err.Error()
	}
	s.record(entry)
	s.metrics.ObserveClick(entry.Outcome, entry.Reason, time.Since(started))

	if err != nil {
		s.sendError(err.Error())
		return
	}
	if res.Frame != nil {
		s.sendFrame(*res.Frame)
	}
	s.send(serverMessage{Type: MsgResult, Result: &res})
}

// Reload swaps in a new copy of the dataset and pushes the new frame.
func (s *Session) Reload(root *tree.Node) error {
	frame, err := s.ctrl.Reload(root)
	if err != nil {
		s.sendError("reload failed: " + err.Error())
		return err
	}
	s.record(journal.Entry{Event: journal.EventReload, NodeName: root.Name})
	s.sendFrame(frame)
	return nil
}

// WriteSnapshot draws the session's current frame. Browser positions are
// used when the page has reported any; otherwise nodes are placed statically.
func (s *Session) WriteSnapshot(w io.Writer, format string, width, height int) error {
	frame := s.ctrl.Frame()
	params := s.ctrl.Params()
	if width <= 0 {
		width = params.Width
	}
	if height <= 0 {
		height = params.Height
	}

	pos := s.positions.Snapshot()
	if len(pos) == 0 {
		params.Width, params.Height = width, height
		pos = snapshot.Place(frame, params)
	}
	return snapshot.Write(w, format, frame, pos, width, height)
}

func (s *Session) sendFrame(f render.Frame) {
	s.metrics.ObserveFrame(len(f.Nodes))
	s.send(serverMessage{Type: MsgFrame, Frame: &f})
}

func (s *Session) sendError(message string) {
	s.send(serverMessage{Type: MsgError, Content: message})
}

// send serializes writes to the connection. Messages to a session without a
// connection are dropped.
func (s *Session) send(msg serverMessage) {
	if s.conn == nil {
		return
	}
	msg.SessionID = s.ID
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("session: %s encode %s: %v", s.ID, msg.Type, err)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("session: %s write: %v", s.ID, err)
	}
}

func (s *Session) record(e journal.Entry) {
	if s.journal == nil {
		return
	}
	e.SessionID = s.ID
	if err := s.journal.Log(context.Background(), e); err != nil {
		log.Printf("session: %s journal: %v", s.ID, err)
	}
}
