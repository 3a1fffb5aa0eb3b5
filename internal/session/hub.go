package session

import (
	"context"
	"log"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/forcetree/internal/journal"
	"github.com/ziadkadry99/forcetree/internal/metrics"
	"github.com/ziadkadry99/forcetree/internal/render"
	"github.com/ziadkadry99/forcetree/internal/tree"
	"github.com/ziadkadry99/forcetree/internal/view"
)

// Hub tracks live sessions and the dataset they are built from.
type Hub struct {
	opts    view.Options
	journal *journal.Store
	metrics *metrics.Metrics

	mu       sync.RWMutex
	dataset  *tree.Node
	sessions map[string]*Session
}

// NewHub creates a hub over root. store may be nil to disable the journal.
func NewHub(root *tree.Node, opts view.Options, store *journal.Store) *Hub {
	return &Hub{
		opts:     opts,
		journal:  store,
		dataset:  root,
		sessions: make(map[string]*Session),
	}
}

// WithMetrics makes the hub and its sessions report to m.
func (h *Hub) WithMetrics(m *metrics.Metrics) *Hub {
	h.metrics = m
	return h
}

// Dataset returns the current pristine dataset. Callers must not mutate it.
func (h *Hub) Dataset() *tree.Node {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dataset
}

// Reload replaces the dataset and reloads every live session with its own copy.
func (h *Hub) Reload(root *tree.Node) {
	h.mu.Lock()
	h.dataset = root
	live := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		live = append(live, s)
	}
	h.mu.Unlock()

	for _, s := range live {
		if err := s.Reload(tree.Clone(root)); err != nil {
			log.Printf("session: %s reload: %v", s.ID, err)
		}
	}
	h.metrics.Reloaded()
	log.Printf("session: dataset reloaded for %d live session(s)", len(live))
}

// InitialFrame renders the dataset as a fresh view would first see it.
func (h *Hub) InitialFrame() (render.Frame, error) {
	ctrl := view.New(tree.Clone(h.Dataset()), nil, h.opts)
	return ctrl.Update()
}

// Get returns the session with the given id.
func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

// List returns every live session, oldest first.
func (h *Hub) List() []Info {
	h.mu.RLock()
	live := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		live = append(live, s)
	}
	h.mu.RUnlock()

	out := make([]Info, 0, len(live))
	for _, s := range live {
		out = append(out, s.Info())
	}
	slices.SortFunc(out, func(a, b Info) int {
		if c := a.Opened.Compare(b.Opened); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// open registers a session for conn and renders its first frame.
func (h *Hub) open(conn *websocket.Conn) (*Session, error) {
	s := newSession(uuid.New().String(), conn, tree.Clone(h.Dataset()), h.opts, h.journal)
	s.metrics = h.metrics
	if h.journal != nil {
		if err := h.journal.OpenSession(context.Background(), s.ID, s.RemoteAddr); err != nil {
			log.Printf("session: %s journal: %v", s.ID, err)
		}
	}

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	h.metrics.SessionOpened()

	if err := s.start(); err != nil {
		h.close(s)
		return nil, err
	}
	return s, nil
}

func (h *Hub) close(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID)
	h.mu.Unlock()
	h.metrics.SessionClosed()

	if h.journal != nil {
		if err := h.journal.CloseSession(context.Background(), s.ID); err != nil {
			log.Printf("session: %s journal: %v", s.ID, err)
		}
	}
}
