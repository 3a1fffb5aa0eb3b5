package session

import (
	"bytes"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RegisterRoutes mounts the live view websocket and session endpoints.
func (h *Hub) RegisterRoutes(r chi.Router) {
	r.Get("/ws/view", h.handleWebSocket)
	r.Get("/api/graph", h.handleGraph)
	r.Route("/api/sessions", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{id}/snapshot.{format}", h.handleSnapshot)
	})
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("session: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	s, err := h.open(conn)
	if err != nil {
		log.Printf("session: open: %v", err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()))
		return
	}
	defer h.close(s)

	s.serve()
}

func (h *Hub) handleGraph(w http.ResponseWriter, r *http.Request) {
	frame, err := h.InitialFrame()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

func (h *Hub) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.List())
}

func (h *Hub) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	format := chi.URLParam(r, "format")
	var contentType string
	switch format {
	case "svg":
		contentType = "image/svg+xml"
	case "png":
		contentType = "image/png"
	default:
		http.Error(w, "unsupported format "+format, http.StatusBadRequest)
		return
	}

	width, _ := strconv.Atoi(r.URL.Query().Get("width"))
	height, _ := strconv.Atoi(r.URL.Query().Get("height"))

	var buf bytes.Buffer
	if err := s.WriteSnapshot(&buf, format, width, height); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
