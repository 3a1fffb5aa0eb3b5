// Package page serves the browser half of the live view: a D3 page that binds
// frames to SVG elements and runs the force simulation.
package page

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed index.html
var indexHTML []byte

// RegisterRoutes mounts the page at /.
func RegisterRoutes(r chi.Router) {
	r.Get("/", ServeIndex)
}

// ServeIndex serves the embedded HTML page.
func ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}
