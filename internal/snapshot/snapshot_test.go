package snapshot

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/forcetree/internal/render"
	"github.com/ziadkadry99/forcetree/internal/simulation"
)

func sampleFrame() (render.Frame, map[int]simulation.Position) {
	f := render.Frame{
		Nodes: []render.NodeView{
			{ID: 1, Name: "A", Radius: 5, Color: "#c6dbef"},
			{ID: 2, Name: "B", Radius: 8, Color: "#08519c"},
			{ID: 3, Name: "All", Radius: 10, Color: "#3182bd"},
		},
		Links: []render.LinkView{{Source: 3, Target: 1}, {Source: 3, Target: 2}},
	}
	pos := map[int]simulation.Position{
		1: {ID: 1, X: 50, Y: 50},
		2: {ID: 2, X: 150, Y: 50},
		3: {ID: 3, X: 100, Y: 120},
	}
	return f, pos
}

func TestWriteSVG(t *testing.T) {
	f, pos := sampleFrame()
	var buf bytes.Buffer
	if err := WriteSVG(&buf, f, pos, 200, 200); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	if got := strings.Count(out, "<circle"); got != 3 {
		t.Errorf("expected 3 circles, got %d", got)
	}
	if got := strings.Count(out, "<line"); got != 2 {
		t.Errorf("expected 2 lines, got %d", got)
	}
	if !strings.Contains(out, ">All<") {
		t.Error("missing root label")
	}
}

func TestWriteSVGSkipsUnplacedNodes(t *testing.T) {
	f, pos := sampleFrame()
	delete(pos, 2)
	var buf bytes.Buffer
	if err := WriteSVG(&buf, f, pos, 200, 200); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "<circle"); got != 2 {
		t.Errorf("expected 2 circles, got %d", got)
	}
	if got := strings.Count(buf.String(), "<line"); got != 1 {
		t.Errorf("expected 1 line, got %d", got)
	}
}

func TestWritePNG(t *testing.T) {
	f, pos := sampleFrame()
	var buf bytes.Buffer
	if err := WritePNG(&buf, f, pos, 200, 160); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 160 {
		t.Errorf("image size = %v", b)
	}
}

func TestSaveInfersFormat(t *testing.T) {
	f, pos := sampleFrame()
	dir := t.TempDir()

	for _, name := range []string{"out/graph.svg", "out/graph.png"} {
		path := filepath.Join(dir, name)
		if err := Save(Options{Path: path, Width: 120, Height: 120}, f, pos); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	if err := Save(Options{Path: filepath.Join(dir, "x"), Format: "gif"}, f, pos); err == nil {
		t.Error("expected error for unsupported format")
	}
	if err := Save(Options{}, f, pos); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestPlaceCoversEveryNode(t *testing.T) {
	f, _ := sampleFrame()
	pos := Place(f, simulation.DefaultParams())
	if len(pos) != len(f.Nodes) {
		t.Fatalf("placed %d of %d nodes", len(pos), len(f.Nodes))
	}

	var buf bytes.Buffer
	if err := Write(&buf, "svg", f, pos, 300, 300); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "<circle"); got != 3 {
		t.Errorf("expected 3 circles, got %d", got)
	}
	if err := Write(&buf, "bmp", f, pos, 300, 300); err == nil {
		t.Error("expected error for unsupported format")
	}
}
