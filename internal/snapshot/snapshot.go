// Package snapshot renders a frame at known positions to a static SVG or PNG.
package snapshot

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"github.com/ziadkadry99/forcetree/internal/render"
	"github.com/ziadkadry99/forcetree/internal/simulation"
)

const (
	colorBackdrop = "#ffffff"
	colorLink     = "#9ecae1"
	colorStroke   = "#3182bd"
	colorText     = "#333333"
)

// Options controls snapshot export.
type Options struct {
	Path   string // format inferred from the extension when Format is empty
	Format string // "svg" or "png"
	Width  int
	Height int
}

// Save writes the frame to opts.Path.
func Save(opts Options, f render.Frame, pos map[int]simulation.Position) error {
	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".png":
			format = "png"
		default:
			format = "svg"
		}
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}

	file, err := os.Create(opts.Path)
	if err != nil {
		return err
	}
	if err := Write(file, format, f, pos, opts.Width, opts.Height); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write draws the frame in the given format ("svg" or "png").
func Write(w io.Writer, format string, f render.Frame, pos map[int]simulation.Position, width, height int) error {
	switch format {
	case "svg":
		return WriteSVG(w, f, pos, width, height)
	case "png":
		return WritePNG(w, f, pos, width, height)
	default:
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
}

// Place lays the frame out with the static adapter, for when no live
// positions are available.
func Place(f render.Frame, p simulation.Params) map[int]simulation.Position {
	st := simulation.NewStatic()
	st.Configure(p)
	st.SetNodesAndLinks(f.Nodes, f.Links)

	out := make(map[int]simulation.Position, len(f.Nodes))
	st.OnTick(func(batch []simulation.Position) {
		for _, pos := range batch {
			out[pos.ID] = pos
		}
	})
	st.Start()
	return out
}

// WriteSVG draws links, circles and labels. Nodes without a position are skipped.
func WriteSVG(w io.Writer, f render.Frame, pos map[int]simulation.Position, width, height int) error {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+colorBackdrop)

	for _, l := range f.Links {
		a, okA := pos[l.Source]
		b, okB := pos[l.Target]
		if !okA || !okB {
			continue
		}
		canvas.Line(int(a.X), int(a.Y), int(b.X), int(b.Y), fmt.Sprintf("stroke:%s;stroke-width:1.5", colorLink))
	}

	for _, n := range f.Nodes {
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		x, y := int(p.X), int(p.Y)
		canvas.Circle(x, y, int(n.Radius+0.5), fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", n.Color, colorStroke))
		canvas.Text(x+int(n.Radius)+3, y+4, n.Name, fmt.Sprintf("fill:%s;font-size:10px;font-family:sans-serif", colorText))
	}

	canvas.End()
	return nil
}

// WritePNG is WriteSVG rasterized with gg.
func WritePNG(w io.Writer, f render.Frame, pos map[int]simulation.Position, width, height int) error {
	dc := gg.NewContext(width, height)
	dc.SetColor(hexColor(colorBackdrop))
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(hexColor(colorLink))
	dc.SetLineWidth(1.5)
	for _, l := range f.Links {
		a, okA := pos[l.Source]
		b, okB := pos[l.Target]
		if !okA || !okB {
			continue
		}
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		dc.Stroke()
	}

	for _, n := range f.Nodes {
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		dc.DrawCircle(p.X, p.Y, n.Radius)
		dc.SetColor(hexColor(n.Color))
		dc.FillPreserve()
		dc.SetColor(hexColor(colorStroke))
		dc.Stroke()
		dc.SetColor(hexColor(colorText))
		dc.DrawString(n.Name, p.X+n.Radius+3, p.Y+4)
	}

	return dc.EncodePNG(w)
}

func hexColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.Gray{Y: 0xcc}
	}
	return c
}
