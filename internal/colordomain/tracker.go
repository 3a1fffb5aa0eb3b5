// Package colordomain tracks the running value domain used by the color
// scale and maps aggregates to colors.
package colordomain

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ziadkadry99/forcetree/internal/tree"
)

// Bounds is a running [Min, Max] interval. The zero value is empty.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Set bool    `json:"set"`
}

// Widen grows b to include v. NaN and infinities are ignored.
func (b *Bounds) Widen(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if !b.Set {
		b.Min, b.Max, b.Set = v, v, true
		return
	}
	b.Min = math.Min(b.Min, v)
	b.Max = math.Max(b.Max, v)
}

// Width is Max-Min, or 0 for empty bounds.
func (b Bounds) Width() float64 {
	if !b.Set {
		return 0
	}
	return b.Max - b.Min
}

// Tracker holds the general and branch-root bounds for one view. Bounds
// only widen until Reset.
type Tracker struct {
	General    Bounds `json:"general"`
	BranchRoot Bounds `json:"branch_root"`

	palette Palette
}

// NewTracker returns an empty tracker coloring with p.
func NewTracker(p Palette) *Tracker {
	return &Tracker{palette: p}
}

// Observe widens the bounds with n's average.
func (t *Tracker) Observe(n *tree.Node) {
	t.General.Widen(n.Average)
	if n.Top {
		t.BranchRoot.Widen(n.Average)
	}
}

// DomainFor returns the bounds that apply to n.
func (t *Tracker) DomainFor(n *tree.Node) Bounds {
	if n.Top {
		return t.BranchRoot
	}
	return t.General
}

// Reset empties both bounds.
func (t *Tracker) Reset() {
	t.General = Bounds{}
	t.BranchRoot = Bounds{}
}

// ColorOf returns the fill color for n.
func (t *Tracker) ColorOf(n *tree.Node) string {
	if t.palette.Mode == ModeState {
		return t.palette.stateColor(n.State())
	}
	return t.palette.Interpolate(t.DomainFor(n), n.Average)
}

// Mode selects how nodes are colored.
type Mode string

const (
	ModeAggregate Mode = "aggregate"
	ModeState     Mode = "state"
)

// Palette is the color range of the scale. Mid is optional; when set the
// scale has three stops.
type Palette struct {
	Mode    Mode
	Low     string
	Mid     string
	High    string
	Neutral string

	Collapsed string
	Expanded  string
	Leaf      string
}

// DefaultPalette is a light-to-dark blue ramp.
func DefaultPalette() Palette {
	return Palette{
		Mode:      ModeAggregate,
		Low:       "#c6dbef",
		High:      "#08519c",
		Neutral:   "#cccccc",
		Collapsed: "#3182bd",
		Expanded:  "#c6dbef",
		Leaf:      "#fd8d3c",
	}
}

// Validate checks that every configured color parses.
func (p Palette) Validate() error {
	for name, hex := range map[string]string{
		"low": p.Low, "high": p.High, "neutral": p.Neutral,
		"collapsed": p.Collapsed, "expanded": p.Expanded, "leaf": p.Leaf,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("color %s %q: %w", name, hex, err)
		}
	}
	if p.Mid != "" {
		if _, err := colorful.Hex(p.Mid); err != nil {
			return fmt.Errorf("color mid %q: %w", p.Mid, err)
		}
	}
	switch p.Mode {
	case ModeAggregate, ModeState, "":
	default:
		return fmt.Errorf("invalid color mode %q: must be aggregate or state", p.Mode)
	}
	return nil
}

// Interpolate maps v across the domain onto the palette. Values outside
// the domain clamp to the end stops; an unusable domain or value yields
// the neutral color.
func (p Palette) Interpolate(domain Bounds, v float64) string {
	if !domain.Set || domain.Width() <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return p.Neutral
	}
	low, err1 := colorful.Hex(p.Low)
	high, err2 := colorful.Hex(p.High)
	if err1 != nil || err2 != nil {
		return p.Neutral
	}

	t := (v - domain.Min) / domain.Width()
	t = math.Max(0, math.Min(1, t))

	if p.Mid == "" {
		return low.BlendRgb(high, t).Hex()
	}
	mid, err := colorful.Hex(p.Mid)
	if err != nil {
		return p.Neutral
	}
	if t <= 0.5 {
		return low.BlendRgb(mid, t*2).Hex()
	}
	return mid.BlendRgb(high, (t-0.5)*2).Hex()
}

func (p Palette) stateColor(s tree.State) string {
	switch s {
	case tree.Collapsed:
		return p.Collapsed
	case tree.Expanded:
		return p.Expanded
	default:
		return p.Leaf
	}
}
