// Package ui holds terminal output helpers for the CLI.
package ui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ziadkadry99/forcetree/internal/tree"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiBlue, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Banner prints the command banner.
func Banner(w io.Writer, subtitle string) {
	fmt.Fprintf(w, "%s - %s\n\n", Brand.Sprint("forcetree"), subtitle)
}

// Table prints a simple aligned table.
func Table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Print header
	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += fmt.Sprintf("%-*s  ", widths[i], h)
		sepLine += strings.Repeat("\u2500", widths[i]) + "  "
	}
	Subtle.Fprintln(w, strings.TrimRight(headerLine, " "))
	Subtle.Fprintln(w, strings.TrimRight(sepLine, " "))

	// Print rows
	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// StateIcon marks a node's visibility state.
func StateIcon(s tree.State) string {
	switch s {
	case tree.Collapsed:
		return Info.Sprint("\u25b8")
	case tree.Expanded:
		return Good.Sprint("\u25be")
	default:
		return Subtle.Sprint("\u2022")
	}
}

// Swatch renders a small block in the given hex color. Unparseable colors
// print as plain text.
func Swatch(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	r, g, b := c.RGB255()
	return color.RGB(int(r), int(g), int(b)).Sprint("\u2588\u2588")
}

// Tree prints the whole tree, hidden subtrees included, one node per line.
func Tree(w io.Writer, root *tree.Node) {
	var walk func(n *tree.Node, prefix string, last bool, top bool)
	walk = func(n *tree.Node, prefix string, last bool, top bool) {
		branch, next := "", ""
		if !top {
			branch, next = "\u251c\u2500 ", "\u2502  "
			if last {
				branch, next = "\u2514\u2500 ", "   "
			}
		}
		fmt.Fprintf(w, "%s%s%s %s%s\n", prefix, Subtle.Sprint(branch), StateIcon(n.State()), n.Name, describe(n))

		kids := n.AllChildren()
		for i, k := range kids {
			walk(k, prefix+next, i == len(kids)-1, false)
		}
	}
	if root != nil {
		walk(root, "", true, true)
	}
}

func describe(n *tree.Node) string {
	var parts []string
	if n.ID != 0 {
		parts = append(parts, fmt.Sprintf("#%d", n.ID))
	}
	if n.Top {
		parts = append(parts, "top")
	}
	switch {
	case n.Value != nil:
		parts = append(parts, fmt.Sprintf("size=%g", *n.Value))
	case !math.IsNaN(n.Average):
		parts = append(parts, fmt.Sprintf("avg=%.1f", n.Average))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + Subtle.Sprint("("+strings.Join(parts, ", ")+")")
}
