package tree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-json"
)

// ErrInvalidDocument is returned when the input document is malformed or
// violates the tree shape.
var ErrInvalidDocument = errors.New("invalid tree document")

// document is the wire shape of one node in the input JSON.
type document struct {
	Name     string      `json:"name"`
	Children []*document `json:"children,omitempty"`
	Hidden   []*document `json:"_children,omitempty"`
	Size     *float64    `json:"size,omitempty"`
	Value    *float64    `json:"value,omitempty"`
	Top      bool        `json:"top,omitempty"`
}

// Decode reads a JSON tree document and validates it.
func Decode(r io.Reader) (*Node, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	root, err := build(&doc, "$")
	if err != nil {
		return nil, err
	}
	return root, nil
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(data []byte) (*Node, error) {
	return Decode(bytes.NewReader(data))
}

func build(d *document, path string) (*Node, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: null node at %s", ErrInvalidDocument, path)
	}
	if len(d.Children) > 0 && len(d.Hidden) > 0 {
		return nil, fmt.Errorf("%w: %s has both children and _children", ErrInvalidDocument, path)
	}

	n := &Node{Name: d.Name, Top: d.Top, Average: math.NaN()}
	kids := d.Children
	switch {
	case len(d.Children) > 0:
		n.state = Expanded
	case len(d.Hidden) > 0:
		n.state = Collapsed
		kids = d.Hidden
	default:
		n.state = Leaf
	}

	if n.state == Leaf {
		v := d.Size
		if v == nil {
			v = d.Value
		}
		if v == nil {
			return nil, fmt.Errorf("%w: leaf %s (%q) has no size", ErrInvalidDocument, path, d.Name)
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			return nil, fmt.Errorf("%w: leaf %s (%q) has non-finite size", ErrInvalidDocument, path, d.Name)
		}
		n.Value = v
		return n, nil
	}

	n.kids = make([]*Node, 0, len(kids))
	for i, kd := range kids {
		child, err := build(kd, fmt.Sprintf("%s.%d", path, i))
		if err != nil {
			return nil, err
		}
		n.kids = append(n.kids, child)
	}
	return n, nil
}

// Encode writes the tree back in document form, preserving collapse state.
func Encode(w io.Writer, root *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toDocument(root))
}

func toDocument(n *Node) *document {
	d := &document{Name: n.Name, Top: n.Top}
	if n.Value != nil {
		v := *n.Value
		d.Size = &v
	}
	for _, k := range n.kids {
		kd := toDocument(k)
		if n.state == Collapsed {
			d.Hidden = append(d.Hidden, kd)
		} else {
			d.Children = append(d.Children, kd)
		}
	}
	return d
}
