// Package layout sizes and positions the expanded element tree of a page.
// The renderer and the navigation engine share these rules so that what is
// focused is always what is drawn.
package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/spider-tui/internal/dataset"
	"github.com/atomicstack/spider-tui/internal/page"
)

// ErrGridUnsupported is returned whenever layout or navigation reaches a
// Grid container. Grid has no layout or traversal rules yet.
var ErrGridUnsupported = errors.New("grid containers are not supported")

const (
	// TextLineWidth is the fixed line width used to approximate text
	// wrapping.
	TextLineWidth   = 80
	TextEntryWidth  = 35
	TextEntryHeight = 3
	ButtonHeight    = 3
)

// Size is a width/height pair in terminal cells.
type Size struct {
	Width  int
	Height int
}

// Rect is an arranged region.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Box is one node of the expanded tree: a page node instantiated for one
// dataset-row path.
type Box struct {
	Node int
	ID   string
	// Rows holds the row chosen at each dataset-bound ancestor, root first.
	Rows       []int
	Datum      dataset.Datum
	Kind       page.Kind
	Content    string
	Selectable bool
	Flex       bool
	Desired    Size
	Rect       Rect
	Children   []*Box
}

// GridError wraps ErrGridUnsupported with the offending element.
func GridError(i int, n *page.Node) error {
	if n.ID != "" {
		return fmt.Errorf("element %q: %w", n.ID, ErrGridUnsupported)
	}
	return fmt.Errorf("node %d: %w", i, ErrGridUnsupported)
}

// Measure builds the box tree for p with the rows in data and computes
// every box's desired size.
func Measure(p *page.Page, data dataset.Source) (*Box, error) {
	if p == nil || p.Len() == 0 {
		return nil, nil
	}
	return measure(p, data, 0, nil, nil)
}

func measure(p *page.Page, data dataset.Source, i int, datum dataset.Datum, rows []int) (*Box, error) {
	n := p.Node(i)
	if n.Kind == page.KindGrid {
		return nil, GridError(i, n)
	}
	res := n.Resolve(datum)
	b := &Box{
		Node:       i,
		ID:         n.ID,
		Rows:       rows,
		Datum:      datum,
		Kind:       res.Kind,
		Content:    res.Content,
		Selectable: res.Selectable,
	}
	if !n.Kind.IsContainer() {
		b.Desired, b.Flex = leafSize(res)
		return b, nil
	}
	for _, c := range p.Expand(i, datum, data) {
		childRows := rows
		if c.Row >= 0 {
			childRows = append(append(make([]int, 0, len(rows)+1), rows...), c.Row)
		}
		child, err := measure(p, data, c.Node, c.Datum, childRows)
		if err != nil {
			return nil, err
		}
		b.Children = append(b.Children, child)
	}
	for _, c := range b.Children {
		switch n.Kind {
		case page.KindRows:
			b.Desired.Height += c.Desired.Height
			b.Desired.Width = max(b.Desired.Width, c.Desired.Width)
		case page.KindColumns:
			b.Desired.Width += c.Desired.Width
			b.Desired.Height = max(b.Desired.Height, c.Desired.Height)
		}
	}
	return b, nil
}

func leafSize(res page.Resolved) (Size, bool) {
	switch res.Kind {
	case page.KindText:
		count := len([]rune(res.Content))
		lines := (count + TextLineWidth - 1) / TextLineWidth
		return Size{Width: ansi.StringWidth(res.Content), Height: lines + 1}, false
	case page.KindTextEntry:
		return Size{Width: TextEntryWidth, Height: TextEntryHeight}, false
	case page.KindButton:
		return Size{Width: len([]rune(res.Content)) + 2, Height: ButtonHeight}, false
	default:
		return Size{}, true
	}
}

// Arrange positions b and its descendants inside a width x height region
// at the origin. Leftover space along a container's primary axis is split
// evenly among its flexible children; earlier ones take any remainder.
func Arrange(b *Box, width, height int) {
	if b == nil {
		return
	}
	arrange(b, Rect{Width: width, Height: height})
}

func arrange(b *Box, r Rect) {
	b.Rect = r
	if len(b.Children) == 0 {
		return
	}
	vertical := b.Kind == page.KindRows
	primary := r.Width
	if vertical {
		primary = r.Height
	}
	used, flex := 0, 0
	for _, c := range b.Children {
		if c.Flex {
			flex++
		}
		used += extent(c.Desired, vertical)
	}
	share, extra := 0, 0
	if leftover := primary - used; leftover > 0 && flex > 0 {
		share, extra = leftover/flex, leftover%flex
	}
	offset := 0
	for _, c := range b.Children {
		size := extent(c.Desired, vertical)
		if c.Flex {
			size += share
			if extra > 0 {
				size++
				extra--
			}
		}
		child := Rect{X: r.X, Y: r.Y}
		if vertical {
			child.Y += offset
			child.Height = size
			child.Width = cross(c, r.Width, c.Desired.Width)
		} else {
			child.X += offset
			child.Width = size
			child.Height = cross(c, r.Height, c.Desired.Height)
		}
		arrange(c, child)
		offset += size
	}
}

func extent(s Size, vertical bool) int {
	if vertical {
		return s.Height
	}
	return s.Width
}

// cross gives containers the full cross extent of their parent and leaves
// their desired extent, clipped to the parent.
func cross(b *Box, available, desired int) int {
	if b.Kind.IsContainer() || desired > available {
		return available
	}
	return desired
}

// Find returns the box for element id instantiated at the given dataset
// row path.
func (b *Box) Find(id string, rows []int) *Box {
	if b == nil || id == "" {
		return nil
	}
	if b.ID == id && slices.Equal(b.Rows, rows) {
		return b
	}
	for _, c := range b.Children {
		if found := c.Find(id, rows); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits b and its descendants depth first.
func (b *Box) Walk(fn func(*Box)) {
	if b == nil {
		return
	}
	fn(b)
	for _, c := range b.Children {
		c.Walk(fn)
	}
}
