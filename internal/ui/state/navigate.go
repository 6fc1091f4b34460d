package state

import (
	"github.com/atomicstack/spider-tui/internal/dataset"
	"github.com/atomicstack/spider-tui/internal/layout"
	"github.com/atomicstack/spider-tui/internal/page"
)

// Direction is a focus movement request.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

func (d Direction) backward() bool {
	return d == Up || d == Left
}

// answers reports whether a container of kind k moves focus along d.
func answers(k page.Kind, d Direction) bool {
	switch k {
	case page.KindRows:
		return d == Up || d == Down
	case page.KindColumns:
		return d == Left || d == Right
	}
	return false
}

// Focus identifies one instance of a selectable element.
type Focus struct {
	ID string
	// Rows holds one row index per dataset-bound ancestor, root first.
	Rows  []int
	Datum dataset.Datum
}

// Empty reports whether no element is focused.
func (f Focus) Empty() bool {
	return f.ID == ""
}

// step is one ancestor on the path to the focus. pos is the expanded index
// of the path's child beneath it; rows are the row indices fixed strictly
// above it.
type step struct {
	node  int
	pos   int
	rows  []int
	datum dataset.Datum
}

// Navigate computes the focus reached from cur by moving in dir. When
// nothing lies in that direction the current focus is returned unchanged.
// A stale focus is discarded and the search starts over from the first
// leaf of the page.
func Navigate(p *page.Page, data dataset.Source, cur Focus, dir Direction) (Focus, error) {
	if p == nil || p.Len() == 0 {
		return cur, nil
	}
	if data == nil {
		data = dataset.Map(nil)
	}
	steps, _, ok := replay(p, data, cur)
	if !ok {
		var first Focus
		var err error
		steps, first, ok, err = descend(p, data)
		if err != nil {
			return cur, err
		}
		if ok {
			return first, nil
		}
		cur = Focus{}
	}
	for i := len(steps) - 1; i >= 0; i-- {
		next, found, err := search(p, data, steps[i], dir)
		if err != nil {
			return cur, err
		}
		if found {
			return next, nil
		}
	}
	return cur, nil
}

// Valid reports whether cur still names a selectable element instance of
// p under the current datasets.
func Valid(p *page.Page, data dataset.Source, cur Focus) bool {
	_, ok := Refresh(p, data, cur)
	return ok
}

// Refresh re-resolves cur against the current page and datasets. It
// returns the focus carrying the row now in scope at the element, or false
// when the instance is gone or no longer resolves to a selectable kind.
func Refresh(p *page.Page, data dataset.Source, cur Focus) (Focus, bool) {
	if p == nil || cur.Empty() {
		return Focus{}, false
	}
	if data == nil {
		data = dataset.Map(nil)
	}
	_, datum, ok := replay(p, data, cur)
	if !ok {
		return Focus{}, false
	}
	i, ok := p.Lookup(cur.ID)
	if !ok || !p.Node(i).Resolve(datum).Selectable {
		return Focus{}, false
	}
	return Focus{ID: cur.ID, Rows: cur.Rows, Datum: datum}, true
}

// replay walks the tree path of the focused element, consuming one row
// index at every dataset-bound ancestor. It also returns the row in scope
// at the element.
func replay(p *page.Page, data dataset.Source, cur Focus) ([]step, dataset.Datum, bool) {
	path, ok := p.Path(cur.ID)
	if !ok {
		return nil, nil, false
	}
	steps := make([]step, 0, len(path))
	n, used := 0, 0
	var datum dataset.Datum
	for _, c := range path {
		node := p.Node(n)
		st := step{node: n, pos: c, rows: cur.Rows[:used], datum: datum}
		if node.Bound() {
			if used >= len(cur.Rows) {
				return nil, nil, false
			}
			r := cur.Rows[used]
			rows := data.Rows(node.Dataset)
			if r < 0 || r >= len(rows) {
				return nil, nil, false
			}
			st.pos = r*len(node.Children) + c
			datum = rows[r]
			used++
		}
		steps = append(steps, st)
		n = node.Children[c]
	}
	if used != len(cur.Rows) {
		return nil, nil, false
	}
	return steps, datum, true
}

// descend follows child 0 (row 0 at bound nodes) from the root to the
// first leaf. It returns the ancestors walked and, when the leaf is
// selectable, the focus on it.
func descend(p *page.Page, data dataset.Source) ([]step, Focus, bool, error) {
	var steps []step
	var rows []int
	var datum dataset.Datum
	n := 0
	for {
		node := p.Node(n)
		if node.Kind == page.KindGrid {
			return nil, Focus{}, false, layout.GridError(n, node)
		}
		children := p.Expand(n, datum, data)
		if len(children) == 0 {
			break
		}
		steps = append(steps, step{node: n, pos: 0, rows: rows, datum: datum})
		first := children[0]
		if first.Row >= 0 {
			rows = appendRow(rows, first.Row)
		}
		datum = first.Datum
		n = first.Node
	}
	leaf := p.Node(n)
	if leaf.Resolve(datum).Selectable {
		return steps, Focus{ID: leaf.ID, Rows: rows, Datum: datum}, true, nil
	}
	return steps, Focus{}, false, nil
}

// search scans the siblings of the path child at one ancestor in the
// requested direction.
func search(p *page.Page, data dataset.Source, st step, dir Direction) (Focus, bool, error) {
	node := p.Node(st.node)
	if node.Kind == page.KindGrid {
		return Focus{}, false, layout.GridError(st.node, node)
	}
	if !answers(node.Kind, dir) {
		return Focus{}, false, nil
	}
	children := p.Expand(st.node, st.datum, data)
	try := func(i int) (Focus, bool, error) {
		c := children[i]
		rows := st.rows
		if c.Row >= 0 {
			rows = appendRow(rows, c.Row)
		}
		return enter(p, data, c.Node, c.Datum, rows, dir)
	}
	if dir.backward() {
		for i := min(st.pos, len(children)) - 1; i >= 0; i-- {
			if f, ok, err := try(i); ok || err != nil {
				return f, ok, err
			}
		}
		return Focus{}, false, nil
	}
	for i := st.pos + 1; i < len(children); i++ {
		if f, ok, err := try(i); ok || err != nil {
			return f, ok, err
		}
	}
	return Focus{}, false, nil
}

// enter finds the first selectable leaf reachable inside node n. Columns
// entered with Left are scanned last child first; everything else is
// scanned forward. Dataset-bound nodes are only entered through row 0.
func enter(p *page.Page, data dataset.Source, n int, datum dataset.Datum, rows []int, dir Direction) (Focus, bool, error) {
	node := p.Node(n)
	if node.Kind == page.KindGrid {
		return Focus{}, false, layout.GridError(n, node)
	}
	if len(node.Children) == 0 {
		res := node.Resolve(datum)
		if !res.Selectable {
			return Focus{}, false, nil
		}
		return Focus{ID: node.ID, Rows: rows, Datum: datum}, true, nil
	}
	children := p.Expand(n, datum, data)
	if node.Bound() && len(children) > len(node.Children) {
		children = children[:len(node.Children)]
	}
	reverse := node.Kind == page.KindColumns && dir == Left
	for k := range children {
		i := k
		if reverse {
			i = len(children) - 1 - k
		}
		c := children[i]
		childRows := rows
		if c.Row >= 0 {
			childRows = appendRow(rows, c.Row)
		}
		if f, ok, err := enter(p, data, c.Node, c.Datum, childRows, dir); ok || err != nil {
			return f, ok, err
		}
	}
	return Focus{}, false, nil
}

func appendRow(rows []int, r int) []int {
	out := make([]int, len(rows), len(rows)+1)
	copy(out, rows)
	return append(out, r)
}
