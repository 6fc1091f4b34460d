package page

import "github.com/atomicstack/spider-tui/internal/dataset"

// Child is one logical child of a node after dataset replication.
type Child struct {
	Node int
	// Row is the dataset row the child was replicated for, or -1 when the
	// parent is not dataset-bound.
	Row   int
	Datum dataset.Datum
}

// Expand returns the logical children of node i with datum in scope. A
// dataset-bound node repeats all of its children once per row, so the
// child at expanded index row*len(children)+c is child c for that row.
func (p *Page) Expand(i int, datum dataset.Datum, data dataset.Source) []Child {
	n := p.Node(i)
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	if !n.Bound() {
		out := make([]Child, len(n.Children))
		for pos, c := range n.Children {
			out[pos] = Child{Node: c, Row: -1, Datum: datum}
		}
		return out
	}
	var rows []dataset.Datum
	if data != nil {
		rows = data.Rows(n.Dataset)
	}
	out := make([]Child, 0, len(rows)*len(n.Children))
	for r, row := range rows {
		for _, c := range n.Children {
			out = append(out, Child{Node: c, Row: r, Datum: row})
		}
	}
	return out
}
