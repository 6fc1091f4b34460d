// Package page models one remotely described screen: a tree of typed
// elements flattened into an arena with an id index, plus the patch
// operations the host uses to mutate it.
package page

import (
	"fmt"

	"github.com/atomicstack/spider-tui/internal/dataset"
)

// Kind is the element variant.
type Kind int

const (
	KindNone Kind = iota
	KindSpacer
	KindText
	KindTextEntry
	KindButton
	KindRows
	KindColumns
	KindGrid
	KindVariable
)

// UnresolvedMarker is the content of a Variable element with no data row
// in scope.
const UnresolvedMarker = "<unbound>"

var kindNames = map[Kind]string{
	KindNone:      "none",
	KindSpacer:    "spacer",
	KindText:      "text",
	KindTextEntry: "text_entry",
	KindButton:    "button",
	KindRows:      "rows",
	KindColumns:   "columns",
	KindGrid:      "grid",
	KindVariable:  "variable",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsContainer reports whether the kind lays out children.
func (k Kind) IsContainer() bool {
	return k == KindRows || k == KindColumns || k == KindGrid
}

// Selectable reports whether the kind can ever hold focus.
func (k Kind) Selectable() bool {
	return k == KindButton || k == KindTextEntry
}

// GridSize is the declared shape of a Grid container.
type GridSize struct {
	Rows int `cbor:"rows"`
	Cols int `cbor:"cols"`
}

// Content is the per-node payload shared by the wire tree and the arena.
type Content struct {
	Kind       Kind         `cbor:"kind"`
	ID         string       `cbor:"id,omitempty"`
	Dataset    dataset.Path `cbor:"dataset,omitempty"`
	Text       string       `cbor:"text,omitempty"`
	Template   string       `cbor:"template,omitempty"`
	As         Kind         `cbor:"as,omitempty"`
	Selectable bool         `cbor:"selectable,omitempty"`
	Grid       GridSize     `cbor:"grid,omitempty"`
}

// Element is the tree form of a node as sent by the host.
type Element struct {
	Content
	Children []Element `cbor:"children,omitempty"`
}

// Bound reports whether the node replicates its children per dataset row.
func (c Content) Bound() bool {
	return c.Dataset != ""
}

// Resolved is an element's effective kind and content for one data row.
type Resolved struct {
	Kind       Kind
	Content    string
	Selectable bool
}

// Resolve computes the effective kind and content of c with row in scope.
// A nil row means no dataset-bound ancestor supplies data.
func (c Content) Resolve(row dataset.Datum) Resolved {
	if c.Kind != KindVariable {
		text := c.Text
		if row != nil && text != "" {
			text, _ = dataset.Expand(text, row)
		}
		return c.finish(c.Kind, text)
	}
	if row == nil {
		return Resolved{Kind: KindText, Content: UnresolvedMarker}
	}
	text, complete := dataset.Expand(c.Template, row)
	if !complete {
		return Resolved{Kind: KindNone}
	}
	as := c.As
	if as == KindNone || as == KindVariable || as.IsContainer() {
		as = KindText
	}
	return c.finish(as, text)
}

func (c Content) finish(kind Kind, text string) Resolved {
	return Resolved{
		Kind:       kind,
		Content:    text,
		Selectable: c.Selectable && c.ID != "" && kind.Selectable(),
	}
}

// Text is a convenience constructor for a text leaf.
func Text(id, text string) Element {
	return Element{Content: Content{Kind: KindText, ID: id, Text: text}}
}

// Button is a convenience constructor for a selectable button.
func Button(id, label string) Element {
	return Element{Content: Content{Kind: KindButton, ID: id, Text: label, Selectable: true}}
}

// TextEntry is a convenience constructor for a selectable text entry.
func TextEntry(id, label string) Element {
	return Element{Content: Content{Kind: KindTextEntry, ID: id, Text: label, Selectable: true}}
}

// Spacer returns a flexible filler.
func Spacer() Element {
	return Element{Content: Content{Kind: KindSpacer}}
}

// Variable returns a data-driven leaf that resolves to kind as.
func Variable(id, template string, as Kind) Element {
	return Element{Content: Content{Kind: KindVariable, ID: id, Template: template, As: as, Selectable: as.Selectable()}}
}

// Rows stacks children vertically.
func Rows(id string, children ...Element) Element {
	return Element{Content: Content{Kind: KindRows, ID: id}, Children: children}
}

// Columns places children side by side.
func Columns(id string, children ...Element) Element {
	return Element{Content: Content{Kind: KindColumns, ID: id}, Children: children}
}

// Bind attaches a dataset to a container element.
func (e Element) Bind(path dataset.Path) Element {
	e.Dataset = path
	return e
}
