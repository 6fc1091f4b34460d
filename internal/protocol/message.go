// Package protocol defines the messages exchanged with the host and their
// wire encoding: CBOR envelopes inside length-prefixed, optionally
// compressed frames.
package protocol

import (
	"github.com/atomicstack/spider-tui/internal/dataset"
	"github.com/atomicstack/spider-tui/internal/page"
)

// Kind names a message variant.
type Kind string

const (
	KindHello             Kind = "hello"
	KindSubscribe         Kind = "subscribe"
	KindPages             Kind = "pages"
	KindGetPage           Kind = "get_page"
	KindPage              Kind = "page"
	KindUpdateElementsFor Kind = "update_elements_for"
	KindDataset           Kind = "dataset"
	KindInputFor          Kind = "input_for"
)

// InputKind distinguishes text submissions from clicks.
type InputKind uint8

const (
	InputText InputKind = iota
	InputClick
)

func (k InputKind) String() string {
	if k == InputClick {
		return "click"
	}
	return "text"
}

// Input is an interaction with one element instance.
type Input struct {
	PageID    string    `cbor:"page_id"`
	ElementID string    `cbor:"element_id"`
	Rows      []int     `cbor:"rows,omitempty"`
	Kind      InputKind `cbor:"kind"`
	Text      string    `cbor:"text,omitempty"`
}

// Hello introduces the client after connecting.
type Hello struct {
	Client      string `cbor:"client"`
	Version     string `cbor:"version,omitempty"`
	Fingerprint string `cbor:"fingerprint,omitempty"`
}

// Message is the envelope for every variant. Only the fields belonging to
// Kind are set.
type Message struct {
	Kind    Kind              `cbor:"kind"`
	Pages   []page.Definition `cbor:"pages,omitempty"`
	Page    *page.Definition  `cbor:"page,omitempty"`
	PageID  string            `cbor:"page_id,omitempty"`
	Updates []page.Update     `cbor:"updates,omitempty"`
	Dataset dataset.Path      `cbor:"dataset,omitempty"`
	Rows    []dataset.Datum   `cbor:"rows,omitempty"`
	Input   *Input            `cbor:"input,omitempty"`
	Hello   *Hello            `cbor:"hello,omitempty"`
}

func Subscribe() Message {
	return Message{Kind: KindSubscribe}
}

func Pages(defs []page.Definition) Message {
	return Message{Kind: KindPages, Pages: defs}
}

func Page(def page.Definition) Message {
	return Message{Kind: KindPage, Page: &def}
}

func GetPage(id string) Message {
	return Message{Kind: KindGetPage, PageID: id}
}

func UpdateElementsFor(pageID string, updates []page.Update) Message {
	return Message{Kind: KindUpdateElementsFor, PageID: pageID, Updates: updates}
}

func Dataset(path dataset.Path, rows []dataset.Datum) Message {
	return Message{Kind: KindDataset, Dataset: path, Rows: rows}
}

// TextInput submits the text of an entry instance.
func TextInput(pageID, elementID string, rows []int, text string) Message {
	return Message{Kind: KindInputFor, Input: &Input{PageID: pageID, ElementID: elementID, Rows: rows, Kind: InputText, Text: text}}
}

// Click reports a button press on an element instance.
func Click(pageID, elementID string, rows []int) Message {
	return Message{Kind: KindInputFor, Input: &Input{PageID: pageID, ElementID: elementID, Rows: rows, Kind: InputClick}}
}

func HelloMessage(h Hello) Message {
	return Message{Kind: KindHello, Hello: &h}
}
