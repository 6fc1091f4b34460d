package dispatcher

import (
	"testing"

	"github.com/atomicstack/spider-tui/internal/dataset"
	"github.com/atomicstack/spider-tui/internal/page"
	"github.com/atomicstack/spider-tui/internal/protocol"
	"github.com/atomicstack/spider-tui/internal/state"
)

func newDispatcher() (*Dispatcher, state.PageStore, state.DatasetStore) {
	pages := state.NewPageStore()
	datasets := state.NewDatasetStore()
	return New(pages, datasets), pages, datasets
}

func def(id string) page.Definition {
	return page.Definition{ID: id, Name: id, Root: page.Rows("root", page.Text("title", "t"))}
}

func TestPagesReplaceSet(t *testing.T) {
	d, pages, _ := newDispatcher()
	res := d.Handle(protocol.Pages([]page.Definition{def("a"), def("b")}))
	if !res.PagesUpdated || pages.Len() != 2 {
		t.Fatalf("expected two pages, got %d (%+v)", pages.Len(), res)
	}
	d.Handle(protocol.Pages([]page.Definition{def("c")}))
	if _, ok := pages.Get("a"); ok || pages.Len() != 1 {
		t.Fatalf("expected page set replaced")
	}
}

func TestPageUpsert(t *testing.T) {
	d, pages, _ := newDispatcher()
	d.Handle(protocol.Pages([]page.Definition{def("a"), def("b")}))
	updated := def("a")
	updated.Name = "renamed"
	res := d.Handle(protocol.Page(updated))
	if res.PageID != "a" {
		t.Fatalf("expected page id reported, got %+v", res)
	}
	if p, _ := pages.Get("a"); p.Name() != "renamed" {
		t.Fatalf("expected upserted page, got %q", p.Name())
	}
	if pages.Pages()[0].ID() != "a" {
		t.Fatalf("expected position kept")
	}
}

func TestUpdateElementsFor(t *testing.T) {
	d, pages, _ := newDispatcher()
	d.Handle(protocol.Pages([]page.Definition{def("a")}))
	res := d.Handle(protocol.UpdateElementsFor("a", []page.Update{{ID: "title", Element: page.Text("", "new")}}))
	if !res.PagesUpdated || res.Structural {
		t.Fatalf("unexpected result %+v", res)
	}
	p, _ := pages.Get("a")
	i, _ := p.Lookup("title")
	if p.Node(i).Text != "new" {
		t.Fatalf("expected patched text, got %q", p.Node(i).Text)
	}
	if res := d.Handle(protocol.UpdateElementsFor("missing", nil)); !res.Ignored {
		t.Fatalf("expected unknown page ignored")
	}
}

func TestDatasetReplace(t *testing.T) {
	d, _, datasets := newDispatcher()
	res := d.Handle(protocol.Dataset("/x", []dataset.Datum{{"a": "1"}}))
	if !res.DatasetsUpdated || len(datasets.Rows("/x")) != 1 {
		t.Fatalf("expected dataset stored, got %+v", res)
	}
}

func TestIgnoredKinds(t *testing.T) {
	d, _, _ := newDispatcher()
	for _, msg := range []protocol.Message{protocol.GetPage("a"), protocol.Subscribe(), {Kind: "something_else"}} {
		if res := d.Handle(msg); !res.Ignored || res.PagesUpdated || res.DatasetsUpdated {
			t.Fatalf("expected %s ignored, got %+v", msg.Kind, res)
		}
	}
}
