package page

import (
	"reflect"
	"testing"
)

func samplePage() *Page {
	return New(Definition{
		ID:   "p1",
		Name: "Sample",
		Root: Rows("root",
			Text("title", "Hello"),
			Columns("row",
				Button("ok", "OK"),
				Button("cancel", "Cancel"),
			),
			TextEntry("name", "Name"),
		),
	})
}

func TestPathLookup(t *testing.T) {
	p := samplePage()
	cases := map[string][]int{
		"root":   {},
		"title":  {0},
		"ok":     {1, 0},
		"cancel": {1, 1},
		"name":   {2},
	}
	for id, want := range cases {
		got, ok := p.Path(id)
		if !ok {
			t.Fatalf("expected path for %q", id)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("path for %q = %v, want %v", id, got, want)
		}
	}
	if _, ok := p.Path("missing"); ok {
		t.Fatalf("expected no path for unknown id")
	}
}

func TestIDsAreUniqueAfterFlatten(t *testing.T) {
	p := New(Definition{ID: "dup", Root: Rows("r", Button("a", "1"), Button("a", "2"))})
	ids := p.IDs()
	if !reflect.DeepEqual(ids, []string{"r", "a"}) {
		t.Fatalf("expected duplicate id cleared, got %v", ids)
	}
	if path, _ := p.Path("a"); !reflect.DeepEqual(path, []int{0}) {
		t.Fatalf("expected first occurrence to keep the id, got %v", path)
	}
}

func TestApplyLeafUpdateRoundTrip(t *testing.T) {
	p := samplePage()
	before := p.Len()
	res := p.Apply([]Update{{ID: "title", Element: Element{Content: Content{Kind: KindText, ID: "renamed", Text: "World"}}}})
	if res.Applied != 1 || res.Structural {
		t.Fatalf("expected one in-place update, got %+v", res)
	}
	i, ok := p.Lookup("title")
	if !ok {
		t.Fatalf("expected id to survive the patch")
	}
	if got := p.Node(i).Text; got != "World" {
		t.Fatalf("expected patched text, got %q", got)
	}
	if _, ok := p.Lookup("renamed"); ok {
		t.Fatalf("patch must not introduce a new id")
	}
	if p.Len() != before {
		t.Fatalf("leaf update changed node count")
	}
}

func TestApplyDropsUnknownIDs(t *testing.T) {
	p := samplePage()
	res := p.Apply([]Update{{ID: "ghost", Element: Text("", "x")}})
	if res.Applied != 0 || !reflect.DeepEqual(res.Dropped, []string{"ghost"}) {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestApplyStructuralRebuildsIndex(t *testing.T) {
	p := samplePage()
	res := p.Apply([]Update{{ID: "row", Element: Columns("", Button("ok", "OK"), Button("retry", "Retry"), Button("cancel", "Cancel"))}})
	if !res.Structural || res.Applied != 1 {
		t.Fatalf("expected structural update, got %+v", res)
	}
	if path, ok := p.Path("cancel"); !ok || !reflect.DeepEqual(path, []int{1, 2}) {
		t.Fatalf("expected cancel re-indexed at [1 2], got %v", path)
	}
	if path, ok := p.Path("name"); !ok || !reflect.DeepEqual(path, []int{2}) {
		t.Fatalf("expected sibling path unchanged, got %v", path)
	}
	if _, ok := p.Lookup("row"); !ok {
		t.Fatalf("expected addressed id kept after structural update")
	}
}

func TestApplyRejectsDuplicateIDs(t *testing.T) {
	p := samplePage()
	res := p.Apply([]Update{{ID: "row", Element: Columns("", Button("name", "clash"))}})
	if res.Applied != 0 || len(res.Dropped) != 1 {
		t.Fatalf("expected clashing update dropped, got %+v", res)
	}
	if path, _ := p.Path("name"); !reflect.DeepEqual(path, []int{2}) {
		t.Fatalf("expected original element untouched, got %v", path)
	}
}

func TestDefinitionRoundTrip(t *testing.T) {
	def := Definition{ID: "p", Name: "n", Root: Rows("r", Text("t", "x"), Columns("c", Button("b", "B")).Bind("/data"))}
	got := New(def).Definition()
	if !reflect.DeepEqual(got, def) {
		t.Fatalf("definition mismatch:\n got %#v\nwant %#v", got, def)
	}
}
