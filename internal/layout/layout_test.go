package layout

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/spider-tui/internal/dataset"
	"github.com/atomicstack/spider-tui/internal/page"
)

func TestLeafSizes(t *testing.T) {
	cases := []struct {
		name string
		elem page.Element
		want Size
		flex bool
	}{
		{"short text", page.Text("t", "hello"), Size{Width: 5, Height: 2}, false},
		{"empty text", page.Text("t", ""), Size{Width: 0, Height: 1}, false},
		{"long text", page.Text("t", strings.Repeat("x", 81)), Size{Width: 81, Height: 3}, false},
		{"wide runes", page.Text("t", "日本"), Size{Width: 4, Height: 2}, false},
		{"entry", page.TextEntry("e", "ignored"), Size{Width: TextEntryWidth, Height: TextEntryHeight}, false},
		{"button", page.Button("b", "OK"), Size{Width: 4, Height: ButtonHeight}, false},
		{"spacer", page.Spacer(), Size{}, true},
		{"unbound variable", page.Variable("v", "{x}", page.KindButton), Size{Width: len(page.UnresolvedMarker), Height: 2}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := page.New(page.Definition{ID: "p", Root: tc.elem})
			box, err := Measure(p, nil)
			if err != nil {
				t.Fatalf("measure: %v", err)
			}
			if box.Desired != tc.want || box.Flex != tc.flex {
				t.Fatalf("got %+v flex=%v, want %+v flex=%v", box.Desired, box.Flex, tc.want, tc.flex)
			}
		})
	}
}

func TestContainerSizes(t *testing.T) {
	p := page.New(page.Definition{ID: "p", Root: page.Rows("root",
		page.Button("a", "OK"),
		page.Columns("row", page.Button("b", "Yes"), page.TextEntry("c", "")),
	)})
	box, err := Measure(p, nil)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if got := box.Children[1].Desired; got != (Size{Width: 5 + TextEntryWidth, Height: 3}) {
		t.Fatalf("columns size %+v", got)
	}
	if box.Desired != (Size{Width: 5 + TextEntryWidth, Height: 6}) {
		t.Fatalf("rows size %+v", box.Desired)
	}
}

func TestBoundContainerReplicatesChildren(t *testing.T) {
	p := page.New(page.Definition{ID: "p", Root: page.Columns("list",
		page.Variable("name", "{name}", page.KindButton),
	).Bind("/people")})
	data := dataset.Map{"/people": {{"name": "ann"}, {"name": "bob"}, {"other": 1}}}
	box, err := Measure(p, data)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if len(box.Children) != 3 {
		t.Fatalf("expected 3 replicas, got %d", len(box.Children))
	}
	if got := box.Children[1]; got.Content != "bob" || !reflect.DeepEqual(got.Rows, []int{1}) {
		t.Fatalf("unexpected replica %+v", got)
	}
	if got := box.Children[2]; got.Kind != page.KindNone || !got.Flex {
		t.Fatalf("expected missing field to resolve to a flexible None, got %+v", got)
	}
	if found := box.Find("name", []int{0}); found == nil || found.Content != "ann" {
		t.Fatalf("find returned %+v", found)
	}
	if found := box.Find("name", nil); found != nil {
		t.Fatalf("expected no box without a row path")
	}
}

func TestArrangeDistributesLeftoverToSpacers(t *testing.T) {
	p := page.New(page.Definition{ID: "p", Root: page.Columns("root",
		page.Button("a", "A"),
		page.Spacer(),
		page.Button("b", "B"),
		page.Spacer(),
	)})
	box, err := Measure(p, nil)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	Arrange(box, 17, 5)
	var xs, widths []int
	for _, c := range box.Children {
		xs = append(xs, c.Rect.X)
		widths = append(widths, c.Rect.Width)
	}
	if !reflect.DeepEqual(widths, []int{3, 6, 3, 5}) {
		t.Fatalf("widths %v", widths)
	}
	if !reflect.DeepEqual(xs, []int{0, 3, 9, 12}) {
		t.Fatalf("offsets %v", xs)
	}
	if h := box.Children[0].Rect.Height; h != ButtonHeight {
		t.Fatalf("expected button to keep its height, got %d", h)
	}
}

func TestGridFailsLoudly(t *testing.T) {
	grid := page.Element{Content: page.Content{Kind: page.KindGrid, ID: "g", Grid: page.GridSize{Rows: 2, Cols: 2}}}
	p := page.New(page.Definition{ID: "p", Root: page.Rows("root", grid)})
	_, err := Measure(p, nil)
	if !errors.Is(err, ErrGridUnsupported) {
		t.Fatalf("expected ErrGridUnsupported, got %v", err)
	}
	if !strings.Contains(err.Error(), `"g"`) {
		t.Fatalf("expected element id in error, got %v", err)
	}
}
