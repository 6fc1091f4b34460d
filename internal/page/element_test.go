package page

import (
	"testing"

	"github.com/atomicstack/spider-tui/internal/dataset"
)

func TestResolveVariable(t *testing.T) {
	v := Variable("v", "{label}", KindButton)

	unbound := v.Resolve(nil)
	if unbound.Kind != KindText || unbound.Content != UnresolvedMarker {
		t.Fatalf("expected unresolved marker text, got %+v", unbound)
	}
	if unbound.Selectable {
		t.Fatalf("unresolved variable must not be selectable")
	}

	missing := v.Resolve(dataset.Datum{"other": 1})
	if missing.Kind != KindNone {
		t.Fatalf("expected None for missing field, got %+v", missing)
	}

	ok := v.Resolve(dataset.Datum{"label": "Go"})
	if ok.Kind != KindButton || ok.Content != "Go" || !ok.Selectable {
		t.Fatalf("expected selectable button, got %+v", ok)
	}
}

func TestResolvePlainKinds(t *testing.T) {
	b := Button("b", "Delete {name}")
	got := b.Resolve(dataset.Datum{"name": "row-1"})
	if got.Kind != KindButton || got.Content != "Delete row-1" || !got.Selectable {
		t.Fatalf("unexpected resolution %+v", got)
	}
	if res := Text("t", "x").Resolve(nil); res.Selectable {
		t.Fatalf("text must never be selectable")
	}
	anonymous := Button("", "no id")
	if anonymous.Resolve(nil).Selectable {
		t.Fatalf("element without id cannot take focus")
	}
}

func TestVariableContainerTargetFallsBackToText(t *testing.T) {
	v := Variable("v", "{x}", KindRows)
	if got := v.Resolve(dataset.Datum{"x": "1"}); got.Kind != KindText {
		t.Fatalf("expected container target to resolve as text, got %v", got.Kind)
	}
}
