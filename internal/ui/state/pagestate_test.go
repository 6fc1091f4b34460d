package state

import "testing"

func TestFocusedBufferEditing(t *testing.T) {
	s := NewPageState()
	s.Focus = Focus{ID: "name", Rows: []int{2}}

	s.AppendFocused("a")
	s.AppendFocused("b")
	s.BackspaceFocused()
	s.AppendFocused("c")

	if got, _ := s.Input("name", []int{2}); got != "ac" {
		t.Fatalf("expected buffer %q, got %q", "ac", got)
	}
	text, ok := s.TakeFocused()
	if !ok || text != "ac" {
		t.Fatalf("expected to take %q, got %q (%v)", "ac", text, ok)
	}
	if _, ok := s.Input("name", []int{2}); ok {
		t.Fatalf("expected buffer cleared after take")
	}
}

func TestBuffersAreKeyedByRowPath(t *testing.T) {
	s := NewPageState()
	s.SetInput("e", []int{0}, "first")
	s.SetInput("e", []int{1}, "second")
	s.SetInput("e", []int{1, 0}, "nested")

	if got, _ := s.Input("e", []int{0}); got != "first" {
		t.Fatalf("row 0 buffer %q", got)
	}
	if got, _ := s.Input("e", []int{1}); got != "second" {
		t.Fatalf("row 1 buffer %q", got)
	}
	if s.InputCount() != 3 {
		t.Fatalf("expected three buffers, got %d", s.InputCount())
	}
	s.ClearInput("e", []int{0})
	if _, ok := s.Input("e", []int{0}); ok {
		t.Fatalf("expected cleared buffer to be gone")
	}
}

func TestEditingWithoutFocusIsNoop(t *testing.T) {
	s := NewPageState()
	if s.AppendFocused("x") || s.BackspaceFocused() {
		t.Fatalf("expected no edits without focus")
	}
	if _, ok := s.TakeFocused(); ok {
		t.Fatalf("expected nothing to take without focus")
	}
	s.Focus = Focus{ID: "e"}
	if s.BackspaceFocused() {
		t.Fatalf("expected backspace on missing buffer to report no change")
	}
}

func TestBackspaceRemovesWholeRune(t *testing.T) {
	s := NewPageState()
	s.Focus = Focus{ID: "e"}
	s.AppendFocused("añ")
	s.BackspaceFocused()
	if got, _ := s.Input("e", nil); got != "a" {
		t.Fatalf("expected multibyte rune removed, got %q", got)
	}
}
