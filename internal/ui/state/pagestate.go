package state

import (
	"slices"
	"strconv"
	"strings"

	"github.com/atomicstack/spider-tui/internal/dataset"
	"github.com/atomicstack/spider-tui/internal/page"
)

type inputKey struct {
	id   string
	rows string
}

func keyFor(id string, rows []int) inputKey {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = strconv.Itoa(r)
	}
	return inputKey{id: id, rows: strings.Join(parts, ".")}
}

// PageState is the per-page UI state: the focused element instance, the
// last navigation error and the uncommitted text of every entry instance.
type PageState struct {
	Focus  Focus
	Err    error
	inputs map[inputKey]string
}

// NewPageState returns a PageState with no focus.
func NewPageState() *PageState {
	return &PageState{inputs: make(map[inputKey]string)}
}

// Input returns the uncommitted text of element id at the given row path.
func (s *PageState) Input(id string, rows []int) (string, bool) {
	v, ok := s.inputs[keyFor(id, rows)]
	return v, ok
}

func (s *PageState) SetInput(id string, rows []int, value string) {
	if s.inputs == nil {
		s.inputs = make(map[inputKey]string)
	}
	s.inputs[keyFor(id, rows)] = value
}

func (s *PageState) ClearInput(id string, rows []int) {
	delete(s.inputs, keyFor(id, rows))
}

// InputCount reports how many uncommitted buffers exist.
func (s *PageState) InputCount() int {
	return len(s.inputs)
}

// AppendFocused appends text to the focused buffer, creating it if absent.
func (s *PageState) AppendFocused(text string) bool {
	if s.Focus.Empty() || text == "" {
		return false
	}
	cur, _ := s.Input(s.Focus.ID, s.Focus.Rows)
	s.SetInput(s.Focus.ID, s.Focus.Rows, cur+text)
	return true
}

// BackspaceFocused removes the last rune of the focused buffer.
func (s *PageState) BackspaceFocused() bool {
	if s.Focus.Empty() {
		return false
	}
	cur, ok := s.Input(s.Focus.ID, s.Focus.Rows)
	if !ok || cur == "" {
		return false
	}
	runes := []rune(cur)
	s.SetInput(s.Focus.ID, s.Focus.Rows, string(runes[:len(runes)-1]))
	return true
}

// TakeFocused removes and returns the focused buffer.
func (s *PageState) TakeFocused() (string, bool) {
	if s.Focus.Empty() {
		return "", false
	}
	k := keyFor(s.Focus.ID, s.Focus.Rows)
	v, ok := s.inputs[k]
	delete(s.inputs, k)
	return v, ok
}

// Move navigates the focus in dir. Errors leave the focus unchanged and are
// kept on Err until the next successful move.
func (s *PageState) Move(p *page.Page, data dataset.Source, dir Direction) (bool, error) {
	next, err := Navigate(p, data, s.Focus, dir)
	if err != nil {
		s.Err = err
		return false, err
	}
	s.Err = nil
	moved := next.ID != s.Focus.ID || !slices.Equal(next.Rows, s.Focus.Rows)
	s.Focus = next
	return moved, nil
}

// Revalidate drops a focus that no longer names a selectable instance in
// p and otherwise refreshes its row. It reports whether the focus was
// dropped.
func (s *PageState) Revalidate(p *page.Page, data dataset.Source) bool {
	if s.Focus.Empty() {
		return false
	}
	fresh, ok := Refresh(p, data, s.Focus)
	if ok {
		s.Focus = fresh
		return false
	}
	s.Focus = Focus{}
	return true
}
