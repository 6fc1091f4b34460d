package ui

import (
	"github.com/atomicstack/spider-tui/internal/logging/events"
	"github.com/atomicstack/spider-tui/internal/page"
	"github.com/atomicstack/spider-tui/internal/protocol"
	uistate "github.com/atomicstack/spider-tui/internal/ui/state"
)

func (m *Model) appendFocused(text string) {
	p, st, ok := m.current()
	if !ok || !st.AppendFocused(text) {
		return
	}
	buf, _ := st.Input(st.Focus.ID, st.Focus.Rows)
	events.Input.Append(p.ID(), st.Focus.ID, buf)
}

func (m *Model) backspaceFocused() {
	p, st, ok := m.current()
	if !ok || !st.BackspaceFocused() {
		return
	}
	buf, _ := st.Input(st.Focus.ID, st.Focus.Rows)
	events.Input.Backspace(p.ID(), st.Focus.ID, buf)
}

// submitFocused sends the focused entry's text or a click for the focused
// button.
func (m *Model) submitFocused() {
	p, st, ok := m.current()
	if !ok || st.Focus.Empty() {
		return
	}
	focus, ok := uistate.Refresh(p, m.datasets, st.Focus)
	if !ok {
		events.Focus.Reset(p.ID(), st.Focus.ID)
		st.Focus = uistate.Focus{}
		return
	}
	st.Focus = focus
	i, _ := p.Lookup(focus.ID)
	rows := append([]int(nil), focus.Rows...)
	switch p.Node(i).Resolve(focus.Datum).Kind {
	case page.KindTextEntry:
		text, _ := st.TakeFocused()
		events.Input.Submit(p.ID(), st.Focus.ID, rows)
		m.bus.Emit(protocol.TextInput(p.ID(), st.Focus.ID, rows, text))
	case page.KindButton:
		events.Input.Click(p.ID(), st.Focus.ID, rows)
		m.bus.Emit(protocol.Click(p.ID(), st.Focus.ID, rows))
	}
}
