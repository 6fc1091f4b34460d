package ui

import (
	"github.com/atomicstack/spider-tui/internal/logging/events"
	uistate "github.com/atomicstack/spider-tui/internal/ui/state"
)

const (
	directionUp    = uistate.Up
	directionDown  = uistate.Down
	directionLeft  = uistate.Left
	directionRight = uistate.Right
)

func (m *Model) selectPage(step func() bool) {
	if step() {
		events.Page.Select(m.pages.SelectedIndex())
	}
}

// openPage enters the selected page. A page without focus gets the
// initial descent so the first selectable element is focused.
func (m *Model) openPage() {
	p, ok := m.pages.Selected()
	if !ok {
		return
	}
	m.switchView(ViewPage, p.ID())
	st := m.pageState(p.ID())
	if st.Focus.Empty() {
		m.moveFocus(directionDown)
	}
}

func (m *Model) closePage() {
	m.switchView(ViewList, "")
}

func (m *Model) moveFocus(dir uistate.Direction) {
	p, st, ok := m.current()
	if !ok {
		return
	}
	moved, err := st.Move(p, m.datasets, dir)
	if err != nil {
		events.Focus.Failure(p.ID(), err)
		return
	}
	if moved {
		events.Focus.Move(p.ID(), dir.String(), st.Focus.ID, st.Focus.Rows)
	}
}

// reselect keeps the open page selected after the page set was replaced,
// or returns to the list when it is gone.
func (m *Model) reselect(openID string) {
	if m.view != ViewPage {
		return
	}
	for i, p := range m.pages.Pages() {
		if p.ID() == openID {
			if i != m.pages.SelectedIndex() {
				m.pages.Select(i)
			}
			return
		}
	}
	m.switchView(ViewList, "")
}

// revalidate drops focuses that no longer resolve after a mutation.
func (m *Model) revalidate() {
	for _, p := range m.pages.Pages() {
		st, ok := m.states[p.ID()]
		if !ok {
			continue
		}
		before := st.Focus.ID
		if st.Revalidate(p, m.datasets) {
			events.Focus.Reset(p.ID(), before)
		}
	}
}
