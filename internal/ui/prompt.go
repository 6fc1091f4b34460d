package ui

import (
	"github.com/atomicstack/spider-tui/internal/input"
	"github.com/atomicstack/spider-tui/internal/logging/events"
	uistate "github.com/atomicstack/spider-tui/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
)

func (m *Model) openPrompt() {
	m.prompt.Open()
	events.Prompt.Open()
}

func (m *Model) closePrompt(accepted bool) {
	m.prompt.Close()
	events.Prompt.Close(accepted)
}

func (m *Model) handlePromptKey(k input.Key) {
	switch {
	case key.Matches(k, m.keys.Back):
		m.closePrompt(false)
	case key.Matches(k, m.keys.Open):
		m.closePrompt(true)
		m.openPage()
	case key.Matches(k, m.keys.Backspace):
		if m.prompt.DeleteBackward() {
			m.jumpToMatch()
		}
	case key.Matches(k, m.keys.DeleteWord):
		if m.prompt.DeleteWordBackward() {
			m.jumpToMatch()
		}
	case key.Matches(k, m.keys.Up):
		m.selectPage(m.pages.SelectPrev)
	case key.Matches(k, m.keys.Down):
		m.selectPage(m.pages.SelectNext)
	default:
		if text, ok := k.Text(); ok {
			m.insertPrompt(text)
		}
	}
}

func (m *Model) insertPrompt(text string) {
	if m.prompt.Insert(text) {
		m.jumpToMatch()
	}
}

// jumpToMatch moves the page cursor to the best match for the query.
func (m *Model) jumpToMatch() {
	pages := m.pages.Pages()
	names := make([]string, len(pages))
	for i, p := range pages {
		names[i] = p.Name()
	}
	match := uistate.BestMatch(names, m.prompt.Query)
	events.Prompt.Query(m.prompt.Query, match)
	if match >= 0 && m.pages.Select(match) {
		events.Page.Select(match)
	}
}
