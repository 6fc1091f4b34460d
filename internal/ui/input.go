package ui

import (
	"github.com/atomicstack/spider-tui/internal/input"
	"github.com/charmbracelet/bubbles/key"
)

func (m *Model) handleInputEvent(msg any) {
	ev, ok := msg.(input.Event)
	if !ok {
		return
	}
	switch ev.Kind {
	case input.KindKey:
		if ev.Release {
			return
		}
		m.handleKey(ev.Key)
	case input.KindPaste:
		m.handlePaste(ev.Text)
	}
}

func (m *Model) handleKey(k input.Key) {
	if key.Matches(k, m.keys.ForceQuit) {
		m.quit()
		return
	}
	if m.view == ViewPage {
		m.handlePageKey(k)
		return
	}
	if m.prompt.Active {
		m.handlePromptKey(k)
		return
	}
	m.handleListKey(k)
}

func (m *Model) handleListKey(k input.Key) {
	switch {
	case key.Matches(k, m.keys.Quit):
		m.quit()
	case key.Matches(k, m.keys.Up):
		m.selectPage(m.pages.SelectPrev)
	case key.Matches(k, m.keys.Down):
		m.selectPage(m.pages.SelectNext)
	case key.Matches(k, m.keys.Jump):
		m.openPrompt()
	case key.Matches(k, m.keys.Open):
		m.openPage()
	}
}

func (m *Model) handlePageKey(k input.Key) {
	switch {
	case key.Matches(k, m.keys.Back):
		m.closePage()
	case key.Matches(k, m.keys.Up):
		m.moveFocus(directionUp)
	case key.Matches(k, m.keys.Down):
		m.moveFocus(directionDown)
	case key.Matches(k, m.keys.Left):
		m.moveFocus(directionLeft)
	case key.Matches(k, m.keys.Right):
		m.moveFocus(directionRight)
	case key.Matches(k, m.keys.Submit):
		m.submitFocused()
	case key.Matches(k, m.keys.Backspace):
		m.backspaceFocused()
	default:
		if text, ok := k.Text(); ok {
			m.appendFocused(text)
		}
	}
}

func (m *Model) handlePaste(text string) {
	if text == "" {
		return
	}
	if m.view == ViewPage {
		m.appendFocused(text)
		return
	}
	if m.prompt.Active {
		m.insertPrompt(text)
	}
}
