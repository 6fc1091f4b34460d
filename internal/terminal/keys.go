package terminal

import (
	"github.com/atomicstack/spider-tui/internal/input"
	tea "github.com/charmbracelet/bubbletea"
)

var keyCodes = map[tea.KeyType]input.Code{
	tea.KeyEnter:     input.CodeEnter,
	tea.KeyEsc:       input.CodeEsc,
	tea.KeyBackspace: input.CodeBackspace,
	tea.KeyCtrlH:     input.CodeBackspace,
	tea.KeyDelete:    input.CodeDelete,
	tea.KeyTab:       input.CodeTab,
	tea.KeyShiftTab:  input.CodeShiftTab,
	tea.KeyUp:        input.CodeUp,
	tea.KeyDown:      input.CodeDown,
	tea.KeyLeft:      input.CodeLeft,
	tea.KeyRight:     input.CodeRight,
	tea.KeyHome:      input.CodeHome,
	tea.KeyEnd:       input.CodeEnd,
	tea.KeyPgUp:      input.CodePgUp,
	tea.KeyPgDown:    input.CodePgDown,
	tea.KeySpace:     input.CodeSpace,
	tea.KeyCtrlC:     input.CodeCtrlC,
	tea.KeyCtrlU:     input.CodeCtrlU,
	tea.KeyCtrlW:     input.CodeCtrlW,
}

// translateKey converts a Bubble Tea key message. Bracketed pastes become
// paste events.
func translateKey(msg tea.KeyMsg) input.Event {
	if msg.Paste {
		return input.Paste(string(msg.Runes))
	}
	if msg.Type == tea.KeyRunes {
		return input.KeyPress(input.Key{Code: input.CodeRunes, Runes: append([]rune(nil), msg.Runes...), Alt: msg.Alt})
	}
	code, ok := keyCodes[msg.Type]
	if !ok {
		code = input.CodeOther
	}
	return input.KeyPress(input.Key{Code: code, Alt: msg.Alt})
}
