package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings of both views.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Open       key.Binding
	Submit     key.Binding
	Back       key.Binding
	Backspace  key.Binding
	DeleteWord key.Binding
	Jump       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Backspace:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		DeleteWord: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "delete word")),
		Jump:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ListHelp is the help line for the page list.
func (k KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Jump, k.Quit}
}

// PageHelp is the help line for an open page.
func (k KeyMap) PageHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Submit, k.Back}
}
