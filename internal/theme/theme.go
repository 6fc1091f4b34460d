package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles describes reusable Lip Gloss styles shared across the renderer.
type Styles struct {
	Header        *lipgloss.Style
	Footer        *lipgloss.Style
	Error         *lipgloss.Style
	Empty         *lipgloss.Style
	Item          *lipgloss.Style
	SelectedItem  *lipgloss.Style
	Prompt        *lipgloss.Style
	PromptQuery   *lipgloss.Style
	Cursor        *lipgloss.Style
	Text          *lipgloss.Style
	Unbound       *lipgloss.Style
	Button        *lipgloss.Style
	ButtonFocused *lipgloss.Style
	Entry         *lipgloss.Style
	EntryFocused  *lipgloss.Style
	EntryText     *lipgloss.Style
}

var (
	accent = lipgloss.Color("33")
	muted  = lipgloss.Color("241")
)

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Empty: ptr(
		lipgloss.NewStyle().Foreground(muted).Italic(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	PromptQuery: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(accent),
	),
	Text: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	Unbound: ptr(
		lipgloss.NewStyle().Foreground(muted).Italic(true),
	),
	Button: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted),
	),
	ButtonFocused: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Foreground(lipgloss.Color("255")).Bold(true),
	),
	Entry: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(muted),
	),
	EntryFocused: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(accent),
	),
	EntryText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
}

// Default exposes the standard style set.
func Default() *Styles {
	return &defaultStyles
}

// Profile maps a color setting to a termenv profile. ok is false for an
// unknown name; "auto" and "" report ok with auto set.
func Profile(name string) (profile termenv.Profile, auto bool, ok bool) {
	switch name {
	case "", "auto":
		return termenv.TrueColor, true, true
	case "ascii":
		return termenv.Ascii, false, true
	case "ansi":
		return termenv.ANSI, false, true
	case "ansi256":
		return termenv.ANSI256, false, true
	case "truecolor":
		return termenv.TrueColor, false, true
	}
	return termenv.Ascii, false, false
}

// ApplyProfile sets the default lipgloss renderer color profile. "auto"
// leaves terminal detection in place.
func ApplyProfile(name string) {
	profile, auto, ok := Profile(name)
	if !ok || auto {
		return
	}
	lipgloss.SetColorProfile(profile)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
