package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestProfile(t *testing.T) {
	cases := []struct {
		name string
		want termenv.Profile
		auto bool
		ok   bool
	}{
		{"", termenv.TrueColor, true, true},
		{"auto", termenv.TrueColor, true, true},
		{"ascii", termenv.Ascii, false, true},
		{"ansi", termenv.ANSI, false, true},
		{"ansi256", termenv.ANSI256, false, true},
		{"truecolor", termenv.TrueColor, false, true},
		{"sepia", termenv.Ascii, false, false},
	}
	for _, tc := range cases {
		got, auto, ok := Profile(tc.name)
		if got != tc.want || auto != tc.auto || ok != tc.ok {
			t.Fatalf("Profile(%q) = %v, %v, %v", tc.name, got, auto, ok)
		}
	}
}

func TestDefaultStylesPopulated(t *testing.T) {
	s := Default()
	for name, st := range map[string]*lipgloss.Style{
		"header": s.Header, "button": s.Button, "buttonFocused": s.ButtonFocused,
		"entry": s.Entry, "entryFocused": s.EntryFocused, "selected": s.SelectedItem,
	} {
		if st == nil {
			t.Fatalf("style %s is nil", name)
		}
	}
	if w, _ := s.Button.GetFrameSize(); w != 2 {
		t.Fatalf("expected button horizontal frame of 2, got %d", w)
	}
}
