package input

// Code identifies a non-printable key. Printable input uses CodeRunes.
type Code int

const (
	CodeRunes Code = iota
	CodeEnter
	CodeEsc
	CodeBackspace
	CodeDelete
	CodeTab
	CodeShiftTab
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeHome
	CodeEnd
	CodePgUp
	CodePgDown
	CodeSpace
	CodeCtrlC
	CodeCtrlU
	CodeCtrlW
	CodeOther
)

var codeNames = map[Code]string{
	CodeEnter:     "enter",
	CodeEsc:       "esc",
	CodeBackspace: "backspace",
	CodeDelete:    "delete",
	CodeTab:       "tab",
	CodeShiftTab:  "shift+tab",
	CodeUp:        "up",
	CodeDown:      "down",
	CodeLeft:      "left",
	CodeRight:     "right",
	CodeHome:      "home",
	CodeEnd:       "end",
	CodePgUp:      "pgup",
	CodePgDown:    "pgdown",
	CodeSpace:     " ",
	CodeCtrlC:     "ctrl+c",
	CodeCtrlU:     "ctrl+u",
	CodeCtrlW:     "ctrl+w",
}

// Key is a key press. String renders the same names bubbletea uses so key
// bindings match either representation.
type Key struct {
	Code  Code
	Runes []rune
	Alt   bool
}

// Runes returns a printable key press.
func Runes(s string) Key {
	return Key{Code: CodeRunes, Runes: []rune(s)}
}

// Special returns a key press for a non-printable key.
func Special(c Code) Key {
	return Key{Code: c}
}

func (k Key) String() string {
	var name string
	switch k.Code {
	case CodeRunes:
		name = string(k.Runes)
	case CodeOther:
		name = "unknown"
	default:
		name = codeNames[k.Code]
	}
	if k.Alt {
		return "alt+" + name
	}
	return name
}

// Text returns the printable text the key inserts, if any.
func (k Key) Text() (string, bool) {
	if k.Alt {
		return "", false
	}
	switch k.Code {
	case CodeRunes:
		if len(k.Runes) == 0 {
			return "", false
		}
		return string(k.Runes), true
	case CodeSpace:
		return " ", true
	}
	return "", false
}
