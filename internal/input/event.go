// Package input models terminal input events independently of the
// terminal library that decodes them.
package input

// Kind is the event variant.
type Kind int

const (
	KindKey Kind = iota
	KindPaste
	KindMouse
	KindResize
	KindFocus
	KindBlur
)

func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindPaste:
		return "paste"
	case KindMouse:
		return "mouse"
	case KindResize:
		return "resize"
	case KindFocus:
		return "focus"
	case KindBlur:
		return "blur"
	}
	return "unknown"
}

// Event is one decoded terminal event.
type Event struct {
	Kind Kind
	Key  Key
	// Release marks key-release reports from terminals that send them.
	Release bool
	// Text holds pasted text.
	Text   string
	Width  int
	Height int
}

// KeyPress returns a key press event.
func KeyPress(k Key) Event {
	return Event{Kind: KindKey, Key: k}
}

// Paste returns a paste event.
func Paste(text string) Event {
	return Event{Kind: KindPaste, Text: text}
}

// Resize returns a resize event.
func Resize(width, height int) Event {
	return Event{Kind: KindResize, Width: width, Height: height}
}
