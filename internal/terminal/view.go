package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/spider-tui/internal/dataset"
	"github.com/atomicstack/spider-tui/internal/format/table"
	"github.com/atomicstack/spider-tui/internal/layout"
	"github.com/atomicstack/spider-tui/internal/page"
	uistate "github.com/atomicstack/spider-tui/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	headerSeparator = " · "
	listIndicator   = "▌ "
	listPadding     = "  "
	emptyListText   = "waiting for pages from host"
)

// RenderPageList composes the page list frame.
func (t *Terminal) RenderPageList(pages []*page.Page, highlight int, prompt *uistate.Prompt) {
	width, height := t.Size()
	t.setFrame(t.pageListFrame(pages, highlight, prompt, width, height))
}

// RenderPage composes the frame of an open page.
func (t *Terminal) RenderPage(p *page.Page, st *uistate.PageState, data dataset.Source) {
	width, height := t.Size()
	t.setFrame(t.pageFrame(p, st, data, width, height))
}

func (t *Terminal) pageListFrame(pages []*page.Page, highlight int, prompt *uistate.Prompt, width, height int) string {
	header := []string{"spider-tui"}
	if t.opts.Fingerprint != "" {
		header = append(header, t.opts.Fingerprint)
	}
	header = append(header, pluralPages(len(pages)))
	top := []string{t.line(t.styles.Header, strings.Join(header, headerSeparator), width)}
	if prompt != nil && prompt.Active {
		top = append(top, t.promptLine(prompt, width))
	}
	footer := t.footer(t.keys.ListHelp(), nil, width)
	bodyHeight := max(1, height-len(top)-1)

	var body string
	if len(pages) == 0 {
		body = t.line(t.styles.Empty, emptyListText, width)
	} else {
		rows := make([][]string, len(pages))
		for i, p := range pages {
			rows[i] = []string{strconv.Itoa(i + 1), p.Name(), p.ID(), strconv.Itoa(p.Len())}
		}
		align := []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignLeft, table.AlignRight}
		lines := table.FormatWidth(rows, align, width-ansi.StringWidth(listIndicator))
		for i, line := range lines {
			if i == highlight {
				lines[i] = t.styles.SelectedItem.Render(listIndicator + line)
			} else {
				lines[i] = t.styles.Item.Render(listPadding + line)
			}
		}
		body = scrolled(strings.Join(lines, "\n"), width, bodyHeight, highlight, 1)
	}
	return fit(lipgloss.JoinVertical(lipgloss.Left, append(top, fit(body, width, bodyHeight), footer)...), width, height)
}

func (t *Terminal) promptLine(prompt *uistate.Prompt, width int) string {
	runes := []rune(prompt.Query)
	pos := prompt.CursorPos()
	under := " "
	after := ""
	if pos < len(runes) {
		under = string(runes[pos])
		after = string(runes[pos+1:])
	}
	line := t.styles.Prompt.Render("/") +
		t.styles.PromptQuery.Render(string(runes[:pos])) +
		t.styles.Cursor.Render(under) +
		t.styles.PromptQuery.Render(after)
	return clip(line, width)
}

func (t *Terminal) pageFrame(p *page.Page, st *uistate.PageState, data dataset.Source, width, height int) string {
	header := t.line(t.styles.Header, p.Name()+headerSeparator+p.ID(), width)
	var navErr error
	if st != nil {
		navErr = st.Err
	}
	box, err := layout.Measure(p, data)
	if err != nil {
		navErr = err
	}
	footer := t.footer(t.keys.PageHelp(), navErr, width)
	bodyHeight := max(1, height-1-lipgloss.Height(footer))

	var body string
	switch {
	case err != nil:
		body = t.line(t.styles.Error, err.Error(), width)
	case box == nil:
		body = t.line(t.styles.Empty, "empty page", width)
	default:
		layout.Arrange(box, width, max(bodyHeight, box.Desired.Height))
		var focused *layout.Box
		if st != nil && !st.Focus.Empty() {
			focused = box.Find(st.Focus.ID, st.Focus.Rows)
		}
		body = t.drawBox(box, focused, st)
		if focused != nil {
			body = scrolled(body, width, bodyHeight, focused.Rect.Y, focused.Rect.Height)
		}
	}
	return fit(lipgloss.JoinVertical(lipgloss.Left, header, fit(body, width, bodyHeight), footer), width, height)
}

// drawBox renders b at exactly its arranged size.
func (t *Terminal) drawBox(b *layout.Box, focused *layout.Box, st *uistate.PageState) string {
	w, h := b.Rect.Width, b.Rect.Height
	if w <= 0 || h <= 0 {
		return ""
	}
	switch b.Kind {
	case page.KindRows, page.KindColumns:
		parts := make([]string, 0, len(b.Children))
		for _, c := range b.Children {
			if s := t.drawBox(c, focused, st); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return fit("", w, h)
		}
		if b.Kind == page.KindRows {
			return fit(lipgloss.JoinVertical(lipgloss.Left, parts...), w, h)
		}
		return fit(lipgloss.JoinHorizontal(lipgloss.Top, parts...), w, h)
	case page.KindText:
		style := t.styles.Text
		if b.Content == page.UnresolvedMarker {
			style = t.styles.Unbound
		}
		return fit(style.Render(b.Content), w, h)
	case page.KindButton:
		style := t.styles.Button
		if b == focused {
			style = t.styles.ButtonFocused
		}
		inner := max(0, w-2)
		return fit(style.Width(inner).Height(max(0, h-2)).Render(clip(b.Content, inner)), w, h)
	case page.KindTextEntry:
		return fit(t.drawEntry(b, b == focused, st), w, h)
	}
	return fit("", w, h)
}

func (t *Terminal) drawEntry(b *layout.Box, focused bool, st *uistate.PageState) string {
	inner := max(0, b.Rect.Width-2)
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = b.Content
	ti.Width = max(0, inner-1)
	ti.TextStyle = *t.styles.EntryText
	ti.Cursor.Style = *t.styles.Cursor
	if st != nil {
		if value, ok := st.Input(b.ID, b.Rows); ok {
			ti.SetValue(value)
			ti.CursorEnd()
		}
	}
	style := t.styles.Entry
	if focused {
		ti.Focus()
		ti.Cursor.SetMode(cursor.CursorStatic)
		style = t.styles.EntryFocused
	} else {
		ti.Blur()
	}
	return style.Width(inner).Height(max(0, b.Rect.Height-2)).Render(ti.View())
}

func (t *Terminal) footer(bindings []key.Binding, err error, width int) string {
	h := t.help
	h.Width = width
	lines := []string{clip(t.styles.Footer.Render(h.View(helpKeys(bindings))), width)}
	if err != nil {
		lines = append([]string{t.line(t.styles.Error, err.Error(), width)}, lines...)
	}
	return strings.Join(lines, "\n")
}

func (t *Terminal) line(style *lipgloss.Style, text string, width int) string {
	return style.Render(clip(text, width))
}

// scrolled shows the height-line window of content that keeps the span
// [y, y+span) visible.
func scrolled(content string, width, height, y, span int) string {
	vp := viewport.New(width, height)
	vp.SetContent(content)
	offset := 0
	if bottom := y + max(span, 1); bottom > height {
		offset = bottom - height
	}
	vp.SetYOffset(offset)
	return vp.View()
}

// clip truncates s to width cells.
func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// fit pads or clips s to exactly width x height cells.
func fit(s string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).Height(height).
		MaxWidth(width).MaxHeight(height).
		Render(s)
}

func pluralPages(n int) string {
	if n == 1 {
		return "1 page"
	}
	return fmt.Sprintf("%d pages", n)
}

// helpKeys adapts a binding list to help.KeyMap.
type helpKeys []key.Binding

func (k helpKeys) ShortHelp() []key.Binding  { return k }
func (k helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k} }
