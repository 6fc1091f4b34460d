package ui

import (
	"github.com/atomicstack/spider-tui/internal/dataset"
	"github.com/atomicstack/spider-tui/internal/input"
	"github.com/atomicstack/spider-tui/internal/page"
	"github.com/atomicstack/spider-tui/internal/protocol"
	uistate "github.com/atomicstack/spider-tui/internal/ui/state"
)

// Frame is one recorded render call.
type Frame struct {
	View      View
	PageIDs   []string
	Highlight int
	Query     string
	PageID    string
	Focus     uistate.Focus
	Err       error
}

// Recorder is a render.Renderer that records every call.
type Recorder struct {
	Frames    []Frame
	Startups  int
	Shutdowns int
	StartErr  error
}

func (r *Recorder) Startup() error {
	r.Startups++
	return r.StartErr
}

func (r *Recorder) Shutdown() {
	r.Shutdowns++
}

func (r *Recorder) RenderPageList(pages []*page.Page, highlight int, prompt *uistate.Prompt) {
	ids := make([]string, len(pages))
	for i, p := range pages {
		ids[i] = p.ID()
	}
	f := Frame{View: ViewList, PageIDs: ids, Highlight: highlight}
	if prompt != nil && prompt.Active {
		f.Query = prompt.Query
	}
	r.Frames = append(r.Frames, f)
}

func (r *Recorder) RenderPage(p *page.Page, st *uistate.PageState, _ dataset.Source) {
	f := Frame{View: ViewPage, PageID: p.ID()}
	if st != nil {
		f.Focus = st.Focus
		f.Err = st.Err
	}
	r.Frames = append(r.Frames, f)
}

// Last returns the most recent frame.
func (r *Recorder) Last() (Frame, bool) {
	if len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// Harness drives the model synchronously for tests, rendering after every
// message the way the processor does.
type Harness struct {
	model    *Model
	renderer *Recorder
}

// NewHarness creates a harness for the provided model and performs the
// startup sequence.
func NewHarness(model *Model) *Harness {
	h := &Harness{model: model, renderer: &Recorder{}}
	_ = h.renderer.Startup()
	model.Start()
	model.Render(h.renderer)
	return h
}

// Send routes a message through the model and renders.
func (h *Harness) Send(msg any) {
	h.model.Update(msg)
	if !h.model.Exited() {
		h.model.Render(h.renderer)
	}
}

// Key sends a key press.
func (h *Harness) Key(k input.Key) {
	h.Send(input.KeyPress(k))
}

// Type sends one key press per rune of s.
func (h *Harness) Type(s string) {
	for _, r := range s {
		h.Key(input.Runes(string(r)))
	}
}

// Host sends a host message.
func (h *Harness) Host(msg protocol.Message) {
	h.Send(msg)
}

// Outbound drains the messages the model emitted so far.
func (h *Harness) Outbound() []protocol.Message {
	return h.model.Outbound().Drain()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

// Renderer exposes the recording renderer.
func (h *Harness) Renderer() *Recorder {
	return h.renderer
}
