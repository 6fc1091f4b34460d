package ui

import (
	"reflect"

	"github.com/atomicstack/spider-tui/internal/data/dispatcher"
	"github.com/atomicstack/spider-tui/internal/input"
	"github.com/atomicstack/spider-tui/internal/logging/events"
	"github.com/atomicstack/spider-tui/internal/page"
	"github.com/atomicstack/spider-tui/internal/protocol"
	"github.com/atomicstack/spider-tui/internal/render"
	"github.com/atomicstack/spider-tui/internal/state"
	"github.com/atomicstack/spider-tui/internal/ui/command"
	uistate "github.com/atomicstack/spider-tui/internal/ui/state"
)

// View is the processor state.
type View int

const (
	ViewList View = iota
	ViewPage
)

func (v View) String() string {
	if v == ViewPage {
		return "page"
	}
	return "list"
}

type msgHandler func(any)

// Model is the processor state machine.
type Model struct {
	view   View
	exit   bool
	keys   input.KeyMap
	prompt uistate.Prompt

	pages      state.PageStore
	datasets   state.DatasetStore
	states     map[string]*uistate.PageState
	dispatcher *dispatcher.Dispatcher
	bus        *command.Bus

	handlers map[reflect.Type]msgHandler
}

// NewModel returns a model in the page list view with empty stores.
func NewModel() *Model {
	pages := state.NewPageStore()
	datasets := state.NewDatasetStore()
	m := &Model{
		view:       ViewList,
		keys:       input.DefaultKeyMap(),
		pages:      pages,
		datasets:   datasets,
		states:     make(map[string]*uistate.PageState),
		dispatcher: dispatcher.New(pages, datasets),
		bus:        command.New(QueueSize),
	}
	m.registerHandlers()
	return m
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(input.Event{}):      m.handleInputEvent,
		reflect.TypeOf(protocol.Message{}): m.handleHostMessage,
	}
}

func (m *Model) handlerFor(msg any) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	return nil
}

// Update applies one input event or host message. Values of other types
// are ignored.
func (m *Model) Update(msg any) {
	if m.exit {
		return
	}
	if p, ok := msg.(*protocol.Message); ok && p != nil {
		msg = *p
	}
	if ev, ok := msg.(*input.Event); ok && ev != nil {
		msg = *ev
	}
	if handler := m.handlerFor(msg); handler != nil {
		handler(msg)
	}
}

// Start queues the subscription that opens the session with the host.
func (m *Model) Start() {
	m.bus.Emit(protocol.Subscribe())
}

// Render draws the active view. An open page that has disappeared from the
// page set sends the view back to the list first.
func (m *Model) Render(r render.Renderer) {
	if m.view == ViewPage {
		p, ok := m.pages.Selected()
		if !ok {
			m.switchView(ViewList, "")
			r.RenderPageList(m.pages.Pages(), m.pages.SelectedIndex(), &m.prompt)
			return
		}
		r.RenderPage(p, m.pageState(p.ID()), m.datasets)
		return
	}
	r.RenderPageList(m.pages.Pages(), m.pages.SelectedIndex(), &m.prompt)
}

// Exited reports whether the model reached the exit state.
func (m *Model) Exited() bool { return m.exit }

// View returns the active view.
func (m *Model) View() View { return m.view }

// Pages exposes the page set for inspection.
func (m *Model) Pages() state.PageStore { return m.pages }

// Datasets exposes the dataset store for inspection.
func (m *Model) Datasets() state.DatasetStore { return m.datasets }

// Prompt exposes the jump prompt.
func (m *Model) Prompt() *uistate.Prompt { return &m.prompt }

// Outbound exposes the queue of host messages awaiting delivery.
func (m *Model) Outbound() *command.Bus { return m.bus }

// PageState returns the state of the page with the given id, creating it
// on first use.
func (m *Model) PageState(id string) *uistate.PageState {
	return m.pageState(id)
}

func (m *Model) pageState(id string) *uistate.PageState {
	st, ok := m.states[id]
	if !ok {
		st = uistate.NewPageState()
		m.states[id] = st
	}
	return st
}

// current returns the open page and its state.
func (m *Model) current() (*page.Page, *uistate.PageState, bool) {
	p, ok := m.pages.Selected()
	if !ok {
		return nil, nil, false
	}
	return p, m.pageState(p.ID()), true
}

func (m *Model) switchView(to View, pageID string) {
	if m.view == to {
		return
	}
	events.View.Switch(m.view.String(), to.String(), pageID)
	m.view = to
}

func (m *Model) quit() {
	m.exit = true
}
