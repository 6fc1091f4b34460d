// Package terminal implements render.Renderer and the input event source
// on top of a Bubble Tea program.
//
// Frames are composed on the caller's goroutine and handed to the program
// through a single-slot dirty signal, so drawing never waits on input
// delivery. Decoded input is forwarded on a bounded queue; the program
// blocks while the queue is full instead of dropping events.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/atomicstack/spider-tui/internal/input"
	"github.com/atomicstack/spider-tui/internal/logging"
	"github.com/atomicstack/spider-tui/internal/theme"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

// QueueSize bounds the input event queue.
const QueueSize = 50

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures a Terminal.
type Options struct {
	// Width and Height fix the frame size; 0 follows the terminal.
	Width  int
	Height int
	// Fingerprint identifies this client in the page list header.
	Fingerprint string
	// Input and Output override stdin/stdout.
	Input  io.Reader
	Output io.Writer
	// Inline keeps the program out of the alternate screen.
	Inline bool
}

// Terminal owns the Bubble Tea program.
type Terminal struct {
	opts    Options
	keys    input.KeyMap
	help    help.Model
	styles  *theme.Styles
	program *tea.Program

	events chan input.Event
	dirty  chan struct{}
	quit   chan struct{}
	done   chan struct{}

	mu     sync.Mutex
	frame  string
	width  int
	height int
	runErr error

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
}

func New(opts Options) *Terminal {
	t := &Terminal{
		opts:   opts,
		keys:   input.DefaultKeyMap(),
		help:   help.New(),
		styles: theme.Default(),
		events: make(chan input.Event, QueueSize),
		dirty:  make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		width:  defaultWidth,
		height: defaultHeight,
	}
	if opts.Width > 0 {
		t.width = opts.Width
	}
	if opts.Height > 0 {
		t.height = opts.Height
	}
	progOpts := []tea.ProgramOption{tea.WithReportFocus()}
	if !opts.Inline {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	t.program = tea.NewProgram(teaModel{t: t}, progOpts...)
	return t
}

// Events yields decoded input. It is closed when the program ends.
func (t *Terminal) Events() <-chan input.Event { return t.events }

// Done is closed when the program has ended and the terminal is restored.
func (t *Terminal) Done() <-chan struct{} { return t.done }

// Err returns the program's exit error once Done is closed.
func (t *Terminal) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.runErr
}

// Startup starts the program and the frame pump.
func (t *Terminal) Startup() error {
	err := errors.New("terminal already started")
	t.startOnce.Do(func() {
		err = nil
		t.mu.Lock()
		t.started = true
		t.mu.Unlock()
		go t.run()
		go t.pump()
	})
	return err
}

func (t *Terminal) run() {
	_, err := t.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("terminal program: %w", err)
		logging.Error(err)
	}
	t.mu.Lock()
	t.runErr = err
	t.mu.Unlock()
	close(t.events)
	close(t.done)
}

// pump forwards dirty signals to the program.
func (t *Terminal) pump() {
	for {
		select {
		case <-t.dirty:
			t.program.Send(frameMsg{})
		case <-t.done:
			return
		}
	}
}

// Shutdown stops the program, restores the terminal and waits for it.
func (t *Terminal) Shutdown() {
	t.stopOnce.Do(func() {
		close(t.quit)
		t.mu.Lock()
		started := t.started
		t.mu.Unlock()
		if !started {
			return
		}
		t.program.Quit()
		<-t.done
	})
}

// forward queues ev, blocking while the queue is full.
func (t *Terminal) forward(ev input.Event) {
	select {
	case t.events <- ev:
	case <-t.quit:
	}
}

func (t *Terminal) setSize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.opts.Width <= 0 && width > 0 {
		t.width = width
	}
	if t.opts.Height <= 0 && height > 0 {
		t.height = height
	}
}

// Size returns the current frame size.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

func (t *Terminal) setFrame(frame string) {
	t.mu.Lock()
	t.frame = frame
	t.mu.Unlock()
	select {
	case t.dirty <- struct{}{}:
	default:
	}
}

// Frame returns the most recently composed frame.
func (t *Terminal) Frame() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

type frameMsg struct{}

type teaModel struct {
	t *Terminal
}

func (m teaModel) Init() tea.Cmd { return nil }

func (m teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
	case tea.KeyMsg:
		m.t.forward(translateKey(msg))
	case tea.WindowSizeMsg:
		m.t.setSize(msg.Width, msg.Height)
		m.t.forward(input.Resize(msg.Width, msg.Height))
	case tea.MouseMsg:
		m.t.forward(input.Event{Kind: input.KindMouse})
	case tea.FocusMsg:
		m.t.forward(input.Event{Kind: input.KindFocus})
	case tea.BlurMsg:
		m.t.forward(input.Event{Kind: input.KindBlur})
	}
	return m, nil
}

func (m teaModel) View() string {
	return m.t.Frame()
}
