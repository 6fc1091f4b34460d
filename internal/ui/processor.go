package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/atomicstack/spider-tui/internal/protocol"
	"github.com/atomicstack/spider-tui/internal/render"
)

// QueueSize bounds the processor's inbound queue, its pending outbound
// messages and the outbound channel.
const QueueSize = 50

// Processor runs a Model on its own goroutine. It receives input events
// and host messages through Deliver and publishes outbound host messages
// on Outbound, which is closed when Run returns.
type Processor struct {
	model    *Model
	renderer render.Renderer
	in       chan any
	out      chan protocol.Message
	done     chan struct{}
	shutdown sync.Once
}

func NewProcessor(model *Model, renderer render.Renderer) *Processor {
	return &Processor{
		model:    model,
		renderer: renderer,
		in:       make(chan any, QueueSize),
		out:      make(chan protocol.Message, QueueSize),
		done:     make(chan struct{}),
	}
}

// Deliver queues msg for the model. It blocks while the queue is full and
// returns false once the processor has stopped or ctx ends.
func (p *Processor) Deliver(ctx context.Context, msg any) bool {
	select {
	case <-p.done:
		return false
	default:
	}
	select {
	case p.in <- msg:
		return true
	case <-p.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// Outbound yields host messages emitted by the model, in order.
func (p *Processor) Outbound() <-chan protocol.Message { return p.out }

// Done is closed when Run has returned.
func (p *Processor) Done() <-chan struct{} { return p.done }

// Run starts the renderer, subscribes and processes messages until the
// model exits or ctx ends. The renderer is shut down exactly once on
// every path.
func (p *Processor) Run(ctx context.Context) error {
	defer close(p.done)
	defer close(p.out)
	defer p.shutdown.Do(p.renderer.Shutdown)

	if err := p.renderer.Startup(); err != nil {
		return fmt.Errorf("renderer startup: %w", err)
	}
	bus := p.model.Outbound()
	p.model.Start()
	p.model.Render(p.renderer)

	for !p.model.Exited() {
		var out chan<- protocol.Message
		next, pending := bus.Peek()
		if pending {
			out = p.out
		}
		// A full bus stops intake until the host catches up.
		in := p.in
		if bus.Full() {
			in = nil
		}
		select {
		case <-ctx.Done():
			p.flush()
			return nil
		case msg := <-in:
			p.model.Update(msg)
			if !p.model.Exited() {
				p.model.Render(p.renderer)
			}
		case out <- next:
			bus.Delivered()
		}
	}
	p.flush()
	return nil
}

// flush hands over whatever fits in the outbound buffer and discards the
// rest.
func (p *Processor) flush() {
	bus := p.model.Outbound()
	for {
		next, ok := bus.Peek()
		if !ok {
			return
		}
		select {
		case p.out <- next:
			bus.Delivered()
		default:
			bus.Discard("processor stopped")
			return
		}
	}
}
