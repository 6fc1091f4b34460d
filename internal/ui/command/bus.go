package command

import (
	"github.com/atomicstack/spider-tui/internal/logging/events"
	"github.com/atomicstack/spider-tui/internal/protocol"
)

// Bus queues outbound host messages in emission order until the owner
// hands them to the transport. It holds at most capacity messages.
type Bus struct {
	pending  []protocol.Message
	capacity int
}

// New initialises a command bus holding up to capacity messages.
func New(capacity int) *Bus {
	return &Bus{pending: make([]protocol.Message, 0, capacity), capacity: capacity}
}

// Emit queues msg for delivery. A full bus drops msg and reports false.
func (b *Bus) Emit(msg protocol.Message) bool {
	if b.Full() {
		events.Command.Skip(string(msg.Kind), "queue full")
		return false
	}
	events.Command.Queue(string(msg.Kind))
	b.pending = append(b.pending, msg)
	return true
}

// Len reports how many messages await delivery.
func (b *Bus) Len() int {
	return len(b.pending)
}

// Full reports whether another Emit would be dropped.
func (b *Bus) Full() bool {
	return len(b.pending) >= b.capacity
}

// Peek returns the oldest queued message.
func (b *Bus) Peek() (protocol.Message, bool) {
	if len(b.pending) == 0 {
		return protocol.Message{}, false
	}
	return b.pending[0], true
}

// Delivered drops the oldest queued message after a successful handoff.
func (b *Bus) Delivered() {
	if len(b.pending) == 0 {
		return
	}
	events.Command.Result(string(b.pending[0].Kind), nil)
	b.pending[0] = protocol.Message{}
	b.pending = b.pending[1:]
}

// Drain removes and returns every queued message.
func (b *Bus) Drain() []protocol.Message {
	out := b.pending
	b.pending = nil
	return out
}

// Discard drops everything still queued, tracing each message with reason.
func (b *Bus) Discard(reason string) {
	for _, msg := range b.pending {
		events.Command.Skip(string(msg.Kind), reason)
	}
	b.pending = nil
}
