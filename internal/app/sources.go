package app

import (
	"context"

	"github.com/atomicstack/spider-tui/internal/input"
	"github.com/atomicstack/spider-tui/internal/protocol"
)

// InputSource yields terminal input until it closes.
type InputSource interface {
	Events() <-chan input.Event
}

// Host is the transport to the host.
type Host interface {
	Events() <-chan protocol.Message
	Send(ctx context.Context, msg protocol.Message) error
}
