package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/atomicstack/spider-tui/internal/logging"
	"github.com/atomicstack/spider-tui/internal/logging/events"
	"github.com/atomicstack/spider-tui/internal/protocol"
)

// QueueSize is the capacity of the inbound message queue.
const QueueSize = 50

// DefaultRetryInterval paces dial attempts when Options leaves it unset.
const DefaultRetryInterval = 500 * time.Millisecond

// ErrNoAddress is returned by Dial when no address is configured.
var ErrNoAddress = errors.New("no host address configured")

// DialFunc opens a stream connection.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Options configure a host connection.
type Options struct {
	Compression protocol.Compression
	// RetryInterval paces dial attempts across addresses.
	RetryInterval time.Duration
	// Hello is sent as the first frame when non-nil.
	Hello *protocol.Hello
	Dial  DialFunc
}

// Conn is a connection to the host. Inbound messages are published on a
// bounded queue that is closed when the stream ends.
type Conn struct {
	addr   string
	conn   net.Conn
	writer *protocol.Writer

	ctx    context.Context
	cancel context.CancelFunc

	events chan protocol.Message
	wg     sync.WaitGroup

	closeOnce sync.Once
	mu        sync.Mutex
	err       error
}

// Dial tries each address in order, pausing RetryInterval between attempts,
// until one connects or ctx ends.
func Dial(ctx context.Context, addrs []string, opts Options) (*Conn, error) {
	if len(addrs) == 0 {
		return nil, ErrNoAddress
	}
	dial := opts.Dial
	if dial == nil {
		var d net.Dialer
		dial = d.DialContext
	}
	interval := opts.RetryInterval
	if interval <= 0 {
		interval = DefaultRetryInterval
	}
	throttle := newThrottle(interval)
	for {
		for _, addr := range addrs {
			if err := throttle.wait(ctx); err != nil {
				return nil, fmt.Errorf("dial host: %w", err)
			}
			conn, err := dial(ctx, "tcp", addr)
			events.Protocol.Dial(addr, err)
			if err != nil {
				logging.Errorf("dial %s: %v", addr, err)
				continue
			}
			c := NewConn(conn, addr, opts.Compression)
			if opts.Hello != nil {
				if err := c.Send(ctx, protocol.HelloMessage(*opts.Hello)); err != nil {
					c.Close()
					return nil, fmt.Errorf("send hello: %w", err)
				}
			}
			return c, nil
		}
	}
}

// NewConn starts reading from an established stream.
func NewConn(conn net.Conn, addr string, compression protocol.Compression) *Conn {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Conn{
		addr:   addr,
		conn:   conn,
		writer: protocol.NewWriter(conn, compression),
		ctx:    ctx,
		cancel: cancel,
		events: make(chan protocol.Message, QueueSize),
	}
	c.wg.Add(1)
	go c.read()
	go func() {
		c.wg.Wait()
		close(c.events)
	}()
	return c
}

// Addr returns the address the connection was made to.
func (c *Conn) Addr() string {
	return c.addr
}

// Events returns the inbound message queue.
func (c *Conn) Events() <-chan protocol.Message {
	return c.events
}

// Err returns the error that ended the read loop, if any. A clean end of
// stream or a local Close is not an error.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Send writes msg to the host. It is safe for concurrent use. Cancelling
// ctx unblocks a write the host is not reading; the stream is unusable
// afterwards.
func (c *Conn) Send(ctx context.Context, msg protocol.Message) error {
	if err := c.ctx.Err(); err != nil {
		return fmt.Errorf("send %s: connection closed", msg.Kind)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send %s: %w", msg.Kind, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
	}
	interrupted := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetWriteDeadline(time.Now())
		close(interrupted)
	})
	defer func() {
		if !stop() {
			<-interrupted
		}
		_ = c.conn.SetWriteDeadline(time.Time{})
	}()
	if err := c.writer.Write(msg); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("send %s: %w", msg.Kind, ctxErr)
		}
		return fmt.Errorf("send %s: %w", msg.Kind, err)
	}
	events.Protocol.Send(string(msg.Kind))
	return nil
}

// Close shuts the connection and waits for the read loop to exit.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
		c.wg.Wait()
	})
	return err
}

func (c *Conn) read() {
	defer c.wg.Done()
	reader := protocol.NewReader(c.conn)
	for {
		msg, err := reader.Read()
		if err != nil {
			c.finish(err)
			return
		}
		events.Protocol.Recv(string(msg.Kind))
		select {
		case <-c.ctx.Done():
			return
		case c.events <- msg:
		}
	}
}

func (c *Conn) finish(err error) {
	if errors.Is(err, io.EOF) || c.ctx.Err() != nil {
		err = nil
	}
	if err != nil {
		logging.Error(fmt.Errorf("host connection %s: %w", c.addr, err))
	}
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
	events.Protocol.Closed(err)
}
