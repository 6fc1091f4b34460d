package backend

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/atomicstack/spider-tui/internal/protocol"
	"github.com/atomicstack/spider-tui/internal/testutil"
)

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })
	return ln
}

func TestDialSendsHelloAndPublishesMessages(t *testing.T) {
	ln := listen(t)
	received := make(chan protocol.Message, 4)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := protocol.NewReader(conn)
		w := protocol.NewWriter(conn, protocol.CompressionNone)
		for i := 0; i < 2; i++ {
			msg, err := r.Read()
			if err != nil {
				return
			}
			received <- msg
		}
		_ = w.Write(protocol.Dataset("/d", nil))
		_ = w.Write(protocol.GetPage("p"))
	}()

	attempts := 0
	dial := func(ctx context.Context, network, addr string) (net.Conn, error) {
		attempts++
		if addr == "unreachable" {
			return nil, errors.New("refused")
		}
		var d net.Dialer
		return d.DialContext(ctx, network, addr)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, []string{"unreachable", ln.Addr().String()}, Options{
		RetryInterval: time.Millisecond,
		Hello:         &protocol.Hello{Client: "test"},
		Dial:          dial,
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()
	if attempts != 2 {
		t.Fatalf("expected second address to connect, attempts=%d", attempts)
	}
	if err := c.Send(ctx, protocol.Subscribe()); err != nil {
		t.Fatalf("send: %v", err)
	}

	hello := testutil.RequireReceive(t, received, 2*time.Second, "hello")
	if hello.Kind != protocol.KindHello || hello.Hello.Client != "test" {
		t.Fatalf("expected hello first, got %+v", hello)
	}
	if sub := testutil.RequireReceive(t, received, 2*time.Second, "subscribe"); sub.Kind != protocol.KindSubscribe {
		t.Fatalf("expected subscribe, got %s", sub.Kind)
	}

	first := testutil.RequireReceive(t, c.Events(), 2*time.Second, "dataset")
	if first.Kind != protocol.KindDataset || first.Dataset != "/d" {
		t.Fatalf("unexpected first message %+v", first)
	}
	rest := testutil.RequireClosed(t, c.Events(), 2*time.Second, "events closed on EOF")
	if len(rest) != 1 || rest[0].Kind != protocol.KindGetPage {
		t.Fatalf("unexpected remaining messages %+v", rest)
	}
	if c.Err() != nil {
		t.Fatalf("clean EOF should not be an error, got %v", c.Err())
	}
}

func TestDialWithoutAddresses(t *testing.T) {
	if _, err := Dial(context.Background(), nil, Options{}); !errors.Is(err, ErrNoAddress) {
		t.Fatalf("expected ErrNoAddress, got %v", err)
	}
}

func TestDialStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	dial := func(context.Context, string, string) (net.Conn, error) {
		return nil, errors.New("refused")
	}
	_, err := Dial(ctx, []string{"a", "b"}, Options{RetryInterval: 5 * time.Millisecond, Dial: dial})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestDecodeErrorClosesQueue(t *testing.T) {
	client, server := net.Pipe()
	c := NewConn(client, "pipe", protocol.CompressionNone)
	defer c.Close()
	go func() {
		_ = protocol.WriteFrame(server, []byte{0xff, 0x00}, protocol.CompressionNone)
		server.Close()
	}()
	testutil.RequireClosed(t, c.Events(), 2*time.Second, "queue closed after bad frame")
	if c.Err() == nil {
		t.Fatalf("expected decode error recorded")
	}
}

func TestCloseEndsReadLoop(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	c := NewConn(client, "pipe", protocol.CompressionNone)
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	testutil.RequireClosed(t, c.Events(), 2*time.Second, "queue closed after Close")
	if c.Err() != nil {
		t.Fatalf("local close should not be an error, got %v", c.Err())
	}
	if err := c.Send(context.Background(), protocol.Subscribe()); err == nil {
		t.Fatalf("expected send on closed connection to fail")
	}
}

func TestThrottleHonoursContext(t *testing.T) {
	th := newThrottle(time.Hour)
	if err := th.wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := th.wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestSendUnblocksOnCancel(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	c := NewConn(client, "pipe", protocol.CompressionNone)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- c.Send(ctx, protocol.TextInput("p", "e", nil, "stuck")) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	if err := testutil.RequireReceive(t, errc, time.Second, "send result"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if err := c.Send(ctx, protocol.Subscribe()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected send on a cancelled context to fail, got %v", err)
	}
}
