package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/spider-tui/internal/input"
	"github.com/atomicstack/spider-tui/internal/page"
	"github.com/atomicstack/spider-tui/internal/protocol"
	"github.com/atomicstack/spider-tui/internal/testutil"
)

func runProcessor(t *testing.T, ctx context.Context, p *Processor) <-chan error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- p.Run(ctx) }()
	return errc
}

func TestProcessorSubscribesAndExitsOnQuit(t *testing.T) {
	rec := &Recorder{}
	p := NewProcessor(NewModel(), rec)
	errc := runProcessor(t, context.Background(), p)

	first := testutil.RequireReceive(t, p.Outbound(), time.Second, "subscribe")
	if first.Kind != protocol.KindSubscribe {
		t.Fatalf("expected subscribe, got %s", first.Kind)
	}
	if !p.Deliver(context.Background(), input.KeyPress(input.Runes("q"))) {
		t.Fatalf("deliver failed")
	}
	if err := testutil.RequireReceive(t, errc, time.Second, "run result"); err != nil {
		t.Fatalf("run: %v", err)
	}
	testutil.RequireClosed(t, p.Outbound(), time.Second, "outbound")
	if rec.Startups != 1 || rec.Shutdowns != 1 {
		t.Fatalf("expected one startup and one shutdown, got %d/%d", rec.Startups, rec.Shutdowns)
	}
	if p.Deliver(context.Background(), input.KeyPress(input.Runes("q"))) {
		t.Fatalf("expected deliver to fail after exit")
	}
}

func TestProcessorStopsOnCancel(t *testing.T) {
	rec := &Recorder{}
	p := NewProcessor(NewModel(), rec)
	ctx, cancel := context.WithCancel(context.Background())
	errc := runProcessor(t, ctx, p)
	testutil.RequireReceive(t, p.Outbound(), time.Second, "subscribe")
	cancel()
	if err := testutil.RequireReceive(t, errc, time.Second, "run result"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.Shutdowns != 1 {
		t.Fatalf("expected one shutdown, got %d", rec.Shutdowns)
	}
}

func TestProcessorStartupFailure(t *testing.T) {
	boom := errors.New("no tty")
	rec := &Recorder{StartErr: boom}
	p := NewProcessor(NewModel(), rec)
	errc := runProcessor(t, context.Background(), p)
	if err := testutil.RequireReceive(t, errc, time.Second, "run result"); !errors.Is(err, boom) {
		t.Fatalf("expected startup error, got %v", err)
	}
	if got := testutil.RequireClosed(t, p.Outbound(), time.Second, "outbound"); len(got) != 0 {
		t.Fatalf("expected nothing sent, got %+v", got)
	}
	if rec.Shutdowns != 1 {
		t.Fatalf("expected shutdown on the failure path, got %d", rec.Shutdowns)
	}
}

func TestProcessorFlushesPendingOnExit(t *testing.T) {
	rec := &Recorder{}
	m := NewModel()
	p := NewProcessor(m, rec)
	// Queue the inputs before Run so the model handles them back to back.
	for _, msg := range []any{
		protocol.Pages(nil),
		input.KeyPress(input.Special(input.CodeCtrlC)),
	} {
		if !p.Deliver(context.Background(), msg) {
			t.Fatalf("deliver failed")
		}
	}
	errc := runProcessor(t, context.Background(), p)
	if err := testutil.RequireReceive(t, errc, time.Second, "run result"); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := testutil.RequireClosed(t, p.Outbound(), time.Second, "outbound")
	if len(got) != 1 || got[0].Kind != protocol.KindSubscribe {
		t.Fatalf("expected the subscribe to be flushed, got %+v", got)
	}
}

func TestProcessorAppliesBackpressureWithoutDropping(t *testing.T) {
	p := NewProcessor(NewModel(), &Recorder{})
	errc := runProcessor(t, context.Background(), p)
	enter := input.KeyPress(input.Special(input.CodeEnter))
	for _, msg := range []any{protocol.Pages([]page.Definition{def("main", "Main", page.Rows("root", page.Button("a", "A")))}), enter} {
		if !p.Deliver(context.Background(), msg) {
			t.Fatalf("deliver failed")
		}
	}

	clicks := 0
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		ok := p.Deliver(ctx, enter)
		cancel()
		if !ok {
			break
		}
		clicks++
		if clicks > 10*QueueSize {
			t.Fatalf("expected intake to stall while outbound is not read")
		}
	}

	if first := testutil.RequireReceive(t, p.Outbound(), time.Second, "subscribe"); first.Kind != protocol.KindSubscribe {
		t.Fatalf("expected subscribe first, got %s", first.Kind)
	}
	for i := 0; i < clicks; i++ {
		msg := testutil.RequireReceive(t, p.Outbound(), time.Second, "click")
		if msg.Input == nil || msg.Input.Kind != protocol.InputClick {
			t.Fatalf("message %d: expected click, got %+v", i, msg)
		}
	}
	if !p.Deliver(context.Background(), input.KeyPress(input.Special(input.CodeCtrlC))) {
		t.Fatalf("deliver quit failed")
	}
	if err := testutil.RequireReceive(t, errc, time.Second, "run result"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if rest := testutil.RequireClosed(t, p.Outbound(), time.Second, "outbound"); len(rest) != 0 {
		t.Fatalf("expected every click accounted for, got %d extra", len(rest))
	}
}
