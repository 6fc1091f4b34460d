package command

import (
	"testing"

	"github.com/atomicstack/spider-tui/internal/protocol"
)

func TestBusDeliversInOrder(t *testing.T) {
	b := New(4)
	b.Emit(protocol.Subscribe())
	b.Emit(protocol.Click("p", "ok", nil))
	if b.Len() != 2 {
		t.Fatalf("expected 2 pending, got %d", b.Len())
	}
	first, ok := b.Peek()
	if !ok || first.Kind != protocol.KindSubscribe {
		t.Fatalf("expected subscribe first, got %v", first.Kind)
	}
	b.Delivered()
	second, _ := b.Peek()
	if second.Kind != protocol.KindInputFor {
		t.Fatalf("expected input_for second, got %v", second.Kind)
	}
	b.Delivered()
	b.Delivered()
	if _, ok := b.Peek(); ok || b.Len() != 0 {
		t.Fatalf("expected empty bus")
	}
}

func TestBusDrainAndDiscard(t *testing.T) {
	b := New(4)
	b.Emit(protocol.Subscribe())
	if got := b.Drain(); len(got) != 1 || b.Len() != 0 {
		t.Fatalf("unexpected drain result %v, remaining %d", got, b.Len())
	}
	b.Emit(protocol.Subscribe())
	b.Discard("exit")
	if b.Len() != 0 {
		t.Fatalf("expected discard to empty the bus")
	}
}

func TestBusDropsWhenFull(t *testing.T) {
	b := New(2)
	if !b.Emit(protocol.Subscribe()) || !b.Emit(protocol.Click("p", "a", nil)) {
		t.Fatalf("expected emits within capacity to succeed")
	}
	if !b.Full() {
		t.Fatalf("expected bus to be full")
	}
	if b.Emit(protocol.Click("p", "b", nil)) || b.Len() != 2 {
		t.Fatalf("expected emit beyond capacity to be dropped, len=%d", b.Len())
	}
	b.Delivered()
	if b.Full() || !b.Emit(protocol.Click("p", "b", nil)) {
		t.Fatalf("expected room after delivery")
	}
}
