package testutil

import (
	"fmt"
	"testing"
	"time"
)

type recorder struct {
	failed string
}

func (r *recorder) Helper() {}

func (r *recorder) Fatalf(format string, args ...any) {
	r.failed = fmt.Sprintf(format, args...)
	panic(r)
}

func expectFailure(t *testing.T, fn func(*recorder)) string {
	t.Helper()
	r := &recorder{}
	func() {
		defer func() {
			if v := recover(); v != nil && v != r {
				panic(v)
			}
		}()
		fn(r)
	}()
	if r.failed == "" {
		t.Fatalf("expected helper to fail")
	}
	return r.failed
}

func TestRequireReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 7
	if got := RequireReceive(t, ch, time.Second); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	close(ch)
	msg := expectFailure(t, func(r *recorder) { RequireReceive(r, ch, time.Second, "reading %s", "x") })
	if msg != "channel closed without sending a value: reading x" {
		t.Fatalf("unexpected failure %q", msg)
	}
}

func TestRequireSendTimesOut(t *testing.T) {
	ch := make(chan int)
	expectFailure(t, func(r *recorder) { RequireSend(r, ch, 1, 10*time.Millisecond) })
}

func TestRequireClosedDrains(t *testing.T) {
	ch := make(chan string, 2)
	ch <- "a"
	ch <- "b"
	close(ch)
	if got := RequireClosed(t, ch, time.Second); len(got) != 2 {
		t.Fatalf("expected two drained values, got %v", got)
	}
}
