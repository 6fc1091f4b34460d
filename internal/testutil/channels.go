package testutil

import (
	"fmt"
	"time"
)

// TB is the subset of testing.TB the channel helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireReceive returns the next value from ch, failing the test if ch
// is closed or nothing arrives within timeout.
func RequireReceive[T any](t TB, ch <-chan T, timeout time.Duration, msgAndArgs ...any) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed without sending a value: %s", formatMessage(msgAndArgs))
		}
		return v
	case <-time.After(timeout):
		t.Fatalf("timed out after %v: %s", timeout, formatMessage(msgAndArgs))
	}
	panic("unreachable")
}

// RequireSend sends v on ch within timeout, or fails the test.
func RequireSend[T any](t TB, ch chan<- T, v T, timeout time.Duration, msgAndArgs ...any) {
	t.Helper()
	select {
	case ch <- v:
	case <-time.After(timeout):
		t.Fatalf("timed out after %v: %s", timeout, formatMessage(msgAndArgs))
	}
}

// RequireClosed drains ch until it is closed, failing the test if that
// does not happen within timeout. It returns the drained values.
func RequireClosed[T any](t TB, ch <-chan T, timeout time.Duration, msgAndArgs ...any) []T {
	t.Helper()
	deadline := time.After(timeout)
	var drained []T
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return drained
			}
			drained = append(drained, v)
		case <-deadline:
			t.Fatalf("timed out after %v waiting for close: %s", timeout, formatMessage(msgAndArgs))
		}
	}
}

func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprint(msgAndArgs...)
}
