package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout returns a context with timeout that is cancelled when the test ends.
func ContextWithTimeout(t testing.TB, duration time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	t.Cleanup(cancel)

	return ctx
}

// ContextWithDeadline returns a context with deadline that is cancelled when the test ends.
func ContextWithDeadline(t testing.TB, deadline time.Time) context.Context {
	t.Helper()

	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	t.Cleanup(cancel)

	return ctx
}

// ContextWithCancel returns a cancellable context that is also cancelled when the test ends.
func ContextWithCancel(t testing.TB) (context.Context, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return ctx, cancel
}
