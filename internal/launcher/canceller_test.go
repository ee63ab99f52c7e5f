package launcher

import (
	"context"
	"testing"
	"time"
)

func TestContextCancellerCancelsBoundContext(t *testing.T) {
	c := NewContextCanceller()
	ctx := c.Bind(context.Background())

	select {
	case <-ctx.Done():
		t.Fatal("context cancelled before request")
	default:
	}

	c.RequestCancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled after request")
	}

	// Repeated requests stay safe.
	c.RequestCancel()
}

func TestContextCancellerBeforeBind(t *testing.T) {
	c := NewContextCanceller()
	// Requesting cancellation before any run is bound must not panic.
	c.RequestCancel()

	ctx := c.Bind(context.Background())
	select {
	case <-ctx.Done():
		t.Fatal("fresh bind inherited a fired cancellation")
	default:
	}
}

func TestNopCancellerLeavesContextAlone(t *testing.T) {
	c := NewNopCanceller()
	ctx := c.Bind(context.Background())
	c.RequestCancel()

	select {
	case <-ctx.Done():
		t.Fatal("nop canceller cancelled the context")
	default:
	}
}
