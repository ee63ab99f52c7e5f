package launcher

import (
	"context"
	"sync"
)

// Canceller models the cooperative cancellation capability bound to a child
// process. Bind derives the execution context the child is spawned under;
// RequestCancel asks the child to stop and is safe to call more than once.
type Canceller interface {
	Bind(ctx context.Context) context.Context
	RequestCancel()
}

// NewContextCanceller returns the standard canceller, backed by context
// cancellation of the spawned command.
func NewContextCanceller() Canceller {
	return &contextCanceller{}
}

type contextCanceller struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

func (c *contextCanceller) Bind(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	return ctx
}

func (c *contextCanceller) RequestCancel() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// NewNopCanceller returns the degraded-mode canceller: cancellation requests
// are accepted but never reach the child, so termination is not guaranteed.
func NewNopCanceller() Canceller {
	return nopCanceller{}
}

type nopCanceller struct{}

func (nopCanceller) Bind(ctx context.Context) context.Context { return ctx }

func (nopCanceller) RequestCancel() {}
