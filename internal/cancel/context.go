package cancel

import (
	"context"
	"time"
)

// Ensure compile-time interface compliance.
var _ Canceler = (*ContextCanceler)(nil)

// ContextCanceler wraps context.Context for cancellation signaling.
//
// Each call to Done() performs a non-blocking select on ctx.Done().
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContext creates a ContextCanceler from a parent context.
// It is cancelled by Cancel() or when the parent ends.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// NewTimeout creates a ContextCanceler that also cancels itself once d has
// elapsed. Err() then reports context.DeadlineExceeded.
func NewTimeout(parent context.Context, d time.Duration) *ContextCanceler {
	ctx, cancel := context.WithTimeout(parent, d)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done returns true if the context has been cancelled.
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel triggers cancellation of the context and releases its resources.
func (c *ContextCanceler) Cancel() {
	c.cancel()
}

// Context returns the underlying context.Context.
// Pass it to blocking queue operations so Cancel() wakes them.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}

// Err returns the context's error: nil, context.Canceled or
// context.DeadlineExceeded.
func (c *ContextCanceler) Err() error {
	return c.ctx.Err()
}
