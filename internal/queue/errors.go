package queue

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity indicates a queue was requested with capacity <= 0.
	ErrInvalidCapacity = errors.New("queue: capacity must be positive")

	// ErrCancelled indicates a blocked Produce or Consume gave up because
	// its context ended. The queue is left exactly as it was.
	ErrCancelled = errors.New("queue: wait cancelled")
)

func invalidCapacity(capacity int) error {
	return fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
}

// cancelled wraps both ErrCancelled and the context's cause so callers can
// match either with errors.Is.
func cancelled(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
}
