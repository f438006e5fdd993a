package queue

import "context"

// Ensure compile-time interface compliance.
var (
	_ Blocking[any] = (*ChannelQueue[any])(nil)
	_ Queue[any]    = (*ChannelQueue[any])(nil)
)

// ChannelQueue wraps a buffered channel as a bounded queue.
//
// This is the standard library approach: the runtime's channel
// implementation is itself a mutex-guarded ring with parked sender and
// receiver queues. Produce and Consume select on the channel and on
// ctx.Done(); Push and Pop use select with default.
type ChannelQueue[T any] struct {
	ch chan T
}

// NewChannel creates a ChannelQueue with the specified buffer size.
// It returns an error wrapping ErrInvalidCapacity if size <= 0, since an
// unbuffered channel is a rendezvous, not a bounded buffer.
func NewChannel[T any](size int) (*ChannelQueue[T], error) {
	if size <= 0 {
		return nil, invalidCapacity(size)
	}
	return &ChannelQueue[T]{
		ch: make(chan T, size),
	}, nil
}

// Produce sends item, waiting while the buffer is full.
func (q *ChannelQueue[T]) Produce(ctx context.Context, item T) error {
	select {
	case q.ch <- item:
		return nil
	default:
	}

	select {
	case q.ch <- item:
		return nil
	case <-ctx.Done():
		return cancelled(ctx)
	}
}

// Consume receives the oldest item, waiting while the buffer is empty.
func (q *ChannelQueue[T]) Consume(ctx context.Context) (T, error) {
	select {
	case v := <-q.ch:
		return v, nil
	default:
	}

	select {
	case v := <-q.ch:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, cancelled(ctx)
	}
}

// Push adds an item to the queue.
// Returns false if the queue is full (non-blocking).
func (q *ChannelQueue[T]) Push(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// Pop removes and returns an item from the queue.
// Returns false if the queue is empty (non-blocking).
func (q *ChannelQueue[T]) Pop() (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Len returns the current number of items in the queue.
func (q *ChannelQueue[T]) Len() int {
	return len(q.ch)
}

// Cap returns the capacity of the queue.
func (q *ChannelQueue[T]) Cap() int {
	return cap(q.ch)
}

// State reports whether the queue is empty, partially filled or full.
// The result may be stale by the time it is returned.
func (q *ChannelQueue[T]) State() State {
	return stateOf(len(q.ch), cap(q.ch))
}
