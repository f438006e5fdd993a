// Package queue provides bounded FIFO queues shared between producer and
// consumer goroutines.
//
// This package offers two implementations of the Blocking interface:
//   - BoundedQueue: a monitor (one mutex plus a wait set per role) over a
//     fixed ring of slots
//   - ChannelQueue: the standard library approach using a buffered channel
//
// # Blocking and cancellation
//
// Produce blocks while the queue is full and Consume blocks while it is
// empty. A blocked call parks the goroutine; it never polls. Both take a
// context.Context, and a call whose context ends while waiting returns an
// error matching ErrCancelled (and the context's own error) without having
// changed the queue.
//
// Both implementations also satisfy the non-blocking Queue interface, where
// Push reports false on a full queue and Pop reports false on an empty one.
package queue

import "context"

// Queue is a non-blocking FIFO queue.
//
// Push returns false if full, Pop returns false if empty.
type Queue[T any] interface {
	// Push adds an item to the queue.
	// Returns false if the queue is full.
	Push(T) bool

	// Pop removes and returns an item from the queue.
	// Returns false if the queue is empty.
	Pop() (T, bool)
}

// Blocking is a bounded FIFO queue safe for any number of producers and
// consumers.
type Blocking[T any] interface {
	// Produce inserts an item at the tail, waiting while the queue is full.
	Produce(ctx context.Context, item T) error

	// Consume removes the head item, waiting while the queue is empty.
	Consume(ctx context.Context) (T, error)

	// Len returns the number of items currently queued.
	Len() int

	// Cap returns the fixed capacity of the queue.
	Cap() int
}

// State is the occupancy of a bounded queue.
type State int

const (
	// Empty means no items are queued; Consume would block.
	Empty State = iota
	// Partial means at least one item and at least one free slot.
	Partial
	// Full means every slot is occupied; Produce would block.
	Full
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Partial:
		return "partial"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

func stateOf(n, capacity int) State {
	switch {
	case n == 0:
		return Empty
	case n == capacity:
		return Full
	default:
		return Partial
	}
}
