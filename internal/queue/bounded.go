package queue

import (
	"context"
	"sync"
)

// Ensure compile-time interface compliance.
var (
	_ Blocking[any] = (*BoundedQueue[any])(nil)
	_ Queue[any]    = (*BoundedQueue[any])(nil)
)

// BoundedQueue is a fixed-capacity FIFO queue built as a monitor.
//
// One mutex guards the ring, and each role has its own wait set: a channel
// that waiters park on and that is closed (and replaced) to wake all of
// them at once. Using channels rather than sync.Cond lets a parked
// goroutine also select on ctx.Done().
//
// Every successful Produce wakes all waiting consumers and every successful
// Consume wakes all waiting producers. Woken goroutines re-acquire the
// mutex and re-check their condition, so a wake that loses the race for
// the slot, or any other spurious wake, just parks again.
type BoundedQueue[T any] struct {
	mu sync.Mutex
	r  ring[T]

	notFull  waitSet // producers waiting for a free slot
	notEmpty waitSet // consumers waiting for an item
}

// waitSet is a broadcast-only wait set. It must be used with the owning
// queue's mutex held.
//
// ch is non-nil iff a waiter has registered since the last broadcast.
// Woken waiters only leave after they re-acquire the mutex, so waiters can
// still be positive when ch is nil; it is kept for the underflow check and
// must not gate broadcast.
type waitSet struct {
	ch      chan struct{}
	waiters int
}

// enter registers a waiter and returns the channel it should park on.
// Registration happens under the mutex, so any state change after the
// waiter released the mutex is guaranteed to close this channel.
func (w *waitSet) enter() <-chan struct{} {
	if w.ch == nil {
		w.ch = make(chan struct{})
	}
	w.waiters++
	return w.ch
}

func (w *waitSet) leave() {
	w.waiters--
	if w.waiters < 0 {
		panic("queue: wait set underflow")
	}
}

// broadcast wakes every waiter registered since the previous broadcast.
func (w *waitSet) broadcast() {
	if w.ch == nil {
		return
	}
	close(w.ch)
	w.ch = nil
}

// New creates a BoundedQueue holding at most capacity items.
// It returns an error wrapping ErrInvalidCapacity if capacity <= 0.
func New[T any](capacity int) (*BoundedQueue[T], error) {
	if capacity <= 0 {
		return nil, invalidCapacity(capacity)
	}
	return &BoundedQueue[T]{r: newRing[T](capacity)}, nil
}

// Produce appends item to the tail of the queue, waiting while it is full.
//
// If ctx ends while waiting, Produce returns an error matching ErrCancelled
// and the queue is unchanged. A call that does not need to wait succeeds
// even if ctx is already done.
func (q *BoundedQueue[T]) Produce(ctx context.Context, item T) error {
	q.mu.Lock()
	for q.r.full() {
		if err := q.wait(ctx, &q.notFull); err != nil {
			return err
		}
	}
	q.r.push(item)
	q.notEmpty.broadcast()
	q.mu.Unlock()
	return nil
}

// Consume removes and returns the item at the head of the queue, waiting
// while it is empty.
//
// If ctx ends while waiting, Consume returns an error matching ErrCancelled
// and the queue is unchanged.
func (q *BoundedQueue[T]) Consume(ctx context.Context) (T, error) {
	q.mu.Lock()
	for q.r.empty() {
		if err := q.wait(ctx, &q.notEmpty); err != nil {
			var zero T
			return zero, err
		}
	}
	v := q.r.pop()
	q.notFull.broadcast()
	q.mu.Unlock()
	return v, nil
}

// wait parks the caller on ws until it is woken or ctx ends.
//
// It must be called with q.mu held. On a wake it returns nil with q.mu held
// again, and the caller must re-check its condition. On cancellation it
// returns the error with q.mu released.
func (q *BoundedQueue[T]) wait(ctx context.Context, ws *waitSet) error {
	wake := ws.enter()
	q.mu.Unlock()

	select {
	case <-wake:
		q.mu.Lock()
		ws.leave()
		return nil
	case <-ctx.Done():
		q.mu.Lock()
		ws.leave()
		q.mu.Unlock()
		return cancelled(ctx)
	}
}

// Push adds an item without waiting.
// Returns false if the queue is full.
func (q *BoundedQueue[T]) Push(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.r.full() {
		return false
	}
	q.r.push(item)
	q.notEmpty.broadcast()
	return true
}

// Pop removes and returns the head item without waiting.
// Returns false if the queue is empty.
func (q *BoundedQueue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.r.empty() {
		var zero T
		return zero, false
	}
	v := q.r.pop()
	q.notFull.broadcast()
	return v, true
}

// Len returns the current number of items in the queue.
func (q *BoundedQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.r.len()
}

// Cap returns the capacity of the queue.
func (q *BoundedQueue[T]) Cap() int {
	return q.r.cap()
}

// State reports whether the queue is empty, partially filled or full.
func (q *BoundedQueue[T]) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return stateOf(q.r.len(), q.r.cap())
}
