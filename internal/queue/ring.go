package queue

// ring is fixed-size circular storage for BoundedQueue.
//
// It has no synchronization of its own: every method must be called with
// the owning queue's mutex held. Misuse panics, since it can only happen
// when the caller's locking or wait loop is broken.
type ring[T any] struct {
	buf  []T // len(buf) == capacity, never resized
	head int // index of the oldest item, 0 <= head < len(buf)
	n    int // occupied slots, 0 <= n <= len(buf)
}

func newRing[T any](capacity int) ring[T] {
	return ring[T]{buf: make([]T, capacity)}
}

func (r *ring[T]) len() int { return r.n }

func (r *ring[T]) cap() int { return len(r.buf) }

func (r *ring[T]) empty() bool { return r.n == 0 }

func (r *ring[T]) full() bool { return r.n == len(r.buf) }

// push writes v into the slot after the newest item.
func (r *ring[T]) push(v T) {
	if r.full() {
		panic("queue: push into full ring")
	}
	tail := r.head + r.n
	if tail >= len(r.buf) {
		tail -= len(r.buf)
	}
	r.buf[tail] = v
	r.n++
	r.check()
}

// pop removes the oldest item and clears its slot so the ring keeps no
// reference to a value it has handed out.
func (r *ring[T]) pop() T {
	if r.empty() {
		panic("queue: pop from empty ring")
	}
	var zero T
	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head++
	if r.head == len(r.buf) {
		r.head = 0
	}
	r.n--
	r.check()
	return v
}

func (r *ring[T]) check() {
	if r.n < 0 || r.n > len(r.buf) {
		panic("queue: ring count out of range")
	}
}
