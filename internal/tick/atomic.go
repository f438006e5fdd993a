package tick

import (
	"sync/atomic"
	"time"
)

// AtomicTicker uses the monotonic clock and atomic operations for tick
// checks that several goroutines can share.
//
// Times are kept as nanosecond offsets from a fixed epoch so the last tick
// fits in an atomic.Int64. A compare-and-swap on that offset guarantees
// that each elapsed interval is reported to exactly one caller.
type AtomicTicker struct {
	epoch    time.Time
	interval int64 // nanoseconds
	lastTick atomic.Int64
	ticks    atomic.Uint64
}

// NewAtomicTicker creates an AtomicTicker with the specified interval.
func NewAtomicTicker(interval time.Duration) *AtomicTicker {
	return &AtomicTicker{
		epoch:    time.Now(),
		interval: int64(interval),
	}
}

func (a *AtomicTicker) now() int64 {
	return int64(time.Since(a.epoch))
}

// Tick returns true if the interval has elapsed since the last tick.
func (a *AtomicTicker) Tick() bool {
	now := a.now()
	last := a.lastTick.Load()

	if now-last < a.interval {
		return false
	}
	if !a.lastTick.CompareAndSwap(last, now) {
		return false
	}
	a.ticks.Add(1)
	return true
}

// Reset starts a new interval from now.
func (a *AtomicTicker) Reset() {
	a.lastTick.Store(a.now())
}

// Stop is a no-op for AtomicTicker (no resources to release).
func (a *AtomicTicker) Stop() {}

// Ticks returns how many times Tick has returned true.
func (a *AtomicTicker) Ticks() uint64 {
	return a.ticks.Load()
}

// Interval returns the ticker's interval.
func (a *AtomicTicker) Interval() time.Duration {
	return time.Duration(a.interval)
}
