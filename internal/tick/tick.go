// Package tick provides periodic triggers that worker loops poll between
// units of work.
//
// A worker that is already looping over items (producing or consuming)
// can ask "has the interval elapsed?" on every iteration instead of running
// a separate timer goroutine. This package offers two implementations of
// the Ticker interface:
//   - StdTicker: Standard library time.Ticker wrapper
//   - AtomicTicker: monotonic clock plus compare-and-swap, so that when
//     several goroutines poll the same ticker exactly one of them sees each
//     tick
package tick

import "time"

// Ticker signals when a time interval has elapsed.
//
// Tick never blocks. Implementations are safe for concurrent use.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	Tick() bool

	// Reset starts a new interval from now.
	Reset()

	// Stop releases any resources held by the ticker.
	// After Stop, the ticker should not be used.
	Stop()
}

// DefaultInterval is the progress interval used when none is configured.
const DefaultInterval = time.Second
