// Package cancel provides cancellation signaling for producer and consumer
// goroutines.
//
// A worker blocked inside queue.Produce or queue.Consume cannot poll a
// flag; it has to be woken. Every Canceler therefore exposes a
// context.Context that the blocking call selects on, alongside a cheap
// Done() check for the loop between items.
//
// This package offers two constructors for the Canceler interface:
//   - NewContext: cancelled explicitly, like interrupting a thread
//   - NewTimeout: cancelled explicitly or when a deadline passes
package cancel

import "context"

// Canceler provides cancellation signaling to workers.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done(), Err() and Context() concurrently
//   - Cancel() may be called concurrently with all of them
type Canceler interface {
	// Done returns true if cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()

	// Context returns a context that ends when cancellation is triggered.
	Context() context.Context

	// Err returns nil until cancellation, then the reason for it.
	Err() error
}
