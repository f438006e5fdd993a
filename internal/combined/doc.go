// Package combined provides benchmarks that run queues, cancellation and
// tickers together the way a producer/consumer worker loop does.
//
// These benchmarks are more representative than the per-package
// micro-benchmarks: they include goroutine handoffs, parking on a full or
// empty queue, and the cost of checking for cancellation and progress
// between items.
package combined
