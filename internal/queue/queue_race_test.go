package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/go-bounded-queue/internal/queue"
)

type item struct {
	producer int
	seq      int
}

// TestBlocking_SPSC_FIFO tests the single-producer single-consumer
// pattern: every item arrives, in the order it was produced.
func TestBlocking_SPSC_FIFO(t *testing.T) {
	ctx := context.Background()
	const count = 10000

	for _, im := range impls[int]() {
		t.Run(im.name, func(t *testing.T) {
			q := mustNew(t, im, 64)

			done := make(chan error, 1)
			go func() {
				for i := 0; i < count; i++ {
					if err := q.Produce(ctx, i); err != nil {
						done <- err
						return
					}
				}
				done <- nil
			}()

			want := make([]int, count)
			got := make([]int, 0, count)
			for i := 0; i < count; i++ {
				want[i] = i
				v, err := q.Consume(ctx)
				require.NoError(t, err)
				got = append(got, v)
			}
			require.NoError(t, <-done)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("FIFO violation (-want +got):\n%s", diff)
			}
		})
	}
}

// TestBlocking_MPMC_NoLostUpdates_Race runs N producers of M items each against
// several consumers that drain the queue completely. Every item must be
// consumed exactly once, each consumer must see any one producer's items
// in order, and an observer must never see Len outside [0, Cap].
// Run with: go test -race ./internal/queue
func TestBlocking_MPMC_NoLostUpdates_Race(t *testing.T) {
	const (
		producers = 4
		consumers = 4
		perProd   = 2000
		capacity  = 8
	)
	ctx := context.Background()

	for _, im := range impls[item]() {
		t.Run(im.name, func(t *testing.T) {
			q := mustNew(t, im, capacity)

			var prodWG sync.WaitGroup
			for p := 0; p < producers; p++ {
				prodWG.Add(1)
				go func(p int) {
					defer prodWG.Done()
					for s := 0; s < perProd; s++ {
						if err := q.Produce(ctx, item{p, s}); err != nil {
							t.Errorf("producer %d: %v", p, err)
							return
						}
					}
				}(p)
			}

			stopObserver := make(chan struct{})
			var outOfRange atomic.Int32
			observerDone := make(chan struct{})
			go func() {
				defer close(observerDone)
				for {
					select {
					case <-stopObserver:
						return
					default:
					}
					if n := q.Len(); n < 0 || n > q.Cap() {
						outOfRange.Add(1)
					}
				}
			}()

			var (
				consWG     sync.WaitGroup
				mu         sync.Mutex
				seen       = make(map[item]int)
				violations atomic.Int32
				remaining  atomic.Int64
			)
			remaining.Store(producers * perProd)
			for c := 0; c < consumers; c++ {
				consWG.Add(1)
				go func() {
					defer consWG.Done()
					last := make([]int, producers)
					for i := range last {
						last[i] = -1
					}
					for remaining.Add(-1) >= 0 {
						it, err := q.Consume(ctx)
						if err != nil {
							t.Errorf("consume: %v", err)
							return
						}
						if it.seq <= last[it.producer] {
							violations.Add(1)
						}
						last[it.producer] = it.seq
						mu.Lock()
						seen[it]++
						mu.Unlock()
					}
				}()
			}

			prodWG.Wait()
			consWG.Wait()
			close(stopObserver)
			<-observerDone

			assert.Len(t, seen, producers*perProd, "distinct items consumed")
			for it, n := range seen {
				if n != 1 {
					t.Errorf("item %+v consumed %d times", it, n)
				}
			}
			assert.Zero(t, violations.Load(), "per-producer order violations")
			assert.Zero(t, outOfRange.Load(), "Len() observed outside [0, Cap()]")
			assert.Equal(t, 0, q.Len())
		})
	}
}

// TestBlocking_CancellationUnderLoad_Race mixes consumers with short-lived
// contexts into a busy queue. Cancelled calls must not lose or duplicate
// items: everything produced is either consumed or still queued.
func TestBlocking_CancellationUnderLoad_Race(t *testing.T) {
	const (
		producers = 3
		perProd   = 500
	)
	bg := context.Background()

	for _, im := range impls[int]() {
		t.Run(im.name, func(t *testing.T) {
			q := mustNew(t, im, 4)

			var prodWG sync.WaitGroup
			for p := 0; p < producers; p++ {
				prodWG.Add(1)
				go func() {
					defer prodWG.Done()
					for s := 0; s < perProd; s++ {
						if err := q.Produce(bg, 1); err != nil {
							t.Errorf("produce: %v", err)
							return
						}
					}
				}()
			}

			var (
				consWG    sync.WaitGroup
				got       atomic.Int64
				cancelled atomic.Int64
				stop      = make(chan struct{})
			)
			for c := 0; c < 6; c++ {
				consWG.Add(1)
				go func() {
					defer consWG.Done()
					for i := 0; ; i++ {
						select {
						case <-stop:
							return
						default:
						}

						ctx, cancel := context.WithTimeout(bg, 2*time.Millisecond)
						if i%3 == 0 {
							cancel()
						}
						v, err := q.Consume(ctx)
						cancel()
						switch {
						case errors.Is(err, queue.ErrCancelled):
							cancelled.Add(1)
						case err != nil:
							t.Errorf("consume: %v", err)
							return
						default:
							got.Add(int64(v))
						}
					}
				}()
			}

			prodWG.Wait()
			close(stop)
			consWG.Wait()

			// Drain whatever the consumers left behind.
			for {
				v, ok := q.Pop()
				if !ok {
					break
				}
				got.Add(int64(v))
			}
			assert.Equal(t, int64(producers*perProd), got.Load())
			t.Logf("cancelled consumes: %d", cancelled.Load())
		})
	}
}
