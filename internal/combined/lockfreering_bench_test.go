package combined_test

import (
	"context"
	"sync/atomic"
	"testing"

	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/randomizedcoder/go-bounded-queue/internal/cancel"
	"github.com/randomizedcoder/go-bounded-queue/internal/queue"
)

// ============================================================================
// Comparison Benchmarks: blocking queues vs go-lock-free-ring (MPSC)
// ============================================================================
//
// KEY DIFFERENCE:
// - BoundedQueue / ChannelQueue: producers park when full, consumer parks
//   when empty. Idle goroutines cost no CPU.
// - go-lock-free-ring: non-blocking Write/TryRead, so both sides have to
//   spin. Faster handoff, but a waiting goroutine burns a core.

// benchMPSC runs `producers` goroutines against one consumer through a
// blocking queue.
func benchMPSC(b *testing.B, q queue.Blocking[int], producers int) {
	c := cancel.NewContext(context.Background())
	ctx := c.Context()
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			if _, err := q.Consume(ctx); err != nil {
				return
			}
		}
	}()

	b.SetParallelism(producers)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_ = q.Produce(ctx, i)
			i++
		}
	})

	b.StopTimer()
	c.Cancel()
	<-consumerDone
}

// ============================================================================
// MPSC: 4 producers -> 1 consumer
// ============================================================================

func BenchmarkLFR_MPSC_Bounded_4P(b *testing.B) {
	benchMPSC(b, newBounded(b, 1024), 4)
}

func BenchmarkLFR_MPSC_Channel_4P(b *testing.B) {
	benchMPSC(b, newChannel(b, 1024), 4)
}

// BenchmarkLFR_MPSC_ShardedRing_4P_4S - 4 producers, 4 shards, spinning
func BenchmarkLFR_MPSC_ShardedRing_4P_4S(b *testing.B) {
	r, _ := ring.NewShardedRing(1024, 4)
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			default:
				r.TryRead()
			}
		}
	}()

	var producerID atomic.Uint64
	b.SetParallelism(4)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		pid := producerID.Add(1) - 1
		i := 0
		for pb.Next() {
			for !r.Write(pid, i) {
			}
			i++
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}

// ============================================================================
// MPSC: 8 producers -> 1 consumer
// ============================================================================

func BenchmarkLFR_MPSC_Bounded_8P(b *testing.B) {
	benchMPSC(b, newBounded(b, 2048), 8)
}

func BenchmarkLFR_MPSC_Channel_8P(b *testing.B) {
	benchMPSC(b, newChannel(b, 2048), 8)
}

// BenchmarkLFR_MPSC_ShardedRing_8P_8S - 8 producers, 8 shards, spinning
func BenchmarkLFR_MPSC_ShardedRing_8P_8S(b *testing.B) {
	r, _ := ring.NewShardedRing(2048, 8) // Larger capacity for 8 producers
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			default:
				r.TryRead()
			}
		}
	}()

	var producerID atomic.Uint64
	b.SetParallelism(8)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		pid := producerID.Add(1) - 1
		i := 0
		for pb.Next() {
			for !r.Write(pid, i) {
			}
			i++
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}
