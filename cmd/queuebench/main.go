// Command queuebench benchmarks the bounded queue implementations.
//
// Each iteration produces one item and consumes it again, so the queue
// never blocks and the numbers measure locking overhead. With -pipeline a
// separate consumer goroutine is used instead and producers do block.
//
// Usage:
//
//	go run ./cmd/queuebench -n 10000000 -size 1024
//	go run ./cmd/queuebench -n 1000000 -size 1 -pipeline
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/randomizedcoder/go-bounded-queue/internal/queue"
)

func main() {
	iterations := flag.Int("n", 10_000_000, "number of iterations")
	size := flag.Int("size", 1024, "queue size")
	pipeline := flag.Bool("pipeline", false, "consume from a separate goroutine")
	flag.Parse()

	bounded, err := queue.New[int](*size)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	ch, err := queue.NewChannel[int](*size)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	mode := "produce + consume per iteration"
	run := measure
	if *pipeline {
		mode = "producer -> consumer pipeline"
		run = measurePipeline
	}

	fmt.Printf("Benchmarking bounded queues (%d iterations, size=%d)\n", *iterations, *size)
	fmt.Println("─────────────────────────────────────────────────")

	boundedDur := run(bounded, *iterations)
	chDur := run(ch, *iterations)

	// Results
	boundedPerOp := float64(boundedDur.Nanoseconds()) / float64(*iterations)
	chPerOp := float64(chDur.Nanoseconds()) / float64(*iterations)

	fmt.Printf("\nResults (%s):\n", mode)
	fmt.Printf("  Monitor:  %v (%.2f ns/op)\n", boundedDur, boundedPerOp)
	fmt.Printf("  Channel:  %v (%.2f ns/op)\n", chDur, chPerOp)

	if boundedPerOp < chPerOp {
		fmt.Printf("\n  Speedup:  %.2fx (Monitor faster)\n", chPerOp/boundedPerOp)
	} else {
		fmt.Printf("\n  Speedup:  %.2fx (Channel faster)\n", boundedPerOp/chPerOp)
	}

	// Extrapolate to ops/second
	fmt.Printf("\nThroughput (theoretical max):\n")
	fmt.Printf("  Monitor:  %.2f M ops/sec\n", 1000/boundedPerOp)
	fmt.Printf("  Channel:  %.2f M ops/sec\n", 1000/chPerOp)
}

func measure(q queue.Blocking[int], n int) time.Duration {
	ctx := context.Background()
	start := time.Now()
	for i := 0; i < n; i++ {
		_ = q.Produce(ctx, i)
		_, _ = q.Consume(ctx)
	}
	return time.Since(start)
}

func measurePipeline(q queue.Blocking[int], n int) time.Duration {
	ctx := context.Background()
	done := make(chan struct{})
	start := time.Now()
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			_, _ = q.Consume(ctx)
		}
	}()
	for i := 0; i < n; i++ {
		_ = q.Produce(ctx, i)
	}
	<-done
	return time.Since(start)
}
