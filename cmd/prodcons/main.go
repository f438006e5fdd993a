// Command prodcons runs producers and consumers against one shared bounded
// queue and reports how many items are left in it.
//
// The defaults reproduce the classic demonstration: a buffer of 10, one
// producer making 30 items and one consumer taking 25, leaving 5.
// Ctrl-C (or -timeout) interrupts the run; blocked goroutines are woken
// and the partial counts are printed.
//
// Usage:
//
//	go run ./cmd/prodcons
//	go run ./cmd/prodcons -producers 4 -consumers 4 -items 100000 -take 100000 -size 64
//	go run ./cmd/prodcons -backend channel -timeout 2s -v
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/randomizedcoder/go-bounded-queue/internal/cancel"
	"github.com/randomizedcoder/go-bounded-queue/internal/prodcons"
	"github.com/randomizedcoder/go-bounded-queue/internal/queue"
)

func main() {
	def := prodcons.DefaultConfig()

	size := flag.Int("size", def.Capacity, "queue capacity")
	producers := flag.Int("producers", def.Producers, "number of producer goroutines")
	consumers := flag.Int("consumers", def.Consumers, "number of consumer goroutines")
	items := flag.Int("items", def.ItemsPerProducer, "items produced by each producer")
	take := flag.Int("take", def.ItemsPerConsumer, "items consumed by each consumer")
	backend := flag.String("backend", string(def.Backend), "queue implementation: monitor or channel")
	progress := flag.Duration("progress", def.ProgressInterval, "progress log interval (0 disables)")
	timeout := flag.Duration("timeout", 0, "cancel the run after this long (0 waits forever)")
	verbose := flag.Bool("v", false, "log per-goroutine completion")
	flag.Parse()

	cfg := prodcons.Config{
		Capacity:         *size,
		Producers:        *producers,
		Consumers:        *consumers,
		ItemsPerProducer: *items,
		ItemsPerConsumer: *take,
		Backend:          prodcons.Backend(*backend),
		ProgressInterval: *progress,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	code := run(cfg, *timeout, log)
	_ = log.Sync()
	os.Exit(code)
}

func run(cfg prodcons.Config, timeout time.Duration, log *zap.Logger) int {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var c cancel.Canceler
	if timeout > 0 {
		c = cancel.NewTimeout(sigCtx, timeout)
	} else {
		c = cancel.NewContext(sigCtx)
	}
	defer c.Cancel()

	res, err := prodcons.Run(c.Context(), cfg, log)

	if res.Produced == cfg.TotalProduced() {
		fmt.Println("Done producing")
	}
	if res.Consumed == cfg.TotalConsumed() {
		fmt.Println("Done consuming")
	}
	fmt.Printf("Data in the buffer: %d\n", res.Remaining)
	fmt.Printf("Produced %d, consumed %d in %v\n", res.Produced, res.Consumed, res.Elapsed)

	switch {
	case errors.Is(err, queue.ErrCancelled):
		fmt.Fprintf(os.Stderr, "interrupted: %v\n", err)
		return 130
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		return 1
	case res.OrderViolations > 0:
		fmt.Fprintf(os.Stderr, "%d items arrived out of order\n", res.OrderViolations)
		return 1
	}
	return 0
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}
