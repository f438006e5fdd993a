// Package prodcons runs producer and consumer goroutines against one
// shared bounded queue and reports what happened.
//
// The queue is created by Run and handed to each goroutine when it is
// started; nothing is shared through package-level state.
package prodcons

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/randomizedcoder/go-bounded-queue/internal/cancel"
	"github.com/randomizedcoder/go-bounded-queue/internal/queue"
	"github.com/randomizedcoder/go-bounded-queue/internal/tick"
)

// Item is one unit of work: the producer that made it and its position in
// that producer's sequence.
type Item struct {
	Producer int
	Seq      int
}

// Result summarizes a run.
type Result struct {
	Produced  int
	Consumed  int
	Remaining int // items left in the queue when the run ended
	// OrderViolations counts items a consumer received with a sequence
	// number not above the last one it saw from the same producer.
	OrderViolations int
	Elapsed         time.Duration
}

type run struct {
	cfg    Config
	q      sharedQueue
	c      cancel.Canceler
	log    *zap.Logger
	ticker tick.Ticker

	produced   atomic.Int64
	consumed   atomic.Int64
	violations atomic.Int64

	errOnce sync.Once
	err     error
}

// Run starts cfg.Producers producers and cfg.Consumers consumers over one
// new queue and waits for all of them to finish.
//
// If ctx ends, or any worker fails, every worker is stopped; Run then
// returns the partial Result together with the first error, which matches
// queue.ErrCancelled when the run was cancelled. A nil log discards
// logging.
func Run(ctx context.Context, cfg Config, log *zap.Logger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	q, err := cfg.newQueue()
	if err != nil {
		return Result{}, fmt.Errorf("prodcons: creating queue: %w", err)
	}

	r := &run{
		cfg: cfg,
		q:   q,
		c:   cancel.NewContext(ctx),
		log: log,
	}
	defer r.c.Cancel()
	if cfg.ProgressInterval > 0 {
		r.ticker = tick.NewAtomicTicker(cfg.ProgressInterval)
		defer r.ticker.Stop()
	}

	log.Info("starting run",
		zap.String("backend", string(cfg.Backend)),
		zap.Int("capacity", cfg.Capacity),
		zap.Int("producers", cfg.Producers),
		zap.Int("consumers", cfg.Consumers),
		zap.Int("itemsPerProducer", cfg.ItemsPerProducer),
		zap.Int("itemsPerConsumer", cfg.ItemsPerConsumer),
	)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < cfg.Producers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			r.fail(r.produce(id))
		}(i)
	}
	for i := 0; i < cfg.Consumers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			r.fail(r.consume(id))
		}(i)
	}
	wg.Wait()

	res := Result{
		Produced:        int(r.produced.Load()),
		Consumed:        int(r.consumed.Load()),
		Remaining:       q.Len(),
		OrderViolations: int(r.violations.Load()),
		Elapsed:         time.Since(start),
	}
	if res.Remaining != res.Produced-res.Consumed {
		panic(fmt.Sprintf("prodcons: %d produced, %d consumed but %d queued",
			res.Produced, res.Consumed, res.Remaining))
	}

	fields := []zap.Field{
		zap.Int("produced", res.Produced),
		zap.Int("consumed", res.Consumed),
		zap.Int("remaining", res.Remaining),
		zap.Int("orderViolations", res.OrderViolations),
		zap.Duration("elapsed", res.Elapsed),
	}
	if r.err != nil {
		log.Warn("run stopped early", append(fields, zap.Error(r.err))...)
		return res, r.err
	}
	log.Info("run finished", fields...)
	return res, nil
}

// fail records the first worker error and stops every other worker.
func (r *run) fail(err error) {
	if err == nil {
		return
	}
	r.errOnce.Do(func() {
		r.err = err
	})
	r.c.Cancel()
}

// stopped returns an error if the run was cancelled. Produce and Consume
// succeed on a done context when they need not wait, so workers also check
// between items.
func (r *run) stopped(role string, id int) error {
	if !r.c.Done() {
		return nil
	}
	return fmt.Errorf("%s %d: %w: %w", role, id, queue.ErrCancelled, r.c.Err())
}

func (r *run) produce(id int) error {
	ctx := r.c.Context()
	for seq := 0; seq < r.cfg.ItemsPerProducer; seq++ {
		if err := r.stopped("producer", id); err != nil {
			return err
		}
		if err := r.q.Produce(ctx, Item{Producer: id, Seq: seq}); err != nil {
			return fmt.Errorf("producer %d: %w", id, err)
		}
		r.produced.Add(1)
	}
	r.log.Debug("done producing", zap.Int("producer", id))
	return nil
}

func (r *run) consume(id int) error {
	ctx := r.c.Context()
	last := make([]int, r.cfg.Producers)
	for i := range last {
		last[i] = -1
	}

	for n := 0; n < r.cfg.ItemsPerConsumer; n++ {
		if err := r.stopped("consumer", id); err != nil {
			return err
		}
		it, err := r.q.Consume(ctx)
		if err != nil {
			return fmt.Errorf("consumer %d: %w", id, err)
		}
		r.consumed.Add(1)

		if it.Seq <= last[it.Producer] {
			r.violations.Add(1)
			r.log.Error("out of order item",
				zap.Int("consumer", id),
				zap.Int("producer", it.Producer),
				zap.Int("seq", it.Seq),
				zap.Int("previous", last[it.Producer]),
			)
		}
		last[it.Producer] = it.Seq
		r.progress()
	}
	r.log.Debug("done consuming", zap.Int("consumer", id))
	return nil
}

func (r *run) progress() {
	if r.ticker == nil || !r.ticker.Tick() {
		return
	}
	r.log.Info("progress",
		zap.Int64("produced", r.produced.Load()),
		zap.Int64("consumed", r.consumed.Load()),
		zap.Int("queued", r.q.Len()),
		zap.Stringer("state", r.q.State()),
	)
}
