package prodcons

import (
	"fmt"
	"time"

	"github.com/randomizedcoder/go-bounded-queue/internal/queue"
	"github.com/randomizedcoder/go-bounded-queue/internal/tick"
)

// Backend selects the queue implementation a run uses.
type Backend string

const (
	// BackendMonitor uses queue.BoundedQueue.
	BackendMonitor Backend = "monitor"
	// BackendChannel uses queue.ChannelQueue.
	BackendChannel Backend = "channel"
)

// Config describes one producer/consumer run.
type Config struct {
	// Capacity is the number of slots in the shared queue.
	Capacity int
	// Producers and Consumers are the number of goroutines in each role.
	Producers int
	Consumers int
	// ItemsPerProducer is how many items each producer produces.
	ItemsPerProducer int
	// ItemsPerConsumer is how many items each consumer consumes.
	ItemsPerConsumer int
	// Backend selects the queue implementation.
	Backend Backend
	// ProgressInterval is how often progress is logged; 0 disables it.
	ProgressInterval time.Duration
}

// DefaultConfig returns the classic demonstration: one producer pushing 30
// items and one consumer taking 25 through a buffer of 10, leaving 5.
func DefaultConfig() Config {
	return Config{
		Capacity:         10,
		Producers:        1,
		Consumers:        1,
		ItemsPerProducer: 30,
		ItemsPerConsumer: 25,
		Backend:          BackendMonitor,
		ProgressInterval: tick.DefaultInterval,
	}
}

// TotalProduced is the number of items all producers produce together.
func (c Config) TotalProduced() int { return c.Producers * c.ItemsPerProducer }

// TotalConsumed is the number of items all consumers consume together.
func (c Config) TotalConsumed() int { return c.Consumers * c.ItemsPerConsumer }

// Validate reports whether a run with this configuration can complete.
//
// Consumers cannot take more than is produced, and what is left over must
// fit in the queue, otherwise some goroutine would wait forever.
func (c Config) Validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity %d must be positive", ErrInvalidConfig, c.Capacity)
	case c.Producers <= 0 || c.Consumers <= 0:
		return fmt.Errorf("%w: need at least one producer and one consumer, got %d and %d",
			ErrInvalidConfig, c.Producers, c.Consumers)
	case c.ItemsPerProducer < 0 || c.ItemsPerConsumer < 0:
		return fmt.Errorf("%w: item counts must not be negative", ErrInvalidConfig)
	case c.ProgressInterval < 0:
		return fmt.Errorf("%w: progress interval %v must not be negative", ErrInvalidConfig, c.ProgressInterval)
	case c.TotalConsumed() > c.TotalProduced():
		return fmt.Errorf("%w: consumers take %d items but producers only make %d",
			ErrInvalidConfig, c.TotalConsumed(), c.TotalProduced())
	case c.TotalProduced()-c.TotalConsumed() > c.Capacity:
		return fmt.Errorf("%w: %d leftover items do not fit in capacity %d",
			ErrInvalidConfig, c.TotalProduced()-c.TotalConsumed(), c.Capacity)
	}

	switch c.Backend {
	case BackendMonitor, BackendChannel:
		return nil
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
}

// sharedQueue is what the workers need from either backend.
type sharedQueue interface {
	queue.Blocking[Item]
	State() queue.State
}

func (c Config) newQueue() (sharedQueue, error) {
	if c.Backend == BackendChannel {
		q, err := queue.NewChannel[Item](c.Capacity)
		if err != nil {
			return nil, err
		}
		return q, nil
	}
	q, err := queue.New[Item](c.Capacity)
	if err != nil {
		return nil, err
	}
	return q, nil
}
