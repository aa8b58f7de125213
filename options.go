// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// Options configures queue construction.
type Options struct {
	// Producer constraint (selects the claim strategy)
	singleProducer bool

	// Wait discipline (spin by default)
	blocking bool

	// Capacity; must be a power of two
	capacity int
}

// Builder assembles a disruptor pipeline into a queue facade with fluent
// configuration.
//
// The builder is the single-threaded setup phase of a pipeline: it
// constructs the ring buffer, wait strategy, claim strategy and consumer
// barrier together, and the returned queue keeps all of them alive for as
// long as it is referenced.
//
// Example:
//
//	// Single-producer queue on the spin strategy
//	q := disruptor.Build[Event](disruptor.New(1024).SingleProducer())
//
//	// Multi-producer queue on the blocking wait strategy
//	q := disruptor.Build[Event](disruptor.New(4096).Blocking())
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity, which must be a
// power of two.
func New(capacity int) *Builder {
	if capacity < 1 || capacity&(capacity-1) != 0 {
		panic("disruptor: capacity must be a power of two")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will enqueue, selecting
// the uncontended single-producer claim strategy.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// Blocking selects the blocking wait strategy: idle waiters park on a
// condition instead of spinning. The default is the spin strategy.
func (b *Builder) Blocking() *Builder {
	b.opts.blocking = true
	return b
}

// Build creates a Queue[T] from the builder's constraints.
//
// Selection:
//
//	SingleProducer() → SPSC (private-cursor claim, no contended writes)
//	default          → MPSC (fetch-add claim, publication map)
//
// Both facades are single-consumer; fan-out topologies are built from the
// claim strategies and barriers directly.
func Build[T any](b *Builder) Queue[T] {
	if b.opts.singleProducer {
		if b.opts.blocking {
			return NewSPSC[T](b.opts.capacity, NewBlockingWaitStrategy())
		}
		return NewSPSC[T](b.opts.capacity, NewSpinWaitStrategy())
	}
	if b.opts.blocking {
		return NewMPSC[T](b.opts.capacity, NewBlockingWaitStrategy())
	}
	return NewMPSC[T](b.opts.capacity, NewSpinWaitStrategy())
}

// BuildSPSC creates a single-producer queue with compile-time type
// safety. Panics if the builder is not configured with SingleProducer().
func BuildSPSC[T any](b *Builder) Queue[T] {
	if !b.opts.singleProducer {
		panic("disruptor: BuildSPSC requires SingleProducer()")
	}
	return Build[T](b)
}

// BuildMPSC creates a multi-producer queue with compile-time type safety.
// Panics if the builder is configured with SingleProducer().
func BuildMPSC[T any](b *Builder) Queue[T] {
	if b.opts.singleProducer {
		panic("disruptor: BuildMPSC requires no SingleProducer()")
	}
	return Build[T](b)
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
