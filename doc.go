// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package disruptor provides a low-latency in-process concurrent queue
// built around a pre-allocated power-of-two ring buffer coordinated by
// wrapping 64-bit sequence numbers.
//
// Producers claim contiguous sequence ranges, write the addressed ring
// slots in place, and publish; consumers wait for sequences to be
// published, process a batch of slots, and publish their own progress
// back as back-pressure. No allocation happens on the hot path, and the
// only contended write in the multi-producer configuration is a single
// fetch-add.
//
// # Quick Start
//
// Queue facades for the common topologies:
//
//	q := disruptor.Build[Event](disruptor.New(1024).SingleProducer()) // SPSC
//	q := disruptor.Build[Event](disruptor.New(4096))                  // MPSC
//
//	// Producer
//	err := q.Enqueue(&ev)
//	if errors.Is(err, disruptor.ErrWouldBlock) {
//	    // ring full - apply backpressure
//	}
//
//	// Consumer
//	ev, err := q.Dequeue()
//	if errors.Is(err, disruptor.ErrWouldBlock) {
//	    // nothing published - try again later
//	}
//
// # Working With the Primitives
//
// The facades cover single-consumer pipelines. Fan-out, batching and
// dependency graphs use the primitives directly: a wait strategy, a claim
// strategy, one ring buffer, and one sequence barrier per consumer.
//
//	ws := disruptor.NewSpinWaitStrategy()
//	ring := disruptor.NewRingBuffer[Event](1024)
//	claim := disruptor.NewSingleProducerClaim(1024, ws)
//	consumed := disruptor.NewSequenceBarrier(ws)
//	claim.AddClaimBarrier(consumed)
//
//	// Producer: claim, fill, publish
//	r := claim.Claim(16)
//	for i := 0; i < r.Size(); i++ {
//	    ring.At(r.At(i)).Fill(...)
//	}
//	claim.Publish(r.Last())
//
//	// Consumer: wait, process batch, publish progress
//	next := disruptor.Sequence(0)
//	for {
//	    available := claim.WaitUntilPublished(next)
//	    for ; disruptor.Difference(next, available) <= 0; next++ {
//	        process(ring.At(next))
//	    }
//	    consumed.Publish(available)
//	}
//
// Multicast is one barrier per consumer, all registered as claim
// barriers. A diamond graph registers only the final stage's barrier with
// the producer and gives the final stage a SequenceBarrierGroup over the
// middle stages.
//
// # Sequences
//
// Sequence numbers wrap around the full 64-bit range, so relative order
// is always computed with Difference, never with < or >. The comparison
// is meaningful while no two live observations are more than 1<<62 apart,
// which the bounded ring guarantees. InitialSequence (the sequence before
// zero) means "nothing published yet": barriers start there, and it is
// the first lastKnownPublished value a MultiProducerClaim consumer
// passes.
//
// # Wait Strategies
//
// Waiting is a pluggable strategy shared by every participant of a
// pipeline. SpinWaitStrategy busy-waits with phased backoff for the
// lowest wake-up latency; BlockingWaitStrategy parks waiters until a
// publisher signals. Barriers and claim strategies are generic over the
// strategy type, so the waiting loops compile against the concrete
// strategy with no dynamic dispatch.
//
// Timed waits never fail: on timeout they return a sequence preceding the
// target, detected with Difference(result, target) < 0. Timed and
// non-blocking claims return ErrWouldBlock, a control-flow signal shared
// with the rest of the ecosystem via [code.hybscloud.com/iox].
//
// # Back-Pressure and Claims
//
// A producer may not claim sequence s until every registered claim
// barrier has published at least s - capacity. There is no cancellation
// and no rollback: every claimed sequence must be published, or the ring
// deadlocks at that lap. Cancellation-shaped problems are solved with
// deadlines on the waits instead.
//
// SingleProducerClaim keeps its cursor in a producer-private field and
// touches shared memory only to read back-pressure and to publish.
// MultiProducerClaim partitions the sequence space with a fetch-add and
// commits each slot through a per-slot publication map, so producers
// finishing out of order never block one another; consumers linearise the
// map back into an in-order view.
//
// # Memory Ordering
//
// All cross-goroutine sequence traffic uses acquire/release orderings via
// [code.hybscloud.com/atomix]: publishes are release stores, observations
// are acquire loads, and the multi-producer claim counter needs no
// ordering of its own because it never publishes data. Slot reads and
// writes themselves are plain memory accesses protected by that
// discipline.
//
// # Race Detection
//
// Go's race detector cannot observe happens-before edges established
// through atomic orderings on separate variables, so concurrent tests of
// the ring protocol report false positives. Such tests are skipped when
// RaceEnabled is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering, [code.hybscloud.com/spin] for CPU pause
// backoff in compare-and-swap retry loops, and [code.hybscloud.com/iox]
// for semantic errors.
package disruptor
