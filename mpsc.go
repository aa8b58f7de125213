// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// MPSC is a multi-producer single-consumer bounded queue backed by a ring
// buffer and a MultiProducerClaim.
//
// Producers claim slots wait-free with a fetch-add and commit them out of
// order into the publication map; the single consumer advances through the
// map in order, so items are dequeued in claim order regardless of commit
// order.
//
// Any number of goroutines may call Enqueue; one goroutine may call
// Dequeue. For direct control over batching and blocking, use the claim
// strategy and barriers instead of the facade.
type MPSC[T any, W WaitStrategy] struct {
	ring     *RingBuffer[T]
	claim    *MultiProducerClaim[W]
	consumed *SequenceBarrier[W]

	// Consumer-private in-order view of the publication map.
	lastKnown       Sequence
	cachedPublished Sequence
}

// NewMPSC returns a multi-producer single-consumer queue with the given
// capacity (a power of two) and wait strategy. The queue owns all of its
// coordination state; the wait strategy is borrowed and must outlive the
// queue.
func NewMPSC[T any, W WaitStrategy](capacity int, waitStrategy W) *MPSC[T, W] {
	q := &MPSC[T, W]{
		ring:            NewRingBuffer[T](capacity),
		claim:           NewMultiProducerClaim(capacity, waitStrategy),
		consumed:        NewSequenceBarrier(waitStrategy),
		lastKnown:       InitialSequence,
		cachedPublished: InitialSequence,
	}
	q.claim.AddClaimBarrier(q.consumed)
	return q
}

// Enqueue adds an element to the queue (multiple producers safe).
// Returns ErrWouldBlock if the ring is full.
func (q *MPSC[T, W]) Enqueue(elem *T) error {
	r, err := q.claim.TryClaim(1)
	if err != nil {
		return err
	}
	*q.ring.At(r.First()) = *elem
	q.claim.Publish(r.First())
	return nil
}

// Dequeue removes and returns an element (single consumer only).
// Returns (zero-value, ErrWouldBlock) if nothing is published.
func (q *MPSC[T, W]) Dequeue() (T, error) {
	var zero T
	next := q.lastKnown + 1
	if Difference(q.cachedPublished, next) < 0 {
		q.cachedPublished = q.claim.LastPublishedAfter(q.lastKnown)
		if Difference(q.cachedPublished, next) < 0 {
			return zero, ErrWouldBlock
		}
	}

	slot := q.ring.At(next)
	elem := *slot
	*slot = zero
	q.consumed.Publish(next)
	q.lastKnown = next
	return elem, nil
}

// Cap returns the queue capacity.
func (q *MPSC[T, W]) Cap() int {
	return q.ring.Cap()
}

// Claim returns the underlying claim strategy, for producers that want to
// claim and publish batches directly. Direct claims are safe alongside
// concurrent Enqueue calls; the consumer side must remain a single
// goroutine using Dequeue.
func (q *MPSC[T, W]) Claim() *MultiProducerClaim[W] {
	return q.claim
}
