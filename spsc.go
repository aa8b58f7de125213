// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// SPSC is a single-producer single-consumer bounded queue backed by a
// ring buffer and a SingleProducerClaim.
//
// The facade wires the full back-pressure loop: the producer publishes
// through the claim strategy's read barrier, the consumer publishes its
// progress into a barrier registered as the claim barrier, and the
// producer stalls (returns ErrWouldBlock) once it laps the consumer.
//
// One goroutine may call Enqueue and one goroutine may call Dequeue.
// For direct control over batching and blocking, use the claim strategy
// and barriers instead of the facade.
type SPSC[T any, W WaitStrategy] struct {
	ring     *RingBuffer[T]
	claim    *SingleProducerClaim[W]
	consumed *SequenceBarrier[W]

	// Consumer-private cursor and cached view of the producer's barrier,
	// so an empty check only touches the shared cell when the cache runs
	// out.
	nextRead        Sequence
	cachedPublished Sequence
}

// NewSPSC returns a single-producer single-consumer queue with the given
// capacity (a power of two) and wait strategy. The queue owns all of its
// coordination state; the wait strategy is borrowed and must outlive the
// queue.
func NewSPSC[T any, W WaitStrategy](capacity int, waitStrategy W) *SPSC[T, W] {
	q := &SPSC[T, W]{
		ring:            NewRingBuffer[T](capacity),
		claim:           NewSingleProducerClaim(capacity, waitStrategy),
		consumed:        NewSequenceBarrier(waitStrategy),
		cachedPublished: InitialSequence,
	}
	q.claim.AddClaimBarrier(q.consumed)
	return q
}

// Enqueue adds an element to the queue (producer only).
// Returns ErrWouldBlock if the ring is full.
func (q *SPSC[T, W]) Enqueue(elem *T) error {
	r, err := q.claim.TryClaim(1)
	if err != nil {
		return err
	}
	*q.ring.At(r.First()) = *elem
	q.claim.Publish(r.First())
	return nil
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if nothing is published.
func (q *SPSC[T, W]) Dequeue() (T, error) {
	var zero T
	if Difference(q.cachedPublished, q.nextRead) < 0 {
		q.cachedPublished = q.claim.LastPublished()
		if Difference(q.cachedPublished, q.nextRead) < 0 {
			return zero, ErrWouldBlock
		}
	}

	slot := q.ring.At(q.nextRead)
	elem := *slot
	*slot = zero
	q.consumed.Publish(q.nextRead)
	q.nextRead++
	return elem, nil
}

// Cap returns the queue capacity.
func (q *SPSC[T, W]) Cap() int {
	return q.ring.Cap()
}

// Claim returns the underlying claim strategy, for producers that want to
// claim and publish batches directly. Mixing direct claims with Enqueue
// is safe only from the same producer goroutine.
func (q *SPSC[T, W]) Claim() *SingleProducerClaim[W] {
	return q.claim
}
