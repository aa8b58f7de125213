// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "time"

// SingleProducerClaim coordinates claiming and publishing of ring buffer
// slots when only a single goroutine produces items.
//
// With one producer there is nothing to synchronise on the claim side, so
// the producer keeps its next sequence in a private field and only reads
// the consumer barriers when its cached view of the claimable bound runs
// out. The producer publishes through an internal barrier that consumers
// subscribe to; because a single producer commits in order, publishing the
// last sequence of a batch publishes the whole batch.
//
// Consumers indicate they are finished with slots by publishing their
// position into a barrier registered with AddClaimBarrier. The producer
// never claims a sequence s until every registered barrier has published
// at least s - Capacity(), which is the back-pressure rule that prevents
// overwriting unconsumed slots. At least one claim barrier must be
// registered before claiming.
//
// Only one goroutine may call the claim and publish methods. Any number of
// goroutines may call LastPublished and the wait methods.
type SingleProducerClaim[W WaitStrategy] struct {
	capacity Sequence

	// Producer-private; never shared.
	nextToClaim        Sequence
	lastKnownClaimable Sequence

	claimBarrier *SequenceBarrierGroup[W]
	readBarrier  *SequenceBarrier[W]
}

// NewSingleProducerClaim returns a claim strategy for a ring of the given
// capacity. Capacity must be a power of two; the first claimed sequence
// is zero.
func NewSingleProducerClaim[W WaitStrategy](capacity int, waitStrategy W) *SingleProducerClaim[W] {
	if capacity < 1 || capacity&(capacity-1) != 0 {
		panic("disruptor: capacity must be a power of two")
	}
	return &SingleProducerClaim[W]{
		capacity:           Sequence(capacity),
		lastKnownClaimable: InitialSequence,
		claimBarrier:       NewSequenceBarrierGroup(waitStrategy),
		readBarrier:        NewSequenceBarrier(waitStrategy),
	}
}

// Capacity returns the ring buffer capacity the strategy coordinates.
func (c *SingleProducerClaim[W]) Capacity() int {
	return int(c.capacity)
}

// AddClaimBarrier registers a consumer barrier as back-pressure: slots are
// not reclaimed for writing until the barrier has published past them.
// Setup phase only. The cached claimable bound is left untouched; the
// next TryClaim refreshes it.
func (c *SingleProducerClaim[W]) AddClaimBarrier(barrier *SequenceBarrier[W]) {
	c.claimBarrier.Add(barrier)
}

// AddClaimBarrierGroup registers every barrier in a group as
// back-pressure. Setup phase only.
func (c *SingleProducerClaim[W]) AddClaimBarrierGroup(group *SequenceBarrierGroup[W]) {
	c.claimBarrier.AddGroup(group)
}

// ClaimOne blocks until a single slot is available and returns its
// sequence number. The caller must publish the sequence once the slot is
// written.
func (c *SingleProducerClaim[W]) ClaimOne() Sequence {
	return c.Claim(1).First()
}

// Claim blocks until at least one of n requested slots is available and
// returns the claimed range. The range may be shorter than n but is never
// empty for n > 0. The caller must publish the range's last sequence once
// the slots are written.
func (c *SingleProducerClaim[W]) Claim(n int) SequenceRange {
	if r, err := c.TryClaim(n); err == nil {
		return r
	}

	claimable := c.claimBarrier.WaitUntilPublished(c.nextToClaim-c.capacity) + c.capacity
	return c.claimUpTo(claimable, n)
}

// TryClaim attempts to claim up to n slots without blocking. It returns
// ErrWouldBlock if no slot is available; the producer state is then
// unchanged.
//
// The consumer barriers are consulted at most once, and only when the
// cached claimable bound is exhausted.
func (c *SingleProducerClaim[W]) TryClaim(n int) (SequenceRange, error) {
	diff := Difference(c.lastKnownClaimable, c.nextToClaim)
	if diff < 0 {
		claimable := c.claimBarrier.LastPublished() + c.capacity
		diff = Difference(claimable, c.nextToClaim)
		if diff < 0 {
			// Keep the stale cache: it already says "check again".
			return SequenceRange{}, ErrWouldBlock
		}
		c.lastKnownClaimable = claimable
	}

	available := int(diff) + 1
	if n > available {
		n = available
	}
	r := NewSequenceRange(c.nextToClaim, n)
	c.nextToClaim += Sequence(n)
	return r, nil
}

// TryClaimFor attempts to claim up to n slots, waiting up to timeout for
// one to become available. Returns ErrWouldBlock on timeout with the
// producer state unchanged.
func (c *SingleProducerClaim[W]) TryClaimFor(n int, timeout time.Duration) (SequenceRange, error) {
	return c.TryClaimUntil(n, time.Now().Add(timeout))
}

// TryClaimUntil attempts to claim up to n slots, waiting until deadline
// for one to become available. Returns ErrWouldBlock on timeout with the
// producer state unchanged.
func (c *SingleProducerClaim[W]) TryClaimUntil(n int, deadline time.Time) (SequenceRange, error) {
	if r, err := c.TryClaim(n); err == nil {
		return r, nil
	}

	claimable := c.claimBarrier.WaitUntilPublishedUntil(c.nextToClaim-c.capacity, deadline) + c.capacity
	if Difference(claimable, c.nextToClaim) < 0 {
		return SequenceRange{}, ErrWouldBlock
	}
	return c.claimUpTo(claimable, n), nil
}

func (c *SingleProducerClaim[W]) claimUpTo(claimable Sequence, n int) SequenceRange {
	available := int(Difference(claimable, c.nextToClaim)) + 1
	if n > available {
		n = available
	}
	r := NewSequenceRange(c.nextToClaim, n)
	c.nextToClaim += Sequence(n)
	c.lastKnownClaimable = claimable
	return r
}

// Publish makes seq and all previously claimed sequences available to
// consumers. The store has release semantics and wakes blocked waiters.
func (c *SingleProducerClaim[W]) Publish(seq Sequence) {
	c.readBarrier.Publish(seq)
}

// LastPublished returns the sequence last published by the producer, with
// acquire semantics.
func (c *SingleProducerClaim[W]) LastPublished() Sequence {
	return c.readBarrier.LastPublished()
}

// WaitUntilPublished blocks the calling consumer until seq has been
// published and returns the last published sequence, equal to or after
// seq.
func (c *SingleProducerClaim[W]) WaitUntilPublished(seq Sequence) Sequence {
	return c.readBarrier.WaitUntilPublished(seq)
}

// WaitUntilPublishedFor is WaitUntilPublished with a timeout relative to
// now. On timeout the result precedes seq.
func (c *SingleProducerClaim[W]) WaitUntilPublishedFor(seq Sequence, timeout time.Duration) Sequence {
	return c.readBarrier.WaitUntilPublishedFor(seq, timeout)
}

// WaitUntilPublishedUntil is WaitUntilPublished with an absolute
// deadline. On timeout the result precedes seq.
func (c *SingleProducerClaim[W]) WaitUntilPublishedUntil(seq Sequence, deadline time.Time) Sequence {
	return c.readBarrier.WaitUntilPublishedUntil(seq, deadline)
}
