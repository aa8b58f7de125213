// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MultiProducerClaim coordinates claiming and publishing of ring buffer
// slots between any number of concurrently producing goroutines.
//
// A producer claims slots by atomically advancing a shared counter, which
// partitions the sequence space without further coordination: claiming is
// wait-free whenever ring space is available, and the fetch-add is the
// only contended write. Each producer then publishes its slots by storing
// the sequence number into the entry of a publication map addressed by
// seq & (capacity-1); those stores land in entries no other in-flight
// producer touches, so producers commit out of order without holding each
// other up.
//
// Consumers reconcile the out-of-order commits into an in-order view by
// scanning the publication map: sequence s is published exactly when its
// entry holds s, and a consumer only ever advances through contiguously
// published entries. Pass InitialSequence as the first lastKnownPublished
// value.
//
// Back-pressure works as in SingleProducerClaim: consumers publish their
// progress into barriers registered with AddClaimBarrier, and no sequence
// s is claimed until every barrier has published at least s - Capacity().
// A claimed sequence must always be published; abandoning one deadlocks
// the ring at that lap.
type MultiProducerClaim[W WaitStrategy] struct {
	mask     Sequence
	capacity Sequence

	waitStrategy W
	claimBarrier *SequenceBarrierGroup[W]

	// Entry i holds the most recent sequence s with s&mask == i that has
	// been committed, initially i - capacity so every fresh entry reads
	// as not yet published.
	published []atomix.Uint64

	_             pad
	nextClaimable atomix.Uint64
	_             pad
}

// NewMultiProducerClaim returns a claim strategy for a ring of the given
// capacity. Capacity must be a power of two; the first claimed sequence
// is zero.
func NewMultiProducerClaim[W WaitStrategy](capacity int, waitStrategy W) *MultiProducerClaim[W] {
	if capacity < 1 || capacity&(capacity-1) != 0 {
		panic("disruptor: capacity must be a power of two")
	}
	c := &MultiProducerClaim[W]{
		mask:         Sequence(capacity) - 1,
		capacity:     Sequence(capacity),
		waitStrategy: waitStrategy,
		claimBarrier: NewSequenceBarrierGroup(waitStrategy),
		published:    make([]atomix.Uint64, capacity),
	}
	for i := Sequence(0); i < c.capacity; i++ {
		c.published[i].StoreRelaxed(i - c.capacity)
	}
	return c
}

// Capacity returns the ring buffer capacity the strategy coordinates.
func (c *MultiProducerClaim[W]) Capacity() int {
	return int(c.capacity)
}

// AddClaimBarrier registers a consumer barrier as back-pressure. Setup
// phase only.
func (c *MultiProducerClaim[W]) AddClaimBarrier(barrier *SequenceBarrier[W]) {
	c.claimBarrier.Add(barrier)
}

// AddClaimBarrierGroup registers every barrier in a group as
// back-pressure. Setup phase only.
func (c *MultiProducerClaim[W]) AddClaimBarrierGroup(group *SequenceBarrierGroup[W]) {
	c.claimBarrier.AddGroup(group)
}

// ClaimOne blocks until a slot is available and returns its sequence
// number. The caller must publish the sequence once the slot is written.
func (c *MultiProducerClaim[W]) ClaimOne() Sequence {
	seq := c.nextClaimable.AddAcqRel(1) - 1
	c.claimBarrier.WaitUntilPublished(seq - c.capacity)
	return seq
}

// Claim blocks until n slots are available and returns the claimed range.
// At most Capacity() slots are claimed per call. The caller must publish
// every sequence in the range once the slots are written.
func (c *MultiProducerClaim[W]) Claim(n int) SequenceRange {
	if n > int(c.capacity) {
		n = int(c.capacity)
	}
	seq := c.nextClaimable.AddAcqRel(Sequence(n)) - Sequence(n)
	r := NewSequenceRange(seq, n)
	c.claimBarrier.WaitUntilPublished(r.Last() - c.capacity)
	return r
}

// TryClaim attempts to claim up to n slots without blocking. It returns
// ErrWouldBlock if no slot is available. The range may be shorter than n
// if fewer slots were available.
func (c *MultiProducerClaim[W]) TryClaim(n int) (SequenceRange, error) {
	claimable := c.claimBarrier.LastPublished() + c.capacity

	var sw spin.Wait
	for {
		seq := c.nextClaimable.LoadRelaxed()
		diff := Difference(claimable, seq)
		if diff < 0 {
			return SequenceRange{}, ErrWouldBlock
		}
		count := n
		if available := int(diff) + 1; count > available {
			count = available
		}
		if c.nextClaimable.CompareAndSwapRelaxed(seq, seq+Sequence(count)) {
			return NewSequenceRange(seq, count), nil
		}
		sw.Once()
	}
}

// TryClaimFor attempts to claim up to n slots, waiting up to timeout for
// slots to become available. Returns ErrWouldBlock on timeout without
// claiming anything.
func (c *MultiProducerClaim[W]) TryClaimFor(n int, timeout time.Duration) (SequenceRange, error) {
	return c.TryClaimUntil(n, time.Now().Add(timeout))
}

// TryClaimUntil attempts to claim up to n slots, waiting until deadline
// for slots to become available. Returns ErrWouldBlock on timeout without
// claiming anything.
func (c *MultiProducerClaim[W]) TryClaimUntil(n int, deadline time.Time) (SequenceRange, error) {
	claimable := c.claimBarrier.LastPublished() + c.capacity

	var sw spin.Wait
	for {
		seq := c.nextClaimable.LoadRelaxed()
		diff := Difference(claimable, seq)
		if diff < 0 {
			claimable = c.claimBarrier.WaitUntilPublishedUntil(seq-c.capacity, deadline) + c.capacity
			diff = Difference(claimable, seq)
			if diff < 0 {
				return SequenceRange{}, ErrWouldBlock
			}
		}
		count := n
		if available := int(diff) + 1; count > available {
			count = available
		}
		if c.nextClaimable.CompareAndSwapRelaxed(seq, seq+Sequence(count)) {
			return NewSequenceRange(seq, count), nil
		}
		sw.Once()
	}
}

// Publish commits the slot holding seq, making it visible to consumers
// once all prior sequences are also committed. The store has release
// semantics. Publishing a sequence whose lap is not yet writable is a
// programming error and panics.
func (c *MultiProducerClaim[W]) Publish(seq Sequence) {
	c.setPublished(seq)
	c.waitStrategy.SignalAllWhenBlocking()
}

// PublishRange commits every slot in the range, waking waiters once.
func (c *MultiProducerClaim[W]) PublishRange(r SequenceRange) {
	for i := 0; i < r.Size(); i++ {
		c.setPublished(r.At(i))
	}
	c.waitStrategy.SignalAllWhenBlocking()
}

// LastPublishedAfter returns the highest sequence number that is
// contiguously published after lastKnownPublished, or lastKnownPublished
// itself if the next sequence is not yet committed. The value passed in
// must itself already be published (or be InitialSequence).
func (c *MultiProducerClaim[W]) LastPublishedAfter(lastKnownPublished Sequence) Sequence {
	for seq := lastKnownPublished + 1; c.isPublished(seq); seq++ {
		lastKnownPublished = seq
	}
	return lastKnownPublished
}

// WaitUntilPublished blocks the calling consumer until seq has been
// published, then returns the highest contiguously published sequence,
// equal to or after seq. lastKnownPublished must already be published
// (InitialSequence on first call) and must precede seq.
func (c *MultiProducerClaim[W]) WaitUntilPublished(seq, lastKnownPublished Sequence) Sequence {
	for s := lastKnownPublished + 1; Difference(s, seq) <= 0; s++ {
		if !c.isPublished(s) {
			cells := [1]*atomix.Uint64{&c.published[s&c.mask]}
			c.waitStrategy.WaitUntilPublished(s, cells[:])
		}
	}
	return c.LastPublishedAfter(seq)
}

// WaitUntilPublishedFor is WaitUntilPublished with a timeout relative to
// now.
func (c *MultiProducerClaim[W]) WaitUntilPublishedFor(seq, lastKnownPublished Sequence, timeout time.Duration) Sequence {
	return c.WaitUntilPublishedUntil(seq, lastKnownPublished, time.Now().Add(timeout))
}

// WaitUntilPublishedUntil is WaitUntilPublished with an absolute
// deadline. On timeout it returns the last sequence known to be fully
// published, which precedes seq.
func (c *MultiProducerClaim[W]) WaitUntilPublishedUntil(seq, lastKnownPublished Sequence, deadline time.Time) Sequence {
	for s := lastKnownPublished + 1; Difference(s, seq) <= 0; s++ {
		if !c.isPublished(s) {
			cells := [1]*atomix.Uint64{&c.published[s&c.mask]}
			result := c.waitStrategy.WaitUntilPublishedUntil(s, cells[:], deadline)
			if Difference(result, s) < 0 {
				// Timed out; s is the first unpublished sequence.
				return s - 1
			}
		}
	}
	return c.LastPublishedAfter(seq)
}

func (c *MultiProducerClaim[W]) isPublished(seq Sequence) bool {
	return c.published[seq&c.mask].LoadAcquire() == seq
}

func (c *MultiProducerClaim[W]) setPublished(seq Sequence) {
	entry := &c.published[seq&c.mask]
	if entry.LoadRelaxed() != seq-c.capacity {
		panic("disruptor: sequence published out of order")
	}
	entry.StoreRelease(seq)
}
