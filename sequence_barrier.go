// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"time"

	"code.hybscloud.com/atomix"
)

// SequenceBarrier holds a sequence number used to publish which item has
// finished processing and is now available.
//
// Publishing a sequence number declares that it and every prior sequence
// number are available to downstream consumers. Only a single goroutine
// may publish to a barrier, and a well-formed publisher publishes strictly
// increasing sequences; any number of goroutines may read or wait on it.
//
// A barrier borrows its wait strategy; the strategy must outlive the
// barrier, and every barrier and claim strategy of a pipeline must share
// the same strategy instance.
type SequenceBarrier[W WaitStrategy] struct {
	waitStrategy W
	cells        [1]*atomix.Uint64

	_             pad
	lastPublished atomix.Uint64
	_             pad
}

// NewSequenceBarrier returns a barrier whose published sequence is
// InitialSequence, so the next sequence to be published is zero.
func NewSequenceBarrier[W WaitStrategy](waitStrategy W) *SequenceBarrier[W] {
	b := &SequenceBarrier[W]{waitStrategy: waitStrategy}
	b.lastPublished.StoreRelaxed(InitialSequence)
	b.cells[0] = &b.lastPublished
	return b
}

// LastPublished returns the sequence number last published to the
// barrier, with acquire semantics.
func (b *SequenceBarrier[W]) LastPublished() Sequence {
	return b.lastPublished.LoadAcquire()
}

// Publish makes seq and all prior sequence numbers available to waiters.
// The store has release semantics and wakes any blocked waiters.
func (b *SequenceBarrier[W]) Publish(seq Sequence) {
	b.lastPublished.StoreRelease(seq)
	b.waitStrategy.SignalAllWhenBlocking()
}

// WaitUntilPublished blocks until seq has been published and returns the
// last published sequence, which is equal to or after seq.
func (b *SequenceBarrier[W]) WaitUntilPublished(seq Sequence) Sequence {
	current := b.LastPublished()
	if Difference(current, seq) >= 0 {
		return current
	}
	return b.waitStrategy.WaitUntilPublished(seq, b.cells[:])
}

// WaitUntilPublishedFor is WaitUntilPublished with a timeout relative to
// now. On timeout the result precedes seq.
func (b *SequenceBarrier[W]) WaitUntilPublishedFor(seq Sequence, timeout time.Duration) Sequence {
	current := b.LastPublished()
	if Difference(current, seq) >= 0 {
		return current
	}
	return b.waitStrategy.WaitUntilPublishedFor(seq, b.cells[:], timeout)
}

// WaitUntilPublishedUntil is WaitUntilPublished with an absolute
// deadline. On timeout the result precedes seq.
func (b *SequenceBarrier[W]) WaitUntilPublishedUntil(seq Sequence, deadline time.Time) Sequence {
	current := b.LastPublished()
	if Difference(current, seq) >= 0 {
		return current
	}
	return b.waitStrategy.WaitUntilPublishedUntil(seq, b.cells[:], deadline)
}
