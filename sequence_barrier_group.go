// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"time"

	"code.hybscloud.com/atomix"
)

// SequenceBarrierGroup aggregates a set of sequence barriers and waits on
// the least-advanced of them.
//
// A group is used when a pipeline stage must wait until several prior
// stages have all finished with an item, and as the back-pressure view a
// claim strategy holds over its consumers.
//
// The group holds borrowed pointers to each member barrier's sequence
// cell, so the waiting loop is a single indirection per member with no
// call through the barrier. Members must all share the group's wait
// strategy instance and must outlive the group.
//
// Add and AddGroup are setup-phase only: they are not safe to call once
// the group is shared between goroutines. Waiting on an empty group is a
// programming error and panics.
type SequenceBarrierGroup[W WaitStrategy] struct {
	waitStrategy W
	cells        []*atomix.Uint64
}

// NewSequenceBarrierGroup returns an empty group. Add at least one
// barrier before waiting on it.
func NewSequenceBarrierGroup[W WaitStrategy](waitStrategy W) *SequenceBarrierGroup[W] {
	return &SequenceBarrierGroup[W]{waitStrategy: waitStrategy}
}

// Add adds a barrier to the group. Setup phase only.
func (g *SequenceBarrierGroup[W]) Add(barrier *SequenceBarrier[W]) {
	g.cells = append(g.cells, &barrier.lastPublished)
}

// AddGroup adds every barrier currently in another group. Setup phase
// only.
func (g *SequenceBarrierGroup[W]) AddGroup(group *SequenceBarrierGroup[W]) {
	g.cells = append(g.cells, group.cells...)
}

// LastPublished returns the sequence number of the least-advanced barrier
// in the group, with acquire semantics on every member.
func (g *SequenceBarrierGroup[W]) LastPublished() Sequence {
	return MinimumSequence(g.cells)
}

// WaitUntilPublished blocks until every barrier in the group has
// published at least seq and returns the sequence of the least-advanced
// member, which is equal to or after seq.
func (g *SequenceBarrierGroup[W]) WaitUntilPublished(seq Sequence) Sequence {
	current := MinimumSequenceAfter(seq, g.cells)
	if Difference(current, seq) >= 0 {
		return current
	}
	return g.waitStrategy.WaitUntilPublished(seq, g.cells)
}

// WaitUntilPublishedFor is WaitUntilPublished with a timeout relative to
// now. On timeout the result precedes seq.
func (g *SequenceBarrierGroup[W]) WaitUntilPublishedFor(seq Sequence, timeout time.Duration) Sequence {
	current := MinimumSequenceAfter(seq, g.cells)
	if Difference(current, seq) >= 0 {
		return current
	}
	return g.waitStrategy.WaitUntilPublishedFor(seq, g.cells, timeout)
}

// WaitUntilPublishedUntil is WaitUntilPublished with an absolute
// deadline. On timeout the result precedes seq.
func (g *SequenceBarrierGroup[W]) WaitUntilPublishedUntil(seq Sequence, deadline time.Time) Sequence {
	current := MinimumSequenceAfter(seq, g.cells)
	if Difference(current, seq) >= 0 {
		return current
	}
	return g.waitStrategy.WaitUntilPublishedUntil(seq, g.cells, deadline)
}
