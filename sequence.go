// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "code.hybscloud.com/atomix"

// Sequence is the number of an item added to a ring buffer.
//
// The first item added to a ring buffer always has sequence number zero,
// the second item sequence number one, and so on. Sequence numbers wrap
// around to zero when they overflow, so relative order of two sequences
// must be determined with Difference, never with < or >.
//
// A sequence addresses its ring slot by seq & (capacity - 1).
type Sequence = uint64

// InitialSequence is the universal "nothing published yet" sentinel, the
// sequence number immediately preceding zero. Barriers start here, and
// consumers of a MultiProducerClaim pass it as their initial
// lastKnownPublished value.
const InitialSequence Sequence = ^Sequence(0)

// Difference returns the signed difference a - b between two sequence
// numbers, taking wrap-around into account.
//
// The result is < 0 if a precedes b, 0 if a == b, and > 0 if b precedes a.
// The sign is meaningful as long as no two live sequence observations are
// more than 1<<62 apart.
func Difference(a, b Sequence) int64 {
	return int64(a - b)
}

// MinimumSequence returns the minimum of the sequence numbers read from
// cells, using the first cell as the zero point so the result is correct
// under wrap-around. Each cell is read with acquire ordering.
//
// Panics if cells is empty.
func MinimumSequence(cells []*atomix.Uint64) Sequence {
	if len(cells) == 0 {
		panic("disruptor: empty sequence set")
	}
	minimum := cells[0].LoadAcquire()
	for _, cell := range cells[1:] {
		seq := cell.LoadAcquire()
		if Difference(seq, minimum) < 0 {
			minimum = seq
		}
	}
	return minimum
}

// MinimumSequenceAfter returns the minimum of the sequence numbers read
// from cells, short-circuiting as soon as any observed cell precedes
// target.
//
// If the result does not precede target the operation carries acquire
// semantics on every cell and the result is the true minimum. If the
// result precedes target the memory semantics are unspecified; the value
// may only be used to decide to retry, not for synchronisation.
//
// Panics if cells is empty.
func MinimumSequenceAfter(target Sequence, cells []*atomix.Uint64) Sequence {
	if len(cells) == 0 {
		panic("disruptor: empty sequence set")
	}
	minDelta := Difference(cells[0].LoadAcquire(), target)
	for i := 1; i < len(cells) && minDelta >= 0; i++ {
		delta := Difference(cells[i].LoadAcquire(), target)
		if delta < minDelta {
			minDelta = delta
		}
	}
	return target + Sequence(minDelta)
}
