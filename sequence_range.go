// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// SequenceRange is a contiguous range of claimed sequence numbers.
//
// The range may overflow the underlying integer type, in which case the
// sequence numbers wrap back around to zero.
type SequenceRange struct {
	first Sequence
	size  int
}

// NewSequenceRange returns a range of size sequence numbers starting at
// first. The zero value is the empty range.
func NewSequenceRange(first Sequence, size int) SequenceRange {
	return SequenceRange{first: first, size: size}
}

// Size returns the number of sequence numbers in the range.
func (r SequenceRange) Size() int { return r.size }

// First returns the first sequence number in the range.
func (r SequenceRange) First() Sequence { return r.first }

// Last returns the last sequence number in the range.
func (r SequenceRange) Last() Sequence { return r.End() - 1 }

// End returns one past the last sequence number in the range.
func (r SequenceRange) End() Sequence { return r.first + Sequence(r.size) }

// At returns the i-th sequence number in the range.
func (r SequenceRange) At(i int) Sequence { return r.first + Sequence(i) }
