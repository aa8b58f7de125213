// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// RingBuffer is a power-of-two buffer of pre-allocated slots addressed by
// sequence number.
//
// Slot i is addressed by every sequence of the form n*Cap() + i, so the
// same slice of memory is reused lap after lap with no allocation on the
// hot path. Elements are stored in place and default to their zero value;
// the buffer performs no synchronisation of its own — a claim strategy
// grants writers exclusive access to slots and barriers make the writes
// visible to readers.
type RingBuffer[T any] struct {
	buffer []T
	mask   Sequence
}

// NewRingBuffer returns a ring buffer with the given capacity, which must
// be a power of two.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity < 1 || capacity&(capacity-1) != 0 {
		panic("disruptor: capacity must be a power of two")
	}
	return &RingBuffer[T]{
		buffer: make([]T, capacity),
		mask:   Sequence(capacity) - 1,
	}
}

// Cap returns the buffer capacity.
func (r *RingBuffer[T]) Cap() int {
	return len(r.buffer)
}

// At returns a pointer to the slot addressed by seq.
func (r *RingBuffer[T]) At(seq Sequence) *T {
	return &r.buffer[seq&r.mask]
}
