// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor_test

import (
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/disruptor"
)

// newSingleProducer wires a claim strategy with one consumer barrier, the
// smallest complete back-pressure loop.
func newSingleProducer(capacity int) (*disruptor.SingleProducerClaim[*disruptor.SpinWaitStrategy], *disruptor.SequenceBarrier[*disruptor.SpinWaitStrategy]) {
	ws := disruptor.NewSpinWaitStrategy()
	claim := disruptor.NewSingleProducerClaim(capacity, ws)
	consumed := disruptor.NewSequenceBarrier(ws)
	claim.AddClaimBarrier(consumed)
	return claim, consumed
}

func TestSingleProducerCapacityValidation(t *testing.T) {
	for _, capacity := range []int{0, -1, 3, 12, 1000} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("capacity %d: expected panic", capacity)
				}
			}()
			disruptor.NewSingleProducerClaim(capacity, disruptor.NewSpinWaitStrategy())
		}()
	}

	// Power-of-two capacities construct, including 1.
	for _, capacity := range []int{1, 2, 4, 1024} {
		c := disruptor.NewSingleProducerClaim(capacity, disruptor.NewSpinWaitStrategy())
		if c.Capacity() != capacity {
			t.Fatalf("Capacity: got %d, want %d", c.Capacity(), capacity)
		}
	}
}

func TestSingleProducerClaimPublishRoundTrip(t *testing.T) {
	claim, consumed := newSingleProducer(8)

	if got := claim.LastPublished(); got != disruptor.InitialSequence {
		t.Fatalf("LastPublished before any publish: got %d", got)
	}

	for want := disruptor.Sequence(0); want < 4; want++ {
		seq := claim.ClaimOne()
		if seq != want {
			t.Fatalf("ClaimOne: got %d, want %d", seq, want)
		}
		claim.Publish(seq)
		if got := claim.LastPublished(); got != seq {
			t.Fatalf("LastPublished: got %d, want %d", got, seq)
		}
	}
	consumed.Publish(3)
}

func TestSingleProducerBatchClaim(t *testing.T) {
	claim, consumed := newSingleProducer(8)

	r := claim.Claim(5)
	if r.First() != 0 || r.Size() != 5 {
		t.Fatalf("Claim(5): got first=%d size=%d", r.First(), r.Size())
	}

	// Only three slots remain; the batch shrinks rather than blocking.
	r = claim.Claim(5)
	if r.First() != 5 || r.Size() != 3 {
		t.Fatalf("Claim(5) on 3 free: got first=%d size=%d", r.First(), r.Size())
	}

	claim.Publish(r.Last())
	consumed.Publish(r.Last())

	// Freed slots are claimable again.
	r = claim.Claim(8)
	if r.First() != 8 || r.Size() != 8 {
		t.Fatalf("Claim(8) after consume: got first=%d size=%d", r.First(), r.Size())
	}
}

func TestSingleProducerTryClaim(t *testing.T) {
	claim, consumed := newSingleProducer(4)

	r, err := claim.TryClaim(4)
	if err != nil {
		t.Fatalf("TryClaim(4): %v", err)
	}
	if r.Size() != 4 {
		t.Fatalf("TryClaim(4): got size %d", r.Size())
	}

	// Ring full: non-blocking claim refuses.
	if _, err := claim.TryClaim(1); !errors.Is(err, disruptor.ErrWouldBlock) {
		t.Fatalf("TryClaim on full ring: got %v, want ErrWouldBlock", err)
	}

	// The consumer frees two slots; the producer sees them after one
	// barrier refresh.
	claim.Publish(3)
	consumed.Publish(1)
	r, err = claim.TryClaim(4)
	if err != nil {
		t.Fatalf("TryClaim after partial consume: %v", err)
	}
	if r.First() != 4 || r.Size() != 2 {
		t.Fatalf("TryClaim after partial consume: got first=%d size=%d", r.First(), r.Size())
	}
}

// TestSingleProducerBackPressureProbe claims the whole ring, then checks
// that one more claim stalls until a timeout because no consumer
// advances.
func TestSingleProducerBackPressureProbe(t *testing.T) {
	claim, consumed := newSingleProducer(4)

	r := claim.Claim(4)
	if r.Size() != 4 {
		t.Fatalf("Claim(4): got size %d", r.Size())
	}

	start := time.Now()
	_, err := claim.TryClaimFor(1, 100*time.Millisecond)
	elapsed := time.Since(start)

	if !errors.Is(err, disruptor.ErrWouldBlock) {
		t.Fatalf("5th claim on capacity-4 ring: got %v, want ErrWouldBlock", err)
	}
	if elapsed < 100*time.Millisecond {
		t.Fatalf("claim gave up after %v, before the timeout", elapsed)
	}
	if elapsed > 3*time.Second {
		t.Fatalf("claim returned after %v, far past the timeout", elapsed)
	}

	// The failed claim must not have advanced producer state: freeing a
	// slot hands out the next sequence in order.
	claim.Publish(r.Last())
	consumed.Publish(0)
	if seq := claim.ClaimOne(); seq != 4 {
		t.Fatalf("claim after freeing a slot: got %d, want 4", seq)
	}
}

func TestSingleProducerTryClaimUntil(t *testing.T) {
	claim, consumed := newSingleProducer(2)
	claim.Claim(2)

	// Deadline already passed, ring full.
	if _, err := claim.TryClaimUntil(1, time.Now().Add(-time.Millisecond)); !errors.Is(err, disruptor.ErrWouldBlock) {
		t.Fatalf("TryClaimUntil with expired deadline: got %v, want ErrWouldBlock", err)
	}

	// A consumer frees slots concurrently; the timed claim picks them up.
	go func() {
		time.Sleep(10 * time.Millisecond)
		claim.Publish(1)
		consumed.Publish(1)
	}()
	r, err := claim.TryClaimUntil(2, time.Now().Add(5*time.Second))
	if err != nil {
		t.Fatalf("TryClaimUntil: %v", err)
	}
	if r.First() != 2 || r.Size() != 2 {
		t.Fatalf("TryClaimUntil: got first=%d size=%d", r.First(), r.Size())
	}
}

// TestSingleProducerConsumerWait drives the consumer-facing wait surface.
func TestSingleProducerConsumerWait(t *testing.T) {
	claim, consumed := newSingleProducer(8)

	go func() {
		for seq := disruptor.Sequence(0); seq < 8; seq++ {
			claim.Publish(claim.ClaimOne())
		}
	}()

	got := claim.WaitUntilPublished(7)
	if disruptor.Difference(got, 7) < 0 {
		t.Fatalf("WaitUntilPublished(7): got %d", got)
	}
	consumed.Publish(got)

	// Nothing past 7 exists: a timed wait for 8 must time out.
	got = claim.WaitUntilPublishedFor(8, 20*time.Millisecond)
	if disruptor.Difference(got, 8) >= 0 {
		t.Fatalf("WaitUntilPublishedFor(8): got %d, want a sequence before 8", got)
	}
}

// TestSingleProducerLateBarrierRefresh pins the add-time semantics: a
// barrier added after construction is only consulted on the next claim,
// not at Add time.
func TestSingleProducerLateBarrierRefresh(t *testing.T) {
	ws := disruptor.NewSpinWaitStrategy()
	claim := disruptor.NewSingleProducerClaim(4, ws)

	ahead := disruptor.NewSequenceBarrier(ws)
	ahead.Publish(100)
	claim.AddClaimBarrier(ahead)

	behind := disruptor.NewSequenceBarrier(ws)
	claim.AddClaimBarrier(behind)

	// The group minimum is behind's InitialSequence, so exactly the ring
	// capacity is claimable.
	r, err := claim.TryClaim(8)
	if err != nil {
		t.Fatalf("TryClaim: %v", err)
	}
	if r.Size() != 4 {
		t.Fatalf("TryClaim: got size %d, want 4", r.Size())
	}
	if _, err := claim.TryClaim(1); !errors.Is(err, disruptor.ErrWouldBlock) {
		t.Fatalf("TryClaim past capacity: got %v, want ErrWouldBlock", err)
	}
}
