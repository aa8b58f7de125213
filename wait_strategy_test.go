// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor_test

import (
	"testing"
	"time"

	"code.hybscloud.com/disruptor"
)

// waitStrategies runs a subtest against each strategy implementation.
func waitStrategies(t *testing.T, run func(t *testing.T, ws disruptor.WaitStrategy)) {
	t.Run("Spin", func(t *testing.T) { run(t, disruptor.NewSpinWaitStrategy()) })
	t.Run("Blocking", func(t *testing.T) { run(t, disruptor.NewBlockingWaitStrategy()) })
}

func TestWaitUntilPublishedImmediate(t *testing.T) {
	waitStrategies(t, func(t *testing.T, ws disruptor.WaitStrategy) {
		cells := makeCells(5, 8)
		if got := ws.WaitUntilPublished(3, cells); got != 5 {
			t.Fatalf("WaitUntilPublished(3): got %d, want 5", got)
		}
		if got := ws.WaitUntilPublished(5, cells); got != 5 {
			t.Fatalf("WaitUntilPublished(5): got %d, want 5", got)
		}
	})
}

func TestWaitUntilPublishedWakesOnAdvance(t *testing.T) {
	waitStrategies(t, func(t *testing.T, ws disruptor.WaitStrategy) {
		cells := makeCells(disruptor.InitialSequence)

		done := make(chan disruptor.Sequence, 1)
		go func() {
			done <- ws.WaitUntilPublished(2, cells)
		}()

		// Advance the cell one step at a time; the waiter must only
		// return once the target is reached.
		for seq := disruptor.Sequence(0); seq <= 2; seq++ {
			select {
			case got := <-done:
				t.Fatalf("waiter returned %d before publish of %d", got, seq)
			case <-time.After(time.Millisecond):
			}
			cells[0].StoreRelease(seq)
			ws.SignalAllWhenBlocking()
		}

		select {
		case got := <-done:
			if disruptor.Difference(got, 2) < 0 {
				t.Fatalf("waiter returned %d, want >= 2", got)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("waiter did not return after target published")
		}
	})
}

// TestWaitUntilPublishedTimeout verifies timed waits return a sub-target
// sequence within the deadline plus scheduling jitter.
func TestWaitUntilPublishedTimeout(t *testing.T) {
	waitStrategies(t, func(t *testing.T, ws disruptor.WaitStrategy) {
		cells := makeCells(3)

		start := time.Now()
		got := ws.WaitUntilPublishedFor(10, cells, 50*time.Millisecond)
		elapsed := time.Since(start)

		if disruptor.Difference(got, 10) >= 0 {
			t.Fatalf("timed-out wait returned %d, want a sequence before 10", got)
		}
		if elapsed < 50*time.Millisecond {
			t.Fatalf("returned after %v, before the timeout", elapsed)
		}
		if elapsed > 2*time.Second {
			t.Fatalf("returned after %v, far past the timeout", elapsed)
		}
	})
}

func TestWaitUntilPublishedDeadlineAlreadyPassed(t *testing.T) {
	waitStrategies(t, func(t *testing.T, ws disruptor.WaitStrategy) {
		cells := makeCells(3)
		got := ws.WaitUntilPublishedUntil(10, cells, time.Now().Add(-time.Second))
		if disruptor.Difference(got, 10) >= 0 {
			t.Fatalf("expired deadline returned %d, want a sequence before 10", got)
		}
	})
}

// TestWaitUntilPublishedTimedSuccess verifies a publish racing the
// deadline is reported as success, not timeout.
func TestWaitUntilPublishedTimedSuccess(t *testing.T) {
	waitStrategies(t, func(t *testing.T, ws disruptor.WaitStrategy) {
		cells := makeCells(disruptor.InitialSequence)

		done := make(chan disruptor.Sequence, 1)
		go func() {
			done <- ws.WaitUntilPublishedFor(0, cells, 5*time.Second)
		}()

		time.Sleep(10 * time.Millisecond)
		cells[0].StoreRelease(0)
		ws.SignalAllWhenBlocking()

		select {
		case got := <-done:
			if disruptor.Difference(got, 0) < 0 {
				t.Fatalf("waiter returned %d, want >= 0", got)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("waiter did not return after publish")
		}
	})
}

// TestBlockingSignalBeforeBlocking exercises the race where the publisher
// signals between the waiter's sequence check and its sleep: the
// mutex-guarded broadcast must not strand the waiter.
func TestBlockingSignalBeforeBlocking(t *testing.T) {
	ws := disruptor.NewBlockingWaitStrategy()
	cells := makeCells(disruptor.InitialSequence)

	const rounds = 1000
	for round := range rounds {
		target := disruptor.Sequence(round)
		done := make(chan struct{})
		go func() {
			ws.WaitUntilPublished(target, cells)
			close(done)
		}()

		cells[0].StoreRelease(target)
		ws.SignalAllWhenBlocking()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("round %d: waiter stranded", round)
		}
	}
}

// TestSignalAllWhenBlockingWithoutWaiters must be a no-op in both
// strategies.
func TestSignalAllWhenBlockingWithoutWaiters(t *testing.T) {
	waitStrategies(t, func(t *testing.T, ws disruptor.WaitStrategy) {
		for range 3 {
			ws.SignalAllWhenBlocking()
		}
	})
}

// TestWaitStrategySharedCells verifies many waiters on one strategy all
// observe the same published sequences.
func TestWaitStrategySharedCells(t *testing.T) {
	waitStrategies(t, func(t *testing.T, ws disruptor.WaitStrategy) {
		cells := makeCells(disruptor.InitialSequence)

		const waiters = 8
		done := make(chan disruptor.Sequence, waiters)
		for range waiters {
			go func() {
				done <- ws.WaitUntilPublished(7, cells)
			}()
		}

		time.Sleep(time.Millisecond)
		cells[0].StoreRelease(7)
		ws.SignalAllWhenBlocking()

		for i := range waiters {
			select {
			case got := <-done:
				if disruptor.Difference(got, 7) < 0 {
					t.Fatalf("waiter %d returned %d, want >= 7", i, got)
				}
			case <-time.After(5 * time.Second):
				t.Fatalf("waiter %d did not return", i)
			}
		}
	})
}
