// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"sync"
	"time"

	"code.hybscloud.com/atomix"
)

// BlockingWaitStrategy parks waiting goroutines until a publisher signals
// that a sequence has advanced.
//
// Every blocked waiter is woken on every signal regardless of which
// sequence it waits on, and re-checks its sequences before deciding to
// block again. Use this strategy when waiting threads should not burn CPU;
// use SpinWaitStrategy when wake-up latency matters more.
//
// The strategy broadcasts through a generation channel that is closed and
// replaced under a mutex. Go's condition variables have no timed wait, and
// the library never spawns goroutines, so the channel form is what lets
// the timed overloads select against a timer. Taking the mutex around the
// broadcast closes the race where a waiter has checked the sequences but
// not yet started blocking.
type BlockingWaitStrategy struct {
	mu      sync.Mutex
	waiters int
	wake    chan struct{}
}

// NewBlockingWaitStrategy returns a blocking wait strategy.
func NewBlockingWaitStrategy() *BlockingWaitStrategy {
	return &BlockingWaitStrategy{wake: make(chan struct{})}
}

// WaitUntilPublished blocks until every cell has reached at least target
// and returns the minimum of the observed cells.
func (s *BlockingWaitStrategy) WaitUntilPublished(target Sequence, cells []*atomix.Uint64) Sequence {
	for {
		s.mu.Lock()
		result := MinimumSequenceAfter(target, cells)
		if Difference(result, target) >= 0 {
			s.mu.Unlock()
			return result
		}
		wake := s.wake
		s.waiters++
		s.mu.Unlock()

		<-wake
		s.unregister()
	}
}

// WaitUntilPublishedFor is WaitUntilPublished with a timeout relative to
// now.
func (s *BlockingWaitStrategy) WaitUntilPublishedFor(target Sequence, cells []*atomix.Uint64, timeout time.Duration) Sequence {
	return s.WaitUntilPublishedUntil(target, cells, time.Now().Add(timeout))
}

// WaitUntilPublishedUntil blocks until every cell has reached at least
// target or the deadline passes. On timeout the result precedes target.
func (s *BlockingWaitStrategy) WaitUntilPublishedUntil(target Sequence, cells []*atomix.Uint64, deadline time.Time) Sequence {
	for {
		s.mu.Lock()
		result := MinimumSequenceAfter(target, cells)
		if Difference(result, target) >= 0 {
			s.mu.Unlock()
			return result
		}
		wake := s.wake
		s.waiters++
		s.mu.Unlock()

		remaining := time.Until(deadline)
		if remaining <= 0 {
			s.unregister()
			return result
		}
		timer := time.NewTimer(remaining)
		select {
		case <-wake:
			timer.Stop()
			s.unregister()
		case <-timer.C:
			s.unregister()
			// A publish can race the deadline; report what the cells
			// say now rather than a stale observation.
			s.mu.Lock()
			result = MinimumSequenceAfter(target, cells)
			s.mu.Unlock()
			return result
		}
	}
}

// SignalAllWhenBlocking wakes every blocked waiter so it re-checks its
// sequences. Publishers call it after their release store.
func (s *BlockingWaitStrategy) SignalAllWhenBlocking() {
	s.mu.Lock()
	if s.waiters > 0 {
		close(s.wake)
		s.wake = make(chan struct{})
	}
	s.mu.Unlock()
}

func (s *BlockingWaitStrategy) unregister() {
	s.mu.Lock()
	s.waiters--
	s.mu.Unlock()
}
