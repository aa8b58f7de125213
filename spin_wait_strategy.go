// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"time"

	"code.hybscloud.com/atomix"
)

// SpinWaitStrategy waits for sequences with a busy-wait loop.
//
// It gives the lowest wake-up latency of the strategies at the cost of
// burning CPU while waiting. Use it when waiting threads have cores to
// themselves; use BlockingWaitStrategy when they do not.
type SpinWaitStrategy struct{}

// NewSpinWaitStrategy returns a spin wait strategy. The strategy is
// stateless; a single instance can serve any number of pipelines.
func NewSpinWaitStrategy() *SpinWaitStrategy {
	return &SpinWaitStrategy{}
}

// WaitUntilPublished busy-waits until every cell has reached at least
// target and returns the minimum of the observed cells.
func (s *SpinWaitStrategy) WaitUntilPublished(target Sequence, cells []*atomix.Uint64) Sequence {
	var sw SpinWait
	result := MinimumSequenceAfter(target, cells)
	for Difference(result, target) < 0 {
		sw.Once()
		result = MinimumSequenceAfter(target, cells)
	}
	return result
}

// WaitUntilPublishedFor is WaitUntilPublished with a timeout relative to
// now.
func (s *SpinWaitStrategy) WaitUntilPublishedFor(target Sequence, cells []*atomix.Uint64, timeout time.Duration) Sequence {
	return s.WaitUntilPublishedUntil(target, cells, time.Now().Add(timeout))
}

// WaitUntilPublishedUntil busy-waits until every cell has reached at
// least target or the deadline passes. On timeout the result precedes
// target.
//
// The clock is consulted only once the spin loop has reached its yield
// phases, so the busy phases stay free of timer reads.
func (s *SpinWaitStrategy) WaitUntilPublishedUntil(target Sequence, cells []*atomix.Uint64, deadline time.Time) Sequence {
	var sw SpinWait
	result := MinimumSequenceAfter(target, cells)
	for Difference(result, target) < 0 {
		if sw.NextWillYield() && time.Now().After(deadline) {
			return result
		}
		sw.Once()
		result = MinimumSequenceAfter(target, cells)
	}
	return result
}

// SignalAllWhenBlocking does nothing: spinning waiters are continuously
// re-checking the sequence cells already.
func (s *SpinWaitStrategy) SignalAllWhenBlocking() {}
