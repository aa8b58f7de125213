// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"time"

	"code.hybscloud.com/atomix"
)

// WaitStrategy is the policy for blocking a goroutine until a set of
// observed sequence cells reaches a target sequence number.
//
// Barriers and claim strategies are generic over a WaitStrategy so that
// the waiting loop is compiled against the concrete strategy; there is no
// dynamic dispatch on the hot path. A single strategy instance is shared
// by reference between every barrier and claim strategy of a pipeline and
// must outlive all of them.
//
// The timed forms return a sequence preceding target on timeout; callers
// detect this with Difference(result, target) < 0. Timeouts are control
// flow, not failures.
type WaitStrategy interface {
	// WaitUntilPublished blocks until every cell has reached at least
	// target and returns the minimum of the observed cells. The return
	// carries acquire semantics on every cell.
	WaitUntilPublished(target Sequence, cells []*atomix.Uint64) Sequence

	// WaitUntilPublishedFor is WaitUntilPublished with a timeout relative
	// to now.
	WaitUntilPublishedFor(target Sequence, cells []*atomix.Uint64, timeout time.Duration) Sequence

	// WaitUntilPublishedUntil is WaitUntilPublished with an absolute
	// deadline.
	WaitUntilPublishedUntil(target Sequence, cells []*atomix.Uint64, deadline time.Time) Sequence

	// SignalAllWhenBlocking is called by every publisher after its
	// release store so that blocked waiters re-check the sequences.
	// Strategies that never block implement it as a no-op.
	SignalAllWhenBlocking()
}
