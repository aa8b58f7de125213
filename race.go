// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package disruptor

// RaceEnabled is true when the race detector is active.
//
// The claim protocol hands a ring slot from producer to consumer through
// a release store on a sequence cell (the read barrier, or a publication
// map entry) paired with the consumer's acquire load; the slot write and
// read themselves are plain memory accesses. The detector cannot see the
// pairing on the separate cell and reports those accesses as races.
//
// Every test that moves payload through slots concurrently consults this
// and skips: the end-to-end sum pipelines and the overrun probe in
// correctness_test.go, the counter-wrap stress in wrap_test.go, the claim
// partitioning check in multi_producer_claim_test.go, and the concurrent
// queue drain in queue_test.go. Tests that stay on one goroutine, or that
// exchange only sequence numbers, run under the detector as usual.
const RaceEnabled = true
