// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "code.hybscloud.com/iox"

// ErrWouldBlock reports that a non-blocking or timed operation could not
// proceed.
//
// Claim strategies return it when back-pressure refuses a slot: TryClaim
// found a registered claim barrier that has not yet published the
// sequence one full lap before the requested one, or a timed claim ran
// out its deadline before a consumer advanced. The queue facades forward it from Enqueue (ring
// full) and return it from Dequeue when nothing is published past the
// consumer's cursor.
//
// The error is a control flow signal, not a failure: the refused slots
// exist as soon as consumers publish more progress, so callers retry with
// backoff instead of propagating it. It aliases [iox.ErrWouldBlock], so
// the ecosystem's classification helpers — [iox.IsWouldBlock],
// [iox.IsSemantic], [iox.IsNonFailure] — and errors.Is apply to it
// directly.
var ErrWouldBlock = iox.ErrWouldBlock
