// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"runtime"
	"time"
	_ "unsafe"
)

//go:linkname procyield runtime.procyield
func procyield(cycles uint32)

// initialSpinPhase is 0 on multi-core hosts and 10 (the first yield phase)
// on single-core hosts, where busy pause hints cannot make progress.
var initialSpinPhase uint32

func init() {
	if runtime.NumCPU() == 1 {
		initialSpinPhase = 10
	}
}

// SpinWait is a helper for implementing spin-wait loops.
//
// Call Once each time through the loop. The first ten calls execute
// exponentially longer sequences of CPU pause hints, after which the
// helper graduates to yielding the goroutine's time slice, with a short
// sleep every 20th call.
//
//	var sw disruptor.SpinWait
//	for !ready() {
//	    sw.Once()
//	}
//
// A SpinWait arms itself on first use: until Reset has run, Once and
// NextWillYield begin from the host's initial phase (busy pause hints on
// multi-core, straight to yielding on single-core). Reset rearms a used
// SpinWait to that initial phase.
type SpinWait struct {
	value uint32
	armed bool
}

// Reset returns the SpinWait to its initial state.
func (w *SpinWait) Reset() {
	w.value = initialSpinPhase
	w.armed = true
}

// NextWillYield reports whether the next call to Once will yield the
// remainder of the time slice rather than executing pause hints.
//
// Polling loops with a deadline use this to read the clock only once the
// loop has left the busy-pause phases.
func (w *SpinWait) NextWillYield() bool {
	if !w.armed {
		w.Reset()
	}
	return w.value >= 10
}

// Once waits for a short period of time. Call it each time through a
// spin-wait loop.
func (w *SpinWait) Once() {
	if !w.armed {
		w.Reset()
	}
	if w.value >= 10 {
		if (w.value-10)%20 == 19 {
			time.Sleep(time.Millisecond)
		} else {
			runtime.Gosched()
		}
	} else {
		procyield(4 << w.value)
	}
	if w.value == ^uint32(0) {
		w.value = 10
	} else {
		w.value++
	}
}
