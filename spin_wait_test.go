// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "testing"

// The phase schedule tests run in-package so they can pin the initial
// phase regardless of the host's core count.

func withInitialSpinPhase(t *testing.T, phase uint32) {
	t.Helper()
	prev := initialSpinPhase
	initialSpinPhase = phase
	t.Cleanup(func() { initialSpinPhase = prev })
}

func TestSpinWaitBusyPhases(t *testing.T) {
	withInitialSpinPhase(t, 0)

	var sw SpinWait
	for i := range 10 {
		if sw.NextWillYield() {
			t.Fatalf("call %d: NextWillYield before the busy phases ran out", i)
		}
		sw.Once()
	}
	if !sw.NextWillYield() {
		t.Fatal("NextWillYield: want true after ten busy phases")
	}
}

func TestSpinWaitSingleCoreStartsYielding(t *testing.T) {
	withInitialSpinPhase(t, 10)

	var sw SpinWait
	if !sw.NextWillYield() {
		t.Fatal("NextWillYield: single-core hosts must start in the yield phase")
	}
}

func TestSpinWaitReset(t *testing.T) {
	withInitialSpinPhase(t, 0)

	var sw SpinWait
	for range 12 {
		sw.Once()
	}
	if !sw.NextWillYield() {
		t.Fatal("NextWillYield: want true after 12 calls")
	}
	sw.Reset()
	if sw.NextWillYield() {
		t.Fatal("NextWillYield: want false after Reset")
	}
}

func TestSpinWaitOverflowWrapsToYieldPhase(t *testing.T) {
	withInitialSpinPhase(t, 0)

	var sw SpinWait
	sw.Reset()
	sw.value = ^uint32(0) - 1
	// The counter must wrap back into the yield phases, never to the busy
	// phases: (value-10)%20 != 19 for both steps keeps this sleep-free.
	sw.Once()
	if sw.value != ^uint32(0) {
		t.Fatalf("value: got %d, want max", sw.value)
	}
	sw.Once()
	if sw.value != 10 {
		t.Fatalf("value after overflow: got %d, want 10", sw.value)
	}
	if !sw.NextWillYield() {
		t.Fatal("NextWillYield: want true after overflow wrap")
	}
}
