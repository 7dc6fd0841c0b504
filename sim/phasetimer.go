// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "time"

// PhaseTimer accumulates per-phase wall-clock time across a step.
type PhaseTimer struct {
	totals map[string]time.Duration
}

// NewPhaseTimer returns an empty timer.
func NewPhaseTimer() *PhaseTimer {
	return &PhaseTimer{totals: make(map[string]time.Duration)}
}

// Time runs fn, adding its wall-clock duration to the running total for
// name (cumulative across repeated calls within the same step).
func (t *PhaseTimer) Time(name string, fn func()) {
	start := time.Now()
	fn()
	t.totals[name] += time.Since(start)
}

// Totals returns the accumulated per-phase durations.
func (t *PhaseTimer) Totals() map[string]time.Duration {
	return t.totals
}

// Reset clears all accumulated totals, called once per macro-step.
func (t *PhaseTimer) Reset() {
	t.totals = make(map[string]time.Duration)
}
