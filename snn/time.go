// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import "strconv"

// snn.Time contains the timing state for running a Network
type Time struct {

	// step counter: number of integration steps completed since the last InitState.
	// The step currently being computed has this index.
	Step int

	// accumulated amount of simulated time, in msec = Step * Dt
	Time float64

	// amount of time to increment per step, in msec
	Dt float32 `def:"0.1"`

	// Dt as the float64 closest to its shortest decimal form, so that
	// Time is exact for decimal step sizes (0.1 rather than 0.10000000149)
	dt64 float64
}

// NewTime returns a new Time struct with given step size
func NewTime(dt float32) *Time {
	tm := &Time{Dt: dt}
	tm.dt64, _ = strconv.ParseFloat(strconv.FormatFloat(float64(dt), 'g', -1, 32), 64)
	return tm
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Step = 0
	tm.Time = 0
}

// StepInc increments at the step level
func (tm *Time) StepInc() {
	tm.Step++
	tm.Time = float64(tm.Step) * tm.dt64
}

// StepsFor returns the number of whole steps covering given duration in msec
func (tm *Time) StepsFor(msec float64) int {
	return int(msec/tm.dt64 + 0.5)
}
