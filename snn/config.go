// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"math"

	"github.com/c2h5oh/datasize"
	"github.com/chewxy/math32"
)

// Config holds the session-level settings for a Network: everything that
// is global to the run rather than specific to a population or projection.
// It is fixed once the Network is built.
type Config struct {
	Dt          float32           `def:"0.1" min:"0" desc:"integration time step in msec -- fixed for the whole run"`
	NThreads    int               `def:"1" min:"1" desc:"number of parallel worker threads (go routines) -- each owns a contiguous range of neuron indexes"`
	LockThreads bool              `desc:"if set, runtime.LockOSThread() is called on the compute threads, which can be faster on large networks on some architectures -- experimentation is recommended"`
	Seed        uint64            `def:"98765" desc:"seed for the session random number stream used to initialize neuron state"`
	MaxDelay    float32           `def:"0" desc:"if > 0, pins the delay-line horizon to this delay in msec, and any projection with a longer delay is a configuration error -- 0 = size the horizon from the longest projection delay"`
	MaxEventMem datasize.ByteSize `def:"1GB" desc:"upper bound on memory held by the delay line, for its slot buffers (checked in Build) and for pending spike-delivery events (checked every step) -- exceeding it is a ResourceExhaustion error -- 0 = no limit"`
	MaxRecMem   datasize.ByteSize `def:"1GB" desc:"upper bound on memory used by each recorder -- exceeding it aborts the run with a ResourceExhaustion error"`
}

// Defaults sets default values
func (cf *Config) Defaults() {
	cf.Dt = 0.1
	cf.NThreads = 1
	cf.Seed = 98765
	cf.MaxDelay = 0
	cf.MaxEventMem = 1 * datasize.GB
	cf.MaxRecMem = 1 * datasize.GB
}

// NewConfig returns a new Config with default values
func NewConfig() *Config {
	cf := &Config{}
	cf.Defaults()
	return cf
}

// Validate returns a ConfigErr for any invalid setting
func (cf *Config) Validate() error {
	switch {
	case !(cf.Dt > 0) || math32.IsInf(cf.Dt, 0):
		return configErr("Dt must be a positive finite step, got: %v", cf.Dt)
	case cf.NThreads < 1:
		return configErr("NThreads must be >= 1, got: %d", cf.NThreads)
	case !(cf.MaxDelay >= 0):
		return configErr("MaxDelay must be >= 0, got: %v", cf.MaxDelay)
	case !cf.DelayInRange(cf.MaxDelay):
		return configErr("MaxDelay of %v msec is more than the maximum of %d steps", cf.MaxDelay, MaxSteps)
	}
	return nil
}

// MaxSteps is the largest number of steps for a delay or refractory period,
// so that step counts and the delay-line horizon fit in an int32.
const MaxSteps = math.MaxInt32 - 1

// DelayInRange returns true if del msec is a finite non-negative delay of
// at most MaxSteps steps
func (cf *Config) DelayInRange(del float32) bool {
	steps := math.Round(float64(del) / float64(cf.Dt))
	return steps >= 0 && steps <= MaxSteps
}

// DelaySteps returns the delay in msec quantized to whole integration steps.
// del must be DelayInRange.
func (cf *Config) DelaySteps(del float32) int {
	return int(math.Round(float64(del) / float64(cf.Dt)))
}
