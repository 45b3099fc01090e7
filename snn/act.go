// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/emer/snn/chans"
	"github.com/goki/mat32"
)

///////////////////////////////////////////////////////////////////////
//  act.go contains the activation params and functions for the
//  conductance-based leaky integrate-and-fire neuron

// snn.ActParams contains all the activation computation params and functions
// for the COBA leaky integrate-and-fire neuron:
//
//	tau * dv/dt = (El - v) + g_exc * (Erev_exc - v) + g_inh * (Erev_inh - v) + I
//	tau_exc * dg_exc/dt = -g_exc
//	tau_inh * dg_inh/dt = -g_inh
//
// with spike when v > Vt, followed by reset v = Vr and a refractory period.
// One ActParams is held per population and shared by all of its neurons.
type ActParams struct {
	Erev  chans.Chans   `view:"inline" desc:"[Defaults: 0, -60, -80] reversal potentials for each channel, in mV -- L is the leak (resting) potential El"`
	I     float32       `def:"20" desc:"constant input drive, in mV (added to the membrane equation alongside the conductance terms)"`
	Spike SpikeParams   `view:"inline" desc:"spiking threshold, reset and refractory parameters"`
	Dt    DtParams      `view:"inline" desc:"time constants and integration method"`
	Init  ActInitParams `view:"inline" desc:"initial values for neuron state, set by InitState"`
}

func (ac *ActParams) Defaults() {
	ac.Erev.SetAll(0, -60, -80)
	ac.I = 20
	ac.Spike.Defaults()
	ac.Dt.Defaults()
	ac.Init.Defaults()
	ac.Update()
}

// Update must be called after any changes to parameters
func (ac *ActParams) Update() {
	ac.Dt.Update()
	ac.Spike.Update(ac.Dt.Step)
}

// Validate returns a ConfigErr for parameters that cannot be integrated
func (ac *ActParams) Validate() error {
	if err := ac.Dt.Validate(); err != nil {
		return err
	}
	for _, pv := range []struct {
		nm  string
		val float32
	}{
		{"I", ac.I}, {"Erev.E", ac.Erev.E}, {"Erev.L", ac.Erev.L}, {"Erev.I", ac.Erev.I},
		{"Spike.Thr", ac.Spike.Thr}, {"Spike.VmR", ac.Spike.VmR},
		{"Init.Vm", ac.Init.Vm}, {"Init.VmSd", ac.Init.VmSd}, {"Init.Ge", ac.Init.Ge}, {"Init.Gi", ac.Init.Gi},
	} {
		if nonFinite(pv.val) {
			return configErr("%s must be finite, got: %v", pv.nm, pv.val)
		}
	}
	if !(ac.Spike.Thr > ac.Spike.VmR) {
		return configErr("Spike.Thr (%v) must be above Spike.VmR (%v)", ac.Spike.Thr, ac.Spike.VmR)
	}
	if !(ac.Spike.Refract >= 0) {
		return configErr("Spike.Refract must be >= 0, got: %v", ac.Spike.Refract)
	}
	if steps := math.Round(float64(ac.Spike.Refract) / float64(ac.Dt.Step)); steps > MaxSteps {
		return configErr("Spike.Refract of %v msec is %g steps, more than the maximum of %d", ac.Spike.Refract, steps, MaxSteps)
	}
	if ac.Init.VmSd < 0 {
		return configErr("Init.VmSd must be >= 0, got: %v", ac.Init.VmSd)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////
//  Cycle

// VmFmG computes the next-step membrane potential from the current
// potential and conductances, using forward Euler.
func (ac *ActParams) VmFmG(vm, ge, gi float32) float32 {
	return vm + ac.Dt.VmDt*(ac.Erev.Inet(vm, 1, ge, gi)+ac.I)
}

// GFmDecay returns the next-step conductances decayed toward zero
func (ac *ActParams) GFmDecay(ge, gi float32) (float32, float32) {
	return ge * ac.Dt.GeDecay, gi * ac.Dt.GiDecay
}

// NeuronStep advances neuron ni by one step: conductance decay, refractory
// countdown, membrane update and threshold test.  The membrane update uses the
// conductances at the start of the step.  Returns true if the neuron spiked.
func (ac *ActParams) NeuronStep(nrns *Neurons, ni int) bool {
	ge := nrns.Ge[ni]
	gi := nrns.Gi[ni]
	nrns.Ge[ni], nrns.Gi[ni] = ac.GFmDecay(ge, gi)
	if nrns.Refr[ni] > 0 {
		nrns.Refr[ni]--
		nrns.Vm[ni] = ac.Spike.VmR
		return false
	}
	vm := ac.VmFmG(nrns.Vm[ni], ge, gi)
	if nonFinite(vm) { // left in place for Neurons.Fault
		nrns.Vm[ni] = vm
		return false
	}
	spk := ac.Spike.SpikeFmVm(&vm, &nrns.Refr[ni])
	nrns.Vm[ni] = vm
	return spk
}

//////////////////////////////////////////////////////////////////////////////////////
//  SpikeParams

// SpikeParams contains spiking threshold, reset and refractory parameters
type SpikeParams struct {
	Thr     float32 `def:"-50" desc:"firing threshold Vt, in mV -- spike when Vm > Thr"`
	VmR     float32 `def:"-60" desc:"post-spiking membrane potential to reset to (Vr), in mV -- also the clamped value during the refractory period"`
	Refract float32 `def:"5" min:"0" desc:"refractory period in msec, quantized to whole steps -- the neuron is clamped to VmR and cannot spike during this time"`

	RefractSteps int32 `view:"-" json:"-" xml:"-" desc:"Refract in whole steps, computed in Update"`
}

func (sk *SpikeParams) Defaults() {
	sk.Thr = -50
	sk.VmR = -60
	sk.Refract = 5
}

// Update computes the step-quantized values for step size dt (msec)
func (sk *SpikeParams) Update(dt float32) {
	if steps := mat32.Round(sk.Refract / dt); dt > 0 && float64(steps) <= MaxSteps {
		sk.RefractSteps = int32(steps) // out of range is rejected by Validate
	}
}

// SpikeFmVm tests the just-computed membrane potential against threshold.
// If it spikes, vm is reset and the refractory countdown is started.
func (sk *SpikeParams) SpikeFmVm(vm *float32, refr *int32) bool {
	if *vm > sk.Thr {
		*vm = sk.VmR
		*refr = sk.RefractSteps
		return true
	}
	return false
}

//////////////////////////////////////////////////////////////////////////////////////
//  DtParams

// DtParams are time constants and the integration method.
// All time constants are in msec.
type DtParams struct {
	Step   float32      `def:"0.1" desc:"integration step in msec -- this is set by the Network from its Config.Dt, which is the same for all populations"`
	Tau    float32      `def:"20" min:"0" desc:"membrane time constant"`
	TauE   float32      `def:"5" min:"0" desc:"excitatory synaptic conductance decay time constant"`
	TauI   float32      `def:"10" min:"0" desc:"inhibitory synaptic conductance decay time constant"`
	Method IntegMethods `desc:"integration method for conductance decay"`

	VmDt    float32 `view:"-" json:"-" xml:"-" desc:"rate = Step / Tau"`
	GeDecay float32 `view:"-" json:"-" xml:"-" desc:"per-step multiplier on Ge"`
	GiDecay float32 `view:"-" json:"-" xml:"-" desc:"per-step multiplier on Gi"`
}

func (dp *DtParams) Update() {
	if !(dp.Step > 0 && dp.Tau > 0 && dp.TauE > 0 && dp.TauI > 0) {
		return
	}
	dp.VmDt = dp.Step / dp.Tau
	switch dp.Method {
	case ExpEuler:
		dp.GeDecay = math32.Exp(-dp.Step / dp.TauE)
		dp.GiDecay = math32.Exp(-dp.Step / dp.TauI)
	default:
		dp.GeDecay = 1 - dp.Step/dp.TauE
		dp.GiDecay = 1 - dp.Step/dp.TauI
	}
}

func (dp *DtParams) Defaults() {
	dp.Step = 0.1
	dp.Tau = 20
	dp.TauE = 5
	dp.TauI = 10
	dp.Method = Euler
	dp.Update()
}

// Validate checks that the time constants are usable with the step size
func (dp *DtParams) Validate() error {
	if !(dp.Step > 0) {
		return configErr("Dt.Step must be > 0, got: %v", dp.Step)
	}
	if !(dp.Tau > 0 && dp.TauE > 0 && dp.TauI > 0) {
		return configErr("time constants must be > 0, got: Tau %v, TauE %v, TauI %v", dp.Tau, dp.TauE, dp.TauI)
	}
	if dp.Method == Euler && (dp.Step > dp.TauE || dp.Step > dp.TauI) {
		return configErr("Euler decay unstable: Dt.Step %v exceeds a synaptic time constant", dp.Step)
	}
	return nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  ActInitParams

// ActInitParams are initial values for neuron state variables, set by InitState.
// Vm is drawn from a normal distribution from the session random stream.
type ActInitParams struct {
	Vm   float32 `def:"-55" desc:"mean initial membrane potential, in mV"`
	VmSd float32 `def:"5" min:"0" desc:"standard deviation of initial membrane potential -- 0 = all start at Vm"`
	Ge   float32 `def:"0" desc:"initial excitatory conductance"`
	Gi   float32 `def:"0" desc:"initial inhibitory conductance"`
}

func (ai *ActInitParams) Defaults() {
	ai.Vm = -55
	ai.VmSd = 5
	ai.Ge = 0
	ai.Gi = 0
}
