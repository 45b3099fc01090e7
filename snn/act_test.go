// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"errors"
	"math"
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-4)

func TestActDefaults(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	if ac.Spike.RefractSteps != 50 {
		t.Errorf("RefractSteps: got %v, want 50", ac.Spike.RefractSteps)
	}
	if dif := math32.Abs(ac.Dt.VmDt - 0.005); dif > 1e-7 {
		t.Errorf("VmDt: got %v, want 0.005", ac.Dt.VmDt)
	}
	if dif := math32.Abs(ac.Dt.GeDecay - 0.98); dif > 1e-6 {
		t.Errorf("GeDecay: got %v, want 0.98", ac.Dt.GeDecay)
	}
	if dif := math32.Abs(ac.Dt.GiDecay - 0.99); dif > 1e-6 {
		t.Errorf("GiDecay: got %v, want 0.99", ac.Dt.GiDecay)
	}
	if err := ac.Validate(); err != nil {
		t.Error(err)
	}

	ac.Dt.Method = ExpEuler
	ac.Update()
	if dif := math32.Abs(ac.Dt.GeDecay - 0.98019867); dif > 1e-6 {
		t.Errorf("ExpEuler GeDecay: got %v, want 0.98019867", ac.Dt.GeDecay)
	}
	if dif := math32.Abs(ac.Dt.GiDecay - 0.99004983); dif > 1e-6 {
		t.Errorf("ExpEuler GiDecay: got %v, want 0.99004983", ac.Dt.GiDecay)
	}
}

func TestVmFmG(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()

	vms := []float32{-60, -55, -60, -50, -60}
	ges := []float32{0, 0, 0.5, 0, 0.2}
	gis := []float32{0, 0, 0, 1, 0.5}
	corvm := []float32{-59.9, -54.925, -59.75, -50.1, -59.89}
	for i := range vms {
		vm := ac.VmFmG(vms[i], ges[i], gis[i])
		dif := math32.Abs(vm - corvm[i])
		if dif > difTol {
			t.Errorf("Vm err: idx: %v, vm: %v, ge: %v, gi: %v, got: %v, corvm: %v, dif: %v\n", i, vms[i], ges[i], gis[i], vm, corvm[i], dif)
		}
	}
}

func TestNeuronStepSpike(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	nrns := &Neurons{}
	nrns.Alloc(1)

	// v at threshold does not spike: strictly greater is required
	nrns.Vm[0] = -50
	ac.I = 10 // (El - v) + I = 0 at -50
	if ac.NeuronStep(nrns, 0) {
		t.Errorf("spiked at threshold: vm: %v", nrns.Vm[0])
	}

	ac.I = 20
	nrns.Vm[0] = -49.99
	nrns.Ge[0] = 1
	nrns.Gi[0] = 1
	if !ac.NeuronStep(nrns, 0) {
		t.Fatalf("did not spike from -49.99 with excitation")
	}
	if nrns.Vm[0] != ac.Spike.VmR {
		t.Errorf("Vm not reset: %v", nrns.Vm[0])
	}
	if nrns.Refr[0] != ac.Spike.RefractSteps {
		t.Errorf("Refr: got %v, want %v", nrns.Refr[0], ac.Spike.RefractSteps)
	}
	if dif := math32.Abs(nrns.Ge[0] - 0.98); dif > 1e-6 {
		t.Errorf("Ge not decayed: %v", nrns.Ge[0])
	}

	// refractory: clamped, conductances still decay, no spike even when driven hard
	nrns.Ge[0] = 100
	for i := int32(0); i < ac.Spike.RefractSteps; i++ {
		if ac.NeuronStep(nrns, 0) {
			t.Fatalf("spiked during refractory period, step: %v", i)
		}
		if nrns.Vm[0] != ac.Spike.VmR {
			t.Fatalf("Vm not clamped during refractory period: %v", nrns.Vm[0])
		}
	}
	if nrns.Refr[0] != 0 {
		t.Errorf("Refr: got %v, want 0", nrns.Refr[0])
	}
	want := 100 * math.Pow(0.98, float64(ac.Spike.RefractSteps))
	if dif := math.Abs(float64(nrns.Ge[0]) - want); dif > 1e-3 {
		t.Errorf("Ge during refractory: got %v, want %v", nrns.Ge[0], want)
	}
	if !ac.NeuronStep(nrns, 0) {
		t.Errorf("did not spike on first step after refractory period with Ge: %v", nrns.Ge[0])
	}
}

// TestIsolatedNeuron compares the float32 update against a float64
// computation of the same Euler iteration: from -60 with I = 20 the potential
// follows v_k = -40 - 20 * 0.995^k, which first exceeds -50 at k = 139.
func TestIsolatedNeuron(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	nrns := &Neurons{}
	nrns.Alloc(1)
	nrns.Vm[0] = -60

	v64 := -60.0
	var spks []int
	for step := 0; step < 1000; step++ {
		spk := ac.NeuronStep(nrns, 0)
		if spk {
			spks = append(spks, step)
		}
		if len(spks) == 0 {
			v64 += 0.005 * ((-60 - v64) + 20)
			if dif := math.Abs(float64(nrns.Vm[0]) - v64); !spk && dif > 1e-2 {
				t.Fatalf("step: %v, vm: %v, float64: %v", step, nrns.Vm[0], v64)
			}
		}
	}
	corspks := []int{138, 327, 516, 705, 894}
	if len(spks) != len(corspks) {
		t.Fatalf("spikes: got %v, want %v", spks, corspks)
	}
	for i := range spks {
		if spks[i] != corspks[i] {
			t.Errorf("spike %d: got step %v, want %v", i, spks[i], corspks[i])
		}
	}
}

func TestActValidate(t *testing.T) {
	tests := []struct {
		name string
		set  func(ac *ActParams)
	}{
		{"thr below reset", func(ac *ActParams) { ac.Spike.Thr = -70 }},
		{"negative refract", func(ac *ActParams) { ac.Spike.Refract = -1 }},
		{"zero tau", func(ac *ActParams) { ac.Dt.Tau = 0 }},
		{"euler unstable", func(ac *ActParams) { ac.Dt.TauE = 0.05 }},
		{"negative sd", func(ac *ActParams) { ac.Init.VmSd = -1 }},
		{"inf input", func(ac *ActParams) { ac.I = math32.Inf(1) }},
		{"nan reversal", func(ac *ActParams) { ac.Erev.I = math32.NaN() }},
		{"nan refract", func(ac *ActParams) { ac.Spike.Refract = math32.NaN() }},
		{"refract steps overflow", func(ac *ActParams) { ac.Spike.Refract = 3e8 }},
	}
	for _, tt := range tests {
		ac := ActParams{}
		ac.Defaults()
		tt.set(&ac)
		ac.Update()
		err := ac.Validate()
		if !errors.Is(err, ErrConfig) {
			t.Errorf("%s: expected config error, got: %v", tt.name, err)
		}
	}
}

// TestNeuronStepOverflow checks that a membrane potential that overflows from
// finite parameters is kept as is, not taken as a spike and reset.
func TestNeuronStepOverflow(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	ac.I = 3e38
	ac.Dt.Tau = 1e-3
	ac.Update()
	if err := ac.Validate(); err != nil {
		t.Fatal(err)
	}
	nrns := &Neurons{}
	nrns.Alloc(1)
	nrns.Vm[0] = -60
	if ac.NeuronStep(nrns, 0) {
		t.Errorf("overflow taken as a spike")
	}
	if !math32.IsInf(nrns.Vm[0], 1) || nrns.Refr[0] != 0 {
		t.Errorf("Vm: got %v, Refr: %v, want +Inf, 0", nrns.Vm[0], nrns.Refr[0])
	}
	if vnm, _ := nrns.Fault(0); vnm != "Vm" {
		t.Errorf("Fault: got %q, want Vm", vnm)
	}
}
