// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"
	"unsafe"

	"github.com/chewxy/math32"
)

// snn.Neurons holds the state of all neurons in the network, as a struct of
// arrays indexed by global neuron index.  Populations occupy contiguous
// index ranges (see Pop.St).  During the update phase each worker thread
// exclusively writes its own index range.
type Neurons struct {

	// membrane potential, in mV
	Vm []float32

	// excitatory synaptic conductance, relative to the leak conductance
	Ge []float32

	// inhibitory synaptic conductance, relative to the leak conductance
	Gi []float32

	// remaining refractory steps -- the neuron is clamped to reset and cannot spike while > 0
	Refr []int32

	// step of the most recent spike, -1 if none since InitState
	LastSpike []int32
}

// NeuronVars are the names of the per-neuron state variables, for recording
var NeuronVars = []string{"Vm", "Ge", "Gi", "Refr", "LastSpike"}

var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

// NeuronVarIdxByName returns the index of the variable in NeuronVars, or error
func NeuronVarIdxByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// Alloc allocates state for n neurons
func (nr *Neurons) Alloc(n int) {
	nr.Vm = make([]float32, n)
	nr.Ge = make([]float32, n)
	nr.Gi = make([]float32, n)
	nr.Refr = make([]int32, n)
	nr.LastSpike = make([]int32, n)
}

// Len returns the number of neurons
func (nr *Neurons) Len() int {
	return len(nr.Vm)
}

// VarByIdx returns variable using index (0 = first variable in NeuronVars list)
func (nr *Neurons) VarByIdx(ni, idx int) float32 {
	switch idx {
	case 0:
		return nr.Vm[ni]
	case 1:
		return nr.Ge[ni]
	case 2:
		return nr.Gi[ni]
	case 3:
		return float32(nr.Refr[ni])
	case 4:
		return float32(nr.LastSpike[ni])
	}
	return math32.NaN()
}

// VarByName returns variable by name, or error
func (nr *Neurons) VarByName(ni int, varNm string) (float32, error) {
	i, err := NeuronVarIdxByName(varNm)
	if err != nil {
		return math32.NaN(), err
	}
	return nr.VarByIdx(ni, i), nil
}

// MemBytes returns the memory used by the neuron state
func (nr *Neurons) MemBytes() int {
	return nr.Len() * int(3*unsafe.Sizeof(float32(0))+2*unsafe.Sizeof(int32(0)))
}

// Fault returns the name and value of the first non-finite state variable
// of neuron ni, or "" if all are finite.
func (nr *Neurons) Fault(ni int) (string, float32) {
	switch {
	case nonFinite(nr.Vm[ni]):
		return "Vm", nr.Vm[ni]
	case nonFinite(nr.Ge[ni]):
		return "Ge", nr.Ge[ni]
	case nonFinite(nr.Gi[ni]):
		return "Gi", nr.Gi[ni]
	}
	return "", 0
}

func nonFinite(v float32) bool {
	return math32.IsNaN(v) || math32.IsInf(v, 0)
}
