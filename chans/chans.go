// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the standard conductance channels for computing
a conductance-based (COBA) point-neuron update based on the equivalent
RC circuit model of a neuron (i.e., basic Ohms law equations).
Includes excitatory, leak, and inhibitory channels.
*/
package chans

// Chans are ion channels used in computing the point-neuron membrane update.
// Depending on context the values are reversal potentials (mV) or conductances.
type Chans struct {
	E float32 `desc:"excitatory sodium (Na) AMPA channels activated by synaptic glutamate"`
	L float32 `desc:"constant leak (potassium, K+) channels -- determines resting potential"`
	I float32 `desc:"inhibitory chloride (Cl-) channels activated by synaptic GABA"`
}

// SetAll sets all the values
func (ch *Chans) SetAll(e, l, i float32) {
	ch.E, ch.L, ch.I = e, l, i
}

// Inet returns the net current into a membrane at potential vm, treating
// the receiver as reversal potentials and the given values as the
// leak, excitatory and inhibitory conductances.
func (ch *Chans) Inet(vm, gl, ge, gi float32) float32 {
	return gl*(ch.L-vm) + ge*(ch.E-vm) + gi*(ch.I-vm)
}
