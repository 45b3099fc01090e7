// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

// Pop is a population of neurons sharing one set of parameters.
// Its neurons occupy the global index range [St, St+N).
type Pop struct {
	Nm    string    `desc:"name of population -- must be unique within the network"`
	Typ   Pops      `desc:"excitatory or inhibitory -- determines the channel its projections drive"`
	Cls   string    `desc:"additional classes for parameter styles, space separated"`
	N     int       `desc:"number of neurons"`
	St    int       `inactive:"+" desc:"starting global neuron index, set in Build"`
	Index int       `inactive:"+" desc:"index of this population in Network.Pops"`
	Act   ActParams `view:"add-fields" desc:"activation parameters shared by all neurons in the population"`

	SndPrjns []*Prjn `view:"-" desc:"projections sending from this population, in creation order"`
}

func (pp *Pop) Name() string { return pp.Nm }

// Ed returns the end (exclusive) of the global index range
func (pp *Pop) Ed() int { return pp.St + pp.N }

// Has returns true if global neuron index ni is in this population
func (pp *Pop) Has(ni int) bool { return ni >= pp.St && ni < pp.St+pp.N }

// Range returns the intersection of the population with global range [st, ed)
func (pp *Pop) Range(st, ed int) (int, int) {
	return max(st, pp.St), min(ed, pp.St+pp.N)
}
