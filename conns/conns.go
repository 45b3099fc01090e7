// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package conns provides patterns of connectivity between a sending and a
receiving population, expressed as a list of (row, col, weight) triples
with 0-based indexes local to each population.  This is the normalized
form in which sparse weight matrices are handed to snn.Network.ConnectPops,
whatever their original source (files, generators, other simulators).
*/
package conns

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Triple is one synapse: sending (row) index, receiving (col) index, and weight.
type Triple struct {
	Row int32
	Col int32
	Wt  float32
}

// Pattern defines a pattern of connectivity between two populations.
type Pattern interface {
	// Name returns the name of the pattern
	Name() string

	// Connect returns the triples connecting nsend senders to nrecv receivers.
	// same is true when sending and receiving populations are the same,
	// which is needed for self-connection handling.
	Connect(nsend, nrecv int, same bool) []Triple
}

///////////////////////////////////////////////////////////////////////
//  UnifRnd

// UnifRnd implements uniform random pattern of connectivity between two populations
// using a fixed probability of connection for each sender-receiver pair (Bernoulli draws).
// The draw order is row-major over (send, recv), so for a given Seed the result
// does not depend on anything else.
type UnifRnd struct {
	PCon    float32 `min:"0" max:"1" desc:"probability of connection (0-1)"`
	Wt      float32 `desc:"weight assigned to every connection"`
	SelfCon bool    `desc:"if true, and connecting a population to itself (self projection), then make a self-connection from unit to itself"`
	Seed    uint64  `desc:"the seed for the random number stream used for this pattern"`
}

// NewUnifRnd returns a new UnifRnd pattern
func NewUnifRnd(pcon, wt float32, seed uint64) *UnifRnd {
	return &UnifRnd{PCon: pcon, Wt: wt, Seed: seed}
}

func (ur *UnifRnd) Name() string {
	return "UnifRnd"
}

func (ur *UnifRnd) Connect(nsend, nrecv int, same bool) []Triple {
	if ur.PCon <= 0 || nsend <= 0 || nrecv <= 0 {
		return nil
	}
	rnd := rand.New(rand.NewSource(ur.Seed))
	exp := int(float32(nsend*nrecv) * ur.PCon)
	trips := make([]Triple, 0, exp+exp/8)
	pcon := float64(ur.PCon)
	for si := 0; si < nsend; si++ {
		for ri := 0; ri < nrecv; ri++ {
			if same && !ur.SelfCon && si == ri {
				continue
			}
			if pcon < 1 && rnd.Float64() >= pcon {
				continue
			}
			trips = append(trips, Triple{Row: int32(si), Col: int32(ri), Wt: ur.Wt})
		}
	}
	return trips
}

func (ur *UnifRnd) String() string {
	return fmt.Sprintf("UnifRnd(pcon=%g, wt=%g, seed=%d)", ur.PCon, ur.Wt, ur.Seed)
}

///////////////////////////////////////////////////////////////////////
//  OneToOne

// OneToOne implements point-to-point one-to-one pattern of connectivity between two populations
type OneToOne struct {
	Wt float32 `desc:"weight assigned to every connection"`
}

// NewOneToOne returns a new OneToOne pattern
func NewOneToOne(wt float32) *OneToOne {
	return &OneToOne{Wt: wt}
}

func (ot *OneToOne) Name() string {
	return "OneToOne"
}

func (ot *OneToOne) Connect(nsend, nrecv int, same bool) []Triple {
	n := min(nsend, nrecv)
	trips := make([]Triple, n)
	for i := range trips {
		trips[i] = Triple{Row: int32(i), Col: int32(i), Wt: ot.Wt}
	}
	return trips
}

///////////////////////////////////////////////////////////////////////
//  Full

// Full implements full all-to-all pattern of connectivity between two populations
type Full struct {
	Wt      float32 `desc:"weight assigned to every connection"`
	SelfCon bool    `desc:"if true, and connecting a population to itself (self projection), then make a self-connection from unit to itself"`
}

// NewFull returns a new Full pattern
func NewFull(wt float32) *Full {
	return &Full{Wt: wt}
}

func (fp *Full) Name() string {
	return "Full"
}

func (fp *Full) Connect(nsend, nrecv int, same bool) []Triple {
	trips := make([]Triple, 0, nsend*nrecv)
	for si := 0; si < nsend; si++ {
		for ri := 0; ri < nrecv; ri++ {
			if same && !fp.SelfCon && si == ri {
				continue
			}
			trips = append(trips, Triple{Row: int32(si), Col: int32(ri), Wt: fp.Wt})
		}
	}
	return trips
}
