// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import "github.com/goki/ki/kit"

//go:generate stringer -type=Pops,Channels,PrjnClasses,IntegMethods

// Pops are the population types of the excitatory / inhibitory network.
type Pops int32

var KiT_Pops = kit.Enums.AddEnum(PopsN, kit.NotBitFlag, nil)

func (ev Pops) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Pops) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Exc is an excitatory population: its spikes drive the Ge channel
	Exc Pops = iota

	// Inh is an inhibitory population: its spikes drive the Gi channel
	Inh

	PopsN
)

// Channels are the synaptic conductance channels that a spike can target.
type Channels int32

var KiT_Channels = kit.Enums.AddEnum(ChannelsN, kit.NotBitFlag, nil)

func (ev Channels) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Channels) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Excite is the excitatory conductance Ge, reversal potential Erev.E
	Excite Channels = iota

	// Inhib is the inhibitory conductance Gi, reversal potential Erev.I
	Inhib

	ChannelsN
)

// ChannelFor returns the channel driven by spikes from the given population type.
func ChannelFor(pt Pops) Channels {
	if pt == Inh {
		return Inhib
	}
	return Excite
}

// PrjnClasses are the four source / target population pairings.
type PrjnClasses int32

var KiT_PrjnClasses = kit.Enums.AddEnum(PrjnClassesN, kit.NotBitFlag, nil)

func (ev PrjnClasses) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *PrjnClasses) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// EE is excitatory to excitatory
	EE PrjnClasses = iota

	// EI is excitatory to inhibitory
	EI

	// IE is inhibitory to excitatory
	IE

	// II is inhibitory to inhibitory
	II

	PrjnClassesN
)

// ClassFor returns the connection class for given sending and receiving population types
func ClassFor(send, recv Pops) PrjnClasses {
	return PrjnClasses(2*int32(send) + int32(recv))
}

// IntegMethods are the fixed-step integration methods for the conductance decay.
// The membrane potential is always forward Euler.
type IntegMethods int32

var KiT_IntegMethods = kit.Enums.AddEnum(IntegMethodsN, kit.NotBitFlag, nil)

func (ev IntegMethods) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *IntegMethods) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Euler uses g -= dt/tau * g, matching the reference simulators' euler method
	Euler IntegMethods = iota

	// ExpEuler uses g *= exp(-dt/tau), which is exact for the linear decay
	ExpEuler

	IntegMethodsN
)
