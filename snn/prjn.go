// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/emer/etable/minmax"
	"github.com/emer/snn/conns"
)

// WtScaleParams are weight scaling parameters for a projection
type WtScaleParams struct {
	Abs float32 `def:"1" min:"0" desc:"absolute scaling multiplied into every weight -- the resulting value is the conductance increment per spike"`
}

func (ws *WtScaleParams) Defaults() {
	ws.Abs = 1
}

// snn.Prjn is one connection class between a sending and a receiving population.
// Synapses are stored in compressed sparse row form organized by sender, since
// the only lookup ever needed is the fan-out of a spiking sender.
// Weights are non-negative conductance increments applied to the channel
// of the sending population type (Ge for Exc, Gi for Inh).
type Prjn struct {
	Nm      string         `desc:"name of projection -- defaults to Send.Nm + To + Recv.Nm"`
	Typ     PrjnClasses    `inactive:"+" desc:"connection class, from the sending and receiving population types"`
	Cls     string         `desc:"additional classes for parameter styles, space separated"`
	Send    *Pop           `desc:"sending population"`
	Recv    *Pop           `desc:"receiving population"`
	Ch      Channels       `inactive:"+" desc:"receiving channel driven by this projection"`
	Pat     conns.Pattern  `desc:"pattern of connectivity -- if set, it generates Trips during Build"`
	Trips   []conns.Triple `view:"-" desc:"synapses as (send, recv, weight) triples with population-local indexes, in insertion order"`
	WtScale WtScaleParams  `view:"inline" desc:"weight scaling"`
	Delay   float32        `def:"0" min:"0" desc:"transmission delay in msec for all synapses, quantized to whole steps -- a spike always arrives no earlier than the next step"`
	Delays  []float32      `view:"-" desc:"optional per-synapse delays in msec, parallel to Trips -- overrides Delay if set"`

	SConN       []int32         `view:"-" desc:"number of sending connections for each sending neuron"`
	SConNAvgMax minmax.AvgMax32 `inactive:"+" view:"inline" desc:"average and maximum number of sending connections"`
	SConIdxSt   []int32         `view:"-" desc:"starting index into SConIdx for each sending neuron"`
	SConIdx     []int32         `view:"-" desc:"index of receiving neuron (local to Recv) for each synapse, organized by sender"`
	Wts         []float32       `view:"-" desc:"scaled weight for each synapse, parallel to SConIdx"`
	DelSteps    []int32         `view:"-" desc:"per-synapse delay in steps, parallel to SConIdx -- nil if all synapses use DelStep"`
	DelStep     int32           `inactive:"+" desc:"Delay in whole steps"`
}

func (pj *Prjn) Defaults() {
	pj.WtScale.Defaults()
}

func (pj *Prjn) Name() string { return pj.Nm }

// String satisfies fmt.Stringer for prjn
func (pj *Prjn) String() string {
	return fmt.Sprintf("%s -> %s (%s)", pj.Send.Nm, pj.Recv.Nm, pj.Typ)
}

// NSyns returns the number of synapses
func (pj *Prjn) NSyns() int {
	return len(pj.SConIdx)
}

// Validate checks the structural settings, prior to building
func (pj *Prjn) Validate() error {
	if pj.Send == nil || pj.Recv == nil {
		return configErr("prjn %s: sending and receiving populations must both be set", pj.Nm)
	}
	if !(pj.WtScale.Abs >= 0) || math32.IsInf(pj.WtScale.Abs, 0) {
		err := configErr("WtScale.Abs must be >= 0 and finite, got: %v", pj.WtScale.Abs)
		err.Prjn = pj.Nm
		return err
	}
	if !(pj.Delay >= 0) || math32.IsInf(pj.Delay, 0) {
		err := configErr("Delay must be >= 0 and finite, got: %v", pj.Delay)
		err.Prjn = pj.Nm
		return err
	}
	if pj.Delays != nil && len(pj.Delays) != len(pj.Trips) {
		err := configErr("%d per-synapse delays for %d synapses", len(pj.Delays), len(pj.Trips))
		err.Prjn = pj.Nm
		return err
	}
	return nil
}

// Build constructs the sending CSR arrays from Trips (generating them from
// Pat if set).  Every synapse is checked: indexes in range, finite
// non-negative weight and delay.  Within a sender, synapses keep
// their insertion order.  Zero synapses is valid.
func (pj *Prjn) Build(cfg *Config) error {
	if pj.Pat != nil && pj.Send != nil && pj.Recv != nil {
		pj.Trips = pj.Pat.Connect(pj.Send.N, pj.Recv.N, pj.Send == pj.Recv)
		pj.Delays = nil
	}
	if err := pj.Validate(); err != nil {
		return err
	}
	pj.Typ = ClassFor(pj.Send.Typ, pj.Recv.Typ)
	pj.Ch = ChannelFor(pj.Send.Typ)
	if !cfg.DelayInRange(pj.Delay) {
		err := configErr("Delay of %v msec is more than the maximum of %d steps", pj.Delay, MaxSteps)
		err.Prjn = pj.Nm
		return err
	}
	pj.DelStep = int32(cfg.DelaySteps(pj.Delay))

	sendn := pj.Send.N
	recvn := int32(pj.Recv.N)
	pj.SConN = make([]int32, sendn)
	for ei, tr := range pj.Trips {
		switch {
		case tr.Row < 0 || int(tr.Row) >= sendn:
			return edgeErr(pj.Nm, ei, "sending index %d out of range [0, %d)", tr.Row, sendn)
		case tr.Col < 0 || tr.Col >= recvn:
			return edgeErr(pj.Nm, ei, "receiving index %d out of range [0, %d)", tr.Col, recvn)
		case !(tr.Wt >= 0) || math32.IsInf(tr.Wt, 0):
			return edgeErr(pj.Nm, ei, "weight must be a finite magnitude >= 0, got: %v", tr.Wt)
		}
		if pj.Delays != nil {
			if del := pj.Delays[ei]; !cfg.DelayInRange(del) {
				return edgeErr(pj.Nm, ei, "delay must be >= 0 and at most %d steps, got: %v msec", MaxSteps, del)
			}
		}
		pj.SConN[tr.Row]++
	}

	pj.SConIdxSt = make([]int32, sendn)
	idx := int32(0)
	pj.SConNAvgMax.Init()
	for si, nc := range pj.SConN {
		pj.SConIdxSt[si] = idx
		idx += nc
		pj.SConNAvgMax.UpdateVal(float32(nc), int32(si))
	}
	pj.SConNAvgMax.CalcAvg()

	ns := len(pj.Trips)
	pj.SConIdx = make([]int32, ns)
	pj.Wts = make([]float32, ns)
	pj.DelSteps = nil
	if pj.Delays != nil {
		pj.DelSteps = make([]int32, ns)
	}
	sconN := make([]int32, sendn) // temporary: cur n of sending cons
	for ei, tr := range pj.Trips {
		ci := pj.SConIdxSt[tr.Row] + sconN[tr.Row]
		sconN[tr.Row]++
		pj.SConIdx[ci] = tr.Col
		pj.Wts[ci] = pj.WtScale.Abs * tr.Wt
		if pj.DelSteps != nil {
			pj.DelSteps[ci] = int32(cfg.DelaySteps(pj.Delays[ei]))
		}
	}
	return nil
}

// MaxDelSteps returns the longest synaptic delay, in steps
func (pj *Prjn) MaxDelSteps() int {
	if pj.DelSteps == nil {
		return int(pj.DelStep)
	}
	mx := int32(0)
	for _, d := range pj.DelSteps {
		mx = max(mx, d)
	}
	return int(mx)
}

// SendSpike enqueues delivery events for a spike of sending neuron si
// (local index) detected at given step, on worker thread thr.  Each
// synapse's event is due at step + 1 + its delay.
func (pj *Prjn) SendSpike(si, step, thr int, dl *DelayLine) {
	nc := pj.SConN[si]
	if nc == 0 {
		return
	}
	st := pj.SConIdxSt[si]
	scons := pj.SConIdx[st : st+nc]
	wts := pj.Wts[st : st+nc]
	rst := int32(pj.Recv.St)
	if pj.DelSteps == nil {
		slot := dl.Slot(step + 1 + int(pj.DelStep))
		for ci, ri := range scons {
			dl.Add(slot, thr, Event{Recv: rst + ri, Ch: pj.Ch, Inc: wts[ci]})
		}
		return
	}
	dels := pj.DelSteps[st : st+nc]
	for ci, ri := range scons {
		dl.Add(dl.Slot(step+1+int(dels[ci])), thr, Event{Recv: rst + ri, Ch: pj.Ch, Inc: wts[ci]})
	}
}

// MemBytes returns the memory used by the synapse arrays
func (pj *Prjn) MemBytes() int {
	i32 := int(unsafe.Sizeof(int32(0)))
	return (2*len(pj.SConN)+len(pj.SConIdx)+len(pj.DelSteps))*i32 + len(pj.Wts)*int(unsafe.Sizeof(float32(0)))
}
