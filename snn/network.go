// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"context"
	"fmt"

	"github.com/emer/emergent/timer"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// snn.Network is one simulation session: it owns all neuron state,
// connectivity, pending events and the random stream used to initialize
// state.  Each step runs as a sequence of phases separated by barriers:
//
//  1. Deliver: each thread applies the events due this step to the neurons it owns.
//  2. Update: each thread integrates its neurons, detects spikes, and enqueues
//     the resulting events for future steps.
//  3. Record: serially, in thread order, spike counts and recorders are updated.
//
// A spike detected in step t with a delay of d steps is delivered at the start
// of step t+1+d, so it can affect the receiving neuron no earlier than step t+1.
type Network struct {
	NetworkBase
	Recs      []Recorder `desc:"recorders, updated at the end of every step in order"`
	ThrSpikes [][]int32  `view:"-" desc:"global indexes of neurons that spiked in the current step, per thread"`
	ThrFaults []*Error   `view:"-" desc:"first numerical fault found in the current step, per thread"`
	PopSpikes []int64    `desc:"number of spikes per population since InitState"`
	RunTime   timer.Time `view:"-" desc:"wall-clock time spent in Run since InitState, excluding Build"`
	Err       error      `desc:"fatal error that aborted the run -- further steps return it until InitState"`

	deliverFun func(thr int)
	updateFun  func(thr int)
}

// NewNetwork returns a new network with given name and configuration
// (a copy is made -- nil = defaults).
func NewNetwork(name string, cfg *Config) *Network {
	nt := &Network{}
	nt.Nm = name
	if cfg != nil {
		nt.Cfg = *cfg
	} else {
		nt.Cfg.Defaults()
	}
	nt.log = Logger()
	return nt
}

// AddRecorder adds a recorder.  If the network is already built the recorder
// is initialized now, otherwise during Build.
func (nt *Network) AddRecorder(rc Recorder) error {
	if nt.Built {
		if err := rc.Init(nt); err != nil {
			return err
		}
	}
	nt.Recs = append(nt.Recs, rc)
	return nil
}

// Build validates the configuration, constructs the connectivity and delay
// line, allocates state, initializes it, and starts the worker threads.
// Any error leaves the network unbuilt: it cannot be stepped.
func (nt *Network) Build() error {
	nt.Stop()
	nt.log = Logger().With(zap.String("net", nt.Nm))
	err := multierr.Append(nt.errs, nt.Cfg.Validate())
	for _, pp := range nt.Pops {
		pp.Act.Dt.Step = nt.Cfg.Dt
		pp.Act.Update()
		if perr := pp.Act.Validate(); perr != nil {
			err = multierr.Append(err, fmt.Errorf("population %s: %w", pp.Nm, perr))
		}
	}
	if err != nil {
		nt.log.Error("build failed", zap.Error(err))
		return err
	}
	nt.BuildNeurons()

	maxd := 0
	pin := -1
	if nt.Cfg.MaxDelay > 0 {
		pin = nt.Cfg.DelaySteps(nt.Cfg.MaxDelay)
		maxd = pin
	}
	for _, pj := range nt.Prjns {
		if perr := pj.Build(&nt.Cfg); perr != nil {
			err = multierr.Append(err, perr)
			continue
		}
		pd := pj.MaxDelSteps()
		if pin >= 0 && pd > pin {
			perr := configErr("delay of %d steps exceeds the horizon of %d steps set by MaxDelay %v", pd, pin, nt.Cfg.MaxDelay)
			perr.Prjn = pj.Nm
			err = multierr.Append(err, perr)
			continue
		}
		maxd = max(maxd, pd)
	}
	if err != nil {
		nt.log.Error("build failed", zap.Error(err))
		return err
	}

	chunk := nt.BuildThreads()
	if need := SlotBytes(maxd+1, nt.NThreads); nt.Cfg.MaxEventMem > 0 && need > nt.Cfg.MaxEventMem {
		rerr := NewError(ResourceExhaustion, "delay line of %d steps on %d threads needs %s, exceeding MaxEventMem %s", maxd+1, nt.NThreads, need.HumanReadable(), nt.Cfg.MaxEventMem.HumanReadable())
		nt.log.Error("build failed", zap.Error(rerr))
		return rerr
	}
	nt.Delays.Init(maxd+1, nt.NThreads, chunk, nt.Cfg.MaxEventMem)
	nt.ThrSpikes = make([][]int32, nt.NThreads)
	nt.ThrFaults = make([]*Error, nt.NThreads)
	nt.PopSpikes = make([]int64, len(nt.Pops))
	nt.Time = *NewTime(nt.Cfg.Dt)
	for _, rc := range nt.Recs {
		err = multierr.Append(err, rc.Init(nt))
	}
	if err != nil {
		nt.log.Error("build failed", zap.Error(err))
		return err
	}
	nt.deliverFun = nt.DeliverThr
	nt.updateFun = nt.UpdateThr
	nt.RunID = uuid.NewString()
	nt.log = nt.log.With(zap.String("run", nt.RunID))
	nt.InitState()
	nt.StartThreads()
	nt.Built = true
	nt.log.Info("network built",
		zap.Int("neurons", nt.NNeurons()),
		zap.Int("prjns", len(nt.Prjns)),
		zap.Int("horizon", nt.Delays.Horizon),
		zap.Int("nthreads", nt.NThreads),
		zap.Float32("dt", nt.Cfg.Dt))
	return nil
}

// Stop stops the worker threads.  The network must be built again
// before it can be stepped.
func (nt *Network) Stop() {
	if !nt.Built {
		return
	}
	nt.StopThreads()
	nt.Built = false
}

// InitState initializes all neuron state from the session random stream
// (so it is identical on every call), discards pending events, and resets
// the step counter, spike counts, timers and recorders.  Requires Build.
func (nt *Network) InitState() {
	nt.Time.Reset()
	src := rand.NewSource(nt.Cfg.Seed)
	nrns := &nt.Neurons
	for _, pp := range nt.Pops {
		ini := &pp.Act.Init
		norm := distuv.Normal{Mu: float64(ini.Vm), Sigma: float64(ini.VmSd), Src: src}
		for ni := pp.St; ni < pp.Ed(); ni++ {
			if ini.VmSd > 0 {
				nrns.Vm[ni] = float32(norm.Rand())
			} else {
				nrns.Vm[ni] = ini.Vm
			}
			nrns.Ge[ni] = ini.Ge
			nrns.Gi[ni] = ini.Gi
			nrns.Refr[ni] = 0
			nrns.LastSpike[ni] = -1
		}
	}
	nt.Delays.Reset()
	for th := range nt.ThrSpikes {
		nt.ThrSpikes[th] = nt.ThrSpikes[th][:0]
		nt.ThrFaults[th] = nil
	}
	for pi := range nt.PopSpikes {
		nt.PopSpikes[pi] = 0
	}
	nt.Err = nil
	nt.RunTime.Reset()
	nt.TimerReset()
	for _, rc := range nt.Recs {
		rc.Reset()
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Step

// Step runs one full step over all phases, and then increments the step counter.
// A NumericalFault or ResourceExhaustion error aborts the run.
func (nt *Network) Step() error {
	if !nt.Built {
		return configErr("network %s must be built before stepping", nt.Nm)
	}
	if nt.Err != nil {
		return nt.Err
	}
	step := nt.Time.Step
	nt.ThrFun(nt.deliverFun, "Deliver")
	nt.ThrFun(nt.updateFun, "Update")
	for _, ferr := range nt.ThrFaults {
		if ferr != nil {
			return nt.abort(ferr)
		}
	}
	if err := nt.RecordStep(); err != nil {
		return nt.abort(err)
	}
	if err := nt.Delays.CheckMem(step); err != nil {
		return nt.abort(err)
	}
	nt.Time.StepInc()
	return nil
}

func (nt *Network) abort(err error) error {
	nt.Err = err
	nt.log.Error("run aborted", zap.Int("step", nt.Time.Step), zap.Error(err))
	return err
}

// DeliverThr applies the events due at the current step to neurons owned by thread thr
func (nt *Network) DeliverThr(thr int) {
	nt.Delays.Deliver(nt.Time.Step, thr, &nt.Neurons)
}

// UpdateThr integrates the neurons owned by thread thr, detects spikes
// and sends them through the sending projections of each spiking neuron.
func (nt *Network) UpdateThr(thr int) {
	st, ed := nt.ThrSt[thr], nt.ThrSt[thr+1]
	step := nt.Time.Step
	nrns := &nt.Neurons
	spks := nt.ThrSpikes[thr][:0]
	for _, pp := range nt.Pops {
		ps, pe := pp.Range(st, ed)
		ac := &pp.Act
		for ni := ps; ni < pe; ni++ {
			if ac.NeuronStep(nrns, ni) {
				nrns.LastSpike[ni] = int32(step)
				spks = append(spks, int32(ni))
				for _, pj := range pp.SndPrjns {
					pj.SendSpike(ni-pp.St, step, thr, &nt.Delays)
				}
			}
			if vnm, val := nrns.Fault(ni); vnm != "" && nt.ThrFaults[thr] == nil {
				nt.ThrFaults[thr] = faultErr(step, ni, vnm, val)
			}
		}
	}
	nt.ThrSpikes[thr] = spks
}

// RecordStep counts the spikes of the current step and updates the recorders
func (nt *Network) RecordStep() error {
	nt.FunTimerStart("Record")
	var err error
	for _, spks := range nt.ThrSpikes {
		for _, ni := range spks {
			nt.PopSpikes[nt.NrnPop[ni]]++
		}
	}
	for _, rc := range nt.Recs {
		if err = rc.Record(nt); err != nil {
			break
		}
	}
	nt.FunTimerStop("Record")
	return err
}

// Spikes calls fun for each neuron that spiked in the current step,
// in increasing index order
func (nt *Network) Spikes(fun func(ni int32)) {
	for _, spks := range nt.ThrSpikes {
		for _, ni := range spks {
			fun(ni)
		}
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Run

// Run runs nsteps steps, checking ctx between steps.  If ctx is done the
// run stops with the state at a step boundary, and a later Run continues
// from there exactly as if it had not been interrupted.
func (nt *Network) Run(ctx context.Context, nsteps int) error {
	if !nt.Built {
		return configErr("network %s must be built before running", nt.Nm)
	}
	nt.log.Info("run start", zap.Int("step", nt.Time.Step), zap.Int("nsteps", nsteps))
	nt.RunTime.Start()
	var err error
	for i := 0; i < nsteps; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = nt.Step(); err != nil {
			break
		}
	}
	nt.RunTime.Stop()
	nt.log.Info("run end",
		zap.Int("step", nt.Time.Step),
		zap.Int64("spikes", nt.TotalSpikes()),
		zap.Float64("secs", nt.RunTime.TotalSecs()),
		zap.Error(err))
	return err
}

// RunDuration runs for the given simulated duration in msec
func (nt *Network) RunDuration(ctx context.Context, msec float64) error {
	return nt.Run(ctx, nt.Time.StepsFor(msec))
}

// TotalSpikes returns the number of spikes since InitState
func (nt *Network) TotalSpikes() int64 {
	var n int64
	for _, ps := range nt.PopSpikes {
		n += ps
	}
	return n
}
