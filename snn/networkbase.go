// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/timer"
	"github.com/emer/snn/conns"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ThrFunChan is a channel that runs functions on a worker thread
type ThrFunChan chan func(thr int)

// snn.NetworkBase holds the basic structural components of a network
// (populations, projections, neuron state, delay line) and the
// threading infrastructure.  Network embeds it and adds the stepping
// algorithm.
type NetworkBase struct {
	Nm      string          `desc:"overall name of network -- helps discriminate if there are multiple"`
	Cfg     Config          `desc:"session-level configuration -- fixed once built"`
	Pops    []*Pop          `desc:"list of populations, in index order"`
	PopMap  map[string]*Pop `view:"-" desc:"map of name to population -- names must be unique"`
	Prjns   []*Prjn         `desc:"list of projections, in creation order"`
	Neurons Neurons         `view:"-" desc:"state of all neurons, by global index"`
	NrnPop  []int32         `view:"-" desc:"population index for each neuron"`
	Delays  DelayLine       `view:"-" desc:"pending spike-delivery events"`
	Time    Time            `desc:"timing state"`
	RunID   string          `inactive:"+" desc:"unique id of this built session, for logs"`
	Built   bool            `inactive:"+" desc:"true once Build has succeeded -- Step and Run require it"`

	NThreads int                    `inactive:"+" desc:"number of parallel threads (go routines) to use -- set from Cfg.NThreads during Build"`
	ThrSt    []int                  `view:"-" desc:"starting neuron index for each thread, with the total number of neurons at the end -- thread th owns [ThrSt[th], ThrSt[th+1])"`
	ThrChans []ThrFunChan           `view:"-" desc:"function channels, per thread"`
	ThrTimes []timer.Time           `view:"-" desc:"timers for each thread, so you can see how evenly the workload is being distributed"`
	FunTimes map[string]*timer.Time `view:"-" desc:"timers for each major function (phase of step)"`
	FunCalls map[string]int         `view:"-" desc:"number of calls of each timed function since InitState"`
	WaitGp   sync.WaitGroup         `view:"-" desc:"network-level wait group for synchronizing threaded calls"`

	errs error
	log  *zap.Logger
}

// Name returns the network name
func (nt *NetworkBase) Name() string { return nt.Nm }

// NNeurons returns the total number of neurons
func (nt *NetworkBase) NNeurons() int { return nt.Neurons.Len() }

// PopByName returns a population by name, nil if not found
func (nt *NetworkBase) PopByName(name string) *Pop {
	return nt.PopMap[name]
}

// PopByNameTry returns a population by name, with an error if not found
func (nt *NetworkBase) PopByNameTry(name string) (*Pop, error) {
	pp := nt.PopByName(name)
	if pp == nil {
		return nil, configErr("population named: %v not found in network: %v", name, nt.Nm)
	}
	return pp, nil
}

// PopOf returns the population containing global neuron index ni
func (nt *NetworkBase) PopOf(ni int) *Pop {
	return nt.Pops[nt.NrnPop[ni]]
}

// AddPop adds a new population with given name, type and number of neurons,
// with default activation parameters.  Invalid settings are reported by Build.
func (nt *NetworkBase) AddPop(name string, typ Pops, n int) *Pop {
	pp := &Pop{Nm: name, Typ: typ, N: n, Index: len(nt.Pops)}
	pp.Act.Defaults()
	if n < 0 {
		nt.errs = multierr.Append(nt.errs, configErr("population %s: size must be >= 0, got: %d", name, n))
	}
	if nt.PopMap == nil {
		nt.PopMap = make(map[string]*Pop)
	}
	if _, has := nt.PopMap[name]; has {
		nt.errs = multierr.Append(nt.errs, configErr("population name %s already exists in network %s", name, nt.Nm))
	}
	nt.PopMap[name] = pp
	nt.Pops = append(nt.Pops, pp)
	return pp
}

// ConnectPops adds a new projection from send to recv using given pattern
// to generate the synapses during Build.
func (nt *NetworkBase) ConnectPops(send, recv *Pop, pat conns.Pattern) *Prjn {
	pj := nt.newPrjn(send, recv)
	pj.Pat = pat
	return pj
}

// ConnectTrips adds a new projection from send to recv with the given
// synapses, as (send, recv, weight) triples in population-local indexes.
func (nt *NetworkBase) ConnectTrips(send, recv *Pop, trips []conns.Triple) *Prjn {
	pj := nt.newPrjn(send, recv)
	pj.Trips = trips
	return pj
}

func (nt *NetworkBase) newPrjn(send, recv *Pop) *Prjn {
	pj := &Prjn{Send: send, Recv: recv}
	pj.Defaults()
	if send != nil && recv != nil {
		pj.Nm = send.Nm + "To" + recv.Nm
		pj.Typ = ClassFor(send.Typ, recv.Typ)
		send.SndPrjns = append(send.SndPrjns, pj)
	} else {
		nt.errs = multierr.Append(nt.errs, configErr("projection %d: nil sending or receiving population", len(nt.Prjns)))
	}
	nt.Prjns = append(nt.Prjns, pj)
	return pj
}

// BuildNeurons assigns each population its global index range and
// allocates the neuron state
func (nt *NetworkBase) BuildNeurons() {
	n := 0
	for _, pp := range nt.Pops {
		pp.St = n
		n += max(pp.N, 0)
	}
	nt.Neurons.Alloc(n)
	nt.NrnPop = make([]int32, n)
	for pi, pp := range nt.Pops {
		for ni := pp.St; ni < pp.Ed(); ni++ {
			nt.NrnPop[ni] = int32(pi)
		}
	}
}

// BuildThreads partitions the neuron index space into contiguous
// equal-sized ranges, one per thread, and returns the range size
func (nt *NetworkBase) BuildThreads() int {
	nn := nt.NNeurons()
	nt.NThreads = max(nt.Cfg.NThreads, 1)
	chunk := max((nn+nt.NThreads-1)/nt.NThreads, 1)
	nt.ThrSt = make([]int, nt.NThreads+1)
	for th := 0; th <= nt.NThreads; th++ {
		nt.ThrSt[th] = min(th*chunk, nn)
	}
	nt.ThrChans = make([]ThrFunChan, nt.NThreads)
	for th := range nt.ThrChans {
		nt.ThrChans[th] = make(ThrFunChan)
	}
	nt.ThrTimes = make([]timer.Time, nt.NThreads)
	nt.FunTimes = make(map[string]*timer.Time)
	nt.FunCalls = make(map[string]int)
	return chunk
}

// SizeReport returns a string reporting the size of each population and projection
// in the network, and total memory footprint.
func (nt *NetworkBase) SizeReport() string {
	var b strings.Builder
	neur := 0
	neurMem := 0
	syn := 0
	synMem := 0
	for _, pp := range nt.Pops {
		nmem := pp.N * nt.Neurons.MemBytes() / max(nt.NNeurons(), 1)
		neur += pp.N
		neurMem += nmem
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t NeurMem: %v \t Sends To:\n", pp.Nm, pp.N, (datasize.ByteSize)(nmem).HumanReadable())
		for _, pj := range pp.SndPrjns {
			ns := pj.NSyns()
			syn += ns
			pmem := pj.MemBytes()
			synMem += pmem
			fmt.Fprintf(&b, "\t%14s:\t Syns: %d\t SynMem: %v\t FanOut: %.1f avg, %.0f max\n", pj.Recv.Nm, ns, (datasize.ByteSize)(pmem).HumanReadable(), pj.SConNAvgMax.Avg, pj.SConNAvgMax.Max)
		}
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Neurons: %d\t NeurMem: %v \t Syns: %d \t SynMem: %v\n", nt.Nm, neur, (datasize.ByteSize)(neurMem).HumanReadable(), syn, (datasize.ByteSize)(synMem).HumanReadable())
	fmt.Fprintf(&b, "%14s:\t Horizon: %d\t Threads: %d\t EventMem: %v\n", "DelayLine", nt.Delays.Horizon, nt.Delays.NThr, nt.Delays.CapBytes().HumanReadable())
	return b.String()
}

//////////////////////////////////////////////////////////////////////////////////////
//  Threading infrastructure

// StartThreads starts up the computation threads, which monitor the channels for work
func (nt *NetworkBase) StartThreads() {
	if nt.NThreads <= 1 {
		return
	}
	nt.log.Debug("start threads", zap.Int("nthreads", nt.NThreads), zap.Int("maxprocs", runtime.GOMAXPROCS(0)), zap.Int("numcpu", runtime.NumCPU()))
	for th := 0; th < nt.NThreads; th++ {
		go nt.ThrWorker(th, nt.ThrChans[th]) // start the worker thread for this channel
	}
}

// StopThreads stops the computation threads
func (nt *NetworkBase) StopThreads() {
	if nt.NThreads <= 1 {
		return
	}
	for th := range nt.ThrChans {
		close(nt.ThrChans[th])
	}
}

// ThrWorker is the worker function run by the worker threads
func (nt *NetworkBase) ThrWorker(tt int, ch ThrFunChan) {
	if nt.Cfg.LockThreads {
		runtime.LockOSThread()
	}
	for fun := range ch {
		nt.ThrTimes[tt].Start()
		fun(tt)
		nt.ThrTimes[tt].Stop()
		nt.WaitGp.Done()
	}
	if nt.Cfg.LockThreads {
		runtime.UnlockOSThread()
	}
}

// ThrFun calls function for each thread, using threaded (go routine worker)
// computation if NThreads > 1, and otherwise just calls it in the current thread.
// Returns when all threads have finished, so each call is a barrier.
func (nt *NetworkBase) ThrFun(fun func(thr int), funame string) {
	nt.FunTimerStart(funame)
	if nt.NThreads <= 1 {
		fun(0)
	} else {
		for th := 0; th < nt.NThreads; th++ {
			nt.WaitGp.Add(1)
			nt.ThrChans[th] <- fun
		}
		nt.WaitGp.Wait()
	}
	nt.FunTimerStop(funame)
}

// TimerReport reports the time spent in each phase of the step, with the
// number of calls and the average per call, and the share of each thread
func (nt *NetworkBase) TimerReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TimerReport: %v, NThreads: %v\n", nt.Nm, nt.NThreads)
	fmt.Fprintf(&b, "\t%13s \t%7s\t%7s\t%9s\t%9s\n", "Phase", "Secs", "Pct", "Calls", "Usec/Call")
	fnms := maps.Keys(nt.FunTimes)
	slices.Sort(fnms)
	tot := 0.0
	for _, fn := range fnms {
		tot += nt.FunTimes[fn].TotalSecs()
	}
	for _, fn := range fnms {
		secs := nt.FunTimes[fn].TotalSecs()
		n := nt.FunCalls[fn]
		fmt.Fprintf(&b, "\t%13s \t%7.3f\t%7.1f\t%9d\t%9.2f\n", fn, secs, 100*secs/max(tot, 1e-9), n, 1e6*secs/float64(max(n, 1)))
	}
	fmt.Fprintf(&b, "\t%13s \t%7.3f\n", "Total", tot)

	if nt.NThreads <= 1 {
		return b.String()
	}
	fmt.Fprintf(&b, "\n\tThr\tNeurons\tSecs\tPct\n")
	tot = 0.0
	for th := range nt.ThrTimes {
		tot += nt.ThrTimes[th].TotalSecs()
	}
	for th := range nt.ThrTimes {
		secs := nt.ThrTimes[th].TotalSecs()
		fmt.Fprintf(&b, "\t%v\t%7d\t%7.3f\t%7.1f\n", th, nt.ThrSt[th+1]-nt.ThrSt[th], secs, 100*secs/max(tot, 1e-9))
	}
	return b.String()
}

// TimerReset resets the function and per-thread timers
func (nt *NetworkBase) TimerReset() {
	for fn, ft := range nt.FunTimes {
		ft.Reset()
		nt.FunCalls[fn] = 0
	}
	for th := range nt.ThrTimes {
		nt.ThrTimes[th].Reset()
	}
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (nt *NetworkBase) FunTimerStart(fun string) {
	ft, ok := nt.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		nt.FunTimes[fun] = ft
	}
	nt.FunCalls[fun]++
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (nt *NetworkBase) FunTimerStop(fun string) {
	ft := nt.FunTimes[fun]
	ft.Stop()
}
