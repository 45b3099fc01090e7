// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// RunStats summarizes a run since the last InitState
type RunStats struct {
	Steps     int       `desc:"number of steps completed"`
	Dur       float64   `desc:"simulated duration in msec"`
	WallSecs  float64   `desc:"wall-clock seconds spent in Run, excluding Build"`
	Spikes    int64     `desc:"total number of spikes"`
	MeanRate  float64   `desc:"mean firing rate over all neurons, in Hz = Spikes / (N * Dur in secs)"`
	PopNames  []string  `desc:"population names"`
	PopSpikes []int64   `desc:"number of spikes per population"`
	PopRates  []float64 `desc:"mean firing rate per population, in Hz"`
}

// Rate returns the mean rate in Hz of n neurons producing nspk spikes over dur msec
func Rate(nspk int64, n int, dur float64) float64 {
	if n <= 0 || dur <= 0 {
		return 0
	}
	return float64(nspk) / (float64(n) * dur / 1000)
}

// RunStats returns the summary statistics of the run since InitState
func (nt *Network) RunStats() *RunStats {
	rs := &RunStats{}
	rs.Steps = nt.Time.Step
	rs.Dur = nt.Time.Time
	rs.WallSecs = nt.RunTime.TotalSecs()
	rs.Spikes = nt.TotalSpikes()
	rs.MeanRate = Rate(rs.Spikes, nt.NNeurons(), rs.Dur)
	for pi, pp := range nt.Pops {
		rs.PopNames = append(rs.PopNames, pp.Nm)
		rs.PopSpikes = append(rs.PopSpikes, nt.PopSpikes[pi])
		rs.PopRates = append(rs.PopRates, Rate(nt.PopSpikes[pi], pp.N, rs.Dur))
	}
	return rs
}

func (rs *RunStats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Done in %.3f secs: %d steps (%g msec)\n", rs.WallSecs, rs.Steps, rs.Dur)
	fmt.Fprintf(&b, "Total spikes: %d\tMean rate: %.3f Hz\n", rs.Spikes, rs.MeanRate)
	for pi, pnm := range rs.PopNames {
		fmt.Fprintf(&b, "\t%14s:\t Spikes: %d\t Rate: %.3f Hz\n", pnm, rs.PopSpikes[pi], rs.PopRates[pi])
	}
	return b.String()
}

// ISIStats returns the mean and coefficient of variation of the
// inter-spike intervals of all recorded neurons, in msec, along with
// the number of intervals.  Mean and CV are 0 with fewer than 2 intervals.
func (sr *SpikeRecorder) ISIStats() (mean, cv float64, n int) {
	var isis []float64
	ns := sr.NeuronSpikes()
	nis := maps.Keys(ns)
	slices.Sort(nis)
	for _, ni := range nis {
		stps := ns[ni]
		for i := 1; i < len(stps); i++ {
			isis = append(isis, float64(stps[i]-stps[i-1])*float64(sr.dt))
		}
	}
	n = len(isis)
	if n < 2 {
		return 0, 0, n
	}
	mean, std := stat.MeanStdDev(isis, nil)
	if mean > 0 {
		cv = std / mean
	}
	return mean, cv, n
}
