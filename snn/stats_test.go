// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"context"
	"math"
	"strings"
	"testing"
)

func TestRunStats(t *testing.T) {
	net := isolatedNet(t, 1)
	sr := NewSpikeRecorder("Spikes")
	net.AddRecorder(sr)
	if err := net.Build(); err != nil {
		t.Fatal(err)
	}
	defer net.Stop()
	if err := net.Run(context.Background(), 1000); err != nil {
		t.Fatal(err)
	}
	rs := net.RunStats()
	if rs.Spikes != 5 || rs.PopSpikes[0] != 5 || rs.PopNames[0] != "E" {
		t.Errorf("spikes: %v, pop spikes: %v", rs.Spikes, rs.PopSpikes)
	}
	if math.Abs(rs.MeanRate-50) > 1e-3 || math.Abs(rs.PopRates[0]-50) > 1e-3 {
		t.Errorf("rate: got %v, want 50", rs.MeanRate)
	}
	if rs.WallSecs <= 0 {
		t.Errorf("no wall time recorded")
	}
	if !strings.Contains(rs.String(), "Total spikes: 5") {
		t.Errorf("String:\n%s", rs)
	}

	if rs.Dur != 100 || rs.MeanRate != 50 {
		t.Errorf("Dur: %v, MeanRate: %v, want exactly 100, 50", rs.Dur, rs.MeanRate)
	}
	for _, fn := range []string{"Deliver", "Update", "Record"} {
		if net.FunCalls[fn] != 1000 {
			t.Errorf("%s calls: got %v, want 1000", fn, net.FunCalls[fn])
		}
	}
	if rep := net.TimerReport(); !strings.Contains(rep, "Update") || !strings.Contains(rep, "1000") {
		t.Errorf("TimerReport:\n%s", rep)
	}

	mean, cv, n := sr.ISIStats()
	if n != 4 || math.Abs(mean-18.9) > 1e-4 || cv > 1e-6 {
		t.Errorf("ISI: mean: %v, cv: %v, n: %v", mean, cv, n)
	}
	if Rate(10, 0, 1000) != 0 || Rate(10, 10, 0) != 0 || Rate(10, 10, 1000) != 1 {
		t.Errorf("Rate edge cases")
	}

	net.InitState()
	if net.FunCalls["Update"] != 0 {
		t.Errorf("InitState did not reset calls: %v", net.FunCalls["Update"])
	}
}
