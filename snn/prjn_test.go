// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"errors"
	"testing"

	"github.com/emer/snn/conns"
)

func testPrjn(trips []conns.Triple) *Prjn {
	send := &Pop{Nm: "E", Typ: Exc, N: 2, St: 0}
	recv := &Pop{Nm: "I", Typ: Inh, N: 3, St: 2}
	pj := &Prjn{Nm: "EToI", Send: send, Recv: recv, Trips: trips}
	pj.Defaults()
	return pj
}

func TestPrjnBuild(t *testing.T) {
	cfg := NewConfig()
	pj := testPrjn([]conns.Triple{
		{Row: 1, Col: 0, Wt: 0.5},
		{Row: 0, Col: 2, Wt: 0.1},
		{Row: 1, Col: 1, Wt: 0.3},
		{Row: 0, Col: 0, Wt: 0.2},
	})
	pj.WtScale.Abs = 2
	pj.Delay = 1.5
	if err := pj.Build(cfg); err != nil {
		t.Fatal(err)
	}
	if pj.Typ != EI || pj.Ch != Excite {
		t.Errorf("class: %v, channel: %v", pj.Typ, pj.Ch)
	}
	if pj.DelStep != 15 || pj.MaxDelSteps() != 15 {
		t.Errorf("DelStep: got %v, want 15", pj.DelStep)
	}
	corN := []int32{2, 2}
	corSt := []int32{0, 2}
	corIdx := []int32{2, 0, 0, 1}
	corWts := []float32{0.2, 0.4, 1.0, 0.6}
	for si := range corN {
		if pj.SConN[si] != corN[si] || pj.SConIdxSt[si] != corSt[si] {
			t.Errorf("send %d: n: %v st: %v, want n: %v st: %v", si, pj.SConN[si], pj.SConIdxSt[si], corN[si], corSt[si])
		}
	}
	for ci := range corIdx {
		if pj.SConIdx[ci] != corIdx[ci] {
			t.Errorf("SConIdx[%d]: got %v, want %v", ci, pj.SConIdx[ci], corIdx[ci])
		}
		if pj.Wts[ci] != corWts[ci] {
			t.Errorf("Wts[%d]: got %v, want %v", ci, pj.Wts[ci], corWts[ci])
		}
	}
	if pj.SConNAvgMax.Max != 2 || pj.SConNAvgMax.Avg != 2 {
		t.Errorf("SConNAvgMax: %+v", pj.SConNAvgMax)
	}
}

func TestPrjnDelays(t *testing.T) {
	cfg := NewConfig()
	pj := testPrjn([]conns.Triple{{Row: 1, Col: 0, Wt: 1}, {Row: 0, Col: 1, Wt: 1}, {Row: 1, Col: 2, Wt: 1}})
	pj.Delays = []float32{0.5, 0, 2}
	if err := pj.Build(cfg); err != nil {
		t.Fatal(err)
	}
	corDel := []int32{0, 5, 20}
	for ci, d := range corDel {
		if pj.DelSteps[ci] != d {
			t.Errorf("DelSteps[%d]: got %v, want %v", ci, pj.DelSteps[ci], d)
		}
	}
	if pj.MaxDelSteps() != 20 {
		t.Errorf("MaxDelSteps: got %v, want 20", pj.MaxDelSteps())
	}
}

func TestPrjnEmpty(t *testing.T) {
	pj := testPrjn(nil)
	if err := pj.Build(NewConfig()); err != nil {
		t.Fatal(err)
	}
	if pj.NSyns() != 0 || len(pj.SConN) != 2 {
		t.Errorf("empty prjn: syns: %v, sendn: %v", pj.NSyns(), len(pj.SConN))
	}
	dl := &DelayLine{}
	dl.Init(1, 1, 5, 0)
	pj.SendSpike(1, 0, 0, dl)
	if dl.Pending() != 0 {
		t.Errorf("empty prjn sent %d events", dl.Pending())
	}
}

func TestPrjnBuildErrs(t *testing.T) {
	tests := []struct {
		name  string
		trips []conns.Triple
		dels  []float32
		edge  int
	}{
		{"send range", []conns.Triple{{0, 0, 1}, {2, 0, 1}}, nil, 1},
		{"recv range", []conns.Triple{{0, 3, 1}}, nil, 0},
		{"negative send", []conns.Triple{{0, 0, 1}, {1, 1, 1}, {-1, 0, 1}}, nil, 2},
		{"negative weight", []conns.Triple{{0, 0, 1}, {1, 1, -0.5}}, nil, 1},
		{"negative delay", []conns.Triple{{0, 0, 1}, {1, 1, 1}}, []float32{0, -1}, 1},
		{"delay overflow", []conns.Triple{{0, 0, 1}, {1, 1, 1}, {1, 2, 1}}, []float32{0, 3e8, 1}, 1},
	}
	for _, tt := range tests {
		pj := testPrjn(tt.trips)
		pj.Delays = tt.dels
		err := pj.Build(NewConfig())
		var serr *Error
		if !errors.As(err, &serr) || serr.Kind != ConfigErr {
			t.Errorf("%s: expected config error, got: %v", tt.name, err)
			continue
		}
		if serr.Edge != tt.edge || serr.Prjn != "EToI" {
			t.Errorf("%s: error context: prjn: %v edge: %v, want edge: %v", tt.name, serr.Prjn, serr.Edge, tt.edge)
		}
	}

	pj := testPrjn([]conns.Triple{{0, 0, 1}})
	pj.Delay = 3e8
	if err := pj.Build(NewConfig()); !errors.Is(err, ErrConfig) {
		t.Errorf("delay overflow: expected config error, got: %v", err)
	}

	pj = testPrjn([]conns.Triple{{0, 0, 1}})
	pj.Delays = []float32{0, 1}
	if err := pj.Build(NewConfig()); !errors.Is(err, ErrConfig) {
		t.Errorf("mismatched delays: expected config error, got: %v", err)
	}
}

func TestPrjnSendSpike(t *testing.T) {
	pj := testPrjn([]conns.Triple{{0, 2, 0.5}, {0, 0, 0.25}, {1, 1, 1}})
	pj.Delay = 0.1
	if err := pj.Build(NewConfig()); err != nil {
		t.Fatal(err)
	}
	dl := &DelayLine{}
	dl.Init(3, 1, 10, 0)
	pj.SendSpike(0, 4, 0, dl)
	// due at step 4 + 1 + 1 = 6, slot 0
	evs := dl.Bufs[dl.BufIdx(0, 0, 0)]
	if len(evs) != 2 {
		t.Fatalf("events: got %v, want 2", len(evs))
	}
	if evs[0] != (Event{Recv: 4, Ch: Excite, Inc: 0.5}) || evs[1] != (Event{Recv: 2, Ch: Excite, Inc: 0.25}) {
		t.Errorf("events: %+v", evs)
	}
}
