// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conns

import (
	"math"
	"testing"
)

func TestUnifRndDensity(t *testing.T) {
	ur := NewUnifRnd(0.1, 0.6, 98765)
	trips := ur.Connect(400, 300, false)
	exp := 0.1 * 400 * 300
	if math.Abs(float64(len(trips))-exp) > 0.05*exp {
		t.Errorf("UnifRnd got %d cons, expected about %g", len(trips), exp)
	}
	for i, tr := range trips {
		if tr.Row < 0 || tr.Row >= 400 || tr.Col < 0 || tr.Col >= 300 {
			t.Fatalf("UnifRnd triple %d out of range: %+v", i, tr)
		}
		if tr.Wt != 0.6 {
			t.Fatalf("UnifRnd triple %d wt: %v", i, tr.Wt)
		}
	}
}

func TestUnifRndSeed(t *testing.T) {
	a := NewUnifRnd(0.05, 1, 1).Connect(100, 100, true)
	b := NewUnifRnd(0.05, 1, 1).Connect(100, 100, true)
	c := NewUnifRnd(0.05, 1, 2).Connect(100, 100, true)
	if len(a) != len(b) {
		t.Fatalf("same seed gave different sizes: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed differs at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
	same := len(a) == len(c)
	if same {
		for i := range a {
			if a[i] != c[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Errorf("different seeds gave identical connectivity")
	}
	for _, tr := range a {
		if tr.Row == tr.Col {
			t.Errorf("self connection without SelfCon: %+v", tr)
		}
	}
}

func TestUnifRndEmpty(t *testing.T) {
	if trips := NewUnifRnd(0, 1, 1).Connect(10, 10, false); len(trips) != 0 {
		t.Errorf("pcon 0 gave %d cons", len(trips))
	}
}

func TestOneToOneFull(t *testing.T) {
	trips := NewOneToOne(2).Connect(5, 3, false)
	if len(trips) != 3 {
		t.Fatalf("OneToOne got %d cons", len(trips))
	}
	for i, tr := range trips {
		if int(tr.Row) != i || int(tr.Col) != i || tr.Wt != 2 {
			t.Errorf("OneToOne triple %d: %+v", i, tr)
		}
	}
	if n := len(NewFull(1).Connect(4, 4, true)); n != 12 {
		t.Errorf("Full self-projection got %d cons, want 12", n)
	}
	if n := len(NewFull(1).Connect(4, 3, false)); n != 12 {
		t.Errorf("Full got %d cons, want 12", n)
	}
}
