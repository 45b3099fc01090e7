// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import "testing"

func TestInet(t *testing.T) {
	erev := Chans{}
	erev.SetAll(0, -60, -80)

	tests := []struct {
		vm, gl, ge, gi float32
		want           float32
	}{
		{-60, 1, 0, 0, 0},
		{-50, 1, 0, 0, -10},
		{-60, 1, 0.5, 0, 30},
		{-60, 1, 0, 1, -20},
		{-70, 1, 1, 1, 10 + 70 - 10},
	}
	for i, tt := range tests {
		got := erev.Inet(tt.vm, tt.gl, tt.ge, tt.gi)
		if got != tt.want {
			t.Errorf("Inet idx: %v, vm: %v, ge: %v, gi: %v, got: %v, want: %v", i, tt.vm, tt.ge, tt.gi, got, tt.want)
		}
	}
}
