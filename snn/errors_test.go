// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{configErr("bad %s", "thing"), "[config]: bad thing"},
		{edgeErr("EToI", 12, "weight %v", -1), "[config] prjn EToI edge 12: weight -1"},
		{faultErr(100, 7, "Vm", 0), "[numerical] step 100 neuron 7: Vm = 0"},
		{&Error{Kind: ResourceExhaustion, Step: 3, Neuron: -1, Edge: -1, Detail: "full", Cause: errors.New("oom")}, "[resource] step 3: full (caused by: oom)"},
	}
	for i, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("%d: got: %q, want: %q", i, got, tt.want)
		}
	}
}

func TestErrorIs(t *testing.T) {
	cause := errors.New("cause")
	err := fmt.Errorf("population E: %w", &Error{Kind: NumericalFault, Step: 1, Neuron: 2, Edge: -1, Cause: cause})
	if !errors.Is(err, ErrNumerical) {
		t.Errorf("wrapped numerical fault not matched")
	}
	if errors.Is(err, ErrConfig) || errors.Is(err, ErrResource) {
		t.Errorf("numerical fault matched wrong kind")
	}
	if !errors.Is(err, cause) {
		t.Errorf("cause not unwrapped")
	}
	var serr *Error
	if !errors.As(err, &serr) || serr.Neuron != 2 {
		t.Errorf("errors.As failed: %v", serr)
	}
}
