// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"github.com/emer/emergent/params"
	"go.uber.org/multierr"
)

// Pops and Prjns are params.Styler objects, selected in a params.Sheet by
// type ("Pop", "Prjn"), by .Class, or by #Name:
//
//	Pop:  class is its type (Exc or Inh) plus Cls
//	Prjn: class is its connection class (EE, EI, IE, II), the channel it
//	      drives (Excite or Inhib), plus Cls

func (pp *Pop) TypeName() string { return "Pop" }
func (pp *Pop) Class() string    { return pp.Typ.String() + " " + pp.Cls }

func (pj *Prjn) TypeName() string { return "Prjn" }
func (pj *Prjn) Class() string {
	if pj.Send == nil || pj.Recv == nil {
		return pj.Cls
	}
	return ClassFor(pj.Send.Typ, pj.Recv.Typ).String() + " " + ChannelFor(pj.Send.Typ).String() + " " + pj.Cls
}

// ApplyParams applies given parameter style Sheet to the populations and
// projections of the network, which must not yet be built (Build validates
// the result).  If setMsg is true, a message is printed for each parameter set.
// Returns true if any params were set, and the errors from any that failed.
func (nt *Network) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	applied := false
	var rerr error
	for _, pp := range nt.Pops {
		app, err := pars.Apply(pp, setMsg)
		if app {
			pp.Act.Update()
			applied = true
		}
		rerr = multierr.Append(rerr, err)
	}
	for _, pj := range nt.Prjns {
		app, err := pars.Apply(pj, setMsg)
		if app {
			applied = true
		}
		rerr = multierr.Append(rerr, err)
	}
	return applied, rerr
}
