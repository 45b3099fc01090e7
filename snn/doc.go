// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package snn provides the core engine for simulating networks of
conductance-based leaky integrate-and-fire neurons with exponentially
decaying synaptic conductances and delayed spike transmission:

	tau * dv/dt = (El - v) + ge * (Ee - v) + gi * (Ei - v) + I

A Network is an explicit session object: it owns the neuron state (Neurons),
the populations (Pop) and their shared parameters (ActParams), the
connection classes (Prjn, one of EE, EI, IE, II), the pending spike events
(DelayLine) and the random stream used to initialize state.  There is no
package-level simulation state, except for the logger (see SetLogger).

Typical use:

	net := snn.NewNetwork("COBA", snn.NewConfig())
	e := net.AddPop("E", snn.Exc, 3200)
	i := net.AddPop("I", snn.Inh, 800)
	net.ConnectPops(e, e, conns.NewUnifRnd(0.02, 0.6, 1))
	...
	sr := snn.NewSpikeRecorder("Spikes")
	net.AddRecorder(sr)
	if err := net.Build(); err != nil {
		...
	}
	defer net.Stop()
	err := net.RunDuration(ctx, 1000)
	fmt.Println(net.RunStats())

Each step is computed by NThreads worker goroutines, each owning a
contiguous range of neuron indexes, in phases separated by barriers:
event delivery, then integration with spike detection and sending,
then recording.  When all delays are equal the spike raster does not
depend on the number of threads; with mixed delays only the order in which
increments due in the same step are summed can differ.

All errors are *Error values of kind ConfigErr, NumericalFault or
ResourceExhaustion, which can be tested with errors.Is against ErrConfig,
ErrNumerical and ErrResource.
*/
package snn
