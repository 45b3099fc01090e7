// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package snn is the overall repository for a time-stepped, multi-threaded
simulator of conductance-based (COBA) spiking networks of leaky
integrate-and-fire neurons, implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* snn: the core engine: neuron state, activation parameters, connection classes
stored in sending compressed sparse row form, the spike delay line, the
network session that steps everything in parallel phases, and recorders.

* chans: reversal potentials / conductances for the excitatory, leak and
inhibitory channels.

* conns: patterns of connectivity that generate (send, recv, weight) triples,
such as uniform random at a fixed density.

* examples: these actually compile into runnable programs.  examples/coba is
the standard 4000 neuron excitatory / inhibitory benchmark network.
*/
package snn
