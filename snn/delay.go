// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"unsafe"

	"github.com/c2h5oh/datasize"
)

// Event is one pending conductance increment for a receiving neuron
type Event struct {
	Recv int32    // global index of receiving neuron
	Ch   Channels // channel to increment
	Inc  float32  // conductance increment
}

// DelayLine holds pending spike-delivery events in a ring of Horizon slots,
// indexed by step mod Horizon.  Each slot has one event buffer per
// (sending thread, receiving thread) pair: sending threads append only to
// their own buffers, and each receiving thread drains only the buffers
// addressed to it, in sending-thread order, so neither side needs a lock.
type DelayLine struct {
	Horizon int               `inactive:"+" desc:"number of slots = longest delay in steps + 1"`
	NThr    int               `inactive:"+" desc:"number of threads"`
	Chunk   int               `inactive:"+" desc:"number of neurons owned by each thread -- neuron ni is owned by thread ni / Chunk"`
	MaxMem  datasize.ByteSize `desc:"upper bound on memory held by pending events"`
	Bufs    [][]Event         `view:"-" desc:"event buffers, indexed by [slot][sending thread][receiving thread]"`
	Sent    []int64           `view:"-" desc:"number of events added, per sending thread"`
	Dlvd    []int64           `view:"-" desc:"number of events delivered, per receiving thread"`
}

// SlotBytes returns the memory taken by the event buffer headers of a
// delay line with given horizon and number of threads, before any event
func SlotBytes(horizon, nthr int) datasize.ByteSize {
	return datasize.ByteSize(horizon) * datasize.ByteSize(nthr*nthr) * datasize.ByteSize(unsafe.Sizeof([]Event{}))
}

// Init allocates the delay line for given horizon, number of threads,
// and neurons per thread
func (dl *DelayLine) Init(horizon, nthr, chunk int, maxMem datasize.ByteSize) {
	dl.Horizon = max(horizon, 1)
	dl.NThr = max(nthr, 1)
	dl.Chunk = max(chunk, 1)
	dl.MaxMem = maxMem
	dl.Bufs = make([][]Event, dl.Horizon*dl.NThr*dl.NThr)
	dl.Sent = make([]int64, dl.NThr)
	dl.Dlvd = make([]int64, dl.NThr)
}

// Reset discards all pending events, keeping buffer capacity
func (dl *DelayLine) Reset() {
	for i := range dl.Bufs {
		dl.Bufs[i] = dl.Bufs[i][:0]
	}
	for i := range dl.Sent {
		dl.Sent[i] = 0
		dl.Dlvd[i] = 0
	}
}

// Slot returns the slot for events due at given step
func (dl *DelayLine) Slot(step int) int {
	return step % dl.Horizon
}

// Owner returns the thread owning neuron ni
func (dl *DelayLine) Owner(ni int) int {
	return ni / dl.Chunk
}

// BufIdx returns the index into Bufs for given slot and thread pair
func (dl *DelayLine) BufIdx(slot, sthr, rthr int) int {
	return (slot*dl.NThr+sthr)*dl.NThr + rthr
}

// Add appends an event to given slot, from sending thread sthr.
// Only thread sthr may call this for its own sthr.
func (dl *DelayLine) Add(slot, sthr int, ev Event) {
	bi := dl.BufIdx(slot, sthr, dl.Owner(int(ev.Recv)))
	dl.Bufs[bi] = append(dl.Bufs[bi], ev)
	dl.Sent[sthr]++
}

// Deliver applies all events due at given step that are addressed to
// neurons owned by thread rthr, and clears them.  Returns number applied.
func (dl *DelayLine) Deliver(step, rthr int, nrns *Neurons) int {
	slot := dl.Slot(step)
	n := 0
	for sthr := 0; sthr < dl.NThr; sthr++ {
		bi := dl.BufIdx(slot, sthr, rthr)
		evs := dl.Bufs[bi]
		for i := range evs {
			ev := &evs[i]
			if ev.Ch == Inhib {
				nrns.Gi[ev.Recv] += ev.Inc
			} else {
				nrns.Ge[ev.Recv] += ev.Inc
			}
		}
		n += len(evs)
		dl.Bufs[bi] = evs[:0]
	}
	dl.Dlvd[rthr] += int64(n)
	return n
}

// Pending returns the number of events added but not yet delivered
func (dl *DelayLine) Pending() int64 {
	var n int64
	for th := range dl.Sent {
		n += dl.Sent[th] - dl.Dlvd[th]
	}
	return n
}

// MemBytes returns the memory held by pending events
func (dl *DelayLine) MemBytes() datasize.ByteSize {
	return datasize.ByteSize(dl.Pending()) * datasize.ByteSize(unsafe.Sizeof(Event{}))
}

// CapBytes returns the memory allocated for event buffers, including
// capacity retained from earlier steps
func (dl *DelayLine) CapBytes() datasize.ByteSize {
	n := 0
	for _, b := range dl.Bufs {
		n += cap(b)
	}
	return datasize.ByteSize(n) * datasize.ByteSize(unsafe.Sizeof(Event{}))
}

// CheckMem returns a ResourceExhaustion error if pending events exceed MaxMem
func (dl *DelayLine) CheckMem(step int) error {
	if dl.MaxMem == 0 {
		return nil
	}
	if mem := dl.MemBytes(); mem > dl.MaxMem {
		err := NewError(ResourceExhaustion, "pending events hold %s, exceeding MaxEventMem %s", mem.HumanReadable(), dl.MaxMem.HumanReadable())
		err.Step = step
		return err
	}
	return nil
}
