// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// Recorder is updated at the end of every step, after all spikes of the
// step have been detected.  Recordings are append-only, and owned by the
// recorder: they are read back after the run.
type Recorder interface {
	// Name returns the name of the recorder
	Name() string

	// Init checks the recorder settings against the network and allocates
	// anything needed -- called in Build
	Init(nt *Network) error

	// Record is called once per step, in the Record phase
	Record(nt *Network) error

	// Reset discards everything recorded so far -- called by InitState
	Reset()
}

// memLimit returns the recorder limit: own if set, else the network default
func memLimit(own datasize.ByteSize, nt *Network) datasize.ByteSize {
	if own > 0 {
		return own
	}
	return nt.Cfg.MaxRecMem
}

func recMemErr(nm string, step int, need, lim datasize.ByteSize) *Error {
	err := NewError(ResourceExhaustion, "recorder %s needs %s, exceeding limit %s", nm, need.HumanReadable(), lim.HumanReadable())
	err.Step = step
	return err
}

//////////////////////////////////////////////////////////////////////////////////////
//  SpikeRecorder

// SpikeRecorder records every spike of the selected populations as a
// (step, neuron) pair, in step order and increasing neuron index within a step.
type SpikeRecorder struct {
	Nm     string            `desc:"name of recorder"`
	Pops   []string          `desc:"names of populations to record -- empty = all"`
	MaxMem datasize.ByteSize `desc:"upper bound on memory -- 0 = network Cfg.MaxRecMem"`

	Steps   []int32 `view:"-" desc:"step of each spike"`
	Neurons []int32 `view:"-" desc:"global neuron index of each spike"`

	rngs  [][2]int32
	limit datasize.ByteSize
	dt    float32
	net   *Network
}

// NewSpikeRecorder returns a new spike recorder for given populations (none = all)
func NewSpikeRecorder(name string, pops ...string) *SpikeRecorder {
	return &SpikeRecorder{Nm: name, Pops: pops}
}

func (sr *SpikeRecorder) Name() string { return sr.Nm }

func (sr *SpikeRecorder) Init(nt *Network) error {
	sr.rngs = sr.rngs[:0]
	if len(sr.Pops) == 0 {
		sr.rngs = append(sr.rngs, [2]int32{0, int32(nt.NNeurons())})
	}
	for _, pnm := range sr.Pops {
		pp, err := nt.PopByNameTry(pnm)
		if err != nil {
			return err
		}
		sr.rngs = append(sr.rngs, [2]int32{int32(pp.St), int32(pp.Ed())})
	}
	sr.limit = memLimit(sr.MaxMem, nt)
	sr.dt = nt.Cfg.Dt
	sr.net = nt
	return nil
}

func (sr *SpikeRecorder) has(ni int32) bool {
	for _, r := range sr.rngs {
		if ni >= r[0] && ni < r[1] {
			return true
		}
	}
	return false
}

func (sr *SpikeRecorder) Record(nt *Network) error {
	n := 0
	for _, spks := range nt.ThrSpikes {
		for _, ni := range spks {
			if sr.has(ni) {
				n++
			}
		}
	}
	if n == 0 {
		return nil
	}
	if need := sr.memFor(len(sr.Steps) + n); need > sr.limit {
		return recMemErr(sr.Nm, nt.Time.Step, need, sr.limit)
	}
	step := int32(nt.Time.Step)
	for _, spks := range nt.ThrSpikes {
		for _, ni := range spks {
			if sr.has(ni) {
				sr.Steps = append(sr.Steps, step)
				sr.Neurons = append(sr.Neurons, ni)
			}
		}
	}
	return nil
}

func (sr *SpikeRecorder) Reset() {
	sr.Steps = sr.Steps[:0]
	sr.Neurons = sr.Neurons[:0]
}

func (sr *SpikeRecorder) memFor(n int) datasize.ByteSize {
	return datasize.ByteSize(2 * n * int(unsafe.Sizeof(int32(0))))
}

// MemBytes returns the memory used by the recording
func (sr *SpikeRecorder) MemBytes() datasize.ByteSize {
	return sr.memFor(len(sr.Steps))
}

// N returns the number of recorded spikes
func (sr *SpikeRecorder) N() int {
	return len(sr.Steps)
}

// Count returns the number of recorded spikes of the named population
func (sr *SpikeRecorder) Count(pop string) int {
	if sr.net == nil {
		return 0
	}
	pp := sr.net.PopByName(pop)
	if pp == nil {
		return 0
	}
	n := 0
	for _, ni := range sr.Neurons {
		if pp.Has(int(ni)) {
			n++
		}
	}
	return n
}

// Raster returns the recorded steps and neuron indexes, as parallel slices
func (sr *SpikeRecorder) Raster() (steps, neurons []int32) {
	return sr.Steps, sr.Neurons
}

// NeuronSpikes returns the spike steps of each recorded neuron, keyed by global index
func (sr *SpikeRecorder) NeuronSpikes() map[int32][]int32 {
	ns := make(map[int32][]int32)
	for i, ni := range sr.Neurons {
		ns[ni] = append(ns[ni], sr.Steps[i])
	}
	return ns
}

// RasterTable returns the recording as a table with columns
// Step, Time (msec), Neuron (global index) and Pop (name)
func (sr *SpikeRecorder) RasterTable() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", sr.Nm)
	dt.SetMetaData("desc", "spike raster")
	sch := etable.Schema{
		{"Step", etensor.INT64, nil, nil},
		{"Time", etensor.FLOAT64, nil, nil},
		{"Neuron", etensor.INT64, nil, nil},
		{"Pop", etensor.STRING, nil, nil},
	}
	dt.SetFromSchema(sch, sr.N())
	for row := range sr.Steps {
		ni := sr.Neurons[row]
		dt.SetCellFloat("Step", row, float64(sr.Steps[row]))
		dt.SetCellFloat("Time", row, float64(sr.Steps[row])*float64(sr.dt))
		dt.SetCellFloat("Neuron", row, float64(ni))
		if sr.net != nil {
			dt.SetCellString("Pop", row, sr.net.PopOf(int(ni)).Nm)
		}
	}
	return dt
}

//////////////////////////////////////////////////////////////////////////////////////
//  StateRecorder

// StateRecorder samples one neuron state variable (see NeuronVars) for a
// set of neurons at a fixed interval of steps.
type StateRecorder struct {
	Nm     string            `desc:"name of recorder"`
	Var    string            `desc:"name of the variable to record, from NeuronVars"`
	Idxs   []int             `desc:"global indexes of neurons to record"`
	Every  int               `def:"1" min:"1" desc:"sampling interval in steps -- a sample is taken on steps that are a multiple of this"`
	MaxMem datasize.ByteSize `desc:"upper bound on memory -- 0 = network Cfg.MaxRecMem"`

	Steps []int32   `view:"-" desc:"step of each sample"`
	Vals  []float32 `view:"-" desc:"recorded values, organized as [sample][neuron]"`

	vidx  int
	limit datasize.ByteSize
}

// NewStateRecorder returns a new state recorder for given variable and neurons,
// sampling every step
func NewStateRecorder(name, varNm string, idxs ...int) *StateRecorder {
	return &StateRecorder{Nm: name, Var: varNm, Idxs: idxs, Every: 1}
}

func (sr *StateRecorder) Name() string { return sr.Nm }

func (sr *StateRecorder) Init(nt *Network) error {
	vidx, err := NeuronVarIdxByName(sr.Var)
	if err != nil {
		return configErr("recorder %s: %v", sr.Nm, err)
	}
	sr.vidx = vidx
	if sr.Every < 1 {
		return configErr("recorder %s: Every must be >= 1, got: %d", sr.Nm, sr.Every)
	}
	nn := nt.NNeurons()
	for _, ni := range sr.Idxs {
		if ni < 0 || ni >= nn {
			return configErr("recorder %s: neuron index %d out of range [0, %d)", sr.Nm, ni, nn)
		}
	}
	sr.limit = memLimit(sr.MaxMem, nt)
	return nil
}

func (sr *StateRecorder) Record(nt *Network) error {
	step := nt.Time.Step
	if step%sr.Every != 0 {
		return nil
	}
	if need := sr.memFor(len(sr.Steps) + 1); need > sr.limit {
		return recMemErr(sr.Nm, step, need, sr.limit)
	}
	sr.Steps = append(sr.Steps, int32(step))
	for _, ni := range sr.Idxs {
		sr.Vals = append(sr.Vals, nt.Neurons.VarByIdx(ni, sr.vidx))
	}
	return nil
}

func (sr *StateRecorder) Reset() {
	sr.Steps = sr.Steps[:0]
	sr.Vals = sr.Vals[:0]
}

func (sr *StateRecorder) memFor(nsamp int) datasize.ByteSize {
	return datasize.ByteSize(nsamp * (1 + len(sr.Idxs)) * 4)
}

// MemBytes returns the memory used by the recording
func (sr *StateRecorder) MemBytes() datasize.ByteSize {
	return sr.memFor(len(sr.Steps))
}

// NSamples returns the number of samples recorded
func (sr *StateRecorder) NSamples() int {
	return len(sr.Steps)
}

// Tensor returns the recorded values as a [Sample][Neuron] tensor
func (sr *StateRecorder) Tensor() *etensor.Float32 {
	tsr := etensor.NewFloat32([]int{sr.NSamples(), len(sr.Idxs)}, nil, []string{"Sample", "Neuron"})
	copy(tsr.Values, sr.Vals)
	return tsr
}
