// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"
	"strings"
)

// ErrKinds categorize the errors reported by the simulator.
// There are no transient errors: every error is a configuration or
// programming defect, reported with enough context to reproduce it.
type ErrKinds string

const (
	// ConfigErr is a malformed or inconsistent configuration, detected
	// in Build before any step executes.
	ConfigErr ErrKinds = "config"

	// NumericalFault is a non-finite state value produced during a step.
	NumericalFault ErrKinds = "numerical"

	// ResourceExhaustion is delay-line or recorder memory growth beyond
	// the configured bound.
	ResourceExhaustion ErrKinds = "resource"
)

// Sentinels for use with errors.Is -- match any Error of the same Kind.
var (
	ErrConfig    = &Error{Kind: ConfigErr}
	ErrNumerical = &Error{Kind: NumericalFault}
	ErrResource  = &Error{Kind: ResourceExhaustion}
)

// Error is the structured error type used throughout the simulator.
// Step, Neuron and Edge are -1 when not applicable.
type Error struct {
	Kind   ErrKinds
	Step   int
	Neuron int
	Prjn   string
	Edge   int
	Detail string
	Cause  error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(string(e.Kind))
	b.WriteByte(']')
	if e.Prjn != "" {
		b.WriteString(" prjn ")
		b.WriteString(e.Prjn)
	}
	if e.Edge >= 0 {
		fmt.Fprintf(&b, " edge %d", e.Edge)
	}
	if e.Step >= 0 {
		fmt.Fprintf(&b, " step %d", e.Step)
	}
	if e.Neuron >= 0 {
		fmt.Fprintf(&b, " neuron %d", e.Neuron)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an Error of the same Kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// NewError returns a new Error of given kind with no location context
func NewError(kind ErrKinds, format string, args ...any) *Error {
	return &Error{Kind: kind, Step: -1, Neuron: -1, Edge: -1, Detail: fmt.Sprintf(format, args...)}
}

// configErr is a convenience for ConfigErr errors
func configErr(format string, args ...any) *Error {
	return NewError(ConfigErr, format, args...)
}

// edgeErr is a ConfigErr for a specific synapse of a projection
func edgeErr(pj string, edge int, format string, args ...any) *Error {
	err := configErr(format, args...)
	err.Prjn = pj
	err.Edge = edge
	return err
}

// faultErr is a NumericalFault at given step and neuron
func faultErr(step, ni int, varNm string, val float32) *Error {
	err := NewError(NumericalFault, "%s = %v", varNm, val)
	err.Step = step
	err.Neuron = ni
	return err
}
