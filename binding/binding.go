// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package binding implements the "cvv" of spec §3: the ordered vector
// of (name, typed value, is-constant) triples accumulated as the tree
// walker descends and matches variables.
package binding

import "github.com/danos/cligen/vtype"

// Binding is one captured (name, value) pair. Const marks a keyword
// promoted to a binding (e.g. the matched alternative of an
// enumeration expansion) so downstream callbacks can distinguish
// user-supplied values from fixed command words.
type Binding struct {
	Name  string
	Value vtype.Value
	Const bool
}

// Vector is the ordered sequence of Bindings captured along the
// current match path. The walker pushes a Binding before recursing
// into a matched node's subtree and truncates it away again when that
// frame returns, on success as well as failure (spec §9: "Binding
// vector rollback"); a successful match's bindings are handed back
// separately, as a Vector returned by the walker (see package match).
type Vector []Binding

// Push appends a binding, returning the new length so the caller can
// later Truncate back to it on rollback.
func (v *Vector) Push(b Binding) int {
	*v = append(*v, b)
	return len(*v)
}

// Truncate drops every binding captured after mark (the length
// returned by a prior Push), restoring the vector to that point.
func (v *Vector) Truncate(mark int) {
	*v = (*v)[:mark]
}

// Pop removes the most recently pushed binding. It is a convenience
// for the common case of popping exactly the binding just pushed.
func (v *Vector) Pop() {
	if n := len(*v); n > 0 {
		*v = (*v)[:n-1]
	}
}

// Find returns the most recent binding with the given name, used when
// a choice expander needs an earlier argument's value to compute its
// candidate set (spec §4.4.3).
func (v Vector) Find(name string) (Binding, bool) {
	for i := len(v) - 1; i >= 0; i-- {
		if v[i].Name == name {
			return v[i], true
		}
	}
	return Binding{}, false
}

// Clone returns an independent copy, used by callbacks that must not
// observe later mutation of the live vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}
