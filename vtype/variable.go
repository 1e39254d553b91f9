// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package vtype

// Variable is the declaration attached to a grammar Variable node:
// its scalar Kind, the declared scale for Decimal64, and zero or more
// Constraints checked after a successful parse. This is the "typed
// variable descriptor" of spec §4.2.
type Variable struct {
	Name        string
	Kind        Kind
	FracDigits  int
	Constraints []Constraint
}

// Match implements spec §4.2: parse the candidate string into the
// declared type, then validate it against every constraint in turn.
// ok reports whether the candidate matches; reason carries the first
// parse or validation failure's human-readable explanation.
func (vr Variable) Match(s string) (ok bool, reason string) {
	v, err := Parse(vr.Kind, vr.FracDigits, s)
	if err != nil {
		return false, err.Error()
	}
	for _, c := range vr.Constraints {
		if err := c.Validate(v); err != nil {
			return false, err.Error()
		}
	}
	return true, ""
}

// Capture re-parses s into a Value for binding once a match has been
// confirmed by the walker (spec §4.2 step 4: "the value is re-parsed
// by the walker when a binding is actually captured").
func (vr Variable) Capture(s string) (Value, error) {
	return Parse(vr.Kind, vr.FracDigits, s)
}
