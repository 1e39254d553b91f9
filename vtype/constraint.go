// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package vtype

import (
	"fmt"
	"regexp"

	"github.com/danos/mgmterror"
)

// Constraint validates a successfully-parsed Value against a
// declaration-time restriction (spec §4.2 step 3: range, pattern,
// enumeration). Adapted from schema/types.go's per-restriction
// Validate methods (Rb/Urb/Drb range boundaries, Pattern, Enumeration),
// generalized to operate on the already-typed vtype.Value instead of
// re-deriving the numeric form from a string.
type Constraint interface {
	Validate(v Value) error
	String() string
}

// IntRange restricts Int8/16/32/64 values to [Start, End].
type IntRange struct {
	Start, End int64
}

func (r IntRange) Validate(v Value) error {
	if v.I < r.Start || v.I > r.End {
		e := mgmterror.NewInvalidValueApplicationError()
		e.Message = fmt.Sprintf("must be %s", r.String())
		return e
	}
	return nil
}

func (r IntRange) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("equal to %d", r.Start)
	}
	return fmt.Sprintf("between %d and %d", r.Start, r.End)
}

// UintRange restricts Uint8/16/32/64 values to [Start, End].
type UintRange struct {
	Start, End uint64
}

func (r UintRange) Validate(v Value) error {
	if v.U < r.Start || v.U > r.End {
		e := mgmterror.NewInvalidValueApplicationError()
		e.Message = fmt.Sprintf("must be %s", r.String())
		return e
	}
	return nil
}

func (r UintRange) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("equal to %d", r.Start)
	}
	return fmt.Sprintf("between %d and %d", r.Start, r.End)
}

// DecimalRange restricts Decimal64 values to [Start, End].
type DecimalRange struct {
	Start, End float64
}

func (r DecimalRange) Validate(v Value) error {
	if v.F < r.Start || v.F > r.End {
		e := mgmterror.NewInvalidValueApplicationError()
		e.Message = fmt.Sprintf("must be %s", r.String())
		return e
	}
	return nil
}

func (r DecimalRange) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("equal to %g", r.Start)
	}
	return fmt.Sprintf("between %g and %g", r.Start, r.End)
}

// Pattern restricts a String (or the textual form of any Value) to
// match a regular expression. Adapted from schema/types.go's Pattern
// restriction.
type Pattern struct {
	Re  *regexp.Regexp
	Msg string
}

func (p Pattern) Validate(v Value) error {
	if p.Re.MatchString(v.S) {
		return nil
	}
	e := mgmterror.NewInvalidValueApplicationError()
	if p.Msg != "" {
		e.Message = p.Msg
	} else {
		e.Message = fmt.Sprintf("does not match pattern %s", p.Re.String())
	}
	return e
}

func (p Pattern) String() string {
	return p.Re.String()
}

// Enum restricts a value's textual form to one of a closed set.
type Enum struct {
	Values []string
}

func (en Enum) Validate(v Value) error {
	for _, allowed := range en.Values {
		if allowed == v.S {
			return nil
		}
	}
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = fmt.Sprintf("must be one of the following values: %s", en.String())
	return e
}

func (en Enum) String() string {
	s := ""
	for i, v := range en.Values {
		if i > 0 {
			s += ", "
		}
		s += v
	}
	return s
}

// PrefixLen restricts an IPv4/IPv6 value to have been given with a
// CIDR prefix length in [Min, Max]. Value.Prefix is set by Parse's
// IPv4/IPv6 case from the address literal itself (-1 when no "/len"
// was given), so a bare address only satisfies this constraint when
// Min <= -1 (never, in practice — CIDR notation becomes mandatory).
type PrefixLen struct {
	Min, Max int
}

func (p PrefixLen) Validate(v Value) error {
	if v.Prefix < p.Min || v.Prefix > p.Max {
		e := mgmterror.NewInvalidValueApplicationError()
		e.Message = fmt.Sprintf("prefix length must be between %d and %d", p.Min, p.Max)
		return e
	}
	return nil
}

func (p PrefixLen) String() string {
	return fmt.Sprintf("/%d..%d", p.Min, p.Max)
}
