// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// Copyright (c) 2014-2017 by Brocade Communications Systems, Inc.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package vtype implements the typed scalar value system used by CLI
// grammar variables: parsing a candidate token into a declared type and
// validating it against range/pattern/enumeration constraints.
//
// The type/restriction split mirrors the YANG leaf type system this
// package was adapted from (see schema/types.go in the teacher tree):
// a Kind describes how to parse a string into a Value, and a set of
// Constraints describe additional restrictions checked afterwards.
package vtype

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/danos/mgmterror"
)

// Kind names the declared scalar type of a Variable node, per spec
// §3's Variable row ("integer widths, decimal-with-scale, IPv4/IPv6
// address, MAC address, string, rest-of-line").
type Kind int

const (
	Int8 Kind = iota
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Decimal64
	IPv4
	IPv6
	MAC
	String
	Rest
)

func (k Kind) String() string {
	switch k {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Decimal64:
		return "decimal64"
	case IPv4:
		return "ipv4address"
	case IPv6:
		return "ipv6address"
	case MAC:
		return "macaddr"
	case String:
		return "string"
	case Rest:
		return "rest"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether the kind's preference tier is "typed
// scalar" (spec §4.4: exact keyword > typed scalars > string > rest).
func (k Kind) IsNumeric() bool {
	switch k {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Decimal64, IPv4, IPv6, MAC:
		return true
	default:
		return false
	}
}

// Value is an instantiated, typed scalar produced by parsing a
// candidate string against a Kind. The matcher discards the Value
// once a match/no-match verdict is reached (spec §4.2 step 4) and only
// re-parses it when a binding actually needs to be captured.
type Value struct {
	Kind   Kind
	I      int64
	U      uint64
	F      float64 // Decimal64, scaled value preserved as float64
	S      string  // the raw input text, for every Kind
	IP     net.IP
	HW     net.HardwareAddr
	Prefix int // IPv4/IPv6 CIDR prefix length, -1 if none was given
}

// String renders the value the way it was (or would be) typed by the
// user; used both for display and to re-derive a binding's text.
func (v Value) String() string {
	return v.S
}

func newInvalidValue(msg string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = msg
	return e
}

// Parse converts s into a typed Value per the declared Kind. fracDigits
// is only meaningful for Decimal64 (the declared scale); it is ignored
// otherwise. A parse failure returns a human-readable reason suitable
// for surfacing as the walker's "no match" explanation (spec §4.2
// step 2).
func Parse(k Kind, fracDigits int, s string) (Value, error) {
	v := Value{Kind: k, S: s, Prefix: -1}
	switch k {
	case Int8, Int16, Int32, Int64:
		bits := bitWidth(k)
		n, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return v, newInvalidValue(fmt.Sprintf("%q is not a valid %s", s, k))
		}
		v.I = n
		return v, nil
	case Uint8, Uint16, Uint32, Uint64:
		bits := bitWidth(k)
		n, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return v, newInvalidValue(fmt.Sprintf("%q is not a valid %s", s, k))
		}
		v.U = n
		return v, nil
	case Decimal64:
		if err := ValidateDecimal64String(s, fracDigits); err != nil {
			return v, newInvalidValue(err.Error())
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return v, newInvalidValue(fmt.Sprintf("%q is not a decimal64", s))
		}
		v.F = f
		return v, nil
	case IPv4:
		ip, prefix, err := parseIPMaybeCIDR(s)
		if err != nil || ip.To4() == nil {
			return v, newInvalidValue(fmt.Sprintf("%q is not a valid IPv4 address", s))
		}
		v.IP = ip
		v.Prefix = prefix
		return v, nil
	case IPv6:
		ip, prefix, err := parseIPMaybeCIDR(s)
		if err != nil || ip.To4() != nil {
			return v, newInvalidValue(fmt.Sprintf("%q is not a valid IPv6 address", s))
		}
		v.IP = ip
		v.Prefix = prefix
		return v, nil
	case MAC:
		hw, err := net.ParseMAC(s)
		if err != nil {
			return v, newInvalidValue(fmt.Sprintf("%q is not a valid MAC address", s))
		}
		v.HW = hw
		return v, nil
	case String:
		return v, nil
	case Rest:
		if len(s) == 0 {
			return v, newInvalidValue("rest-of-line variable requires a value")
		}
		return v, nil
	default:
		return v, newInvalidValue("unknown variable type")
	}
}

func bitWidth(k Kind) int {
	switch k {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32:
		return 32
	default:
		return 64
	}
}

// parseIPMaybeCIDR accepts either a bare address or address/prefixlen,
// returning the address and the prefix length (-1 if none was given).
// CIDR-qualified addresses are a supplemented feature: spec.md is
// silent on address-with-prefix syntax, but every Juniper/Cisco style
// grammar accepts it for address-typed variables.
func parseIPMaybeCIDR(s string) (net.IP, int, error) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		ip, ipnet, err := net.ParseCIDR(s)
		if err != nil {
			return nil, -1, err
		}
		ones, _ := ipnet.Mask.Size()
		return ip, ones, nil
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, -1, fmt.Errorf("%q is not an IP address", s)
	}
	return ip, -1, nil
}
