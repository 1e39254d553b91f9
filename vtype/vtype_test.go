// Copyright (c) 2017-2021, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package vtype

import "testing"

func TestParseInt(t *testing.T) {
	v, err := Parse(Int32, 0, "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.I != 42 {
		t.Fatalf("v.I = %d, want 42", v.I)
	}
}

func TestParseIntOutOfRangeForWidth(t *testing.T) {
	if _, err := Parse(Int8, 0, "200"); err == nil {
		t.Fatalf("Parse(Int8, 200): expected error, got none")
	}
}

func TestParseIntInvalid(t *testing.T) {
	if _, err := Parse(Int32, 0, "abc"); err == nil {
		t.Fatalf("Parse(Int32, \"abc\"): expected error, got none")
	}
}

func TestParseUint(t *testing.T) {
	v, err := Parse(Uint16, 0, "65535")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.U != 65535 {
		t.Fatalf("v.U = %d, want 65535", v.U)
	}
}

func TestParseDecimal64(t *testing.T) {
	v, err := Parse(Decimal64, 2, "3.14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.F != 3.14 {
		t.Fatalf("v.F = %v, want 3.14", v.F)
	}
}

func TestParseDecimal64WrongScale(t *testing.T) {
	if _, err := Parse(Decimal64, 2, "3.14159"); err == nil {
		t.Fatalf("Parse(Decimal64, fracDigits=2, \"3.14159\"): expected error, got none")
	}
}

func TestParseIPv4(t *testing.T) {
	v, err := Parse(IPv4, 0, "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.IP.String() != "10.0.0.1" {
		t.Fatalf("v.IP = %v, want 10.0.0.1", v.IP)
	}
}

func TestParseIPv4RejectsIPv6(t *testing.T) {
	if _, err := Parse(IPv4, 0, "::1"); err == nil {
		t.Fatalf("Parse(IPv4, \"::1\"): expected error, got none")
	}
}

func TestParseIPv4WithPrefix(t *testing.T) {
	v, err := Parse(IPv4, 0, "10.0.0.0/24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.IP.String() != "10.0.0.0" {
		t.Fatalf("v.IP = %v, want 10.0.0.0", v.IP)
	}
	if v.Prefix != 24 {
		t.Fatalf("v.Prefix = %d, want 24", v.Prefix)
	}
}

func TestParseIPv4WithoutPrefixLeavesPrefixUnset(t *testing.T) {
	v, err := Parse(IPv4, 0, "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Prefix != -1 {
		t.Fatalf("v.Prefix = %d, want -1", v.Prefix)
	}
}

func TestVariableMatchPrefixLen(t *testing.T) {
	vr := Variable{
		Name:        "subnet",
		Kind:        IPv4,
		Constraints: []Constraint{PrefixLen{Min: 8, Max: 24}},
	}
	if ok, reason := vr.Match("10.0.0.0/24"); !ok {
		t.Fatalf("Match(10.0.0.0/24) = false, reason=%q, want true", reason)
	}
	if ok, _ := vr.Match("10.0.0.0/30"); ok {
		t.Fatalf("Match(10.0.0.0/30) = true, want false (prefix too long)")
	}
	if ok, _ := vr.Match("10.0.0.1"); ok {
		t.Fatalf("Match(10.0.0.1) = true, want false (no prefix length given)")
	}
}

func TestParseMAC(t *testing.T) {
	v, err := Parse(MAC, 0, "01:23:45:67:89:ab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.HW.String() != "01:23:45:67:89:ab" {
		t.Fatalf("v.HW = %v, want 01:23:45:67:89:ab", v.HW)
	}
}

func TestParseRestRequiresValue(t *testing.T) {
	if _, err := Parse(Rest, 0, ""); err == nil {
		t.Fatalf("Parse(Rest, \"\"): expected error, got none")
	}
	if _, err := Parse(Rest, 0, "anything goes here"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVariableMatchAppliesConstraints(t *testing.T) {
	vr := Variable{
		Name: "port",
		Kind: Uint16,
		Constraints: []Constraint{
			UintRange{Start: 1, End: 1024},
		},
	}
	if ok, reason := vr.Match("80"); !ok {
		t.Fatalf("Match(80) = false, reason=%q, want true", reason)
	}
	if ok, _ := vr.Match("8080"); ok {
		t.Fatalf("Match(8080) = true, want false (out of range)")
	}
	if ok, _ := vr.Match("not-a-number"); ok {
		t.Fatalf("Match(not-a-number) = true, want false")
	}
}

func TestVariableMatchEnum(t *testing.T) {
	vr := Variable{
		Name:        "proto",
		Kind:        String,
		Constraints: []Constraint{Enum{Values: []string{"tcp", "udp"}}},
	}
	if ok, _ := vr.Match("tcp"); !ok {
		t.Fatalf("Match(tcp) = false, want true")
	}
	if ok, _ := vr.Match("icmp"); ok {
		t.Fatalf("Match(icmp) = true, want false")
	}
}

func TestVariableCapture(t *testing.T) {
	vr := Variable{Name: "n", Kind: Int32}
	v, err := vr.Capture("7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.I != 7 {
		t.Fatalf("v.I = %d, want 7", v.I)
	}
}
