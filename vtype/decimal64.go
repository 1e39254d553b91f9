// Copyright (c) 2021, AT&T Intellectual Property. All rights reserved
//
// SPDX-License-Identifier: MPL-2.0

package vtype

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const maxDecimal64 = math.MaxInt64
const minDecimal64 = math.MinInt64

// Helper, finds 10^exponent. Does not sanitise input.
func pow10Int64(exponent int) int64 {
	product := int64(1)
	for i := 0; i < exponent; i++ {
		product *= 10
	}
	return product
}

// ValidateDecimal64String validates a decimal-with-scale candidate per
// RFC6020 §9.3's decimal64 lexical rules: an optional sign, digits, an
// optional single '.', and no more fractional digits than the declared
// scale. fractionDigitsExpected == 0 disables the scale check (an
// unscaled decimal64 variable).
func ValidateDecimal64String(s string, fractionDigitsExpected int) error {
	if len(s) == 0 {
		return fmt.Errorf("decimal64 must contain at least one decimal digit")
	}
	if s[0] != '+' && s[0] != '-' && !(s[0] >= '0' && s[0] <= '9') {
		return fmt.Errorf("decimal64 values must begin with +/- or a decimal digit")
	}

	sSplit := strings.Split(s, ".")
	if len(sSplit) == 1 {
		_, err := strconv.ParseInt(sSplit[0], 10, 64)
		if err != nil {
			return fmt.Errorf("error parsing digits: %w", err)
		}
		return nil
	}
	if len(sSplit) > 2 {
		return fmt.Errorf("more than one '.' found")
	}

	fractionDigitsActual := len(sSplit[1])
	if fractionDigitsExpected != 0 && fractionDigitsActual > fractionDigitsExpected {
		return fmt.Errorf("number of fractional digits exceeds declared scale %d", fractionDigitsExpected)
	}

	upperBits, err := strconv.ParseInt(sSplit[0], 10, 64)
	if err != nil {
		return fmt.Errorf("error parsing upper digits: %w", err)
	}
	if upperBits > maxDecimal64/pow10Int64(fractionDigitsActual) {
		return fmt.Errorf("value is greater than maximum decimal64")
	}
	if upperBits < minDecimal64/pow10Int64(fractionDigitsActual) {
		return fmt.Errorf("value is less than minimum decimal64")
	}

	lowerBits, err := strconv.ParseInt(sSplit[1], 10, 64)
	if err != nil {
		return fmt.Errorf("error parsing lower digits: %w", err)
	}
	if upperBits == maxDecimal64/pow10Int64(fractionDigitsActual) {
		if lowerBits > maxDecimal64%pow10Int64(fractionDigitsActual) {
			return fmt.Errorf("value is greater than maximum decimal64")
		}
	}
	if upperBits == minDecimal64/pow10Int64(fractionDigitsActual) {
		if lowerBits > maxDecimal64%pow10Int64(fractionDigitsActual)+1 {
			return fmt.Errorf("value is less than minimum decimal64")
		}
	}
	return nil
}
