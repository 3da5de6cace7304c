// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing user supplied amounts and
// formatting totals for reports.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user input into a positive decimal amount.
//
// Surrounding whitespace is ignored. Plain and exponent notations are
// accepted ("12.50", "1e2"). Anything else, and any value that is not
// strictly greater than zero, is rejected with ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.50") -> 12.5, nil
//	ParseAmount(" 7 ")   -> 7, nil
//	ParseAmount("-5")    -> 0, ErrInvalidAmount
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty input", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if d.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	}
	return d, nil
}

// FormatTotal renders an amount with exactly two decimal places, rounding
// half away from zero.
func FormatTotal(d decimal.Decimal) string {
	return d.StringFixed(2)
}
