// Package core provides the transaction model and input parsing helpers.
//
// This file contains the fallible conversions applied to raw user input
// before it reaches the ledger.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InputFormatError reports raw user input that could not be converted.
type InputFormatError struct {
	Field string
	Input string
	Err   error
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Input, e.Err)
}

func (e *InputFormatError) Unwrap() error {
	return e.Err
}

// ParseAmount converts a decimal string to a float amount.
//
// Leading and trailing spaces are ignored and a decimal comma is accepted.
// Negative values are allowed since no sign convention is enforced between
// kind and amount. NaN and infinities are rejected.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("-5")    -> -5, nil
//	ParseAmount("abc")   -> 0, *InputFormatError
func ParseAmount(s string) (float64, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return 0, &InputFormatError{Field: "amount", Input: s, Err: ErrInvalidAmount}
	}
	// Normalize decimal comma to dot, but only when it is the sole separator
	if strings.Count(in, ",") == 1 && !strings.Contains(in, ".") {
		in = strings.Replace(in, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(in, 64)
	if err != nil {
		return 0, &InputFormatError{Field: "amount", Input: s, Err: ErrInvalidAmount}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InputFormatError{Field: "amount", Input: s, Err: ErrInvalidAmount}
	}
	return v, nil
}

// ParseKindInput is ParseKind for raw user input, reporting an InputFormatError.
func ParseKindInput(s string) (Kind, error) {
	k, err := ParseKind(s)
	if err != nil {
		return "", &InputFormatError{Field: "type", Input: s, Err: ErrInvalidKind}
	}
	return k, nil
}
