package curve

import "errors"

var (
	// ErrFieldCount indicates a line did not hold exactly one flow/head pair.
	ErrFieldCount = errors.New("curve: expected exactly two values (flow, head)")
	// ErrNotNumeric indicates a value could not be parsed as a number.
	ErrNotNumeric = errors.New("curve: value is not a number")
	// ErrOutOfRange indicates a negative or non-finite flow or head.
	ErrOutOfRange = errors.New("curve: flow and head must be finite and non-negative")
	// ErrTooFewPoints indicates fewer than two usable points were supplied.
	ErrTooFewPoints = errors.New("curve: at least two points are required")
)
