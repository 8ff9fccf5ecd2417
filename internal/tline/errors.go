package tline

import (
	"errors"
	"fmt"
)

// Domain errors for line simulation.
var (
	// ErrInvalidParameter indicates an input outside the range Simulate accepts.
	ErrInvalidParameter = errors.New("tline: invalid parameter")

	// ErrGridOrder indicates interpolation abscissae that are not strictly increasing.
	ErrGridOrder = errors.New("tline: grid not strictly increasing")

	// ErrShape indicates rows of unequal length or a length mismatch between paired slices.
	ErrShape = errors.New("tline: shape mismatch")
)

// ParamError names the parameter that failed validation.
type ParamError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}
