package collocation

import (
	"errors"
	"fmt"
)

// Domain errors for point generation and matrix assembly.
var (
	// ErrInvalidSize indicates a point count below one.
	ErrInvalidSize = errors.New("collocation: size must be at least 1")

	// ErrDegenerateInput indicates coincident points, which make a Lagrange
	// denominator vanish.
	ErrDegenerateInput = errors.New("collocation: degenerate input (duplicate points)")

	// ErrNonFinitePoint indicates a NaN or Inf collocation point.
	ErrNonFinitePoint = errors.New("collocation: point is NaN or Inf")

	// ErrDimensionMismatch indicates a sample vector whose length differs
	// from the matrix size.
	ErrDimensionMismatch = errors.New("collocation: dimension mismatch")

	// ErrOverflow indicates a matrix coefficient that left the range of the
	// scalar type although the points are distinct.
	ErrOverflow = errors.New("collocation: coefficient is not finite")

	// ErrUnknownDistribution indicates a distribution name with no registered strategy.
	ErrUnknownDistribution = errors.New("collocation: unknown distribution")
)

// PointError wraps an error with the offending point indices.
// J is -1 when the failure involves a single point.
type PointError struct {
	I, J    int
	Value   float64
	Wrapped error
}

func (e *PointError) Error() string {
	if e.J < 0 {
		return fmt.Sprintf("%v: point %d = %g", e.Wrapped, e.I, e.Value)
	}
	return fmt.Sprintf("%v: points %d and %d both equal %g", e.Wrapped, e.I, e.J, e.Value)
}

func (e *PointError) Unwrap() error {
	return e.Wrapped
}
