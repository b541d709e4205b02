package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrUnknownFunction = errors.New("analysis: unknown test function")

// Function is a sample function and its exact derivative.
// Degree is the polynomial degree, or -1 when f is not a polynomial.
type Function struct {
	Name   string
	F      func(x float64) float64
	DF     func(x float64) float64
	Degree int
}

// ExactAt reports whether an n-point matrix differentiates f exactly.
func (f Function) ExactAt(n int) bool {
	return f.Degree >= 0 && f.Degree <= n-1
}

var functions = map[string]Function{
	"constant": {
		Name:   "constant",
		F:      func(x float64) float64 { return 3 },
		DF:     func(x float64) float64 { return 0 },
		Degree: 0,
	},
	"linear": {
		Name:   "linear",
		F:      func(x float64) float64 { return 2*x - 1 },
		DF:     func(x float64) float64 { return 2 },
		Degree: 1,
	},
	"square": {
		Name:   "square",
		F:      func(x float64) float64 { return x * x },
		DF:     func(x float64) float64 { return 2 * x },
		Degree: 2,
	},
	"cubic": {
		Name:   "cubic",
		F:      func(x float64) float64 { return x*x*x - x },
		DF:     func(x float64) float64 { return 3*x*x - 1 },
		Degree: 3,
	},
	"sin": {
		Name:   "sin",
		F:      func(x float64) float64 { return math.Sin(2 * math.Pi * x) },
		DF:     func(x float64) float64 { return 2 * math.Pi * math.Cos(2*math.Pi*x) },
		Degree: -1,
	},
	"exp": {
		Name:   "exp",
		F:      math.Exp,
		DF:     math.Exp,
		Degree: -1,
	},
	// 1/(1+25u²) with u = 2x-1, the classic equispaced-interpolation failure.
	"runge": {
		Name: "runge",
		F: func(x float64) float64 {
			u := 2*x - 1
			return 1 / (1 + 25*u*u)
		},
		DF: func(x float64) float64 {
			u := 2*x - 1
			q := 1 + 25*u*u
			return -100 * u / (q * q)
		},
		Degree: -1,
	},
}

// LookupFunction returns the built-in test function with the given name.
func LookupFunction(name string) (Function, error) {
	fn, ok := functions[name]
	if !ok {
		return Function{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownFunction, name, Functions())
	}
	return fn, nil
}

// Functions lists built-in test function names in sorted order.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
