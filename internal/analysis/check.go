package analysis

import (
	"fmt"
	"math"
	"reflect"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/colloc/internal/collocation"
)

// Report compares fx·D with the exact derivative at every point.
type Report struct {
	Function     string
	Distribution string
	Precision    string
	Size         int
	Points       []float64
	Samples      []float64
	Approx       []float64
	Exact        []float64
	MaxError     float64
	RMSError     float64
	// ExpectExact is set when the function is a polynomial the matrix
	// should reproduce to rounding.
	ExpectExact bool
}

// Evaluate generates n points with dist, builds the matrix in precision S
// and measures the derivative error of fn.
func Evaluate[S collocation.Scalar](n int, dist collocation.Distribution, fn Function) (*Report, error) {
	if dist == nil {
		dist = collocation.Uniform{}
	}
	pts, err := collocation.Generate[S](n, dist)
	if err != nil {
		return nil, err
	}
	d, err := collocation.Build(pts)
	if err != nil {
		return nil, err
	}

	r, err := Check(d, pts, fn)
	if err != nil {
		return nil, err
	}
	r.Distribution = dist.Name()
	return r, nil
}

// Check applies d to samples of fn taken at pts.
func Check[S collocation.Scalar](d *collocation.Matrix[S], pts collocation.Points[S], fn Function) (*Report, error) {
	if d.Size() != len(pts) {
		return nil, fmt.Errorf("%w: matrix %d, points %d", collocation.ErrDimensionMismatch, d.Size(), len(pts))
	}

	n := len(pts)
	xs := pts.Float64s()
	fx := make([]S, n)
	for i, x := range xs {
		fx[i] = S(fn.F(x))
	}
	df, err := d.Apply(fx)
	if err != nil {
		return nil, err
	}

	var zero S
	r := &Report{
		Function:    fn.Name,
		Precision:   fmt.Sprintf("float%d", reflect.TypeOf(zero).Bits()),
		Size:        n,
		Points:      xs,
		Samples:     make([]float64, n),
		Approx:      make([]float64, n),
		Exact:       make([]float64, n),
		ExpectExact: fn.ExactAt(n),
	}
	for i, x := range xs {
		r.Samples[i] = float64(fx[i])
		r.Approx[i] = float64(df[i])
		r.Exact[i] = fn.DF(x)
	}

	r.MaxError = floats.Distance(r.Approx, r.Exact, math.Inf(1))
	r.RMSError = floats.Distance(r.Approx, r.Exact, 2) / math.Sqrt(float64(n))
	return r, nil
}
