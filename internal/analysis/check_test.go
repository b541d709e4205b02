package analysis

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/san-kum/colloc/internal/collocation"
)

func TestEvaluate_SquareOnThreePoints(t *testing.T) {
	fn, err := LookupFunction("square")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	r, err := Evaluate[float64](3, collocation.Uniform{}, fn)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if !r.ExpectExact {
		t.Error("square on 3 points should be exact")
	}
	if r.MaxError > 1e-12 {
		t.Errorf("max error %e too large", r.MaxError)
	}
	if r.Distribution != "uniform" || r.Function != "square" || r.Size != 3 {
		t.Errorf("unexpected report header: %+v", r)
	}
}

func TestEvaluate_PolynomialExactness(t *testing.T) {
	for _, name := range collocation.Distributions() {
		dist, _ := collocation.LookupDistribution(name)
		for n := 2; n <= 10; n++ {
			p := make(Polynomial, n)
			for k := range p {
				p[k] = 1 / float64(k+1)
			}
			fn := p.Function("p")

			r, err := Evaluate[float64](n, dist, fn)
			if err != nil {
				t.Fatalf("%s n=%d: %v", name, n, err)
			}
			if !r.ExpectExact {
				t.Errorf("%s n=%d: expected exactness flag", name, n)
			}
			if r.MaxError > 1e-9 {
				t.Errorf("%s n=%d: max error %e", name, n, r.MaxError)
			}
		}
	}
}

func TestEvaluate_Float32(t *testing.T) {
	fn, _ := LookupFunction("cubic")
	r, err := Evaluate[float32](6, collocation.ChebyshevLobatto{}, fn)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if r.MaxError > 1e-4 {
		t.Errorf("float32 max error %e too large", r.MaxError)
	}
}

func TestEvaluate_SmoothConvergence(t *testing.T) {
	fn, _ := LookupFunction("sin")

	coarse, err := Evaluate[float64](6, collocation.ChebyshevLobatto{}, fn)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	fine, err := Evaluate[float64](20, collocation.ChebyshevLobatto{}, fn)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if fine.MaxError >= coarse.MaxError {
		t.Errorf("error did not decrease: n=6 %e, n=20 %e", coarse.MaxError, fine.MaxError)
	}
	if fine.MaxError > 1e-6 {
		t.Errorf("n=20 error %e larger than expected", fine.MaxError)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	fn, _ := LookupFunction("linear")
	if _, err := Evaluate[float64](0, nil, fn); !errors.Is(err, collocation.ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
}

func TestCheck_SizeMismatch(t *testing.T) {
	d, _ := collocation.Build(collocation.Points[float64]{0, 1})
	fn, _ := LookupFunction("linear")
	if _, err := Check(d, collocation.Points[float64]{0, 0.5, 1}, fn); !errors.Is(err, collocation.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCheck_SinglePoint(t *testing.T) {
	fn, _ := LookupFunction("linear")
	r, err := Evaluate[float64](1, nil, fn)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if r.ExpectExact {
		t.Error("single point cannot be exact for a slope")
	}
	if r.Approx[0] != 0 {
		t.Errorf("expected zero derivative, got %v", r.Approx[0])
	}
	if math.Abs(r.MaxError-2) > 1e-12 {
		t.Errorf("expected error 2, got %v", r.MaxError)
	}
}

func TestCheck_SinglePointConstant(t *testing.T) {
	fn, _ := LookupFunction("constant")
	r, err := Evaluate[float64](1, nil, fn)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !r.ExpectExact {
		t.Error("a constant is reproduced exactly by a single point")
	}
	if r.MaxError != 0 {
		t.Errorf("expected zero error, got %v", r.MaxError)
	}
}

func TestLookupFunction(t *testing.T) {
	for _, name := range Functions() {
		fn, err := LookupFunction(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}

		// Central difference agrees with the analytic derivative.
		x, h := 0.3, 1e-6
		fd := (fn.F(x+h) - fn.F(x-h)) / (2 * h)
		if math.Abs(fd-fn.DF(x)) > 1e-5*(1+math.Abs(fd)) {
			t.Errorf("%s: DF(%v) = %v, finite difference %v", name, x, fn.DF(x), fd)
		}
	}

	if _, err := LookupFunction("gamma"); !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("expected ErrUnknownFunction, got %v", err)
	}
}

func TestSweep(t *testing.T) {
	fn, _ := LookupFunction("exp")
	sizes := Sizes(2, 12)

	reports, err := Sweep[float64](context.Background(), sizes, collocation.LegendreGauss{}, fn)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(reports) != len(sizes) {
		t.Fatalf("expected %d reports, got %d", len(sizes), len(reports))
	}
	for i, r := range reports {
		if r.Size != sizes[i] {
			t.Errorf("report %d has size %d, want %d", i, r.Size, sizes[i])
		}
	}
	if reports[len(reports)-1].MaxError >= reports[0].MaxError {
		t.Error("expected convergence across the sweep")
	}
}

func TestSweep_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fn, _ := LookupFunction("exp")
	if _, err := Sweep[float64](ctx, Sizes(2, 5), nil, fn); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSweep_StopsAfterCancel(t *testing.T) {
	saved := sweepWorkers
	sweepWorkers = 1
	defer func() { sweepWorkers = saved }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	fn := Function{
		Name: "cancelling",
		F: func(x float64) float64 {
			calls.Add(1)
			cancel()
			return x
		},
		DF:     func(x float64) float64 { return 1 },
		Degree: 1,
	}

	_, err := Sweep[float64](ctx, Sizes(2, 40), nil, fn)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// Only the first size (two samples) ran.
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 samples before cancel, got %d", got)
	}
}

func TestSweep_PropagatesErrors(t *testing.T) {
	fn, _ := LookupFunction("exp")
	if _, err := Sweep[float64](context.Background(), []int{3, 0}, nil, fn); !errors.Is(err, collocation.ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
}

func TestSizes(t *testing.T) {
	if got := Sizes(3, 5); len(got) != 3 || got[0] != 3 || got[2] != 5 {
		t.Errorf("Sizes(3,5) = %v", got)
	}
	if got := Sizes(5, 3); got != nil {
		t.Errorf("Sizes(5,3) = %v, want nil", got)
	}
}
