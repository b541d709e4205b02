package collocation

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate/quad"
)

// Scalar is the real field all computations are carried out in.
type Scalar interface {
	~float32 | ~float64
}

// Points is an ordered set of collocation points.
type Points[S Scalar] []S

// Clone returns an independent copy of the point set.
func (p Points[S]) Clone() Points[S] {
	c := make(Points[S], len(p))
	copy(c, p)
	return c
}

// Float64s returns the points widened to float64.
func (p Points[S]) Float64s() []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = float64(v)
	}
	return out
}

// Distribution places n ascending nodes on [0, 1].
type Distribution interface {
	Name() string
	Nodes(n int) []float64
}

// Uniform spaces nodes evenly with both endpoints included.
// It is the default and a known placeholder: the interpolant it induces
// degrades quickly with n (Runge phenomenon).
type Uniform struct{}

func (Uniform) Name() string { return "uniform" }

func (Uniform) Nodes(n int) []float64 {
	nodes := make([]float64, n)
	if n == 1 {
		return nodes
	}
	last := float64(n - 1)
	for i := range nodes {
		nodes[i] = float64(i) / last
	}
	return nodes
}

// ChebyshevLobatto uses the Chebyshev extrema, clustered toward the
// endpoints, with both endpoints included.
type ChebyshevLobatto struct{}

func (ChebyshevLobatto) Name() string { return "chebyshev" }

func (ChebyshevLobatto) Nodes(n int) []float64 {
	nodes := make([]float64, n)
	if n == 1 {
		return nodes
	}
	last := float64(n - 1)
	for i := range nodes {
		nodes[i] = 0.5 * (1 - math.Cos(math.Pi*float64(i)/last))
	}
	nodes[0], nodes[n-1] = 0, 1
	return nodes
}

// LegendreGauss uses the roots of the degree-n Legendre polynomial mapped
// to (0, 1). Endpoints are not included.
type LegendreGauss struct{}

func (LegendreGauss) Name() string { return "legendre" }

func (LegendreGauss) Nodes(n int) []float64 {
	nodes := make([]float64, n)
	weights := make([]float64, n)
	quad.Legendre{}.FixedLocations(nodes, weights, 0, 1)
	sort.Float64s(nodes)
	return nodes
}

var distributions = map[string]Distribution{
	"uniform":   Uniform{},
	"chebyshev": ChebyshevLobatto{},
	"legendre":  LegendreGauss{},
}

// LookupDistribution returns the registered distribution with the given name.
func LookupDistribution(name string) (Distribution, error) {
	d, ok := distributions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownDistribution, name, Distributions())
	}
	return d, nil
}

// Distributions lists registered distribution names in sorted order.
func Distributions() []string {
	names := make([]string, 0, len(distributions))
	for name := range distributions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate returns n collocation points placed by dist, or uniformly when
// dist is nil.
func Generate[S Scalar](n int, dist Distribution) (Points[S], error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	if dist == nil {
		dist = Uniform{}
	}

	nodes := dist.Nodes(n)
	if len(nodes) != n {
		return nil, fmt.Errorf("%w: %s returned %d nodes, want %d", ErrDimensionMismatch, dist.Name(), len(nodes), n)
	}

	points := make(Points[S], n)
	for i, v := range nodes {
		points[i] = S(v)
	}
	if err := validate(points); err != nil {
		return nil, fmt.Errorf("%s(%d): %w", dist.Name(), n, err)
	}
	return points, nil
}

// validate checks size, finiteness and pairwise distinctness.
func validate[S Scalar](points Points[S]) error {
	if len(points) < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, len(points))
	}
	for i, v := range points {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return &PointError{I: i, J: -1, Value: f, Wrapped: ErrNonFinitePoint}
		}
	}
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if points[i] == points[j] {
				return &PointError{I: i, J: j, Value: float64(points[i]), Wrapped: ErrDegenerateInput}
			}
		}
	}
	return nil
}
