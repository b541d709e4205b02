package collocation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// parallelRows is the row count above which Build spreads rows over workers.
const parallelRows = 48

// Matrix is an n×n differentiation matrix. Entry (j, i) is the derivative
// of the j-th Lagrange basis polynomial at point i.
type Matrix[S Scalar] struct {
	n    int
	data []S
}

// Build assembles the differentiation matrix for points.
//
// With fx the row vector of samples at the points, fx·D is the derivative
// of the interpolating polynomial at the same points. A single point gives
// the 1×1 zero matrix.
func Build[S Scalar](points Points[S]) (*Matrix[S], error) {
	if err := validate(points); err != nil {
		return nil, err
	}

	n := len(points)
	dt := make([]S, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dt[i*n+j] = points[i] - points[j]
		}
	}

	m := &Matrix[S]{n: n, data: make([]S, n*n)}
	minChunk := n
	if n > parallelRows {
		minChunk = parallelRows / 4
	}
	parallelFor(n, minChunk, func(start, end int) {
		for j := start; j < end; j++ {
			m.fillRow(dt, j)
		}
	})

	for idx, v := range m.data {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			j, i := idx/n, idx%n
			return nil, fmt.Errorf("%w: entry (%d,%d) = %v", ErrOverflow, j, i, f)
		}
	}
	return m, nil
}

// fillRow evaluates the derivative of basis polynomial j at every point.
// Row j is written by exactly one worker.
func (m *Matrix[S]) fillRow(dt []S, j int) {
	n := m.n
	for i := 0; i < n; i++ {
		var dc S
		temp := S(1)
		for k := 0; k < n; k++ {
			if k == j {
				continue
			}
			dc = (temp + dc*dt[i*n+k]) / dt[j*n+k]
			temp = temp * dt[i*n+k] / dt[j*n+k]
		}
		m.data[j*n+i] = dc
	}
}

// Size returns n.
func (m *Matrix[S]) Size() int { return m.n }

// At returns entry (j, i).
func (m *Matrix[S]) At(j, i int) S {
	return m.data[j*m.n+i]
}

// Row returns a copy of row j.
func (m *Matrix[S]) Row(j int) []S {
	row := make([]S, m.n)
	copy(row, m.data[j*m.n:(j+1)*m.n])
	return row
}

// Rows returns a copy of every row.
func (m *Matrix[S]) Rows() [][]S {
	rows := make([][]S, m.n)
	for j := range rows {
		rows[j] = m.Row(j)
	}
	return rows
}

// Apply returns fx·D, the approximate derivative at each point.
func (m *Matrix[S]) Apply(fx []S) ([]S, error) {
	if len(fx) != m.n {
		return nil, fmt.Errorf("%w: %d samples for %d points", ErrDimensionMismatch, len(fx), m.n)
	}
	out := make([]S, m.n)
	for j, f := range fx {
		row := m.data[j*m.n : (j+1)*m.n]
		for i, d := range row {
			out[i] += f * d
		}
	}
	return out, nil
}

// Float64s returns the entries widened to float64, row by row.
func (m *Matrix[S]) Float64s() [][]float64 {
	rows := make([][]float64, m.n)
	for j := range rows {
		rows[j] = make([]float64, m.n)
		for i := range rows[j] {
			rows[j][i] = float64(m.At(j, i))
		}
	}
	return rows
}

// Dense returns a float64 copy for use with gonum solvers.
func (m *Matrix[S]) Dense() *mat.Dense {
	data := make([]float64, len(m.data))
	for i, v := range m.data {
		data[i] = float64(v)
	}
	return mat.NewDense(m.n, m.n, data)
}
