// Package analysis measures how well a differentiation matrix reproduces
// known derivatives.
//
//   - [Function]: a sample function paired with its exact derivative
//   - [Polynomial]: coefficient-form polynomials, used for exactness checks
//   - [Evaluate]: build a matrix and compare fx·D against f'
//   - [Sweep]: run [Evaluate] over many sizes concurrently
//
// # Convergence
//
// For a polynomial of degree at most n-1 the error is rounding only. For
// smooth functions it falls geometrically with n on Chebyshev or Legendre
// points, while uniform points stall or diverge (Runge):
//
//	reports, _ := analysis.Sweep[float64](ctx, analysis.Sizes(2, 32), collocation.Uniform{}, fn)
package analysis
