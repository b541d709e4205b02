// Package collocation builds pseudospectral differentiation operators.
//
// The package has two pure entry points:
//
//   - [Generate]: an ordered set of collocation points on [0, 1]
//   - [Build]: the differentiation matrix for a set of distinct points
//
// If fx holds the samples of f at the points, fx·D approximates f' at the
// same points, exactly for any polynomial of degree at most n-1.
//
// # Example
//
//	pts, _ := collocation.Generate[float64](8, collocation.ChebyshevLobatto{})
//	d, _ := collocation.Build(pts)
//	df, _ := d.Apply(fx)
//
// # Point distributions
//
// [Uniform] spacing is the default and is a placeholder: equispaced nodes
// are badly conditioned for large n. Pass [ChebyshevLobatto] or
// [LegendreGauss], or any [Distribution], to [Generate] instead.
//
// # Thread Safety
//
// All functions are free of shared state and may run concurrently on
// independent inputs. A [Matrix] is immutable after [Build] returns.
package collocation
