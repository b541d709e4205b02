// Package viz renders collocation operators and accuracy reports in the
// terminal.
//
//   - [RenderMatrix], [RenderPoints], [RenderReport], [RenderSweep]: lipgloss tables
//   - [PlotDerivative], [PlotConvergence]: asciigraph line plots
//   - [NodeStrip]: Braille strip showing where the points cluster
//   - [Explorer]: interactive Bubble Tea model
//
// # Key Bindings
//
//	up/down (k/j, +/-) - Change the number of points
//	tab/d              - Cycle point distribution
//	f                  - Cycle test function
//	p                  - Toggle float32/float64
//	t                  - Cycle color themes
//	q                  - Quit
package viz
