package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/colloc/internal/analysis"
)

// errorFloor keeps log10 finite for exact results.
const errorFloor = 1e-17

// PlotDerivative plots the exact derivative against fx·D.
func PlotDerivative(r *analysis.Report, width, height int) string {
	if r.Size < 2 {
		return ""
	}
	return asciigraph.PlotMany([][]float64{r.Exact, r.Approx},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Magenta),
		asciigraph.Caption(fmt.Sprintf("%s' on %d %s points (green exact, magenta f·D)", r.Function, r.Size, r.Distribution)),
	)
}

// PlotConvergence plots log10 of the max error against n.
func PlotConvergence(reports []*analysis.Report, width, height int) string {
	if len(reports) < 2 {
		return ""
	}
	data := make([]float64, len(reports))
	for i, r := range reports {
		data[i] = math.Log10(math.Max(r.MaxError, errorFloor))
	}
	first, last := reports[0], reports[len(reports)-1]
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("log10 max error, n = %d..%d (%s, %s)", first.Size, last.Size, first.Function, first.Distribution)),
	)
}
