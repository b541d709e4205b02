package viz

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/colloc/internal/analysis"
)

func formatFloat(v float64, digits int) string {
	return strconv.FormatFloat(v, 'f', digits, 64)
}

func formatError(v float64) string {
	return strconv.FormatFloat(v, 'e', 2, 64)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))).
		Headers(headers...)
}

// RenderMatrix draws rows as a table, entry (j, i) at row j, column i.
// Entries are colored by sign.
func RenderMatrix(rows [][]float64, digits int) string {
	n := len(rows)
	headers := make([]string, n+1)
	headers[0] = "j\\i"
	for i := 0; i < n; i++ {
		headers[i+1] = strconv.Itoa(i)
	}

	cells := make([][]string, n)
	for j, row := range rows {
		cells[j] = make([]string, n+1)
		cells[j][0] = strconv.Itoa(j)
		for i, v := range row {
			cells[j][i+1] = formatFloat(v, digits)
		}
	}

	t := newTable(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || row < 0 || row >= len(rows) || col == 0 {
				return HeaderCell
			}
			v := rows[row][col-1]
			switch {
			case v > 0:
				return Positive
			case v < 0:
				return Negative
			default:
				return Zero
			}
		})
	return t.Render()
}

func RenderPoints(points []float64, digits int) string {
	cells := make([][]string, len(points))
	for i, p := range points {
		cells[i] = []string{strconv.Itoa(i), formatFloat(p, digits)}
	}
	t := newTable("i", "t_i").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderCell
			}
			return Cell
		})
	return t.Render()
}

// RenderReport lists the sampled, approximated and exact derivative at
// every point.
func RenderReport(r *analysis.Report, digits int) string {
	cells := make([][]string, r.Size)
	for i := 0; i < r.Size; i++ {
		cells[i] = []string{
			formatFloat(r.Points[i], digits),
			formatFloat(r.Samples[i], digits),
			formatFloat(r.Approx[i], digits),
			formatFloat(r.Exact[i], digits),
			formatError(r.Approx[i] - r.Exact[i]),
		}
	}
	t := newTable("t", "f(t)", "(f·D)(t)", "f'(t)", "error").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderCell
			}
			return Cell
		})

	title := Title.Render(fmt.Sprintf("%s' on %d %s points (%s)", r.Function, r.Size, r.Distribution, r.Precision))
	summary := fmt.Sprintf("%s %s   %s %s",
		MetricLabel.Render("max error"), MetricValue.Render(formatError(r.MaxError)),
		MetricLabel.Render("rms"), MetricValue.Render(formatError(r.RMSError)))
	if r.ExpectExact {
		summary += "   " + verdict(r)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render(), Panel.Render(summary))
}

// exactTolerance is the max error accepted for polynomials the matrix
// should reproduce, relative to the largest derivative value.
const exactTolerance = 1e-8

func verdict(r *analysis.Report) string {
	scale := 1.0
	for _, v := range r.Exact {
		if a := math.Abs(v); a > scale {
			scale = a
		}
	}
	if r.MaxError <= exactTolerance*scale {
		return Good.Render("exact")
	}
	return Bad.Render("NOT exact")
}

// RenderSweep summarizes a convergence sweep, one row per size.
func RenderSweep(reports []*analysis.Report) string {
	cells := make([][]string, len(reports))
	for i, r := range reports {
		exact := ""
		if r.ExpectExact {
			exact = "yes"
		}
		cells[i] = []string{strconv.Itoa(r.Size), formatError(r.MaxError), formatError(r.RMSError), exact}
	}
	t := newTable("n", "max error", "rms error", "exact").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderCell
			}
			return Cell
		})
	return t.Render()
}
