package export

import (
	"fmt"
	"math"
	"strings"
)

// MatrixToSVG renders a heat map of rows: red for positive entries, blue
// for negative, intensity on a log scale of the magnitude.
func MatrixToSVG(rows [][]float64, cell float64) string {
	n := len(rows)
	if n == 0 {
		return ""
	}

	maxAbs := 0.0
	for _, row := range rows {
		for _, v := range row {
			maxAbs = math.Max(maxAbs, math.Abs(v))
		}
	}

	size := float64(n) * cell
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	for j, row := range rows {
		for i, v := range row {
			if v == 0 {
				continue
			}
			level := intensity(math.Abs(v), maxAbs)
			color := fmt.Sprintf("#%02x%02x%02x", level, level/4, level/4)
			if v < 0 {
				color = fmt.Sprintf("#%02x%02x%02x", level/4, level/4, level)
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(i)*cell, float64(j)*cell, cell, cell, color))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// intensity maps |v| to 48..255 over six decades below maxAbs.
func intensity(v, maxAbs float64) int {
	if maxAbs == 0 {
		return 0
	}
	r := math.Log10(v/maxAbs)/6 + 1
	if r < 0 {
		r = 0
	}
	return 48 + int(r*207)
}

// CurvesToSVG draws each series against xs as a polyline, one stroke
// color per series.
func CurvesToSVG(xs []float64, series [][]float64, colors []string, width, height int) string {
	if len(xs) < 2 || len(series) == 0 {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	for _, x := range xs {
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, y := range s {
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for k, s := range series {
		color := "#00ff00"
		if k < len(colors) {
			color = colors[k]
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i, y := range s {
			if i >= len(xs) {
				break
			}
			px := (xs[i] - minX) / rangeX * float64(width)
			py := float64(height) - (y-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
