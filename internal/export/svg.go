// Package export renders stored runs as standalone SVG charts.
package export

import (
	"fmt"
	"strings"

	"github.com/askeland/multistep/internal/ode"
)

var seriesColors = []string{"#00ff88", "#00ccff", "#ffcc00", "#ff4444", "#ff00ff", "#ffffff"}

// ResultToSVG renders every state component of a run as a polyline
// over time, on a dark background matching the terminal views.
func ResultToSVG(result *ode.Result, width, height int) string {
	if result == nil || len(result.States) < 2 {
		return ""
	}

	dim := len(result.States[0])
	tMin, tMax := result.Times[0], result.Times[len(result.Times)-1]
	if tMax == tMin {
		tMax = tMin + 1
	}

	vMin, vMax := result.States[0][0], result.States[0][0]
	for _, x := range result.States {
		for _, v := range x {
			if v < vMin {
				vMin = v
			}
			if v > vMax {
				vMax = v
			}
		}
	}
	if vMax == vMin {
		vMax = vMin + 1
	}

	const margin = 40.0
	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin

	px := func(t float64) float64 {
		return margin + plotW*(t-tMin)/(tMax-tMin)
	}
	py := func(v float64) float64 {
		return margin + plotH*(1-(v-vMin)/(vMax-vMin))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// Axes
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444466"/>
`, margin, margin+plotH, margin+plotW, margin+plotH))
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444466"/>
`, margin, margin, margin, margin+plotH))

	for c := 0; c < dim; c++ {
		color := seriesColors[c%len(seriesColors)]
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1.5" points="`, color))
		for i, x := range result.States {
			if c >= len(x) {
				continue
			}
			sb.WriteString(fmt.Sprintf("%.2f,%.2f ", px(result.Times[i]), py(x[c])))
		}
		sb.WriteString("\"/>\n")

		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="12">x%d</text>
`, margin+plotW+4, margin+14*float64(c+1), color, c))
	}

	// Value range labels
	sb.WriteString(fmt.Sprintf(`<text x="4" y="%.1f" fill="#888899" font-family="monospace" font-size="11">%.3g</text>
`, margin+6, vMax))
	sb.WriteString(fmt.Sprintf(`<text x="4" y="%.1f" fill="#888899" font-family="monospace" font-size="11">%.3g</text>
`, margin+plotH, vMin))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#888899" font-family="monospace" font-size="11">t=%.3g</text>
`, margin+plotW-40, margin+plotH+16, tMax))

	sb.WriteString("</svg>\n")
	return sb.String()
}
