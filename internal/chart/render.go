package chart

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/pulse/internal/format"
)

// blocks is the 8-level block character set used for partial cells.
var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	colorAxis    = lipgloss.Color("#6b7280")
	colorDefault = lipgloss.Color("#3b82f6")
	styleAxis    = lipgloss.NewStyle().Foreground(colorAxis)
)

// colorAt returns the i-th dataset color, cycling, or the default.
func colorAt(ds Dataset, i int) lipgloss.Color {
	if len(ds.Colors) == 0 {
		return colorDefault
	}
	return lipgloss.Color(ds.Colors[i%len(ds.Colors)])
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return slices.Max(values)
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = lipgloss.NewStyle().MaxWidth(width).Render(s)
	if w := lipgloss.Width(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// fitLeft right-aligns s within width cells.
func fitLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return fit(s, width)
}

func legendLine(ds Dataset, width int) string {
	label := ds.Label
	if label == "" {
		label = "series"
	}
	return fit(lipgloss.NewStyle().Foreground(colorAt(ds, 0)).Render("■")+" "+label, width)
}

func emptyBlock(width, height int) string {
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", width)
	}
	lines[height/2] = fit(styleAxis.Render("no data"), width)
	return strings.Join(lines, "\n")
}

// renderLine draws an area chart: one column group per label, block
// characters stacked up to the value, with a label axis underneath.
func renderLine(labels []string, values []float64, ds Dataset, legend LegendPosition, width, height int) string {
	var lines []string
	plotH := height - 1
	if legend != LegendHidden {
		lines = append(lines, legendLine(ds, width))
		plotH--
	}
	if plotH < 1 {
		plotH = 1
	}
	if len(values) == 0 {
		lines = append(lines, emptyBlock(width, plotH), strings.Repeat(" ", width))
		return strings.Join(lines, "\n")
	}

	// Keep the most recent points when there are more labels than columns.
	if len(values) > width {
		values = values[len(values)-width:]
		labels = labels[len(labels)-width:]
	}
	colW := width / len(values)
	maxVal := maxOf(values)

	levels := make([]int, len(values))
	for i, v := range values {
		if maxVal > 0 && v > 0 {
			levels[i] = int(math.Round(v / maxVal * float64(plotH*8)))
		}
	}

	style := lipgloss.NewStyle().Foreground(colorAt(ds, 0))
	for row := 0; row < plotH; row++ {
		floor := (plotH - 1 - row) * 8
		var sb strings.Builder
		for _, lvl := range levels {
			cell := " "
			switch fill := lvl - floor; {
			case fill >= 8 && (ds.Fill || lvl-floor < 16):
				cell = "█"
			case fill > 0 && fill < 8:
				cell = string(blocks[fill-1])
			}
			sb.WriteString(strings.Repeat(cell, colW))
		}
		lines = append(lines, fit(style.Render(sb.String()), width))
	}

	first, last := labels[0], labels[len(labels)-1]
	axis := first
	if len(labels) > 1 {
		gap := width - lipgloss.Width(first) - lipgloss.Width(last)
		if gap < 1 {
			gap = 1
		}
		axis = first + strings.Repeat(" ", gap) + last
	}
	lines = append(lines, fit(styleAxis.Render(axis), width))
	return strings.Join(lines, "\n")
}

// renderBar draws one horizontal bar per label, in label order.
func renderBar(labels []string, values []float64, ds Dataset, legend LegendPosition, width, height int) string {
	var lines []string
	rows := height
	if legend != LegendHidden {
		lines = append(lines, legendLine(ds, width))
		rows--
	}
	if len(values) == 0 {
		if rows < 1 {
			rows = 1
		}
		lines = append(lines, emptyBlock(width, rows))
		return strings.Join(lines, "\n")
	}
	hidden := 0
	if rows < len(values) {
		keep := max(rows-1, 0)
		hidden = len(values) - keep
		labels, values = labels[:keep], values[:keep]
	}

	labelW, valueW := 0, 0
	valueStrs := make([]string, len(values))
	for i, v := range values {
		labelW = max(labelW, lipgloss.Width(labels[i]))
		valueStrs[i] = format.FormatValue(v)
		valueW = max(valueW, len(valueStrs[i]))
	}
	labelW = min(labelW, max(width/3, 1))
	barMax := width - labelW - valueW - 2
	if barMax < 1 {
		barMax = 1
	}

	maxVal := maxOf(values)
	style := lipgloss.NewStyle().Foreground(colorAt(ds, 0))
	for i, v := range values {
		n := 0
		if maxVal > 0 && v > 0 {
			n = int(math.Round(v / maxVal * float64(barMax)))
		}
		bar := style.Render(strings.Repeat("█", n)) + strings.Repeat(" ", barMax-n)
		line := fit(labels[i], labelW) + " " + bar + " " + fitLeft(valueStrs[i], valueW)
		lines = append(lines, fit(line, width))
	}
	if hidden > 0 && rows > 0 {
		lines = append(lines, fit(styleAxis.Render(fmt.Sprintf("+%d more", hidden)), width))
	}
	return strings.Join(lines, "\n")
}

// renderDoughnut draws the distribution as a proportional band (the ring
// flattened) with a per-label legend.
func renderDoughnut(labels []string, values []float64, ds Dataset, legend LegendPosition, width, height int) string {
	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}

	ringW := width
	if legend == LegendRight {
		ringW = width / 2
	}
	ringH := min(height, 3)
	if legend == LegendTop {
		ringH = min(height-len(labels), 3)
	}
	ringH = max(ringH, 1)

	var band strings.Builder
	if total <= 0 {
		band.WriteString(styleAxis.Render(strings.Repeat("░", ringW)))
	} else {
		used := 0
		for i, v := range values {
			n := int(math.Round(math.Max(v, 0) / total * float64(ringW)))
			if i == len(values)-1 {
				n = ringW - used
			}
			n = min(max(n, 0), ringW-used)
			used += n
			band.WriteString(lipgloss.NewStyle().Foreground(colorAt(ds, i)).Render(strings.Repeat("█", n)))
		}
	}
	bandLine := fit(band.String(), ringW)
	ring := make([]string, ringH)
	for i := range ring {
		ring[i] = bandLine
	}

	legendLines := make([]string, 0, len(labels))
	for i, l := range labels {
		dot := lipgloss.NewStyle().Foreground(colorAt(ds, i)).Render("●")
		legendLines = append(legendLines, dot+" "+l+" "+format.FormatValue(values[i])+" ("+format.FormatShare(math.Max(values[i], 0), total)+")")
	}

	switch legend {
	case LegendRight:
		legendW := width - ringW - 1
		for i := range legendLines {
			legendLines[i] = fit(legendLines[i], legendW)
		}
		block := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(ring, "\n"), " ", strings.Join(legendLines, "\n"))
		return clipLines(block, width, height)
	case LegendTop:
		for i := range legendLines {
			legendLines[i] = fit(legendLines[i], width)
		}
		return clipLines(strings.Join(append(legendLines, ring...), "\n"), width, height)
	default:
		return clipLines(strings.Join(ring, "\n"), width, height)
	}
}

// clipLines keeps at most height lines, each fitted to width.
func clipLines(block string, width, height int) string {
	lines := strings.Split(block, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i := range lines {
		lines[i] = fit(lines[i], width)
	}
	return strings.Join(lines, "\n")
}
