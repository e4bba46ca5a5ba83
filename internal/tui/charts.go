package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dm/pulse/internal/view"
)

// chartHeight is the body height of every chart panel, excluding the title.
const chartHeight = 8

var chartPanels = []struct {
	mount string
	title string
}{
	{view.MountTrendChart, "Enrollment Trend"},
	{view.MountStatusChart, "Status Distribution"},
	{view.MountStateChart, "State-wise Enrollment"},
}

// renderChartPanel renders one chart mount inside a rounded panel.
//
//	╭──────────────────╮
//	│ Title            │
//	│ <chart body>     │
//	╰──────────────────╯
func renderChartPanel(app *App, mount, title string, panelWidth int) string {
	// Minimum of 12 keeps the chart body at least a few cells wide.
	const minPanelWidth = 12
	if panelWidth < minPanelWidth {
		panelWidth = minPanelWidth
	}
	// Border (2) and padding (2) come out of the panel width.
	innerWidth := panelWidth - 4

	body := StyleDim.Render("(unavailable)")
	if cv, ok := app.surface.Canvas(mount); ok {
		body = cv.Render(innerWidth, chartHeight)
	}
	// Height pads short bodies so side-by-side and stacked panels line up.
	return StylePanel.Width(panelWidth - 2).Height(chartHeight + 1).Render(StyleTitle.Render(title) + "\n" + body)
}

// renderCharts renders the three chart panels.
// Wide terminals (>= 100 cols): side by side.
// Narrow terminals: stacked at full width.
func renderCharts(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	panels := make([]string, 0, len(chartPanels))
	if width >= 100 {
		panelWidth := width / len(chartPanels)
		for _, p := range chartPanels {
			panels = append(panels, renderChartPanel(app, p.mount, p.title, panelWidth))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	}
	for _, p := range chartPanels {
		panels = append(panels, renderChartPanel(app, p.mount, p.title, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}
