package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dm/pulse/internal/view"
)

// kpiCard is the static description of one KPI card.
type kpiCard struct {
	mount string
	title string
	color lipgloss.Color
}

var kpiCards = []kpiCard{
	{view.MountTotalRecords, "Total Records", colorBlue},
	{view.MountSuccessRate, "Success Rate", colorGreen},
	{view.MountAnomalyCount, "Anomalies", colorPurple},
	{view.MountLastUpdated, "Last Updated", colorIndigo},
}

// renderKPIs renders the KPI row from the surface text fields.
// Wide terminals (>= 80 cols): all four cards in a single row.
// Narrow terminals: cards stacked in rows of 2.
func renderKPIs(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	narrowMode := width < 80
	var cardWidth int
	if narrowMode {
		cardWidth = max(width/2, 10)
	} else {
		cardWidth = max(width/len(kpiCards), 12)
	}

	cards := make([]string, 0, len(kpiCards))
	for _, c := range kpiCards {
		value := app.surface.TextValue(c.mount)
		if value == "" {
			value = "---"
		}
		fg := severityFg(app.kpiSeverity[c.mount], c.color)
		valueLine := lipgloss.NewStyle().Bold(true).Foreground(fg).Render(value)
		cards = append(cards, StyleKPICard.Width(cardWidth).Render(valueLine+"\n"+StyleDim.Render(c.title)))
	}

	if narrowMode {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3])
		return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
