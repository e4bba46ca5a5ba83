package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top header bar.
//
// Layout:
//
//	left:   "pulse  <endpoint>"
//	center: spinner while a fetch is in flight, otherwise "● LIVE" once a
//	        snapshot has been applied
//	right:  "Last: HH:MM:SS  Poll: 1s"
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	baseURL := ""
	if app.client != nil {
		baseURL = app.client.BaseURL()
	}
	left := StyleTitle.Render("pulse") + "  " + baseURL

	var center string
	switch {
	case app.inflight > 0:
		center = app.spinner.View() + " fetching"
	case app.applied > 0:
		center = StyleLive.Render("● LIVE")
	default:
		center = StyleDim.Render("○ waiting")
	}

	lastStr := "Connecting..."
	if !app.lastApplied.IsZero() {
		lastStr = app.lastApplied.Format("15:04:05")
	}
	right := StyleDim.Render(fmt.Sprintf("Last: %s  Poll: %s", lastStr, formatDuration(app.interval)))

	// StyleHeader has Padding(0, 1) so inner content width = total width - 2.
	innerWidth := width - 2
	spacing := innerWidth - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}
	leftSpacing := spacing / 2
	rightSpacing := spacing - leftSpacing

	row := left +
		strings.Repeat(" ", leftSpacing) +
		center +
		strings.Repeat(" ", rightSpacing) +
		right

	return StyleHeader.Width(width).Render(row)
}

// formatDuration formats a poll interval compactly, e.g. "500ms", "1s" or "2m".
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
