package tui

import "github.com/charmbracelet/lipgloss"

// severity represents the alert level for a KPI value.
type severity int

const (
	severityNormal   severity = iota
	severityWarning           // yellow
	severityCritical          // red
)

// successRateSeverity returns Warning below 90%, Critical below 75%.
func successRateSeverity(pct float64) severity {
	switch {
	case pct < 75:
		return severityCritical
	case pct < 90:
		return severityWarning
	default:
		return severityNormal
	}
}

// anomalyCountSeverity returns Warning for any anomaly, Critical from five up.
func anomalyCountSeverity(n int) severity {
	switch {
	case n >= 5:
		return severityCritical
	case n > 0:
		return severityWarning
	default:
		return severityNormal
	}
}

// severityFg maps a severity to a card foreground, falling back to base.
func severityFg(s severity, base lipgloss.Color) lipgloss.Color {
	switch s {
	case severityWarning:
		return colorYellow
	case severityCritical:
		return colorRed
	default:
		return base
	}
}
