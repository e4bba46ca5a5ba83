package tui

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/dm/pulse/internal/view"
)

// renderAnomalies renders the "Live Anomalies" section from the anomaly
// table mount: a title bar followed by the lipgloss table. A placeholder row
// is drawn as one full-width line under the header.
func renderAnomalies(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	hdr := StyleDim.Render("Live Anomalies")

	tbl, ok := app.surface.Table(view.MountAnomalyTable)
	if !ok {
		return lipgloss.JoinVertical(lipgloss.Left, hdr, StyleDim.Render("  (unavailable)"))
	}

	headers := tbl.Head
	if len(headers) == 0 {
		headers = view.AnomalyHeaders
	}

	var rows []view.Row
	var placeholder string
	for _, r := range tbl.Body {
		if r.Placeholder {
			if len(r.Cells) > 0 {
				placeholder = r.Cells[0].Text
			}
			continue
		}
		rows = append(rows, r)
	}

	t := ltable.New().
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(colorGray)
			}
			base := lipgloss.NewStyle()
			if row%2 == 0 {
				base = base.Background(colorAlt)
			}
			if row < 0 || row >= len(rows) || col >= len(rows[row].Cells) {
				return base.Inherit(StyleCell)
			}
			return base.Inherit(cellStyle(rows[row].Cells[col].Flag))
		}).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(false).
		Width(width)

	for _, r := range rows {
		cells := make([]string, len(headers))
		for i := range cells {
			if i < len(r.Cells) {
				cells[i] = r.Cells[i].Text
			}
		}
		t = t.Row(cells...)
	}

	parts := []string{hdr, t.String()}
	if placeholder != "" {
		parts = append(parts, StyleDim.Width(width).Align(lipgloss.Center).Render(placeholder))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// cellStyle maps a cell flag to its text style.
func cellStyle(f view.CellFlag) lipgloss.Style {
	switch f {
	case view.FlagAlert:
		return StyleAlert
	case view.FlagAlertStrong:
		return StyleAlertStrong
	default:
		return StyleCell
	}
}
