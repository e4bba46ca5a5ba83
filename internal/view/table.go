package view

import (
	"strings"

	"github.com/dm/pulse/internal/format"
	"github.com/dm/pulse/internal/model"
)

// PlaceholderScanning is shown in place of an empty anomaly list.
const PlaceholderScanning = "Scanning for anomalies..."

// AnomalyHeaders are the anomaly table's column titles.
var AnomalyHeaders = []string{"State", "District", "Status", "Alert Type", "ML Confidence (%)"}

// CellFlag marks a cell for visual emphasis.
type CellFlag int

const (
	FlagNone CellFlag = iota
	FlagAlert
	FlagAlertStrong
)

// Cell is one table cell.
type Cell struct {
	Text string
	Flag CellFlag
}

// Row is one table body row. A placeholder row has a single cell spanning
// every column.
type Row struct {
	Cells       []Cell
	Placeholder bool
}

// Table is a table mount: a header row and a body.
type Table struct {
	ID   string
	Head []string
	Body []Row
}

// ReconcileAnomalies replaces the anomaly table body with one row per record,
// in input order, or a single placeholder row when there are none. It is a
// full replace: no row survives from the previous call.
func ReconcileAnomalies(s *Surface, anomalies []model.AnomalyRecord) error {
	t, ok := s.Table(MountAnomalyTable)
	if !ok {
		return &RenderError{Visual: "anomalies", Mount: MountAnomalyTable}
	}

	t.Head = append(t.Head[:0], AnomalyHeaders...)
	t.Body = t.Body[:0:0]

	for _, a := range anomalies {
		t.Body = append(t.Body, Row{Cells: []Cell{
			{Text: a.State},
			{Text: a.District},
			{Text: countText(a.Total)},
			{Text: countText(a.Rejected), Flag: FlagAlert},
			{Text: format.FormatPercent(a.RejectionRate), Flag: FlagAlertStrong},
		}})
	}

	if len(anomalies) == 0 {
		t.Body = append(t.Body, Row{
			Cells:       []Cell{{Text: PlaceholderScanning}},
			Placeholder: true,
		})
	}
	return nil
}

// countText renders a count as sent: labels verbatim, numbers ungrouped.
func countText(c model.Count) string {
	return c.String()
}

// Texts returns the body as plain strings, one slice per row.
func (t *Table) Texts() [][]string {
	out := make([][]string, len(t.Body))
	for i, r := range t.Body {
		cells := make([]string, len(r.Cells))
		for j, c := range r.Cells {
			cells[j] = c.Text
		}
		out[i] = cells
	}
	return out
}

func blank(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
