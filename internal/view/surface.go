package view

import (
	"errors"
	"fmt"

	"github.com/dm/pulse/internal/chart"
)

// Mount identifiers the dashboard renders into.
const (
	MountTotalRecords = "totalRecords"
	MountSuccessRate  = "successRate"
	MountAnomalyCount = "anomalyCount"
	MountLastUpdated  = "lastUpdated"

	MountTrendChart  = "trendChart"
	MountStatusChart = "statusChart"
	MountStateChart  = "stateChart"

	MountAnomalyTable = "anomalyTable"
)

// KPIMounts lists the KPI text fields in display order.
var KPIMounts = []string{MountTotalRecords, MountSuccessRate, MountAnomalyCount, MountLastUpdated}

// ErrMissingMount is matched by RenderError via errors.Is.
var ErrMissingMount = errors.New("missing mount")

// RenderError reports that a visual could not be drawn because its mount
// point does not exist. It only ever affects the one visual.
type RenderError struct {
	Visual string
	Mount  string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %s %q", e.Visual, ErrMissingMount, e.Mount)
}

// Is lets errors.Is match ErrMissingMount.
func (e *RenderError) Is(target error) bool { return target == ErrMissingMount }

// TextField is a KPI text mount.
type TextField struct {
	ID   string
	Text string
}

// Canvas is a chart mount. It draws whatever chart is attached to it.
type Canvas struct {
	ID    string
	chart *chart.Chart
}

// Attach binds c to the canvas, replacing any previous chart.
func (cv *Canvas) Attach(c *chart.Chart) { cv.chart = c }

// Chart returns the attached chart, or nil.
func (cv *Canvas) Chart() *chart.Chart { return cv.chart }

// Render draws the attached chart, or a blank block when there is none yet.
func (cv *Canvas) Render(width, height int) string {
	if cv.chart == nil {
		return blank(width, height)
	}
	return cv.chart.Render(width, height)
}

// Surface is the set of named mount points the dashboard draws into. It is
// owned by the UI loop and is not safe for concurrent use.
type Surface struct {
	texts    map[string]*TextField
	canvases map[string]*Canvas
	tables   map[string]*Table
}

// NewSurface returns an empty surface.
func NewSurface() *Surface {
	return &Surface{
		texts:    make(map[string]*TextField),
		canvases: make(map[string]*Canvas),
		tables:   make(map[string]*Table),
	}
}

// NewDashboardSurface returns a surface with every dashboard mount present.
func NewDashboardSurface() *Surface {
	s := NewSurface()
	for _, id := range KPIMounts {
		s.AddText(id)
	}
	s.AddCanvas(MountTrendChart)
	s.AddCanvas(MountStatusChart)
	s.AddCanvas(MountStateChart)
	s.AddTable(MountAnomalyTable)
	return s
}

// AddText adds (or returns the existing) text mount.
func (s *Surface) AddText(id string) *TextField {
	if t, ok := s.texts[id]; ok {
		return t
	}
	t := &TextField{ID: id}
	s.texts[id] = t
	return t
}

// AddCanvas adds (or returns the existing) chart mount.
func (s *Surface) AddCanvas(id string) *Canvas {
	if c, ok := s.canvases[id]; ok {
		return c
	}
	c := &Canvas{ID: id}
	s.canvases[id] = c
	return c
}

// AddTable adds (or returns the existing) table mount.
func (s *Surface) AddTable(id string) *Table {
	if t, ok := s.tables[id]; ok {
		return t
	}
	t := &Table{ID: id}
	s.tables[id] = t
	return t
}

// Remove drops the mount with the given id, whatever its type.
func (s *Surface) Remove(id string) {
	delete(s.texts, id)
	delete(s.canvases, id)
	delete(s.tables, id)
}

// Text looks up a text mount.
func (s *Surface) Text(id string) (*TextField, bool) {
	t, ok := s.texts[id]
	return t, ok
}

// Canvas looks up a chart mount.
func (s *Surface) Canvas(id string) (*Canvas, bool) {
	c, ok := s.canvases[id]
	return c, ok
}

// Table looks up a table mount.
func (s *Surface) Table(id string) (*Table, bool) {
	t, ok := s.tables[id]
	return t, ok
}

// SetText writes a KPI field.
func (s *Surface) SetText(id, text string) error {
	t, ok := s.texts[id]
	if !ok {
		return &RenderError{Visual: id, Mount: id}
	}
	t.Text = text
	return nil
}

// TextValue returns a KPI field's text, or "" when the mount is absent.
func (s *Surface) TextValue(id string) string {
	if t, ok := s.texts[id]; ok {
		return t.Text
	}
	return ""
}
