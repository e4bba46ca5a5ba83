package view

import (
	"fmt"
	"time"

	"github.com/dm/pulse/internal/chart"
	"github.com/dm/pulse/internal/model"
)

// Visual names a chart the registry manages.
type Visual string

const (
	VisualTrend  Visual = "trend"
	VisualStatus Visual = "status"
	VisualState  Visual = "state"
)

// Visuals lists every managed visual in update order.
var Visuals = []Visual{VisualTrend, VisualStatus, VisualState}

// EntryAnimation is how long a chart grows in after it is created. Later
// updates never replay it.
const EntryAnimation = 600 * time.Millisecond

// visualSpec is the fixed mount and initial configuration of a visual.
type visualSpec struct {
	mount  string
	config func(labels []string, values []float64) chart.Config
}

var visualSpecs = map[Visual]visualSpec{
	VisualTrend: {
		mount: MountTrendChart,
		config: func(labels []string, values []float64) chart.Config {
			return chart.Config{
				Kind: chart.Line,
				Data: chart.Data{
					Labels: labels,
					Datasets: []chart.Dataset{{
						Label:  "Enrollments",
						Data:   values,
						Colors: []string{"#3b82f6"},
						Fill:   true,
					}},
				},
				Legend:    chart.LegendHidden,
				Animation: EntryAnimation,
			}
		},
	},
	VisualStatus: {
		mount: MountStatusChart,
		config: func(labels []string, values []float64) chart.Config {
			return chart.Config{
				Kind: chart.Doughnut,
				Data: chart.Data{
					Labels: labels,
					Datasets: []chart.Dataset{{
						Data:   values,
						Colors: []string{"#10b981", "#ef4444", "#f59e0b"},
					}},
				},
				Legend:    chart.LegendRight,
				Animation: EntryAnimation,
			}
		},
	},
	VisualState: {
		mount: MountStateChart,
		config: func(labels []string, values []float64) chart.Config {
			return chart.Config{
				Kind: chart.Bar,
				Data: chart.Data{
					Labels: labels,
					Datasets: []chart.Dataset{{
						Label:  "Enrollments",
						Data:   values,
						Colors: []string{"#6366f1"},
					}},
				},
				Legend:    chart.LegendHidden,
				Animation: EntryAnimation,
			}
		},
	},
}

// MountFor returns the mount id a visual renders into.
func MountFor(v Visual) string {
	return visualSpecs[v].mount
}

// Registry holds at most one live chart per visual. It is owned by the
// orchestrator and only touched from the UI loop.
type Registry struct {
	charts map[Visual]*chart.Chart
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{charts: make(map[Visual]*chart.Chart)}
}

// Get returns the live chart for v.
func (r *Registry) Get(v Visual) (*chart.Chart, bool) {
	c, ok := r.charts[v]
	return c, ok
}

// Len returns the number of live charts.
func (r *Registry) Len() int { return len(r.charts) }

// Animating reports whether any live chart is still running its entry
// animation.
func (r *Registry) Animating() bool {
	for _, c := range r.charts {
		if c.Animating() {
			return true
		}
	}
	return false
}

// Replay restarts the entry animation of every live chart without changing
// its data. Used when the layout changes size.
func (r *Registry) Replay() {
	for _, c := range r.charts {
		c.Update(chart.ModeDefault)
	}
}

// Advance moves every running entry animation forward by dt.
func (r *Registry) Advance(dt time.Duration) {
	for _, c := range r.charts {
		if c.Animating() {
			c.Advance(dt)
		}
	}
}

// Update renders series into visual v on surface. The first call creates the
// chart; every later call edits the same chart in place and redraws it
// without animation. Label and value order follow series exactly.
func (r *Registry) Update(s *Surface, v Visual, series model.Series) error {
	vs, ok := visualSpecs[v]
	if !ok {
		return fmt.Errorf("unknown visual %q", v)
	}
	canvas, ok := s.Canvas(vs.mount)
	if !ok {
		return &RenderError{Visual: string(v), Mount: vs.mount}
	}

	labels, values := series.Labels(), series.Values()

	if c, ok := r.charts[v]; ok {
		c.Data.Labels = labels
		if len(c.Data.Datasets) == 0 {
			c.Data.Datasets = []chart.Dataset{{}}
		}
		c.Data.Datasets[0].Data = values
		c.Update(chart.ModeNone)
		canvas.Attach(c)
		return nil
	}

	c := chart.New(vs.config(labels, values))
	r.charts[v] = c
	canvas.Attach(c)
	return nil
}
