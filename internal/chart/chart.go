// Package chart is a small retained-mode chart component for the terminal.
//
// A Chart owns a mutable Data block. Callers edit Data in place and call
// Update to publish the edit; Render only ever draws what the last Update
// published, so half-applied edits are never visible.
package chart

import (
	"fmt"
	"time"
)

// Kind selects how a chart is drawn.
type Kind int

const (
	// Line draws an area chart, optionally filled below the line.
	Line Kind = iota
	// Doughnut draws a proportional ring with a legend.
	Doughnut
	// Bar draws one horizontal bar per label.
	Bar
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Doughnut:
		return "doughnut"
	case Bar:
		return "bar"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// UpdateMode controls whether Update replays the entry animation.
type UpdateMode int

const (
	// ModeDefault replays the entry animation when one is configured.
	ModeDefault UpdateMode = iota
	// ModeNone redraws immediately at full scale.
	ModeNone
)

// LegendPosition places the legend relative to the plot.
type LegendPosition int

const (
	LegendHidden LegendPosition = iota
	LegendTop
	LegendRight
)

// Dataset is one series of values. Colors holds hex colors; line and bar
// charts use the first, doughnuts cycle through all of them per label.
type Dataset struct {
	Label  string
	Data   []float64
	Colors []string
	Fill   bool
}

// Data is the mutable content of a chart.
type Data struct {
	Labels   []string
	Datasets []Dataset
}

// clone deep-copies d so later in-place edits do not leak into a render.
func (d Data) clone() Data {
	out := Data{
		Labels:   append([]string(nil), d.Labels...),
		Datasets: make([]Dataset, len(d.Datasets)),
	}
	for i, ds := range d.Datasets {
		ds.Data = append([]float64(nil), ds.Data...)
		ds.Colors = append([]string(nil), ds.Colors...)
		out.Datasets[i] = ds
	}
	return out
}

// Config is the initial configuration of a chart.
type Config struct {
	Kind      Kind
	Data      Data
	Legend    LegendPosition
	Animation time.Duration // entry animation length; 0 disables it
}

// Chart is a live chart instance.
type Chart struct {
	// Data may be edited freely; changes become visible on the next Update.
	Data Data

	kind      Kind
	legend    LegendPosition
	animation time.Duration

	published Data
	revision  int
	progress  float64 // entry animation progress in [0, 1]
}

// New constructs a chart and publishes its initial data.
func New(cfg Config) *Chart {
	c := &Chart{
		Data:      cfg.Data.clone(),
		kind:      cfg.Kind,
		legend:    cfg.Legend,
		animation: cfg.Animation,
		progress:  1,
	}
	if c.animation > 0 {
		c.progress = 0
	}
	c.published = c.Data.clone()
	return c
}

// Kind returns the chart kind.
func (c *Chart) Kind() Kind { return c.kind }

// Update publishes the current Data. With ModeNone the redraw is immediate
// and any running animation is finished; with ModeDefault the entry
// animation restarts if one is configured.
func (c *Chart) Update(mode UpdateMode) {
	c.published = c.Data.clone()
	c.revision++
	switch {
	case mode == ModeNone || c.animation <= 0:
		c.progress = 1
	default:
		c.progress = 0
	}
}

// Revision counts Update calls since construction.
func (c *Chart) Revision() int { return c.revision }

// Animating reports whether the entry animation is still running.
func (c *Chart) Animating() bool { return c.progress < 1 }

// Advance moves a running animation forward by dt.
func (c *Chart) Advance(dt time.Duration) {
	if c.animation <= 0 || c.progress >= 1 {
		c.progress = 1
		return
	}
	c.progress += float64(dt) / float64(c.animation)
	if c.progress > 1 {
		c.progress = 1
	}
}

// Labels returns the published labels.
func (c *Chart) Labels() []string {
	return append([]string(nil), c.published.Labels...)
}

// Values returns the published values of the primary dataset.
func (c *Chart) Values() []float64 {
	if len(c.published.Datasets) == 0 {
		return nil
	}
	return append([]float64(nil), c.published.Datasets[0].Data...)
}

// scale returns the eased animation factor applied to values when drawing.
func (c *Chart) scale() float64 {
	p := c.progress
	return 1 - (1-p)*(1-p)
}

// Render draws the published data into a width × height block of text.
func (c *Chart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	labels := c.published.Labels
	var ds Dataset
	if len(c.published.Datasets) > 0 {
		ds = c.published.Datasets[0]
	}
	values := make([]float64, len(labels))
	k := c.scale()
	for i := range values {
		if i < len(ds.Data) {
			values[i] = ds.Data[i] * k
		}
	}

	switch c.kind {
	case Line:
		return renderLine(labels, values, ds, c.legend, width, height)
	case Doughnut:
		return renderDoughnut(labels, values, ds, c.legend, width, height)
	case Bar:
		return renderBar(labels, values, ds, c.legend, width, height)
	default:
		return ""
	}
}
