package tui

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/pulse/internal/client"
	"github.com/dm/pulse/internal/engine"
	"github.com/dm/pulse/internal/format"
	"github.com/dm/pulse/internal/model"
	"github.com/dm/pulse/internal/view"
)

// Options configures an App. Zero values select defaults.
type Options struct {
	Interval     time.Duration // refresh period, default 1s
	FetchTimeout time.Duration // per-fetch deadline, default 5s
	Scheduler    Scheduler     // default TickScheduler{Interval}
	Logger       *slog.Logger  // default discards
	Surface      *view.Surface // default view.NewDashboardSurface()
}

const (
	defaultFetchTimeout = 5 * time.Second
	frameInterval       = 50 * time.Millisecond
)

// App is the root Bubble Tea model for pulse. It owns the chart registry and
// the mount surface; both are only touched from Update.
type App struct {
	client    client.StatsClient
	interval  time.Duration
	timeout   time.Duration
	scheduler Scheduler
	logger    *slog.Logger

	registry *view.Registry
	surface  *view.Surface

	// Fetch sequencing
	seq         uint64 // last issued fetch
	applied     uint64 // seq of the last applied snapshot
	inflight    int
	lastApplied time.Time

	kpiSeverity map[string]severity
	animating   bool // a frame tick is pending

	// Layout
	width, height int

	spinner spinner.Model
	help    help.Model
}

// NewApp creates a new App polling c.
func NewApp(c client.StatsClient, opts Options) *App {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TickScheduler{Interval: opts.Interval}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Surface == nil {
		opts.Surface = view.NewDashboardSurface()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = StyleLive

	return &App{
		client:      c,
		interval:    opts.Interval,
		timeout:     opts.FetchTimeout,
		scheduler:   opts.Scheduler,
		logger:      opts.Logger,
		registry:    view.NewRegistry(),
		surface:     opts.Surface,
		kpiSeverity: make(map[string]severity),
		spinner:     sp,
		help:        help.New(),
	}
}

// Init implements tea.Model. Starts the first fetch immediately and arms the
// scheduler.
func (app *App) Init() tea.Cmd {
	return tea.Batch(app.refresh(), app.scheduler.Next(), app.spinner.Tick)
}

// Update implements tea.Model. All state changes happen here.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		resized := app.width != 0 && app.width != msg.Width
		app.width = msg.Width
		app.height = msg.Height
		app.help.Width = msg.Width
		if resized {
			app.registry.Replay()
			return app, app.animate()
		}

	case TickMsg:
		return app, tea.Batch(app.refresh(), app.scheduler.Next())

	case SnapshotMsg:
		app.settle()
		if msg.Snapshot == nil {
			return app, nil
		}
		if msg.Seq <= app.applied {
			app.logger.Debug("dropping stale snapshot", "seq", msg.Seq, "applied", app.applied)
			return app, nil
		}
		app.apply(msg.Seq, msg.Snapshot)
		return app, app.animate()

	case FrameMsg:
		app.animating = false
		app.registry.Advance(frameInterval)
		return app, app.animate()

	case FetchErrorMsg:
		app.settle()
		app.logger.Warn("fetch failed", "seq", msg.Seq, "err", msg.Err)

	case spinner.TickMsg:
		var cmd tea.Cmd
		app.spinner, cmd = app.spinner.Update(msg)
		return app, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return app, tea.Quit
		case key.Matches(msg, keys.Refresh):
			return app, app.refresh()
		case key.Matches(msg, keys.Help):
			app.help.ShowAll = !app.help.ShowAll
		}
	}

	return app, nil
}

// View implements tea.Model. Renders the full TUI.
func (app *App) View() string {
	parts := []string{
		renderHeader(app),
		renderKPIs(app),
		renderCharts(app),
		renderAnomalies(app),
		renderFooter(app),
	}
	return strings.Join(parts, "\n")
}

// refresh issues a new fetch tagged with the next sequence number.
func (app *App) refresh() tea.Cmd {
	app.seq++
	app.inflight++
	return fetchCmd(app.client, app.seq, app.timeout)
}

func (app *App) settle() {
	if app.inflight > 0 {
		app.inflight--
	}
}

// apply fans a snapshot out to the KPI fields, the three charts and the
// anomaly table. A failing mount is logged and skipped; the rest still
// render.
func (app *App) apply(seq uint64, snap *model.Snapshot) {
	app.applied = seq
	app.lastApplied = snap.FetchedAt

	kpis := []struct{ id, text string }{
		{view.MountTotalRecords, format.FormatNumber(snap.Summary.TotalRecords)},
		{view.MountSuccessRate, format.FormatPercent(snap.Summary.SuccessRate)},
		{view.MountAnomalyCount, strconv.Itoa(len(snap.Anomalies))},
		{view.MountLastUpdated, snap.Summary.LastUpdated},
	}
	for _, k := range kpis {
		if err := app.surface.SetText(k.id, k.text); err != nil {
			app.logger.Warn("render failed", "mount", k.id, "err", err)
		}
	}
	app.kpiSeverity[view.MountSuccessRate] = successRateSeverity(snap.Summary.SuccessRate)
	app.kpiSeverity[view.MountAnomalyCount] = anomalyCountSeverity(len(snap.Anomalies))

	series := map[view.Visual]model.Series{
		view.VisualTrend:  snap.MonthlyTrends,
		view.VisualStatus: snap.StatusDistribution,
		view.VisualState:  snap.StateWiseEnrollment,
	}
	for _, v := range view.Visuals {
		if err := app.registry.Update(app.surface, v, series[v]); err != nil {
			app.logger.Warn("render failed", "visual", v, "err", err)
		}
	}

	if err := view.ReconcileAnomalies(app.surface, snap.Anomalies); err != nil {
		app.logger.Warn("render failed", "visual", "anomalies", "err", err)
	}

	app.logger.Debug("snapshot applied", "seq", seq, "anomalies", len(snap.Anomalies))
}

// animate schedules the next animation frame while a chart is still growing
// in. At most one frame tick is pending at a time.
func (app *App) animate() tea.Cmd {
	if app.animating || !app.registry.Animating() {
		return nil
	}
	app.animating = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// fetchCmd is a Bubble Tea command that performs one bounded fetch and
// returns a SnapshotMsg or FetchErrorMsg carrying seq.
func fetchCmd(c client.StatsClient, seq uint64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		snap, err := engine.FetchSnapshot(context.Background(), c, timeout)
		if err != nil {
			return FetchErrorMsg{Seq: seq, Err: err}
		}
		return SnapshotMsg{Seq: seq, Snapshot: snap}
	}
}
