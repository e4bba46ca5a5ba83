package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is the refresh period used when none is configured.
const DefaultInterval = time.Second

// Scheduler arms the next refresh. Next is called once from Init and once
// after every TickMsg; the returned command must eventually yield a TickMsg.
type Scheduler interface {
	Next() tea.Cmd
}

// TickScheduler fires a TickMsg every Interval using tea.Tick.
type TickScheduler struct {
	Interval time.Duration
}

// Next implements Scheduler.
func (s TickScheduler) Next() tea.Cmd {
	d := s.Interval
	if d <= 0 {
		d = DefaultInterval
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
