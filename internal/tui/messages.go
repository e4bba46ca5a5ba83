package tui

import (
	"time"

	"github.com/dm/pulse/internal/model"
)

// SnapshotMsg delivers a successful fetch to the TUI. Seq identifies the
// fetch that produced it.
type SnapshotMsg struct {
	Seq      uint64
	Snapshot *model.Snapshot
}

// FetchErrorMsg signals a failed fetch.
type FetchErrorMsg struct {
	Seq uint64
	Err error
}

// TickMsg triggers the next scheduled refresh.
type TickMsg time.Time

// FrameMsg advances chart entry animations by one frame.
type FrameMsg time.Time
