package tui

import (
	"github.com/Veraticus/client-pulse/internal/monitor"
)

// Data loading messages.
type snapshotMsg struct {
	err  error
	snap monitor.Snapshot
}

// Async operation messages.
type dismissedMsg struct {
	err       error
	projectID string
	alertID   string
}

// Error handling.
type errorMsg struct {
	err     error
	context string
}

// Pane identifies which panel has keyboard focus.
type Pane int

const (
	PaneProjects Pane = iota
	PaneAlerts
)
